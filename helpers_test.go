package md2txt

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func convertString(t *testing.T, src string, opts ...Option) string {
	t.Helper()
	out, _ := convertWithSummary(t, src, opts...)
	return out
}

func convertWithSummary(t *testing.T, src string, opts ...Option) (string, Summary) {
	t.Helper()
	var out bytes.Buffer
	sum, err := Convert(ConvertRequest{
		Reader:  strings.NewReader(src),
		Writer:  &out,
		Options: opts,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	return out.String(), sum
}

func readTestdata(t testing.TB, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}
