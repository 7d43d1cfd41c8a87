package md2txt

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "just text\n", want: "just text\n"},
		{name: "strong", in: "**bold** text\n", want: "bold text\n"},
		{name: "emphasis", in: "an _em_ word\n", want: "an em word\n"},
		{name: "code", in: "run `go test` now\n", want: "run go test now\n"},
		{name: "reference", in: "see ^note^\n", want: "see note\n"},
		{
			name: "all markers",
			in:   "**bold** and _em_ and `code` and ^ref^ and \\\\\n",
			want: "bold and em and code and ref and \\\n",
		},
		{name: "unterminated", in: "*bold text", want: "bold text"},
		{name: "unterminated keeps newline", in: "_tail\n", want: "tail\n"},
		{name: "escaped marker", in: "\\*\\", want: "*"},
		{name: "escaped marker in text", in: "a \\*b\\ c *d*\n", want: "a *b c d\n"},
		{name: "escape without closing", in: "\\_x", want: "_x"},
		{name: "double backslash", in: "C:\\\\dir", want: "C:\\dir"},
		{name: "dangling backslash", in: "end\\", want: "end\\"},
		{name: "markers inside span kept", in: "*a_b*", want: "a_b"},
		{name: "empty span", in: "**", want: ""},
		{name: "stops at NUL", in: "ab\x00*cd*", want: "ab"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveInline(tc.in); got != tc.want {
				t.Fatalf("ResolveInline(%q)=%q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestResolveInlineIsIdempotentWithoutMarkers(t *testing.T) {
	inputs := []string{
		"**bold** and _em_\n",
		"`code` ^ref^ plain\n",
		"nothing to do here\n",
	}
	for _, in := range inputs {
		once := ResolveInline(in)
		if strings.ContainsAny(once, "*_`^\\") {
			continue
		}
		if twice := ResolveInline(once); twice != once {
			t.Fatalf("second pass changed %q to %q", once, twice)
		}
	}
}

func TestScanInlineTokenKinds(t *testing.T) {
	toks := ScanInline("a *b* _c_ `d` ^e^ \\f\\")
	want := []Token{
		{Text: "a ", Kind: TokenText},
		{Text: "b", Kind: TokenStrong, Marker: '*'},
		{Text: " ", Kind: TokenText},
		{Text: "c", Kind: TokenEmphasis, Marker: '_'},
		{Text: " ", Kind: TokenText},
		{Text: "d", Kind: TokenCode, Marker: '`'},
		{Text: " ", Kind: TokenText},
		{Text: "e", Kind: TokenReference, Marker: '^'},
		{Text: " ", Kind: TokenText},
		{Text: "f", Kind: TokenEscape, Marker: '\\'},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens want %d: %#v", len(toks), len(want), toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Fatalf("token %d = %#v want %#v", i, toks[i], want[i])
		}
	}
}

func TestInlineScannerTruncatesSpans(t *testing.T) {
	long := strings.Repeat("x", 600)
	got := ResolveInline("*" + long + "* tail")
	want := strings.Repeat("x", DefaultTokenLimit) + " tail"
	if got != want {
		t.Fatalf("expected span truncated to %d bytes, got %d bytes", DefaultTokenLimit, len(got)-len(" tail"))
	}

	s := NewInlineScanner(0)
	var b strings.Builder
	err := s.Scan([]byte("`"+long+"`"), func(tok Token) error {
		b.WriteString(tok.Text)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if b.String() != long {
		t.Fatalf("unbounded scanner truncated span to %d bytes", b.Len())
	}
}

func TestInlineScannerStopsOnEmitError(t *testing.T) {
	errStop := errors.New("stop")
	calls := 0
	s := NewInlineScanner(DefaultTokenLimit)
	err := s.Scan([]byte("a *b* c"), func(Token) error {
		calls++
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("expected emit error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected scan to stop after first emit, got %d calls", calls)
	}
}
