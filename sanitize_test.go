package md2txt

import "testing"

func TestSanitizeReplacesNonWhitelisted(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "punctuation", in: "Hello-World! 123\n", want: "Hello World  123\n"},
		{name: "whitespace kept", in: "a\tb\fc d\n", want: "a\tb\fc d\n"},
		{name: "carriage return", in: "Title\r\n", want: "Title \n"},
		{name: "hashes", in: "## Two ##\n", want: "   Two   \n"},
		{name: "non ascii", in: "caf\xc3\xa9", want: "caf  "},
		{name: "empty", in: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := []byte(tc.in)
			Sanitize(b, len(b))
			if got := string(b); got != tc.want {
				t.Fatalf("Sanitize(%q)=%q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeHonorsLength(t *testing.T) {
	b := []byte("a-b-c")
	Sanitize(b, 2)
	if string(b) != "a b-c" {
		t.Fatalf("unexpected partial sanitize: %q", b)
	}
	Sanitize(b, 100)
	if string(b) != "a b c" {
		t.Fatalf("expected length clamp, got %q", b)
	}
}

func TestSanitizeStopsAtNUL(t *testing.T) {
	b := []byte("a-\x00-b")
	Sanitize(b, len(b))
	if string(b) != "a \x00-b" {
		t.Fatalf("expected scan to stop at NUL, got %q", b)
	}
}

func TestSanitizeNil(t *testing.T) {
	Sanitize(nil, 10)
	if got := SanitizeString("x.y"); got != "x y" {
		t.Fatalf("SanitizeString=%q", got)
	}
}
