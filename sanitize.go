package md2txt

var sanitizeOK = func() [256]bool {
	var ok [256]bool
	for c := 'a'; c <= 'z'; c++ {
		ok[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		ok[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		ok[c] = true
	}
	for _, c := range []byte{' ', '\f', '\t', '\n'} {
		ok[c] = true
	}
	return ok
}()

// Sanitize replaces every byte of b[:n] outside the ASCII whitelist
// (letters, digits, space, tab, newline, form feed) with a space, in place.
// n is clamped to len(b) and the scan stops at a NUL byte.
func Sanitize(b []byte, n int) {
	if b == nil {
		return
	}
	if n > len(b) {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		c := b[i]
		if c == 0 {
			return
		}
		if !sanitizeOK[c] {
			b[i] = ' '
		}
	}
}

// SanitizeString is Sanitize for immutable input.
func SanitizeString(s string) string {
	b := []byte(s)
	Sanitize(b, len(b))
	return string(b)
}
