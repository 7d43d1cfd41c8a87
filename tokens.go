package md2txt

// Token is one resolved inline segment of a line.
type Token struct {
	Text   string
	Kind   tokenKind
	Marker byte
}

type tokenKind uint8

// TokenKind is the exported alias of tokenKind for callers inspecting scans.
type TokenKind = tokenKind

const (
	tokenText tokenKind = iota
	tokenStrong
	tokenEmphasis
	tokenCode
	tokenReference
	tokenEscape
)

const (
	// TokenText represents bytes copied through unchanged.
	TokenText tokenKind = tokenText
	// TokenStrong represents a span wrapped in '*'.
	TokenStrong tokenKind = tokenStrong
	// TokenEmphasis represents a span wrapped in '_'.
	TokenEmphasis tokenKind = tokenEmphasis
	// TokenCode represents a span wrapped in '`'.
	TokenCode tokenKind = tokenCode
	// TokenReference represents a span wrapped in '^'.
	TokenReference tokenKind = tokenReference
	// TokenEscape represents a backslash escaped character.
	TokenEscape tokenKind = tokenEscape
)

func spanKind(marker byte) (tokenKind, bool) {
	switch marker {
	case '*':
		return tokenStrong, true
	case '_':
		return tokenEmphasis, true
	case '`':
		return tokenCode, true
	case '^':
		return tokenReference, true
	}
	return tokenText, false
}
