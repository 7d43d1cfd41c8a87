package md2txt

import (
	"bytes"
	"strings"
)

// DefaultTokenLimit is the number of bytes an inline span keeps before the
// rest of the span is dropped. It matches a 512 byte scratch buffer with one
// byte reserved for the terminator.
const DefaultTokenLimit = 511

var backslash = []byte{'\\'}

// InlineScanner resolves the inline markers of a single line. Spans wrapped in
// '*', '_', '`' or '^' are unwrapped, backslash escapes are resolved and all
// other bytes pass through. A scanner keeps no state between lines, but it
// reuses its scratch buffer, so it must not be shared between goroutines.
type InlineScanner struct {
	limit      int
	scratch    []byte
	scratchArr [DefaultTokenLimit + 1]byte
}

// NewInlineScanner returns a scanner that truncates spans after limit bytes.
// A limit <= 0 keeps spans of any length.
func NewInlineScanner(limit int) *InlineScanner {
	s := &InlineScanner{}
	s.reset(limit)
	return s
}

func (s *InlineScanner) reset(limit int) {
	s.limit = limit
	s.scratch = s.scratchArr[:0]
}

// Scan walks line once and calls emit for every resolved segment, in order.
// Scanning stops at the first error returned by emit.
func (s *InlineScanner) Scan(line []byte, emit func(Token) error) error {
	return s.scan(line, func(kind tokenKind, marker byte, text []byte) error {
		return emit(Token{Text: string(text), Kind: kind, Marker: marker})
	})
}

func (s *InlineScanner) scan(line []byte, emit func(kind tokenKind, marker byte, text []byte) error) error {
	line = cString(line)
	if s.scratch == nil {
		s.scratch = s.scratchArr[:0]
	}
	runStart := 0
	flushRun := func(end int) error {
		if end > runStart {
			return emit(tokenText, 0, line[runStart:end])
		}
		return nil
	}
	for i := 0; i < len(line); {
		c := line[i]
		if kind, ok := spanKind(c); ok {
			if err := flushRun(i); err != nil {
				return err
			}
			i = s.readSpan(line, i+1, c)
			if err := emit(kind, c, s.scratch); err != nil {
				return err
			}
			runStart = i
			continue
		}
		if c == '\\' {
			if err := flushRun(i); err != nil {
				return err
			}
			i++
			var text []byte
			switch {
			case i < len(line) && line[i] != '\\':
				text = line[i : i+1]
				i++
				if i < len(line) && line[i] == '\\' {
					i++
				}
			case i < len(line):
				text = backslash
				i++
			default:
				text = backslash
			}
			if err := emit(tokenEscape, '\\', text); err != nil {
				return err
			}
			runStart = i
			continue
		}
		i++
	}
	return flushRun(len(line))
}

// readSpan copies line[start:] into the scratch buffer up to the closing
// marker or the end of the line and returns the index after the span.
func (s *InlineScanner) readSpan(line []byte, start int, marker byte) int {
	s.scratch = s.scratch[:0]
	i := start
	for i < len(line) && line[i] != marker {
		if s.limit <= 0 || len(s.scratch) < s.limit {
			s.scratch = append(s.scratch, line[i])
		}
		i++
	}
	if i < len(line) {
		i++
	}
	return i
}

// ScanInline returns the tokens of line using the default span limit.
func ScanInline(line string) []Token {
	var toks []Token
	s := NewInlineScanner(DefaultTokenLimit)
	_ = s.Scan([]byte(line), func(tok Token) error {
		toks = append(toks, tok)
		return nil
	})
	return toks
}

// ResolveInline returns line with its inline markers resolved.
func ResolveInline(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	s := NewInlineScanner(DefaultTokenLimit)
	_ = s.scan([]byte(line), func(_ tokenKind, _ byte, text []byte) error {
		b.Write(text)
		return nil
	})
	return b.String()
}

// cString returns line up to its first NUL byte.
func cString(line []byte) []byte {
	if i := bytes.IndexByte(line, 0); i >= 0 {
		return line[:i]
	}
	return line
}
