package md2txt

import (
	"bytes"
	"io"
)

type lineKind uint8

const (
	lineText lineKind = iota
	lineHeading
	lineListEnd
	lineNoFormatEnd
	lineFence
	lineMetadata
	lineCommentStart
	lineNoFormatStart
	lineCommentEnd
	lineListBreak
	lineListItem
)

var (
	fenceMarker    = []byte("```")
	commentStart   = []byte("<!--")
	commentEnd     = []byte("-->")
	metadataPrefix = [...]struct {
		key   string
		label string
	}{
		{key: "author:", label: "AUTHOR:"},
		{key: "date:", label: "DATE: "},
		{key: "title:", label: "TITLE: "},
	}
)

// classifyLine picks the branch for a line from its first bytes. Directive
// kinds are only reported when directives is set.
func classifyLine(line []byte, directives bool) lineKind {
	if len(line) == 0 {
		return lineText
	}
	switch line[0] {
	case '#':
		return lineHeading
	case '~':
		return lineListEnd
	case '>':
		return lineNoFormatEnd
	case '`':
		if bytes.HasPrefix(line, fenceMarker) {
			return lineFence
		}
		return lineText
	}
	if !directives {
		return lineText
	}
	switch line[0] {
	case 'a', 'd', 't':
		if _, ok := metadataLabel(line); ok {
			return lineMetadata
		}
	case '<':
		if bytes.HasPrefix(line, commentStart) {
			return lineCommentStart
		}
		return lineNoFormatStart
	case '-':
		if bytes.HasPrefix(line, commentEnd) {
			return lineCommentEnd
		}
		if len(line) == 1 || line[1] == '\n' {
			return lineListBreak
		}
		return lineListItem
	}
	return lineText
}

// metadataLabel reports whether line starts with one of the metadata keys and
// returns its index in metadataPrefix.
func metadataLabel(line []byte) (int, bool) {
	for i, m := range metadataPrefix {
		if len(line) >= len(m.key) && bytes.EqualFold(line[:len(m.key)], []byte(m.key)) {
			return i, true
		}
	}
	return 0, false
}

// Converter turns Markdown lines into plain text. It owns the block state of
// one stream and is not safe for concurrent use.
type Converter struct {
	w           io.Writer
	cfg         config
	state       BlockState
	inline      InlineScanner
	frontMatter frontMatterFilter
	validator   validator
	lines       int
	out         []byte
	outArr      [1024]byte
}

// NewConverter creates a converter writing to w.
func NewConverter(w io.Writer, opts ...Option) *Converter {
	cfg := config{}
	buildConfig(&cfg, opts)
	c := &Converter{}
	c.resetWithConfig(w, cfg)
	return c
}

// Reset starts a new stream on w, keeping the configuration.
func (c *Converter) Reset(w io.Writer) {
	c.resetWithConfig(w, c.cfg)
}

func (c *Converter) resetWithConfig(w io.Writer, cfg config) {
	c.w = w
	c.cfg = cfg
	c.state = NewBlockState()
	c.inline.reset(cfg.tokenLimit)
	c.frontMatter.reset()
	c.validator.reset()
	c.lines = 0
	c.out = c.outArr[:0]
}

// State returns the current block state.
func (c *Converter) State() BlockState {
	return c.state
}

// Lines returns the number of lines converted since the last reset.
func (c *Converter) Lines() int {
	return c.lines
}

// ConvertLine converts one line, including its trailing newline if it has
// one, and writes the result. Heading lines are sanitized in place.
func (c *Converter) ConvertLine(line []byte) error {
	c.lines++
	if c.cfg.validate {
		if err := c.validator.addLine(line); err != nil {
			return err
		}
	}
	line = cString(line)
	switch classifyLine(line, c.cfg.directives) {
	case lineHeading:
		return c.emit(c.heading(line), true)
	case lineListEnd:
		if c.cfg.directives {
			c.state.InListBlock = false
		}
		return nil
	case lineNoFormatEnd:
		if c.state.InCodeBlock {
			tracer().Debugf("line %d: no-format section closed", c.lines)
		}
		c.state.InCodeBlock = false
		return nil
	case lineFence:
		c.state.InCodeBlock = !c.state.InCodeBlock
		tracer().Debugf("line %d: code block open=%v", c.lines, c.state.InCodeBlock)
		return nil
	case lineMetadata:
		return c.metadata(line)
	case lineCommentStart:
		c.state.InCommentBlock = true
		tracer().Debugf("line %d: comment block opened", c.lines)
		return nil
	case lineNoFormatStart:
		c.state.InCodeBlock = true
		tracer().Debugf("line %d: no-format section opened", c.lines)
		return nil
	case lineCommentEnd:
		c.state.InCommentBlock = false
		tracer().Debugf("line %d: comment block closed", c.lines)
		return nil
	case lineListBreak:
		c.state.InListBlock = false
		return nil
	case lineListItem:
		c.state.InListBlock = true
	}
	return c.text(line)
}

func (c *Converter) text(line []byte) error {
	if c.state.InCommentBlock {
		return nil
	}
	if c.state.InCodeBlock {
		return c.emit(line, false)
	}
	c.out = c.out[:0]
	err := c.inline.scan(line, func(_ tokenKind, _ byte, text []byte) error {
		c.out = append(c.out, text...)
		return nil
	})
	if err != nil {
		return err
	}
	return c.emit(c.out, true)
}

// heading returns the sanitized heading text of line. Without the heading fix
// the byte after the stopping point is skipped, so a heading with no space
// after its markers loses its first character.
func (c *Converter) heading(line []byte) []byte {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if c.cfg.headingFix {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
	} else {
		markers := i
		for i < len(line) && line[i] != ' ' && line[i] != '\n' {
			i++
		}
		if i >= len(line) || line[i] != ' ' {
			i = markers
		}
		i++
		if i > len(line) {
			i = len(line)
		}
	}
	rest := line[i:]
	Sanitize(rest, len(rest))
	return rest
}

func (c *Converter) metadata(line []byte) error {
	idx, _ := metadataLabel(line)
	m := metadataPrefix[idx]
	c.out = append(c.out[:0], m.label...)
	c.out = append(c.out, line[len(m.key):]...)
	return c.emit(c.out, false)
}

func (c *Converter) emit(text []byte, wrap bool) error {
	if len(text) == 0 {
		return nil
	}
	if wrap && c.cfg.wrap > 0 {
		text = wrapLine(text, c.cfg.wrap)
	}
	_, err := c.w.Write(text)
	return err
}
