// Package md2txt converts simple Markdown to plain text.
//
// Input is processed one line at a time. The first byte of a line selects how
// it is handled: '#' starts a heading, a line of three backticks toggles a
// fenced code block, '>' ends a no-format section and '~' ends a list. Every
// other line is either copied verbatim (inside a code block) or passed through
// the inline scanner, which unwraps '*', '_', '`' and '^' spans and resolves
// backslash escapes. Nothing is buffered beyond the current line.
//
// Core properties:
//   - Line oriented, one pass, bounded buffers
//   - Block state carried in an explicit BlockState
//   - Malformed markup degrades to text, it never fails
//
// Example:
//
//	summary, err := md2txt.Convert(md2txt.ConvertRequest{
//		Reader: strings.NewReader("# Hello\n\n*Markdown* in, text out.\n"),
//		Writer: os.Stdout,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = summary.Lines
//
// Behavior can be adjusted with Options such as WithHeadingFix or WithWrap.
package md2txt

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'md2txt'.
func tracer() tracing.Trace {
	return tracing.Select("md2txt")
}
