package md2txt

import "github.com/muesli/reflow/wordwrap"

func wrapLine(text []byte, width int) []byte {
	if width <= 0 || len(text) <= width {
		return text
	}
	return wordwrap.Bytes(text, width)
}
