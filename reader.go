package md2txt

import (
	"bufio"
	"errors"
	"io"
)

// DefaultLineLimit is the size of the line buffer. One byte is reserved for
// the terminator, so the longest accepted line, newline included, is
// DefaultLineLimit-1 bytes.
const DefaultLineLimit = 2048

// ErrLineTooLong reports a line that does not fit the line buffer.
var ErrLineTooLong = errors.New("line too long")

// LineReader reads newline terminated lines into a bounded buffer.
type LineReader struct {
	r       *bufio.Reader
	limit   int
	line    []byte
	lineArr [256]byte
}

// NewLineReader returns a LineReader over r. A limit <= 0 uses
// DefaultLineLimit.
func NewLineReader(r io.Reader, limit int) *LineReader {
	lr := &LineReader{}
	lr.Reset(bufio.NewReaderSize(r, 4096), limit)
	return lr
}

// Reset points the reader at br and clears the line buffer.
func (lr *LineReader) Reset(br *bufio.Reader, limit int) {
	if limit <= 0 {
		limit = DefaultLineLimit
	}
	lr.r = br
	lr.limit = limit
	lr.line = lr.lineArr[:0]
}

// ReadLine returns the next line including its newline. A final line without
// a newline is returned with a nil error and the next call reports io.EOF.
// The returned slice is only valid until the next call.
func (lr *LineReader) ReadLine() ([]byte, error) {
	lr.line = lr.line[:0]
	for {
		frag, err := lr.r.ReadSlice('\n')
		lr.line = append(lr.line, frag...)
		if len(lr.line) >= lr.limit {
			return nil, ErrLineTooLong
		}
		switch err {
		case nil:
			return lr.line, nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			if len(lr.line) > 0 {
				return lr.line, nil
			}
			return nil, io.EOF
		default:
			return nil, err
		}
	}
}
