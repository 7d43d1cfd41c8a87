package md2txt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var converterPool = sync.Pool{
	New: func() any {
		return &Converter{}
	},
}

var lineReaderPool = sync.Pool{
	New: func() any {
		return &LineReader{}
	},
}

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

var configPool = sync.Pool{
	New: func() any {
		return &config{}
	},
}

// ConvertRequest configures Convert.
type ConvertRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []Option
}

// Summary describes a finished conversion.
type Summary struct {
	// Lines is the number of lines handed to the converter.
	Lines int
	// State is the block state after the last line.
	State BlockState
	// Truncated is set when a read failure ended the stream early.
	Truncated bool
	// ReadErr is the read failure behind Truncated.
	ReadErr error
}

// Convert reads Markdown from req.Reader line by line and writes plain text
// to req.Writer. A read failure ends the stream quietly and is reported in
// the Summary, unless WithStrictRead is set. Write failures are returned.
func Convert(req ConvertRequest) (Summary, error) {
	if req.Reader == nil {
		return Summary{}, fmt.Errorf("convert: reader is nil")
	}
	if req.Writer == nil {
		return Summary{}, fmt.Errorf("convert: writer is nil")
	}
	cfg := configPool.Get().(*config)
	buildConfig(cfg, req.Options)
	cfgVal := *cfg
	configPool.Put(cfg)

	conv := converterPool.Get().(*Converter)
	conv.resetWithConfig(req.Writer, cfgVal)
	src := req.Reader
	if cfgVal.decodeBOM {
		src = transform.NewReader(src, unicode.BOMOverride(transform.Nop))
	}
	br := readerPool.Get().(*bufio.Reader)
	br.Reset(src)
	lr := lineReaderPool.Get().(*LineReader)
	lr.Reset(br, cfgVal.lineLimit)

	sum, err := convertLines(conv, lr)

	conv.Reset(io.Discard)
	converterPool.Put(conv)
	lr.Reset(nil, 0)
	lineReaderPool.Put(lr)
	br.Reset(nil)
	readerPool.Put(br)
	return sum, err
}

func convertLines(conv *Converter, lr *LineReader) (Summary, error) {
	var sum Summary
	convert := conv.ConvertLine
	if conv.cfg.frontMatter {
		convert = func(line []byte) error {
			return conv.frontMatter.feed(line, conv.ConvertLine)
		}
	}
	for {
		line, err := lr.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if conv.cfg.strictRead {
				return conv.summary(sum), fmt.Errorf("convert: read: %w", err)
			}
			tracer().Debugf("read stopped after line %d: %v", conv.Lines(), err)
			sum.Truncated = true
			sum.ReadErr = err
			break
		}
		if err := convert(line); err != nil {
			return conv.summary(sum), fmt.Errorf("convert: line %d: %w", conv.Lines(), err)
		}
	}
	if conv.cfg.frontMatter {
		if err := conv.frontMatter.finish(conv.ConvertLine); err != nil {
			return conv.summary(sum), fmt.Errorf("convert: %w", err)
		}
	}
	return conv.summary(sum), nil
}

func (c *Converter) summary(sum Summary) Summary {
	sum.Lines = c.lines
	sum.State = c.state
	return sum
}
