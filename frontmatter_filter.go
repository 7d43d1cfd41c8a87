package md2txt

import "bytes"

const maxFrontMatterScanBytes = 64 * 1024

// frontMatterFilter holds back the first lines of a stream until it knows
// whether they form a front matter block, then drops the block or releases
// the lines unchanged.
type frontMatterFilter struct {
	passthrough bool
	arena       []byte
	ends        []int
	arenaArr    [4096]byte
	endsArr     [64]int
}

func (f *frontMatterFilter) reset() {
	f.passthrough = false
	f.arena = f.arenaArr[:0]
	f.ends = f.endsArr[:0]
}

func (f *frontMatterFilter) line(i int) []byte {
	start := 0
	if i > 0 {
		start = f.ends[i-1]
	}
	return f.arena[start:f.ends[i]]
}

func (f *frontMatterFilter) feed(line []byte, emit func([]byte) error) error {
	if f.passthrough {
		return emit(line)
	}
	if f.arena == nil {
		f.reset()
	}
	f.arena = append(f.arena, line...)
	f.ends = append(f.ends, len(f.arena))
	skip, decided := f.decide(false)
	if !decided && len(f.arena) > maxFrontMatterScanBytes {
		skip, decided = 0, true
	}
	if !decided {
		return nil
	}
	return f.release(skip, emit)
}

func (f *frontMatterFilter) finish(emit func([]byte) error) error {
	if f.passthrough || len(f.ends) == 0 {
		return nil
	}
	skip, _ := f.decide(true)
	return f.release(skip, emit)
}

func (f *frontMatterFilter) release(skip int, emit func([]byte) error) error {
	f.passthrough = true
	if skip > 0 {
		tracer().Debugf("front matter: dropped %d lines", skip)
	}
	for i := skip; i < len(f.ends); i++ {
		if err := emit(f.line(i)); err != nil {
			return err
		}
	}
	f.arena = f.arena[:0]
	f.ends = f.ends[:0]
	return nil
}

// decide returns how many of the buffered lines belong to a front matter block
// and whether that is final.
func (f *frontMatterFilter) decide(eof bool) (int, bool) {
	delim, ok := parseOpeningFrontMatterDelimiter(trimEOL(f.line(0)))
	if !ok {
		return 0, true
	}
	if len(f.ends) < 2 {
		return 0, eof
	}
	if !frontMatterMetadataLikely(trimEOL(f.line(1))) {
		return 0, true
	}
	for i := 2; i < len(f.ends); i++ {
		if bytes.Equal(bytes.TrimSpace(f.line(i)), delim) {
			return i + 1, true
		}
	}
	return 0, eof
}

func parseOpeningFrontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.ContainsAny(trimmed, ":=")
}

func trimEOL(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte("\n"))
	return bytes.TrimSuffix(b, []byte("\r"))
}

func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
}
