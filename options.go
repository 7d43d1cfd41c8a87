package md2txt

// Option configures conversion behavior.
type Option func(*config)

type config struct {
	tokenLimit  int
	lineLimit   int
	headingFix  bool
	directives  bool
	frontMatter bool
	validate    bool
	strictRead  bool
	decodeBOM   bool
	wrap        int
}

func defaultConfig() config {
	return config{
		tokenLimit: DefaultTokenLimit,
		lineLimit:  DefaultLineLimit,
	}
}

func buildConfig(cfg *config, opts []Option) {
	*cfg = defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
}

// WithTokenLimit sets how many bytes an inline span keeps. A limit <= 0 keeps
// spans of any length.
func WithTokenLimit(limit int) Option {
	return func(cfg *config) {
		cfg.tokenLimit = limit
	}
}

// WithLineLimit sets the line buffer size used by Convert. Lines of limit
// bytes or more end the conversion. A limit <= 0 restores DefaultLineLimit.
func WithLineLimit(limit int) Option {
	return func(cfg *config) {
		if limit <= 0 {
			limit = DefaultLineLimit
		}
		cfg.lineLimit = limit
	}
}

// WithHeadingFix strips heading markers and the spaces after them instead of
// dropping the byte that follows a heading marker without a space.
func WithHeadingFix(enabled bool) Option {
	return func(cfg *config) {
		cfg.headingFix = enabled
	}
}

// WithDirectives enables metadata lines (author:, date:, title:), comment
// blocks (<!-- and -->), '<' no-format sections and '-' list items.
func WithDirectives(enabled bool) Option {
	return func(cfg *config) {
		cfg.directives = enabled
	}
}

// WithFrontMatter drops a YAML, TOML or JSON front matter block at the start
// of the stream.
func WithFrontMatter(enabled bool) Option {
	return func(cfg *config) {
		cfg.frontMatter = enabled
	}
}

// WithValidation rejects lines that are not valid UTF-8 or look binary.
func WithValidation(enabled bool) Option {
	return func(cfg *config) {
		cfg.validate = enabled
	}
}

// WithStrictRead makes Convert return read failures instead of ending the
// stream quietly.
func WithStrictRead(enabled bool) Option {
	return func(cfg *config) {
		cfg.strictRead = enabled
	}
}

// WithWrap word-wraps text output at width columns. Code block lines are
// never wrapped. A width <= 0 disables wrapping.
func WithWrap(width int) Option {
	return func(cfg *config) {
		if width < 0 {
			width = 0
		}
		cfg.wrap = width
	}
}

// WithBOMDecoding decodes UTF-16 input that starts with a byte order mark to
// UTF-8 and drops a leading UTF-8 byte order mark. Without it the input bytes
// reach the converter unchanged.
func WithBOMDecoding(enabled bool) Option {
	return func(cfg *config) {
		cfg.decodeBOM = enabled
	}
}
