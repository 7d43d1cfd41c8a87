package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/md2txt"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/md2txt")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cliOptions struct {
	outPath     string
	wrap        string
	traceLevel  string
	fixHeadings bool
	directives  bool
	frontMatter bool
	validate    bool
	strict      bool
	decodeBOM   bool
	showVersion bool
	tokenLimit  int
	lineLimit   int
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts cliOptions
	flags := pflag.NewFlagSet("md2txt", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&opts.wrap, "wrap", "w", "off", "Wrap text lines: off|auto|<columns>")
	flags.BoolVar(&opts.fixHeadings, "fix-headings", false, "Keep the first character of headings written without a space (#Title)")
	flags.BoolVar(&opts.directives, "directives", false, "Enable author:/date:/title: lines, <!-- --> comments, '<' sections and '-' lists")
	flags.BoolVar(&opts.frontMatter, "front-matter", false, "Drop YAML/TOML/JSON front matter at the start of the input")
	flags.BoolVar(&opts.validate, "validate", false, "Reject input that is not UTF-8 text")
	flags.BoolVar(&opts.decodeBOM, "decode-bom", false, "Decode UTF-16 input with a byte order mark and drop a UTF-8 byte order mark")
	flags.BoolVar(&opts.strict, "strict", false, "Fail on read errors and over-long lines instead of stopping quietly")
	flags.IntVar(&opts.tokenLimit, "token-limit", md2txt.DefaultTokenLimit, "Max bytes kept per inline span (0 = unlimited)")
	flags.IntVar(&opts.lineLimit, "line-limit", md2txt.DefaultLineLimit, "Line buffer size in bytes")
	flags.StringVar(&opts.traceLevel, "trace", "", "Trace level [Debug|Info|Error]")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Print version and exit")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		printUsage(stderr, flags)
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "%v\n\n", err)
		printUsage(stderr, flags)
		return 2
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if flags.NArg() > 1 {
		printUsage(stdout, flags)
		return 1
	}
	if err := setupTracing(opts.traceLevel); err != nil {
		fmt.Fprintf(stderr, "configure tracing: %v\n", err)
		return 2
	}
	width, err := resolveWrap(opts.wrap, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --wrap %q: %v\n", opts.wrap, err)
		return 2
	}

	writer, closeOut, err := resolveOutput(opts.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	code := convertInput(flags, stdin, writer, stderr, opts, width)
	if closeOut != nil {
		if err := closeOut.Close(); err != nil {
			fmt.Fprintf(stderr, "close output: %v\n", err)
			return 1
		}
	}
	return code
}

func convertInput(flags *pflag.FlagSet, stdin io.Reader, writer io.Writer, stderr io.Writer, opts cliOptions, width int) int {
	convertOpts := []md2txt.Option{
		md2txt.WithTokenLimit(opts.tokenLimit),
		md2txt.WithLineLimit(opts.lineLimit),
		md2txt.WithHeadingFix(opts.fixHeadings),
		md2txt.WithDirectives(opts.directives),
		md2txt.WithFrontMatter(opts.frontMatter),
		md2txt.WithValidation(opts.validate),
		md2txt.WithStrictRead(opts.strict),
		md2txt.WithBOMDecoding(opts.decodeBOM),
		md2txt.WithWrap(width),
	}

	if flags.NArg() == 1 && isHTTPURL(flags.Arg(0)) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if _, err := md2txt.HTTPConvert(ctx, md2txt.HTTPConvertRequest{
			URL:     flags.Arg(0),
			Writer:  writer,
			Options: convertOpts,
		}); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		return 0
	}

	reader := stdin
	if flags.NArg() == 1 {
		path := flags.Arg(0)
		f, err := openInput(path)
		if err != nil {
			fmt.Fprintf(stderr, "failed to open file %s: %v\n", path, osError(err))
			return 1
		}
		defer func() { _ = f.Close() }()
		reader = f
	}
	if _, err := md2txt.Convert(md2txt.ConvertRequest{
		Reader:  reader,
		Writer:  writer,
		Options: convertOpts,
	}); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, version.Module(), version.Current())
	fmt.Fprintf(w, "Usage: md2txt [flags] [markdownfile]\n")
	fmt.Fprintln(w, "\nIf no input is provided, Markdown is read from stdin.")
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, flags.FlagUsages())
}

func setupTracing(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.md2txt":    level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func resolveWrap(mode string, out io.Writer) (int, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "off", "0", "no":
		return 0, nil
	case "auto":
		return terminalWidth(out, defaultWidth), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(mode))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("expected off|auto|<columns>")
	}
	return n, nil
}

func terminalWidth(out io.Writer, fallback int) int {
	if f, ok := out.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				return w
			}
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func openInput(raw string) (*os.File, error) {
	path := raw
	if u, err := url.Parse(raw); err == nil && strings.EqualFold(u.Scheme, "file") {
		path = u.Path
		if path == "" {
			path = u.Host
		}
		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}
	}
	return os.Open(normalizePath(path))
}

// osError strips the operation and path from err so the message reads like
// the system error description.
func osError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := createOutput(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
