package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for flag parsing.
var (
	ErrTooManyArgs     = errors.New("at most one directory argument is accepted")
	ErrUnknownFormat   = errors.New("unknown format")
	ErrNegativeTimeout = errors.New("timeout must be positive")
)

// options holds the parsed command line.
type options struct {
	directory  string // positional; empty means config default, then "."
	output     string
	format     string // empty means config default, then "md"
	open       bool
	configPath string
	timeout    time.Duration
	basicHTML  bool
	quiet      bool
	version    bool
}

// parseFlags parses the command line into options. usageOut receives the
// usage text when --help is requested or parsing fails.
func parseFlags(args []string, usageOut io.Writer) (*options, error) {
	o := &options{}

	fs := flag.NewFlagSet("nforeport", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.Usage = func() {
		fmt.Fprint(usageOut, usageText)
		fs.PrintDefaults()
	}

	fs.StringVarP(&o.output, "output", "o", "", "output file path (format extension enforced if missing)")
	fs.StringVarP(&o.format, "format", "f", "", "output format: md, html, pdf, all (default md)")
	fs.BoolVar(&o.open, "open", false, "open the HTML result in a browser after generation")
	fs.StringVar(&o.configPath, "config", "", "config file path")
	fs.DurationVar(&o.timeout, "timeout", 0, "PDF render timeout (default 60s)")
	fs.BoolVar(&o.basicHTML, "basic-html", false, "use the built-in minimal Markdown converter")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "suppress progress output (warnings still shown)")
	fs.BoolVar(&o.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) > 1 {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyArgs, len(rest))
	}
	if len(rest) == 1 {
		o.directory = rest[0]
	}

	switch o.format {
	case "", "md", "html", "pdf", "all":
	default:
		return nil, fmt.Errorf("%w: %q (must be md, html, pdf, or all)", ErrUnknownFormat, o.format)
	}

	if o.timeout < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeTimeout, o.timeout)
	}

	return o, nil
}

const usageText = `nforeport scans a directory tree for .nfo files and generates an
aggregated video content report.

Usage:
  nforeport [directory] [flags]

Flags:
`
