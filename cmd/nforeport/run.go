package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	nforeport "github.com/ChenC2022/Automatic-content-processing-flow"
	"github.com/ChenC2022/Automatic-content-processing-flow/internal/config"
	"github.com/ChenC2022/Automatic-content-processing-flow/internal/fileutil"
	"github.com/ChenC2022/Automatic-content-processing-flow/internal/hints"
)

// ErrWriteOutput wraps failures to write a requested output artifact, the
// only per-format failure that affects the exit code.
var ErrWriteOutput = errors.New("failed to write output file")

// run executes the CLI and returns an exit code. Failure to produce one
// requested format never stops the remaining formats; the worst per-format
// exit code wins.
func run(args []string, env *Environment) int {
	opts, err := parseFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if opts.version {
		fmt.Fprintln(env.Stdout, "nforeport "+Version)
		return ExitSuccess
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, config.ErrConfigNotFound) {
			msg += hints.ForConfigNotFound(config.SearchPaths())
		}
		fmt.Fprintln(env.Stderr, msg)
		return exitCodeFor(err)
	}

	directory := firstNonEmpty(opts.directory, cfg.Input.DefaultDir, ".")
	format := firstNonEmpty(opts.format, cfg.Format, "md")
	outputPath := firstNonEmpty(opts.output, cfg.Output.DefaultPath)
	openAfter := opts.open || cfg.Open

	infoOut := io.Writer(env.Stdout)
	if opts.quiet {
		infoOut = io.Discard
	}
	reporter := nforeport.NewWriterReporter(infoOut, env.Stderr)

	svcOpts := []nforeport.Option{
		nforeport.WithReporter(reporter),
		nforeport.WithClock(env.Now),
	}
	if timeout := firstPositive(opts.timeout, cfg.Timeout()); timeout > 0 {
		svcOpts = append(svcOpts, nforeport.WithTimeout(timeout))
	}
	if opts.basicHTML {
		svcOpts = append(svcOpts, nforeport.WithMarkdownEngine(nforeport.NewBasicEngine()))
	}

	svc := nforeport.New(svcOpts...)
	defer func() { _ = svc.Close() }()

	records := svc.BuildCorpus(directory)
	if len(records) == 0 {
		reporter.Warnf("no valid nfo records found under %s; nothing written", directory)
		return ExitSuccess
	}

	formats := expandFormats(format)
	if containsFormat(formats, "pdf") && !svc.PDFAvailable() {
		reporter.Warnf("PDF renderer unavailable; generating HTML instead%s", hints.ForPDFUnavailable())
		formats = substituteHTMLForPDF(formats)
	}

	ctx := context.Background()
	worst := ExitSuccess
	var htmlPath string

	for _, f := range formats {
		path := resolveOutputPath(outputPath, directory, f)

		var renderErr error
		switch f {
		case "md":
			renderErr = writeOutput(path, []byte(svc.RenderMarkdown(records)))
		case "html":
			page, err := svc.RenderHTML(ctx, records)
			if err == nil {
				err = writeOutput(path, []byte(page))
			}
			if err == nil {
				htmlPath = path
			}
			renderErr = err
		case "pdf":
			pdf, err := svc.RenderPDF(ctx, records)
			if err == nil {
				err = writeOutput(path, pdf)
			}
			renderErr = err
		}

		if renderErr != nil {
			msg := renderErr.Error()
			if errors.Is(renderErr, nforeport.ErrBrowserConnect) {
				msg += hints.ForBrowserConnect()
			}
			fmt.Fprintln(env.Stderr, msg)
			if code := exitCodeFor(renderErr); code > worst {
				worst = code
			}
			continue
		}
		reporter.Infof("wrote %s", path)
	}

	if openAfter && htmlPath != "" {
		if err := openBrowser(htmlPath); err != nil {
			reporter.Warnf("could not open %s: %v", htmlPath, err)
		}
	}

	return worst
}

// expandFormats resolves the format selector into concrete formats.
func expandFormats(format string) []string {
	if format == "all" {
		return []string{"md", "html", "pdf"}
	}
	return []string{format}
}

// substituteHTMLForPDF replaces the pdf entry with html, deduplicating
// when html is already requested.
func substituteHTMLForPDF(formats []string) []string {
	var out []string
	for _, f := range formats {
		if f == "pdf" {
			f = "html"
		}
		if !containsFormat(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func containsFormat(formats []string, want string) bool {
	for _, f := range formats {
		if f == want {
			return true
		}
	}
	return false
}

// resolveOutputPath picks the artifact path for one format: an explicit
// path with the format extension enforced, or the default name derived
// from the fixed report title inside the scanned directory.
func resolveOutputPath(explicit, directory, format string) string {
	ext := "." + format
	if explicit == "" {
		return filepath.Join(directory, nforeport.Slug(nforeport.DocumentTitle)+ext)
	}
	return fileutil.EnsureExtension(explicit, ext)
}

// writeOutput writes one artifact, wrapping failures in ErrWriteOutput.
func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
