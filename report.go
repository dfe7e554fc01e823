package nforeport

import (
	"fmt"
	"io"
)

// Reporter receives pipeline diagnostics: skipped files, fallbacks, and
// feature degradations. Implementations must be safe for nil-format-arg
// free use from a single goroutine; the pipeline is sequential.
type Reporter interface {
	// Infof reports routine progress (files found, files skipped).
	Infof(format string, args ...any)
	// Warnf reports degradations and recoverable failures.
	Warnf(format string, args ...any)
}

// NopReporter discards all diagnostics. Useful in tests.
type NopReporter struct{}

func (NopReporter) Infof(string, ...any) {}
func (NopReporter) Warnf(string, ...any) {}

// writerReporter writes diagnostics to a pair of sinks, one line each.
type writerReporter struct {
	out io.Writer
	err io.Writer
}

// NewWriterReporter returns a Reporter that writes Infof lines to out and
// Warnf lines to errOut. Either writer may be io.Discard.
func NewWriterReporter(out, errOut io.Writer) Reporter {
	return &writerReporter{out: out, err: errOut}
}

func (r *writerReporter) Infof(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *writerReporter) Warnf(format string, args ...any) {
	fmt.Fprintf(r.err, "warning: "+format+"\n", args...)
}
