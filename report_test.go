package nforeport

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// recordingReporter captures diagnostics for assertions.
type recordingReporter struct {
	infos []string
	warns []string
}

func (r *recordingReporter) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warnf(format string, args ...any) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) hasWarn(substr string) bool {
	for _, w := range r.warns {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func (r *recordingReporter) hasInfo(substr string) bool {
	for _, i := range r.infos {
		if strings.Contains(i, substr) {
			return true
		}
	}
	return false
}

func TestWriterReporter(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	r := NewWriterReporter(&out, &errOut)

	r.Infof("processed %d files", 3)
	r.Warnf("skipping %s", "bad.nfo")

	if got := out.String(); got != "processed 3 files\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "warning: skipping bad.nfo\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestNopReporter(t *testing.T) {
	t.Parallel()

	// Must not panic with any arguments.
	var r NopReporter
	r.Infof("x %d", 1)
	r.Warnf("y %s", "z")
}
