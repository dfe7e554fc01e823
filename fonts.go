package nforeport

import (
	"bytes"
	"os/exec"
	"runtime"
	"strings"
)

// CommandRunner abstracts command execution so font probing is testable
// without real subprocesses.
type CommandRunner interface {
	Run(name string, args ...string) (stdout string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	return stdout.String(), err
}

// ProbeFonts checks, best-effort, whether CJK-capable fonts are installed
// before a PDF render and warns through the reporter when none are found.
// It is informational only and never blocks rendering: probe failures
// themselves are reported as warnings.
func ProbeFonts(runner CommandRunner, reporter Reporter) {
	if runner == nil || reporter == nil {
		return
	}

	// macOS and Windows ship CJK fonts with the OS.
	if runtime.GOOS != "linux" {
		return
	}

	out, err := runner.Run("fc-list", ":lang=zh")
	if err != nil {
		reporter.Warnf("font check failed: %v; PDF text in non-Latin scripts may render as boxes", err)
		return
	}
	if strings.TrimSpace(out) == "" {
		reporter.Warnf("no CJK-capable fonts detected; install fonts-noto-cjk (Debian/Ubuntu) or google-noto-cjk-fonts (RHEL) if PDF text renders as boxes")
	}
}
