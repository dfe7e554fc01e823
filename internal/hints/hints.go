// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/ChenC2022/Automatic-content-processing-flow/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hs []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hs = append(hs, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hs = append(hs, "install Chrome/Chromium or set ROD_BROWSER_BIN to an existing binary")
	}

	return formatHints(hs)
}

// ForPDFUnavailable returns the remediation hint shown when PDF output
// is requested without a usable browser.
func ForPDFUnavailable() string {
	return format("install Chrome/Chromium or set ROD_BROWSER_BIN, or use --format html")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/nforeport") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// format renders a single hint line.
func format(hint string) string {
	return "\n  hint: " + hint
}

// formatHints renders multiple hint lines.
func formatHints(hs []string) string {
	var b strings.Builder
	for _, h := range hs {
		b.WriteString(format(h))
	}
	return b.String()
}
