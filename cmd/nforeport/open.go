package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// openBrowser opens the given file in the platform's default viewer.
// Best-effort convenience: callers report failure and move on.
func openBrowser(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", abs)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", abs)
	default:
		cmd = exec.Command("xdg-open", abs)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", abs, err)
	}
	// The viewer outlives us; don't wait on it.
	return nil
}
