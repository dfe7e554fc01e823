package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
input:
  defaultDir: /videos
output:
  defaultPath: /tmp/report
format: html
open: true
pdf:
  timeout: 90s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.DefaultDir != "/videos" {
		t.Errorf("Input.DefaultDir = %q", cfg.Input.DefaultDir)
	}
	if cfg.Output.DefaultPath != "/tmp/report" {
		t.Errorf("Output.DefaultPath = %q", cfg.Output.DefaultPath)
	}
	if cfg.Format != "html" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if !cfg.Open {
		t.Error("Open = false")
	}
	if got := cfg.Timeout(); got != 90*time.Second {
		t.Errorf("Timeout() = %v, want 90s", got)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "format: [unclosed\n")
	if _, err := Load(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("Load() error = %v, want ErrConfigParse", err)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "formt: html\n")
	if _, err := Load(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("Load() error = %v, want ErrConfigParse for unknown field", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"zero config", Config{}, nil},
		{"valid format md", Config{Format: "md"}, nil},
		{"valid format all", Config{Format: "all"}, nil},
		{"unknown format", Config{Format: "docx"}, ErrInvalidFormat},
		{"valid timeout", Config{PDF: PDFConfig{Timeout: "45s"}}, nil},
		{"unparsable timeout", Config{PDF: PDFConfig{Timeout: "soon"}}, ErrInvalidTimeout},
		{"negative timeout", Config{PDF: PDFConfig{Timeout: "-5s"}}, ErrInvalidTimeout},
		{"zero timeout", Config{PDF: PDFConfig{Timeout: "0s"}}, ErrInvalidTimeout},
		{
			"overlong path",
			Config{Input: InputConfig{DefaultDir: strings.Repeat("a", MaxPathLength+1)}},
			ErrFieldTooLong,
		},
		{
			"overlong format",
			Config{Format: strings.Repeat("a", MaxFormatLength+1)},
			ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeout_Unset(t *testing.T) {
	t.Parallel()

	if got := DefaultConfig().Timeout(); got != 0 {
		t.Errorf("Timeout() = %v, want 0", got)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths()
	if len(paths) == 0 || paths[0] != "nforeport.yaml" {
		t.Errorf("SearchPaths() = %v, want working-directory file first", paths)
	}
}
