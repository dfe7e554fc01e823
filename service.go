package nforeport

import (
	"context"
	"fmt"
	"time"
)

// defaultTimeout bounds a single PDF render when no timeout is set.
const defaultTimeout = 60 * time.Second

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout sets the PDF render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("nforeport: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithReporter routes pipeline diagnostics to r.
func WithReporter(r Reporter) Option {
	return func(s *Service) {
		s.reporter = r
	}
}

// WithClock injects the generation-timestamp source. Tests use this to
// make composed output fully deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.cfg.now = now
	}
}

// WithMarkdownEngine replaces the Markdown engine selected at startup.
func WithMarkdownEngine(e MarkdownEngine) Option {
	return func(s *Service) {
		s.engine = e
	}
}

// WithPDFRenderer replaces the PDF renderer (e.g., a fake in tests).
func WithPDFRenderer(r PDFRenderer) Option {
	return func(s *Service) {
		s.pdf = r
	}
}

// WithCommandRunner replaces the runner used for the font probe.
func WithCommandRunner(r CommandRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// Service orchestrates the scan-extract-compose-render pipeline. The
// corpus it builds is owned by the calling goroutine and reused, not
// rebuilt, across render calls.
type Service struct {
	cfg      serviceConfig
	engine   MarkdownEngine
	pdf      PDFRenderer
	reporter Reporter
	runner   CommandRunner
}

// New creates a Service with default configuration: the goldmark engine,
// a rod PDF renderer, and a nop reporter.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:      serviceConfig{timeout: defaultTimeout},
		reporter: NopReporter{},
		runner:   ExecRunner{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.engine == nil {
		s.engine = NewGoldmarkEngine()
	}
	// Create the rod renderer last so it picks up the configured timeout.
	if s.pdf == nil {
		s.pdf = NewRodRenderer(s.cfg.timeout)
	}

	return s
}

// BuildCorpus scans root and returns the valid records in discovery order.
func (s *Service) BuildCorpus(root string) []Record {
	return BuildCorpus(root, s.reporter)
}

// RenderMarkdown composes the plain Markdown report. Zero records yield
// the empty string.
func (s *Service) RenderMarkdown(records []Record) string {
	return Compose(records, ComposeOptions{Now: s.cfg.now})
}

// RenderHTML composes the anchor-linked variant, converts it, fixes up
// anchors so contents links and heading IDs agree, and wraps the result
// in the fixed page template. Zero records yield the empty string.
func (s *Service) RenderHTML(ctx context.Context, records []Record) (string, error) {
	md := Compose(records, ComposeOptions{IncludeAnchors: true, Now: s.cfg.now})
	if md == "" {
		return "", nil
	}

	body, err := s.convertBody(ctx, md)
	if err != nil {
		return "", err
	}

	body = FixAnchors(body)
	return WrapPage(DocumentTitle, body, reportCSS()), nil
}

// RenderPDF renders the no-anchor HTML variant to PDF with print layout.
// It returns ErrPDFUnavailable without side effects when no browser can
// be found; callers decide whether to substitute HTML output.
func (s *Service) RenderPDF(ctx context.Context, records []Record) ([]byte, error) {
	if !s.PDFAvailable() {
		return nil, ErrPDFUnavailable
	}

	md := Compose(records, ComposeOptions{Now: s.cfg.now})
	if md == "" {
		return nil, nil
	}

	ProbeFonts(s.runner, s.reporter)

	body, err := s.convertBody(ctx, md)
	if err != nil {
		return nil, err
	}

	// Anchors carry no meaning in paginated output, so the body is used
	// as converted, without the anchor fixup.
	page := WrapPage(DocumentTitle, body, reportCSS()+"\n"+printCSS())

	return s.pdf.RenderHTML(ctx, page)
}

// PDFAvailable reports whether the configured PDF renderer can run.
func (s *Service) PDFAvailable() bool {
	return s.pdf != nil && s.pdf.Available()
}

// convertBody runs the configured Markdown engine, degrading to the
// built-in basic engine with a diagnostic when the full engine fails.
func (s *Service) convertBody(ctx context.Context, md string) (string, error) {
	body, err := s.engine.Convert(ctx, md)
	if err == nil {
		return body, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	s.reporter.Warnf("%s engine failed (%v); using built-in basic converter", s.engine.Name(), err)
	body, err = NewBasicEngine().Convert(ctx, md)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return body, nil
}

// Close releases renderer resources (the headless browser, if launched).
func (s *Service) Close() error {
	if s.pdf != nil {
		return s.pdf.Close()
	}
	return nil
}
