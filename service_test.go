package nforeport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// failingEngine always errors, driving the degradation path.
type failingEngine struct{}

func (failingEngine) Convert(context.Context, string) (string, error) {
	return "", errors.New("boom")
}
func (failingEngine) Name() string { return "failing" }

// fakePDFRenderer captures the page it was asked to render.
type fakePDFRenderer struct {
	available bool
	result    []byte
	err       error

	gotHTML string
	closed  bool
}

func (f *fakePDFRenderer) RenderHTML(_ context.Context, htmlContent string) ([]byte, error) {
	f.gotHTML = htmlContent
	return f.result, f.err
}
func (f *fakePDFRenderer) Available() bool { return f.available }
func (f *fakePDFRenderer) Close() error {
	f.closed = true
	return nil
}

func testRecords() []Record {
	return []Record{
		{Title: "Sleep Basics", Tag: "Sleep", Plot: "p1\n\np2"},
		{Title: "Untagged Item"},
	}
}

func TestService_RenderMarkdown(t *testing.T) {
	t.Parallel()

	svc := New(WithClock(fixedClock), WithPDFRenderer(&fakePDFRenderer{}))

	got := svc.RenderMarkdown(testRecords())
	for _, want := range []string{
		"# " + DocumentTitle,
		"- Sleep Basics",
		"## Video Title: Untagged Item",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(got, "](#") {
		t.Error("markdown variant contains anchor links")
	}

	if svc.RenderMarkdown(nil) != "" {
		t.Error("zero-record markdown should be empty")
	}
}

func TestService_RenderHTML_LinkIDAgreement(t *testing.T) {
	t.Parallel()

	svc := New(WithClock(fixedClock), WithPDFRenderer(&fakePDFRenderer{}))

	page, err := svc.RenderHTML(context.Background(), testRecords())
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<style>",
		`<a href="#sleep-basics">Sleep Basics</a>`,
		`<h2 id="sleep-basics">`,
		`<a href="#untagged-item">Untagged Item</a>`,
		`<h2 id="untagged-item">`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestService_RenderHTML_EmptyCorpus(t *testing.T) {
	t.Parallel()

	svc := New(WithPDFRenderer(&fakePDFRenderer{}))
	page, err := svc.RenderHTML(context.Background(), nil)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if page != "" {
		t.Errorf("zero-record page = %q, want empty", page)
	}
}

func TestService_RenderHTML_DegradesToBasicEngine(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	svc := New(
		WithClock(fixedClock),
		WithReporter(reporter),
		WithMarkdownEngine(failingEngine{}),
		WithPDFRenderer(&fakePDFRenderer{}),
	)

	page, err := svc.RenderHTML(context.Background(), testRecords())
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if !reporter.hasWarn("using built-in basic converter") {
		t.Errorf("degradation not reported: %v", reporter.warns)
	}
	// The basic engine still produces a navigable page.
	if !strings.Contains(page, `<h2 id="sleep-basics">`) {
		t.Errorf("degraded page missing injected heading id:\n%s", page)
	}
}

func TestService_RenderPDF_Unavailable(t *testing.T) {
	t.Parallel()

	svc := New(WithPDFRenderer(&fakePDFRenderer{available: false}))

	_, err := svc.RenderPDF(context.Background(), testRecords())
	if !errors.Is(err, ErrPDFUnavailable) {
		t.Errorf("error = %v, want ErrPDFUnavailable", err)
	}
}

func TestService_RenderPDF_UsesNoAnchorVariant(t *testing.T) {
	t.Parallel()

	fake := &fakePDFRenderer{available: true, result: []byte("%PDF")}
	svc := New(
		WithClock(fixedClock),
		WithPDFRenderer(fake),
		WithCommandRunner(&fakeRunner{stdout: "font"}),
	)

	got, err := svc.RenderPDF(context.Background(), testRecords())
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if string(got) != "%PDF" {
		t.Errorf("result = %q", got)
	}

	if strings.Contains(fake.gotHTML, `href="#`) {
		t.Errorf("PDF page contains in-page anchors:\n%s", fake.gotHTML)
	}
	if !strings.Contains(fake.gotHTML, "page-break-after") {
		t.Error("PDF page missing print stylesheet")
	}
	if !strings.Contains(fake.gotHTML, "Video Title: Sleep Basics") {
		t.Error("PDF page missing record section")
	}
}

func TestService_PDFAvailable(t *testing.T) {
	t.Parallel()

	if !New(WithPDFRenderer(&fakePDFRenderer{available: true})).PDFAvailable() {
		t.Error("PDFAvailable() = false, want true")
	}
	if New(WithPDFRenderer(&fakePDFRenderer{available: false})).PDFAvailable() {
		t.Error("PDFAvailable() = true, want false")
	}
}

func TestService_CloseReleasesRenderer(t *testing.T) {
	t.Parallel()

	fake := &fakePDFRenderer{}
	svc := New(WithPDFRenderer(fake))
	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fake.closed {
		t.Error("renderer not closed")
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive timeout")
		}
	}()
	WithTimeout(0)
}

func TestService_CorpusReuseAcrossRenders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNfo(t, dir, "a.nfo", "<movie><title>Reused</title></movie>")

	svc := New(
		WithClock(fixedClock),
		WithPDFRenderer(&fakePDFRenderer{available: true, result: []byte("%PDF")}),
		WithCommandRunner(&fakeRunner{stdout: "font"}),
	)

	records := svc.BuildCorpus(dir)
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}

	md := svc.RenderMarkdown(records)
	page, err := svc.RenderHTML(context.Background(), records)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	pdf, err := svc.RenderPDF(context.Background(), records)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}

	for name, ok := range map[string]bool{
		"markdown": strings.Contains(md, "Reused"),
		"html":     strings.Contains(page, "Reused"),
		"pdf":      len(pdf) > 0,
	} {
		if !ok {
			t.Errorf("%s render did not consume the corpus", name)
		}
	}
}

func TestService_RenderHTML_ContextCancelled(t *testing.T) {
	t.Parallel()

	svc := New(WithClock(fixedClock), WithPDFRenderer(&fakePDFRenderer{}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	if _, err := svc.RenderHTML(ctx, testRecords()); err == nil {
		t.Error("expected error for cancelled context")
	}
}
