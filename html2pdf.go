package nforeport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ChenC2022/Automatic-content-processing-flow/internal/fileutil"
)

// PDFRenderer abstracts HTML to PDF rendering. Availability is probed
// once at startup; an unavailable renderer performs no fallback itself,
// the caller decides whether to substitute HTML output.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, htmlContent string) ([]byte, error)
	Available() bool
	Close() error
}

// Compile-time interface check.
var _ PDFRenderer = (*RodRenderer)(nil)

// A4 page geometry in inches, with print margins matching the original
// report layout.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.75
)

// RodRenderer renders HTML to PDF using headless Chrome via go-rod.
// The browser is launched lazily on first render and reused afterwards.
type RodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// NewRodRenderer creates a RodRenderer with the given per-render timeout.
func NewRodRenderer(timeout time.Duration) *RodRenderer {
	return &RodRenderer{timeout: timeout}
}

// Available reports whether a Chrome/Chromium binary can be located.
// ROD_BROWSER_BIN overrides discovery for containerized environments.
func (r *RodRenderer) Available() bool {
	if r.browser != nil {
		return true
	}
	if os.Getenv("ROD_BROWSER_BIN") != "" {
		return true
	}
	_, found := launcher.LookPath()
	return found
}

// ensureBrowser lazily launches and connects to the browser.
func (r *RodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *RodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderHTML writes the page to a temp file, opens it in headless Chrome,
// and prints it to A4 PDF. The rendered bytes are validated with pdfcpu
// before being returned.
func (r *RodRenderer) RenderHTML(ctx context.Context, htmlContent string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	filePath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(a4PrintOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	if err := ValidatePDF(pdfBytes); err != nil {
		return nil, err
	}

	return pdfBytes, nil
}

// a4PrintOptions builds the fixed print geometry for report output.
func a4PrintOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

func floatPtr(f float64) *float64 { return &f }

// ValidatePDF checks rendered bytes for structural validity and a
// non-zero page count.
func ValidatePDF(pdf []byte) error {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), conf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFInvalid, err)
	}
	if pdfCtx.PageCount == 0 {
		return fmt.Errorf("%w: document has no pages", ErrPDFInvalid)
	}
	return nil
}
