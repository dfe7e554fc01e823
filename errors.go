package nforeport

import "errors"

// Sentinel errors for library operations.
var (
	ErrNotUTF8        = errors.New("file content is not valid UTF-8")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// PDF rendering errors.
	ErrPDFUnavailable = errors.New("no Chrome/Chromium browser available for PDF rendering")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrPDFInvalid     = errors.New("rendered PDF failed validation")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
