// Package nforeport scans a directory tree for NFO metadata sidecar files,
// extracts title, tag, and plot fields from each, and renders an aggregated
// report as Markdown, HTML, or PDF.
//
// # Quick Start
//
// Create a service, build the corpus once, and render any format from it:
//
//	svc := nforeport.New()
//	defer svc.Close()
//
//	records := svc.BuildCorpus("/path/to/videos")
//	md := svc.RenderMarkdown(records)
//	os.WriteFile("summary.md", []byte(md), 0644)
//
//	page, err := svc.RenderHTML(ctx, records)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("summary.html", []byte(page), 0644)
//
// # Pipeline
//
// The pipeline is a single synchronous pass:
//
//  1. Field extraction per file: strict XML parse, falling back to a
//     tag-anchored text scan for files that are only XML-flavored.
//  2. Corpus build: recursive .nfo discovery, records without a title
//     are dropped with a diagnostic.
//  3. Composition: a grouped table of contents plus one section per
//     record, deterministic given the same corpus.
//  4. Rendering: Markdown verbatim, HTML via Goldmark with an anchor
//     fixup pass that keeps contents links and heading IDs in agreement,
//     PDF via headless Chrome (go-rod) from the no-anchor HTML variant.
//
// # Diagnostics
//
// Every skip, fallback, and degradation flows through a Reporter passed
// into the service. Nothing in the pipeline is fatal except failing to
// write a requested output artifact.
//
// # Browser Requirements
//
// PDF rendering requires Chrome/Chromium. Availability is probed once via
// PDFAvailable; when no browser is found the PDF adapter reports
// unavailability and callers typically fall back to HTML. Set
// ROD_BROWSER_BIN to use a specific binary and ROD_NO_SANDBOX=1 in
// containers.
package nforeport
