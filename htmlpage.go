package nforeport

import (
	"embed"
	"fmt"
	"html"
	"strings"
)

//go:embed assets/*.css
var styleFS embed.FS

// reportCSS returns the fixed screen stylesheet.
func reportCSS() string { return mustStyle("assets/report.css") }

// printCSS returns the print-oriented additions used for the PDF variant.
func printCSS() string { return mustStyle("assets/print.css") }

// mustStyle reads an embedded stylesheet. Embedded files are part of the
// binary, so a read failure is a build defect, not a runtime condition.
func mustStyle(name string) string {
	b, err := styleFS.ReadFile(name)
	if err != nil {
		panic("nforeport: missing embedded stylesheet " + name)
	}
	return string(b)
}

// pageTemplate is the fixed page shell for HTML output. Slots: title,
// body fragment. CSS is injected separately so the insertion logic stays
// shared with any pre-styled input.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>%s</title>
</head>
<body>
<div class="container">
%s
</div>
</body>
</html>`

// WrapPage wraps an HTML body fragment in the fixed page template with
// the given stylesheet.
func WrapPage(title, body, css string) string {
	page := fmt.Sprintf(pageTemplate, html.EscapeString(title), body)
	return injectCSS(page, css)
}

// injectCSS inserts a <style> block into HTML content. Tries </head>
// first, then after <body>, then prepends. CSS content is sanitized so
// it cannot close the style tag early.
func injectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
