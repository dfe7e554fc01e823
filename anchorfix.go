package nforeport

import "regexp"

// Anchor fixup patterns. The record-title heading is matched on the fixed
// composer prefix so only record sections get IDs re-injected.
var (
	// Curly attribute-list anchors some converters leave behind
	// ("## Heading {#id}" syntax surviving into the HTML).
	curlyAnchorPattern = regexp.MustCompile(`\{#[^}]+\}`)

	// Any id attribute on a heading tag, whatever convention produced it.
	headingIDPattern = regexp.MustCompile(`(<h[1-6])([^>]*?)\s+id="[^"]*"([^>]*)>`)

	// A rendered record-title heading; group 1 is the escaped title text.
	titleHeadingPattern = regexp.MustCompile(`<h2[^>]*>` + regexp.QuoteMeta(titleHeadingPrefix) + `([^<]+)</h2>`)

	// An in-page contents link; group 1 is the escaped link text.
	tocLinkPattern = regexp.MustCompile(`<a href="#[^"]*">([^<]+)</a>`)
)

// FixAnchors reconciles heading IDs and contents links after Markdown
// conversion. Whatever heading-ID rule the engine applied is stripped;
// every record-title heading gets id="Slug(title)" and every contents
// link is rewritten to target Slug of its own link text. Both sides
// consult Slug on the same escaped text, so link/ID agreement holds for
// every record even when the engine's slugging rule differs.
//
// Titles that normalize to the same slug collide: both headings receive
// the same id and the browser resolves the fragment to the first one.
// That mirrors the converter-independent behavior of duplicate anchors
// and is accepted rather than treated as an error.
func FixAnchors(htmlContent string) string {
	htmlContent = curlyAnchorPattern.ReplaceAllString(htmlContent, "")
	htmlContent = headingIDPattern.ReplaceAllString(htmlContent, "$1$2$3>")

	htmlContent = titleHeadingPattern.ReplaceAllStringFunc(htmlContent, func(m string) string {
		title := titleHeadingPattern.FindStringSubmatch(m)[1]
		return `<h2 id="` + Slug(title) + `">` + titleHeadingPrefix + title + `</h2>`
	})

	htmlContent = tocLinkPattern.ReplaceAllStringFunc(htmlContent, func(m string) string {
		text := tocLinkPattern.FindStringSubmatch(m)[1]
		return `<a href="#` + Slug(text) + `">` + text + `</a>`
	})

	return htmlContent
}
