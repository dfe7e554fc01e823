package nforeport

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownEngine abstracts Markdown to HTML body conversion. The engine
// returns an HTML fragment; page wrapping and anchor fixup happen in the
// HTML adapter. Engines are selected once at startup and passed into the
// Service, never probed per call.
type MarkdownEngine interface {
	Convert(ctx context.Context, markdown string) (string, error)
	Name() string
}

// Compile-time interface checks.
var (
	_ MarkdownEngine = (*GoldmarkEngine)(nil)
	_ MarkdownEngine = (*BasicEngine)(nil)
)

// GoldmarkEngine converts Markdown using goldmark (pure Go).
type GoldmarkEngine struct {
	md goldmark.Markdown
}

// NewGoldmarkEngine creates a GoldmarkEngine with GFM extensions,
// syntax highlighting, and automatic heading IDs. The auto-generated IDs
// follow goldmark's own slugging rule; the anchor fixup pass rewrites
// them afterwards so they cannot diverge from Slug.
func NewGoldmarkEngine() *GoldmarkEngine {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(), // Treat newlines as <br>, preserving plot line structure
			ghtml.WithXHTML(),
		),
	)
	return &GoldmarkEngine{md: md}
}

func (e *GoldmarkEngine) Name() string { return "goldmark" }

// Convert converts Markdown content to an HTML fragment. Supports context
// cancellation via goroutine + select since goldmark doesn't natively
// take a context.
func (e *GoldmarkEngine) Convert(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := e.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// linkPattern matches inline [text](target) links for the basic engine.
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// BasicEngine is a minimal, purpose-built Markdown converter used when
// the full engine is disabled or fails. It handles only what the
// composer emits: headings, links, bullet lists, and separators.
// Anything outside that subset passes through as a paragraph rather than
// being dropped.
type BasicEngine struct{}

// NewBasicEngine creates a BasicEngine.
func NewBasicEngine() *BasicEngine { return &BasicEngine{} }

func (e *BasicEngine) Name() string { return "basic" }

// Convert converts Markdown line-by-line into an HTML fragment.
func (e *BasicEngine) Convert(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out []string
	var paragraph []string
	inList := false

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		out = append(out, "<p>"+strings.Join(paragraph, "<br />\n")+"</p>")
		paragraph = nil
	}
	closeList := func() {
		if inList {
			out = append(out, "</ul>")
			inList = false
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flushParagraph()
			closeList()
		case trimmed == "---":
			flushParagraph()
			closeList()
			out = append(out, "<hr />")
		case strings.HasPrefix(trimmed, "### "):
			flushParagraph()
			closeList()
			out = append(out, "<h3>"+renderInline(strings.TrimPrefix(trimmed, "### "))+"</h3>")
		case strings.HasPrefix(trimmed, "## "):
			flushParagraph()
			closeList()
			out = append(out, "<h2>"+renderInline(strings.TrimPrefix(trimmed, "## "))+"</h2>")
		case strings.HasPrefix(trimmed, "# "):
			flushParagraph()
			closeList()
			out = append(out, "<h1>"+renderInline(strings.TrimPrefix(trimmed, "# "))+"</h1>")
		case strings.HasPrefix(trimmed, "- "):
			flushParagraph()
			if !inList {
				out = append(out, "<ul>")
				inList = true
			}
			out = append(out, "<li>"+renderInline(strings.TrimPrefix(trimmed, "- "))+"</li>")
		default:
			closeList()
			paragraph = append(paragraph, renderInline(line))
		}
	}
	flushParagraph()
	closeList()

	return strings.Join(out, "\n") + "\n", nil
}

// renderInline escapes a text line and converts inline links. Escaping
// happens first so link text and heading text carry the same entity
// escaping the full engine produces, keeping the anchor fixup consistent
// across engines.
func renderInline(line string) string {
	escaped := html.EscapeString(line)
	return linkPattern.ReplaceAllString(escaped, `<a href="$2">$1</a>`)
}
