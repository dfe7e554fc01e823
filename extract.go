package nforeport

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field scan patterns for the fallback path. Case-sensitive, non-greedy,
// content may span lines. The scan is tag-name-anchored only, not
// structure-aware: a <plot> containing literal <title>-shaped text will
// mis-extract. That is accepted fallback behavior; the structured parser
// is the primary path.
var (
	titlePattern = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	tagPattern   = regexp.MustCompile(`(?s)<tag>(.*?)</tag>`)
	plotPattern  = regexp.MustCompile(`(?s)<plot>(.*?)</plot>`)
)

// Extract parses one NFO file's raw content into a Record.
//
// It first attempts a strict XML parse, reading the title, tag, and plot
// children of the document root. NFO files in the wild are frequently
// near-XML but not valid (unescaped ampersands, stray tags), so on any
// parse failure it falls back to pattern scanning over the raw text. In
// both tiers a missing field yields an empty string, never an error.
//
// The returned Record may have an empty Title; callers decide whether to
// keep it. Extract only fails when the content cannot be decoded at all.
func Extract(raw []byte, path string) (Record, error) {
	if !utf8.Valid(raw) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotUTF8, path)
	}

	rec := Record{
		SourcePath: path,
		SourceDir:  filepath.Dir(path),
	}

	title, tag, plot, err := parseXML(raw)
	if err != nil {
		content := string(raw)
		rec.Title = scanField(titlePattern, content)
		rec.Tag = scanField(tagPattern, content)
		rec.Plot = scanField(plotPattern, content)
		rec.Via = PathScan
		return rec, nil
	}

	rec.Title = title
	rec.Tag = tag
	rec.Plot = plot
	rec.Via = PathXML
	return rec, nil
}

// parseXML walks the XML token stream and captures the text of the first
// title, tag, and plot elements that are direct children of the document
// root. Element names match exactly; later duplicates are ignored.
func parseXML(raw []byte) (title, tag, plot string, err error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	fields := map[string]*string{
		"title": &title,
		"tag":   &tag,
		"plot":  &plot,
	}
	seen := make(map[string]bool, len(fields))

	depth := 0
	for {
		tok, tokErr := dec.Token()
		if errors.Is(tokErr, io.EOF) {
			break
		}
		if tokErr != nil {
			return "", "", "", tokErr
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 1 {
				if dst, ok := fields[t.Name.Local]; ok && !seen[t.Name.Local] {
					var v struct {
						Text string `xml:",chardata"`
					}
					// DecodeElement consumes the matching EndElement,
					// so depth is unchanged afterwards.
					if decErr := dec.DecodeElement(&v, &t); decErr != nil {
						return "", "", "", decErr
					}
					seen[t.Name.Local] = true
					*dst = strings.TrimSpace(v.Text)
					continue
				}
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	return title, tag, plot, nil
}

// scanField returns the trimmed first capture of pattern, or "".
func scanField(pattern *regexp.Regexp, content string) string {
	m := pattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
