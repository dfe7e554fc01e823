package nforeport

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Fixed document strings. The title-heading prefix doubles as the match
// anchor for the HTML fixup pass, so the composer and the fixup must
// agree on it exactly.
const (
	// DocumentTitle is the report's fixed top-level title, also used to
	// derive default output filenames.
	DocumentTitle = "Video Content Summary"
	// UncategorizedLabel buckets records with an empty tag. The bucket
	// sorts by this literal label, not pinned first or last.
	UncategorizedLabel = "Uncategorized"

	contentsHeading    = "Contents"
	titleHeadingPrefix = "Video Title: "
	typeHeadingPrefix  = "Video Type: "
	summaryHeading     = "Video Summary"
	noSummaryText      = "No summary available."
)

// ComposeOptions controls document composition.
type ComposeOptions struct {
	// IncludeAnchors emits contents entries as links targeting
	// Slug(title). Leave false for plain Markdown and pre-PDF HTML,
	// where anchors are not meaningful.
	IncludeAnchors bool
	// Now supplies the generation timestamp; nil means time.Now. The
	// timestamp is the only non-determinism in the output.
	Now func() time.Time
}

// Compose turns the ordered record collection into the intermediate
// Markdown document: title, timestamp and count preamble, a contents
// section grouped by tag, then one section per record in corpus order.
// A zero-record corpus composes to the empty string.
func Compose(records []Record, opts ComposeOptions) string {
	if len(records) == 0 {
		return ""
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var lines []string
	lines = append(lines,
		"# "+DocumentTitle,
		"",
		"Generated: "+now().Format("2006-01-02 15:04:05"),
		fmt.Sprintf("Total videos: %d", len(records)),
		"",
		"## "+contentsHeading,
		"",
	)

	for _, g := range groupByTag(records) {
		lines = append(lines, "### "+g.label)
		for _, rec := range g.records {
			if opts.IncludeAnchors {
				lines = append(lines, fmt.Sprintf("- [%s](#%s)", rec.Title, Slug(rec.Title)))
			} else {
				lines = append(lines, "- "+rec.Title)
			}
		}
		lines = append(lines, "")
	}

	lines = append(lines, "---", "")

	for _, rec := range records {
		lines = append(lines,
			"## "+titleHeadingPrefix+rec.Title,
			"",
			"### "+typeHeadingPrefix+tagLabel(rec.Tag),
			"",
			"### "+summaryHeading,
		)
		if rec.Plot == "" {
			lines = append(lines, noSummaryText)
		} else {
			// Echo the plot line-by-line: blank lines stay blank, the
			// rest is emitted verbatim with no re-wrapping or escaping.
			for _, line := range strings.Split(rec.Plot, "\n") {
				if strings.TrimSpace(line) == "" {
					lines = append(lines, "")
				} else {
					lines = append(lines, line)
				}
			}
		}
		lines = append(lines, "", "---", "")
	}

	return strings.Join(lines, "\n")
}

// tagLabel maps the empty tag to the uncategorized bucket label.
func tagLabel(tag string) string {
	if tag == "" {
		return UncategorizedLabel
	}
	return tag
}

type tagGroup struct {
	label   string
	records []Record
}

// groupByTag buckets records by tag label, preserving discovery order
// within each bucket, and returns the buckets in lexicographic label
// order.
func groupByTag(records []Record) []tagGroup {
	index := make(map[string]int)
	var groups []tagGroup

	for _, rec := range records {
		label := tagLabel(rec.Tag)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, tagGroup{label: label})
		}
		groups[i].records = append(groups[i].records, rec)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].label < groups[j].label
	})
	return groups
}
