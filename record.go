package nforeport

// ExtractionPath identifies which extraction strategy produced a record.
type ExtractionPath string

// Extraction path constants.
const (
	// PathXML means the file parsed as well-formed XML.
	PathXML ExtractionPath = "xml"
	// PathScan means the file was only XML-flavored and fields were
	// recovered by pattern scanning.
	PathScan ExtractionPath = "scan"
)

// Record is the extracted content of one valid NFO file.
// A Record is immutable once produced; the corpus builder never mutates
// one after extraction.
type Record struct {
	Title string // required; records without a title are excluded
	Tag   string // category label; empty means uncategorized
	Plot  string // synopsis; embedded line breaks are preserved

	// Provenance, carried for diagnostics and never rendered.
	SourcePath string
	SourceDir  string

	// Via records which extraction strategy succeeded.
	Via ExtractionPath
}
