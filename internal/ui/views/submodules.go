package views

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"subgrip/internal/domain"
)

const (
	// Ellipsis marks a truncated name
	Ellipsis = "..."
	// HashWidth is the list column reserved for the short id and its separator
	HashWidth = 8
	// NoShortID is shown when a submodule has no checked out commit
	NoShortID = "0000000"
	// NoCommit is shown in the detail pane when the commit id is unknown
	NoCommit = "0000000000000000000000000000000000000000"
	// NoURL is shown in the detail pane when no url is configured
	NoURL = "-"
)

// SpanKind selects the style a span is drawn with
type SpanKind int

const (
	KindValue SpanKind = iota
	KindLabel
	KindHash
)

// Span is a run of text drawn in one style
type Span struct {
	Text     string
	Kind     SpanKind
	Selected bool
}

// Line is one row of pane content
type Line struct {
	Spans    []Span
	Selected bool
}

// Plain returns the line's text without styling
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// ListLines composes the visible rows [top, top+height) of the list pane.
// Each row is the name padded to width-HashWidth columns followed by the short id.
func ListLines(records []domain.Submodule, selected, top, width, height int) []Line {
	if height <= 0 || top < 0 || top >= len(records) {
		return nil
	}

	end := len(records)
	if height < end-top {
		end = top + height
	}

	budget := width - HashWidth
	if budget < 0 {
		budget = 0
	}

	lines := make([]Line, 0, end-top)
	for i := top; i < end; i++ {
		rec := records[i]
		isSelected := i == selected

		name := runewidth.FillRight(TruncateName(rec.Path, budget), budget)

		hash := rec.ShortID
		if hash == "" {
			hash = NoShortID
		}

		lines = append(lines, Line{
			Selected: isSelected,
			Spans: []Span{
				{Text: name + " ", Kind: KindValue, Selected: isSelected},
				{Text: hash, Kind: KindHash, Selected: isSelected},
			},
		})
	}

	return lines
}

// TruncateName fits name into budget display columns.
// Names that fit are returned unchanged; longer names are cut and end in
// Ellipsis so that the result is exactly budget columns wide.
func TruncateName(name string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if runewidth.StringWidth(name) <= budget {
		return name
	}

	ellipsisWidth := runewidth.StringWidth(Ellipsis)
	if budget <= ellipsisWidth {
		return runewidth.Truncate(Ellipsis, budget, "")
	}

	keep := budget - ellipsisWidth
	// a wide rune straddling the cut leaves a gap that is padded
	cut := runewidth.FillRight(runewidth.Truncate(name, keep, ""), keep)
	return cut + Ellipsis
}

// DetailLines composes the detail pane for the selected record.
// It returns nil when nothing is selected.
func DetailLines(rec domain.Submodule, ok bool) []Line {
	if !ok {
		return nil
	}

	commit := rec.FullID
	if commit == "" {
		commit = NoCommit
	}
	url := rec.URL
	if url == "" {
		url = NoURL
	}

	field := func(label string, value string, kind SpanKind) []Line {
		return []Line{
			{Spans: []Span{{Text: label, Kind: KindLabel}}},
			{Spans: []Span{{Text: value, Kind: kind}}},
		}
	}

	var lines []Line
	lines = append(lines, field("Path:", rec.Path, KindValue)...)
	lines = append(lines, Line{})
	lines = append(lines, field("Commit:", commit, KindHash)...)
	lines = append(lines, Line{})
	lines = append(lines, field("Url:", url, KindValue)...)
	lines = append(lines, Line{})
	lines = append(lines, field("Status:", rec.Status.String(), KindValue)...)
	return lines
}
