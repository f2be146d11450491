package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"subgrip/internal/ui/scroll"
)

// ListMinWidth is the narrowest the list pane gets before the detail pane shrinks
const ListMinWidth = 40

// Rect is a screen area in cells
type Rect struct {
	X, Y, W, H int
}

// PopupOptions controls popup geometry
type PopupOptions struct {
	WidthPercent  int
	HeightPercent int
	MinWidth      int
	MinHeight     int
	InfoWidth     int
	ShowScrollbar bool
}

// PopupLayout is the geometry of one popup frame
type PopupLayout struct {
	Area       Rect // outer box including the border
	ListWidth  int  // list text columns, scrollbar excluded
	InfoWidth  int
	Height     int // visible list rows
	Scrollbar  bool
	innerWidth int
}

// ComputePopupLayout centers a percent-sized box on the screen, grows it to
// the minimum size and clips it to the screen.
func ComputePopupLayout(screenW, screenH int, opts PopupOptions) PopupLayout {
	w := screenW * opts.WidthPercent / 100
	h := screenH * opts.HeightPercent / 100
	if w < opts.MinWidth {
		w = opts.MinWidth
	}
	if h < opts.MinHeight {
		h = opts.MinHeight
	}
	if w > screenW {
		w = screenW
	}
	if h > screenH {
		h = screenH
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	layout := PopupLayout{
		Area: Rect{X: (screenW - w) / 2, Y: (screenH - h) / 2, W: w, H: h},
	}

	inner := w - 2
	if inner < 0 {
		inner = 0
	}
	layout.innerWidth = inner
	layout.Height = h - 2
	if layout.Height < 0 {
		layout.Height = 0
	}

	info := opts.InfoWidth
	if spare := inner - ListMinWidth; info > spare {
		info = spare
	}
	if info < 0 {
		info = 0
	}
	layout.InfoWidth = info

	list := inner - info
	if opts.ShowScrollbar && list > 1 {
		layout.Scrollbar = true
		list--
	}
	layout.ListWidth = list

	return layout
}

// PopupContent is everything needed to draw one popup frame
type PopupContent struct {
	Title     string
	List      []Line
	Detail    []Line
	Count     int
	Thumb     float64 // scrollbar thumb position in [0, 1]
	Indicator string  // drawn after the title, e.g. a spinner
}

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// Render draws the framed popup; the result is exactly layout.Area in size
func (pr *PopupRenderer) Render(layout PopupLayout, content PopupContent) string {
	if layout.Area.W < 2 || layout.Area.H < 2 {
		return ""
	}

	border := lipgloss.ThickBorder()
	bs := pr.styles.PopupBorder
	inner := layout.innerWidth

	var rows []string
	rows = append(rows, pr.topBorder(border, inner, content))

	var scrollbar []string
	if layout.Scrollbar {
		scrollbar = pr.scrollbar(content.Count, content.Thumb, layout.Height)
	}

	for row := 0; row < layout.Height; row++ {
		var b strings.Builder
		b.WriteString(bs.Render(border.Left))

		var listLine, detailLine Line
		if row < len(content.List) {
			listLine = content.List[row]
		}
		if row < len(content.Detail) {
			detailLine = content.Detail[row]
		}

		b.WriteString(pr.renderLine(listLine, layout.ListWidth))
		if layout.Scrollbar {
			b.WriteString(scrollbar[row])
		}
		if layout.InfoWidth > 0 {
			b.WriteString(pr.renderLine(detailLine, layout.InfoWidth))
		}

		b.WriteString(bs.Render(border.Right))
		rows = append(rows, b.String())
	}

	rows = append(rows, bs.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return strings.Join(rows, "\n")
}

func (pr *PopupRenderer) topBorder(border lipgloss.Border, inner int, content PopupContent) string {
	bs := pr.styles.PopupBorder

	title := content.Title
	if content.Indicator != "" {
		title += " " + content.Indicator
	}
	title = runewidth.Truncate(title, inner, "")
	titleWidth := runewidth.StringWidth(title)

	return bs.Render(border.TopLeft) +
		pr.styles.PopupTitle.Render(title) +
		bs.Render(strings.Repeat(border.Top, inner-titleWidth)+border.TopRight)
}

// renderLine styles a pane line and pads or clips it to width columns
func (pr *PopupRenderer) renderLine(line Line, width int) string {
	if width <= 0 {
		return ""
	}

	var b strings.Builder
	used := 0
	for _, span := range line.Spans {
		text := span.Text
		if remaining := width - used; runewidth.StringWidth(text) > remaining {
			text = runewidth.Truncate(text, remaining, "")
		}
		if text == "" {
			continue
		}
		used += runewidth.StringWidth(text)
		b.WriteString(pr.spanStyle(span).Render(text))
	}

	if used < width {
		pad := lipgloss.NewStyle()
		if line.Selected {
			pad = pr.styles.SelectionBg
		}
		b.WriteString(pad.Render(strings.Repeat(" ", width-used)))
	}
	return b.String()
}

func (pr *PopupRenderer) spanStyle(span Span) lipgloss.Style {
	var style lipgloss.Style
	switch span.Kind {
	case KindLabel:
		style = pr.styles.Label
	case KindHash:
		style = pr.styles.Hash
	default:
		style = pr.styles.Value
	}
	if span.Selected {
		style = style.Inherit(pr.styles.SelectionBg).Bold(true)
	}
	return style
}

// scrollbar returns one cell per visible row
func (pr *PopupRenderer) scrollbar(count int, thumbPos float64, height int) []string {
	cells := make([]string, height)
	if count <= height {
		for i := range cells {
			cells[i] = " "
		}
		return cells
	}

	thumb := scroll.ThumbRow(thumbPos, height)
	for i := range cells {
		if i == thumb {
			cells[i] = pr.styles.ScrollThumb.Render("█")
		} else {
			cells[i] = pr.styles.ScrollTrack.Render("│")
		}
	}
	return cells
}

// RenderOverlay draws popup at area on top of a dimmed copy of mainContent
func (pr *PopupRenderer) RenderOverlay(mainContent, popup string, area Rect, width, height int) string {
	base := strings.Split(ansi.Strip(mainContent), "\n")
	popupLines := strings.Split(popup, "\n")

	out := make([]string, height)
	for y := 0; y < height; y++ {
		var plain string
		if y < len(base) {
			plain = base[y]
		}
		plain = runewidth.FillRight(runewidth.Truncate(plain, width, ""), width)

		py := y - area.Y
		if py < 0 || py >= len(popupLines) {
			out[y] = pr.styles.Dim.Render(plain)
			continue
		}

		left := runewidth.FillRight(runewidth.Truncate(plain, area.X, ""), area.X)
		right := skipColumns(plain, area.X+area.W)
		out[y] = pr.styles.Dim.Render(left) + popupLines[py] + pr.styles.Dim.Render(right)
	}
	return strings.Join(out, "\n")
}

// skipColumns drops the first n display columns of s
func skipColumns(s string, n int) string {
	col := 0
	for i, r := range s {
		if col >= n {
			return strings.Repeat(" ", col-n) + s[i:]
		}
		col += runewidth.RuneWidth(r)
	}
	if col > n {
		return strings.Repeat(" ", col-n)
	}
	return ""
}
