package scroll

import (
	"errors"
	"fmt"
	"math"
)

// MaxRows is the largest row or column count a terminal cell grid can report
const MaxRows = math.MaxUint16

// ErrRowsOverflow is returned when a measured dimension does not fit the cell domain
var ErrRowsOverflow = errors.New("row count out of range")

// Rows validates a measured row or column count
func Rows(n int) (int, error) {
	if n < 0 || n > MaxRows {
		return 0, fmt.Errorf("%w: %d", ErrRowsOverflow, n)
	}
	return n, nil
}

// VerticalScroll keeps a selection inside a window of visible rows.
// Only the top offset is stored; everything else is passed in on each update.
type VerticalScroll struct {
	top int
}

// New creates a scroller positioned at the top
func New() *VerticalScroll {
	return &VerticalScroll{}
}

// Top returns the first visible index
func (v *VerticalScroll) Top() int {
	return v.top
}

// Update moves the window as little as possible so that selection is visible
// and returns the new top offset.
func (v *VerticalScroll) Update(selection, count, height int) int {
	v.top = Calculate(selection, count, height, v.top)
	return v.top
}

// ThumbPosition returns the scrollbar thumb position in [0, 1]
func (v *VerticalScroll) ThumbPosition(count, height int) float64 {
	return Thumb(v.top, count, height)
}

// Calculate is the pure form of Update
func Calculate(selection, count, height, top int) int {
	if count <= 0 || height <= 0 {
		return 0
	}

	if selection < top {
		top = selection
	} else if selection-top >= height {
		top = selection - height + 1
	}

	maxTop := count - height
	if maxTop < 0 {
		maxTop = 0
	}
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top
}

// Thumb returns top / max(1, count-height), clamped to [0, 1]
func Thumb(top, count, height int) float64 {
	span := count - height
	if span < 1 {
		span = 1
	}
	pos := float64(top) / float64(span)
	if pos < 0 {
		return 0
	}
	if pos > 1 {
		return 1
	}
	return pos
}

// ThumbRow maps a thumb position onto a track of the given length
func ThumbRow(pos float64, track int) int {
	if track <= 1 {
		return 0
	}
	row := int(math.Round(pos * float64(track-1)))
	if row < 0 {
		return 0
	}
	if row > track-1 {
		return track - 1
	}
	return row
}
