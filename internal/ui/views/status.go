package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"subgrip/internal/domain"
)

// statusOrder is the order statuses appear in the summary line
var statusOrder = []domain.SubmoduleStatus{
	domain.StatusInSync,
	domain.StatusModified,
	domain.StatusUninitialized,
	domain.StatusMergeConflict,
	domain.StatusUnknown,
}

// StatusRenderer handles rendering of submodule status markers
type StatusRenderer struct {
	styles *Styles
}

// NewStatusRenderer creates a new status renderer
func NewStatusRenderer(styles *Styles) *StatusRenderer {
	return &StatusRenderer{styles: styles}
}

// StatusIcon returns the marker for a submodule status
func StatusIcon(status domain.SubmoduleStatus) string {
	switch status {
	case domain.StatusInSync:
		return "✓"
	case domain.StatusModified:
		return "●"
	case domain.StatusUninitialized:
		return "○"
	case domain.StatusMergeConflict:
		return "✗"
	default:
		return "?"
	}
}

func (r *StatusRenderer) statusStyle(status domain.SubmoduleStatus) lipgloss.Style {
	switch status {
	case domain.StatusInSync:
		return r.styles.StatusSuccess
	case domain.StatusModified, domain.StatusUninitialized:
		return r.styles.StatusWarning
	case domain.StatusMergeConflict:
		return r.styles.StatusError
	default:
		return r.styles.Dim
	}
}

// RenderIcon renders the styled marker for a submodule status
func (r *StatusRenderer) RenderIcon(status domain.SubmoduleStatus) string {
	return r.statusStyle(status).Render(StatusIcon(status))
}

// RenderSummary renders the per-status counts of records, e.g. "✓ 3 InSync  ● 1 Modified"
func (r *StatusRenderer) RenderSummary(records []domain.Submodule) string {
	counts := make(map[domain.SubmoduleStatus]int)
	for _, rec := range records {
		counts[rec.Status]++
	}

	var parts []string
	for _, status := range statusOrder {
		n := counts[status]
		if n == 0 {
			continue
		}
		parts = append(parts, r.statusStyle(status).Render(fmt.Sprintf("%s %d %s", StatusIcon(status), n, status)))
	}
	return strings.Join(parts, "  ")
}
