package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	StatusError    lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
	StatusWarning  lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	PopupBorder    lipgloss.Style
	PopupTitle     lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	Hash           lipgloss.Style
	SelectionBg    lipgloss.Style
	ScrollTrack    lipgloss.Style
	ScrollThumb    lipgloss.Style
	SubmoduleCount lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:          lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		PopupBorder:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		PopupTitle:     lipgloss.NewStyle().Bold(true),
		Label:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Value:          lipgloss.NewStyle(),
		Hash:           lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		SelectionBg:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		ScrollTrack:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		ScrollThumb:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		SubmoduleCount: lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
	}
}
