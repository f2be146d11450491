package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"subgrip/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	RepoPath      string
	Records       []domain.Submodule
	Loaded        bool
	Loading       bool
	Spinner       string
	StatusMessage string
	StatusIsError bool
	HelpView      string
	Popup         string // rendered popup frame, "" when hidden
	PopupArea     Rect
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	statusRender *StatusRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		statusRender: NewStatusRenderer(styles),
		popupRender:  NewPopupRenderer(styles),
	}
}

// Styles returns the style set shared by all renderers
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Popup returns the popup renderer
func (r *Renderer) Popup() *PopupRenderer {
	return r.popupRender
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}

	logo := r.styles.Title.Render("subgrip")
	titleLine := logo
	if state.Loading {
		indicator := r.styles.StatusLoading.Render(strings.TrimSpace(state.Spinner + " Loading submodules"))
		// Account for main container padding
		padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator)
		if padding < 2 {
			padding = 2
		}
		titleLine = logo + strings.Repeat(" ", padding) + indicator
	}
	content.WriteString(titleLine)
	content.WriteString("\n\n")

	if state.RepoPath != "" {
		content.WriteString(r.styles.Label.Render("Repository: "))
		content.WriteString(state.RepoPath)
		content.WriteString("\n")
	}

	switch {
	case !state.Loaded:
		content.WriteString(r.styles.Dim.Render("Press S to view submodules"))
	case len(state.Records) == 0:
		content.WriteString(r.styles.Dim.Render("No submodules found"))
	default:
		noun := "submodules"
		if len(state.Records) == 1 {
			noun = "submodule"
		}
		content.WriteString(r.styles.SubmoduleCount.Render(fmt.Sprintf("%d %s", len(state.Records), noun)))
		content.WriteString("\n")
		content.WriteString(r.statusRender.RenderSummary(state.Records))
	}

	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		content.WriteString("\n\n")
		content.WriteString(style.Render(state.StatusMessage))
	}

	helpText := r.styles.Help.Render(state.HelpView)
	if helpText != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		helpLines := lipgloss.Height(helpText)

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}

		if paddingNeeded := availableLines - currentLines - helpLines; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(helpText)
	}

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	finalContent := mainStyle.Render(content.String())

	if state.Popup != "" {
		return r.popupRender.RenderOverlay(finalContent, state.Popup, state.PopupArea, state.Width, state.Height)
	}
	return finalContent
}
