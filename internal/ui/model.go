package ui

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"subgrip/internal/config"
	"subgrip/internal/eventbus"
	"subgrip/internal/ui/keys"
	"subgrip/internal/ui/popup"
	"subgrip/internal/ui/services/events"
	"subgrip/internal/ui/views"
)

// statusTTL is how long a status message stays on screen
const statusTTL = 4 * time.Second

// readyMarker is printed once the first frame is drawn when running under the e2e suite
const readyMarker = "__READY__"

// Options holds the collaborators of the UI model
type Options struct {
	Config    *config.Config
	Bus       eventbus.EventBus
	UIBus     events.EventBus
	Provider  popup.Provider
	RepoPath  string
	Clipboard func(string) error
}

// Model represents the UI state
type Model struct {
	ctx      context.Context
	config   *config.Config
	repoPath string

	width  int
	height int
	help   help.Model
	keys   keys.KeyMap

	popup    *popup.SubmodulesPopup
	renderer *views.Renderer

	loaded        bool
	statusMessage string
	statusIsError bool
	statusAt      time.Time
	e2e           bool
}

// NewModel creates a new UI model. It fails when the configured key table
// names an unknown command.
func NewModel(ctx context.Context, opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	km, err := keys.DefaultKeyMap().WithOverrides(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("apply key overrides: %w", err)
	}

	renderer := views.NewRenderer()
	p := popup.New(opts.Provider, popup.Config{
		RepoPath: opts.RepoPath,
		Keys:     &km,
		Layout: views.PopupOptions{
			WidthPercent:  cfg.UISettings.PopupWidthPercent,
			HeightPercent: cfg.UISettings.PopupHeightPercent,
			MinWidth:      cfg.UISettings.MinWidth,
			MinHeight:     cfg.UISettings.MinHeight,
			InfoWidth:     cfg.UISettings.InfoWidth,
			ShowScrollbar: cfg.UISettings.ShowScrollbar,
		},
		Renderer:  renderer.Popup(),
		Bus:       opts.Bus,
		UIBus:     opts.UIBus,
		Clipboard: opts.Clipboard,
		Context:   ctx,
	})

	return &Model{
		ctx:      ctx,
		config:   cfg,
		repoPath: opts.RepoPath,
		help:     help.New(),
		keys:     km,
		popup:    p,
		renderer: renderer,
		e2e:      os.Getenv("SUBGRIP_E2E_TEST") == "1",
	}, nil
}

// Popup returns the submodules popup
func (m *Model) Popup() *popup.SubmodulesPopup {
	return m.popup
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.config.UISettings.OpenOnStart {
		return func() tea.Msg { return openPopupMsg{} }
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case openPopupMsg:
		return m, m.openPopup()

	case popup.RefreshedMsg:
		if err := m.popup.Apply(msg); err != nil {
			return m, m.setError(err)
		}
		m.loaded = true
		return m, m.setStatus(fmt.Sprintf("Loaded %d submodules", len(msg.Records)))

	case popup.CopiedMsg:
		if msg.Err != nil {
			return m, m.setError(fmt.Errorf("copy to clipboard: %w", msg.Err))
		}
		return m, m.setStatus("Copied " + msg.Path)

	case pagerClosedMsg:
		if msg.err != nil {
			log.Printf("Pager error: %v", msg.err)
			return m, m.setError(msg.err)
		}

	case spinner.TickMsg:
		return m, m.popup.Update(msg)

	case clearStatusMsg:
		if msg.at.Equal(m.statusAt) {
			m.statusMessage = ""
			m.statusIsError = false
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// the exit chord works in every state
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}

	if consumed, cmd := m.popup.HandleKey(msg); consumed {
		return cmd
	}

	command, ok := m.keys.Match(msg)
	if !ok {
		return nil
	}

	switch command {
	case keys.CmdBarToggle:
		m.help.ShowAll = !m.help.ShowAll
	case keys.ViewSubmodules:
		return m.openPopup()
	case keys.Help:
		return showInPager(RenderReference(m.repoPath, m.keys, m.popup.Records()))
	case keys.Quit:
		return tea.Quit
	}
	return nil
}

func (m *Model) openPopup() tea.Cmd {
	if err := m.popup.Open(m.ctx); err != nil {
		return m.setError(err)
	}
	m.loaded = true
	return nil
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMessage = text
	m.statusIsError = false
	return m.scheduleClear()
}

func (m *Model) setError(err error) tea.Cmd {
	log.Printf("Error: %v", err)
	m.statusMessage = "Error: " + err.Error()
	m.statusIsError = true
	return m.scheduleClear()
}

func (m *Model) scheduleClear() tea.Cmd {
	at := time.Now()
	m.statusAt = at
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{at: at}
	})
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	popupView, area := m.popup.View(m.width, m.height)

	var helpKeys help.KeyMap = hostHelp{keys: m.keys}
	if m.popup.IsVisible() {
		helpKeys = m.popup
	}
	helpView := m.help.View(helpKeys)
	if m.e2e {
		helpView += " " + readyMarker
	}

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		RepoPath:      m.repoPath,
		Records:       m.popup.Records(),
		Loaded:        m.loaded,
		Loading:       m.popup.IsRefreshing(),
		Spinner:       m.popup.Spinner(),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		HelpView:      helpView,
		Popup:         popupView,
		PopupArea:     area,
	})
}

// hostHelp is the command bar shown while the popup is closed
type hostHelp struct {
	keys keys.KeyMap
}

func (h hostHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.ViewSubmodules, h.keys.Help, h.keys.Quit}
}

func (h hostHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.keys.ViewSubmodules, h.keys.Help},
		{h.keys.CmdBarToggle, h.keys.Quit, h.keys.ForceQuit},
	}
}
