package popup

import (
	"context"
	"fmt"
	"log"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"subgrip/internal/domain"
	"subgrip/internal/eventbus"
	"subgrip/internal/ui/keys"
	"subgrip/internal/ui/scroll"
	"subgrip/internal/ui/services/events"
	"subgrip/internal/ui/services/navigation"
	"subgrip/internal/ui/services/selection"
	"subgrip/internal/ui/views"
)

// Title is drawn in the popup's top border
const Title = "Submodules"

// Provider supplies the submodule list of a repository
type Provider interface {
	ListSubmodules(ctx context.Context) ([]domain.Submodule, error)
}

// RefreshedMsg carries the result of an offloaded refresh
type RefreshedMsg struct {
	Records []domain.Submodule
	Err     error
}

// CopiedMsg reports the result of the copy command
type CopiedMsg struct {
	Path string
	Err  error
}

// Config holds the optional collaborators of a popup; zero values get defaults
type Config struct {
	RepoPath  string
	Keys      *keys.KeyMap
	Layout    views.PopupOptions
	Renderer  *views.PopupRenderer
	Bus       eventbus.EventBus // domain events
	UIBus     events.EventBus   // selection and cursor events
	Clipboard func(string) error
	Context   context.Context // used by commands started from key presses
}

// SubmodulesPopup is the modal submodule list with its detail pane.
// All methods must be called from the goroutine that owns the popup.
type SubmodulesPopup struct {
	provider   Provider
	repoPath   string
	visible    bool
	refreshing bool

	selection  *selection.Service
	navigation *navigation.Service
	scroll     *scroll.VerticalScroll
	// list pane height measured by the last render, 0 before the first one
	height int

	keys      keys.KeyMap
	layout    views.PopupOptions
	renderer  *views.PopupRenderer
	spinner   spinner.Model
	bus       eventbus.EventBus
	clipboard func(string) error
	ctx       context.Context
}

// New creates a hidden popup
func New(provider Provider, cfg Config) *SubmodulesPopup {
	km := keys.DefaultKeyMap()
	if cfg.Keys != nil {
		km = *cfg.Keys
	}
	if cfg.Layout == (views.PopupOptions{}) {
		cfg.Layout = DefaultLayout()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = views.NewPopupRenderer(views.NewStyles())
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.WriteAll
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	sel := selection.NewService(cfg.UIBus)
	return &SubmodulesPopup{
		provider:   provider,
		repoPath:   cfg.RepoPath,
		selection:  sel,
		navigation: navigation.NewService(sel, cfg.UIBus),
		scroll:     scroll.New(),
		keys:       km,
		layout:     cfg.Layout,
		renderer:   cfg.Renderer,
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		bus:        cfg.Bus,
		clipboard:  cfg.Clipboard,
		ctx:        cfg.Context,
	}
}

// DefaultLayout is the 80%x80% popup with a 60x30 minimum
func DefaultLayout() views.PopupOptions {
	return views.PopupOptions{
		WidthPercent:  80,
		HeightPercent: 80,
		MinWidth:      60,
		MinHeight:     30,
		InfoWidth:     40,
		ShowScrollbar: true,
	}
}

// IsVisible reports whether the popup is open
func (p *SubmodulesPopup) IsVisible() bool {
	return p.visible
}

// IsRefreshing reports whether an offloaded refresh is in flight
func (p *SubmodulesPopup) IsRefreshing() bool {
	return p.refreshing
}

// Spinner returns the current refresh indicator frame
func (p *SubmodulesPopup) Spinner() string {
	return p.spinner.View()
}

// Records returns the cached submodule list
func (p *SubmodulesPopup) Records() []domain.Submodule {
	return p.selection.Records()
}

// Selected returns the selected submodule, false if the list is empty
func (p *SubmodulesPopup) Selected() (domain.Submodule, bool) {
	return p.selection.Selected()
}

// Index returns the selected index
func (p *SubmodulesPopup) Index() int {
	return p.selection.Index()
}

// Top returns the first visible row of the list pane
func (p *SubmodulesPopup) Top() int {
	return p.scroll.Top()
}

// Height returns the list pane height measured by the last render
func (p *SubmodulesPopup) Height() int {
	return p.height
}

// Open shows the popup and synchronously refreshes it.
// On failure the popup goes back to hidden and the cached records are kept.
func (p *SubmodulesPopup) Open(ctx context.Context) error {
	wasVisible := p.visible
	p.visible = true

	if err := p.Refresh(ctx); err != nil {
		p.visible = wasVisible
		return err
	}

	if !wasVisible {
		log.Printf("Submodules popup opened for %s", p.repoPath)
		p.publish(eventbus.PopupOpenedEvent{})
	}
	return nil
}

// Close hides the popup; cached records survive for a fast reopen
func (p *SubmodulesPopup) Close() {
	if !p.visible {
		return
	}
	p.visible = false
	log.Printf("Submodules popup closed")
	p.publish(eventbus.PopupClosedEvent{})
}

// Refresh synchronously replaces the records. Hidden popups ignore it.
func (p *SubmodulesPopup) Refresh(ctx context.Context) error {
	if !p.visible {
		return nil
	}

	records, err := p.provider.ListSubmodules(ctx)
	return p.Apply(RefreshedMsg{Records: records, Err: err})
}

// RefreshCmd runs the provider inside a command; the result comes back as a
// RefreshedMsg to be passed to Apply. Hidden popups return nil.
func (p *SubmodulesPopup) RefreshCmd(ctx context.Context) tea.Cmd {
	if !p.visible {
		return nil
	}

	p.refreshing = true
	provider := p.provider
	load := func() tea.Msg {
		records, err := provider.ListSubmodules(ctx)
		return RefreshedMsg{Records: records, Err: err}
	}
	return tea.Batch(load, p.spinner.Tick)
}

// Apply installs a refresh result. Records are replaced wholesale on success
// and left untouched on failure. Results arriving while hidden are applied too.
func (p *SubmodulesPopup) Apply(msg RefreshedMsg) error {
	p.refreshing = false

	if msg.Err != nil {
		log.Printf("Error listing submodules of %s: %v", p.repoPath, msg.Err)
		p.publish(eventbus.RefreshFailedEvent{RepoPath: p.repoPath, Err: msg.Err})
		return fmt.Errorf("refresh submodules: %w", msg.Err)
	}

	p.selection.Refresh(msg.Records)
	p.scroll.Update(p.selection.Index(), p.selection.Len(), p.height)

	log.Printf("Loaded %d submodules of %s", len(msg.Records), p.repoPath)
	p.publish(eventbus.SubmodulesLoadedEvent{RepoPath: p.repoPath, Count: len(msg.Records)})
	return nil
}

// Update advances the refresh spinner
func (p *SubmodulesPopup) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok || !p.refreshing {
		return nil
	}
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return cmd
}

// HandleNavigation moves the selection using the last measured height as page size
func (p *SubmodulesPopup) HandleNavigation(direction navigation.Direction) bool {
	if !p.visible {
		return false
	}

	handled := p.navigation.Navigate(direction, p.height)
	p.scroll.Update(p.selection.Index(), p.selection.Len(), p.height)
	return handled
}

// HandleKey translates a key press. While visible every key is consumed
// except the command bar toggle; hidden popups consume nothing.
func (p *SubmodulesPopup) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !p.visible {
		return false, nil
	}

	command, ok := p.keys.Match(msg)
	if !ok {
		return true, nil
	}

	switch command {
	case keys.CmdBarToggle:
		return false, nil
	case keys.ExitPopup:
		p.Close()
	case keys.MoveUp:
		p.HandleNavigation(navigation.DirectionUp)
	case keys.MoveDown:
		p.HandleNavigation(navigation.DirectionDown)
	case keys.PageUp:
		p.HandleNavigation(navigation.DirectionPageUp)
	case keys.PageDown:
		p.HandleNavigation(navigation.DirectionPageDown)
	case keys.Home:
		p.HandleNavigation(navigation.DirectionHome)
	case keys.End:
		p.HandleNavigation(navigation.DirectionEnd)
	case keys.Refresh:
		return true, p.RefreshCmd(p.ctx)
	case keys.Copy:
		return true, p.copySelected()
	}
	return true, nil
}

func (p *SubmodulesPopup) copySelected() tea.Cmd {
	rec, ok := p.selection.Selected()
	if !ok {
		return nil
	}

	write := p.clipboard
	return func() tea.Msg {
		err := write(rec.Path)
		if err != nil {
			log.Printf("Error copying %s to clipboard: %v", rec.Path, err)
		}
		return CopiedMsg{Path: rec.Path, Err: err}
	}
}

// Measure computes the popup geometry for the screen and records the list
// pane height used for paging.
func (p *SubmodulesPopup) Measure(screenW, screenH int) (views.PopupLayout, error) {
	layout := views.ComputePopupLayout(screenW, screenH, p.layout)

	height, err := scroll.Rows(layout.Height)
	if err != nil {
		return layout, fmt.Errorf("measure list height: %w", err)
	}
	if _, err := scroll.Rows(layout.Area.W); err != nil {
		return layout, fmt.Errorf("measure popup width: %w", err)
	}

	p.height = height
	p.scroll.Update(p.selection.Index(), p.selection.Len(), p.height)
	return layout, nil
}

// View renders the popup for the given screen size. It returns "" when hidden
// or when the screen cannot hold the popup.
func (p *SubmodulesPopup) View(screenW, screenH int) (string, views.Rect) {
	if !p.visible {
		return "", views.Rect{}
	}

	layout, err := p.Measure(screenW, screenH)
	if err != nil {
		log.Printf("Error rendering submodules popup: %v", err)
		return "", views.Rect{}
	}

	records := p.selection.Records()
	index := p.selection.Index()
	top := p.scroll.Top()

	content := views.PopupContent{
		Title:  Title,
		List:   views.ListLines(records, index, top, layout.ListWidth, layout.Height),
		Detail: views.DetailLines(p.selection.Selected()),
		Count:  len(records),
		Thumb:  p.scroll.ThumbPosition(len(records), layout.Height),
	}
	if p.refreshing {
		content.Indicator = p.spinner.View()
	}

	return p.renderer.Render(layout, content), layout.Area
}

// ShortHelp returns the command bar entries shown while the popup is open
func (p *SubmodulesPopup) ShortHelp() []key.Binding {
	return []key.Binding{p.scrollBinding(), p.closeBinding()}
}

// FullHelp returns every popup command grouped in columns
func (p *SubmodulesPopup) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{p.keys.MoveUp, p.keys.MoveDown, p.keys.PageUp, p.keys.PageDown},
		{p.keys.Home, p.keys.End},
		{p.keys.Refresh, p.keys.Copy, p.closeBinding()},
	}
}

func (p *SubmodulesPopup) scrollBinding() key.Binding {
	up, down := p.keys.MoveUp, p.keys.MoveDown
	b := key.NewBinding(
		key.WithKeys(append(append([]string{}, up.Keys()...), down.Keys()...)...),
		key.WithHelp("↑↓", "Scroll"),
	)
	b.SetEnabled(up.Enabled() || down.Enabled())
	return b
}

func (p *SubmodulesPopup) closeBinding() key.Binding {
	b := p.keys.ExitPopup
	b.SetHelp(b.Help().Key, "Close")
	return b
}

func (p *SubmodulesPopup) publish(event eventbus.DomainEvent) {
	if p.bus != nil {
		p.bus.Publish(event)
	}
}
