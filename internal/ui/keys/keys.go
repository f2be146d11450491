package keys

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUnknownCommand is returned for a key override naming no known command
var ErrUnknownCommand = errors.New("unknown key command")

// Command is a logical command name used in the config file
type Command string

const (
	MoveUp         Command = "move_up"
	MoveDown       Command = "move_down"
	PageUp         Command = "page_up"
	PageDown       Command = "page_down"
	Home           Command = "home"
	End            Command = "end"
	ExitPopup      Command = "exit_popup"
	CmdBarToggle   Command = "cmd_bar_toggle"
	ViewSubmodules Command = "view_submodules"
	Refresh        Command = "refresh"
	Copy           Command = "copy"
	Help           Command = "help"
	Quit           Command = "quit"
	ForceQuit      Command = "exit"
)

// KeyMap is the static command -> chord table
type KeyMap struct {
	MoveUp         key.Binding
	MoveDown       key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Home           key.Binding
	End            key.Binding
	ExitPopup      key.Binding
	CmdBarToggle   key.Binding
	ViewSubmodules key.Binding
	Refresh        key.Binding
	Copy           key.Binding
	Help           key.Binding
	Quit           key.Binding
	ForceQuit      key.Binding
}

// DefaultKeyMap returns the built-in key table
func DefaultKeyMap() KeyMap {
	return KeyMap{
		MoveUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last"),
		),
		ExitPopup: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		CmdBarToggle: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "more"),
		),
		ViewSubmodules: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "submodules"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "key reference"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
	}
}

// binding returns a pointer to the binding for command c
func (km *KeyMap) binding(c Command) *key.Binding {
	switch c {
	case MoveUp:
		return &km.MoveUp
	case MoveDown:
		return &km.MoveDown
	case PageUp:
		return &km.PageUp
	case PageDown:
		return &km.PageDown
	case Home:
		return &km.Home
	case End:
		return &km.End
	case ExitPopup:
		return &km.ExitPopup
	case CmdBarToggle:
		return &km.CmdBarToggle
	case ViewSubmodules:
		return &km.ViewSubmodules
	case Refresh:
		return &km.Refresh
	case Copy:
		return &km.Copy
	case Help:
		return &km.Help
	case Quit:
		return &km.Quit
	case ForceQuit:
		return &km.ForceQuit
	}
	return nil
}

// Binding returns the binding for command c
func (km KeyMap) Binding(c Command) (key.Binding, bool) {
	b := km.binding(c)
	if b == nil {
		return key.Binding{}, false
	}
	return *b, true
}

// WithOverrides returns a copy of km with the chords of the named commands replaced
func (km KeyMap) WithOverrides(overrides map[string][]string) (KeyMap, error) {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		chords := overrides[name]
		b := km.binding(Command(name))
		if b == nil {
			return km, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
		}
		if len(chords) == 0 {
			b.SetEnabled(false)
			log.Printf("Key command %s disabled by config", name)
			continue
		}
		b.SetKeys(chords...)
		b.SetHelp(strings.Join(chords, "/"), b.Help().Desc)
		log.Printf("Key command %s bound to %v", name, chords)
	}
	return km, nil
}

// Match returns the first command whose binding matches msg.
// Commands are tried in the order of Commands().
func (km KeyMap) Match(msg tea.KeyMsg) (Command, bool) {
	for _, c := range Commands() {
		if key.Matches(msg, *km.binding(c)) {
			return c, true
		}
	}
	return "", false
}

// Reference renders the key table as plain text, one command per line
func (km KeyMap) Reference() string {
	var b strings.Builder
	for _, c := range Commands() {
		binding, _ := km.Binding(c)
		chords := "(disabled)"
		if binding.Enabled() {
			chords = strings.Join(binding.Keys(), ", ")
		}
		fmt.Fprintf(&b, "%-16s %-18s %s\n", c, chords, binding.Help().Desc)
	}
	return b.String()
}

// Commands lists every command in lookup order
func Commands() []Command {
	return []Command{
		ForceQuit,
		ExitPopup,
		MoveUp,
		MoveDown,
		PageUp,
		PageDown,
		Home,
		End,
		CmdBarToggle,
		Refresh,
		Copy,
		ViewSubmodules,
		Help,
		Quit,
	}
}
