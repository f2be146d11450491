package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"subgrip/internal/domain"
	"subgrip/internal/ui/keys"
)

// pagerClosedMsg is sent when the pager returns control to the TUI
type pagerClosedMsg struct {
	err error
}

// pagerCommand runs ov over a fixed text as a tea.ExecCommand
type pagerCommand struct {
	content string
}

func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return fmt.Errorf("open pager: %w", err)
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// ov drives the terminal itself
func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// showInPager suspends the TUI while content is paged
func showInPager(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return pagerClosedMsg{err: err}
	})
}

// RenderReference renders the plain text shown by the key reference pager
func RenderReference(repoPath string, km keys.KeyMap, records []domain.Submodule) string {
	var b strings.Builder

	b.WriteString("subgrip key reference\n\n")
	b.WriteString(km.Reference())

	if repoPath != "" {
		fmt.Fprintf(&b, "\nSubmodules of %s\n\n", repoPath)
		if len(records) == 0 {
			b.WriteString("  (none loaded)\n")
		}
		for _, rec := range records {
			fmt.Fprintf(&b, "  %-8s %-14s %s\n", rec.ShortID, rec.Status, rec.Path)
		}
	}
	return b.String()
}
