package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"subgrip/internal/config"
	"subgrip/internal/eventbus"
	"subgrip/internal/git"
	"subgrip/internal/ui"
	"subgrip/internal/ui/services/events"
	"subgrip/internal/ui/services/navigation"
	"subgrip/internal/ui/services/selection"
)

// App holds the values of the persistent flags
type App struct {
	Dir        string
	ConfigPath string
	LogFile    string
}

// NewRootCmd builds the subgrip command tree
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "subgrip [dir]",
		Short:        "Browse the submodules of a git repository",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Browse the submodules of the current repository
  subgrip

  # Print the submodule list without the TUI
  subgrip list ~/src/project
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&app.Dir, "dir", "d", "", "Repository directory (default: current directory)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("SUBGRIP_CONFIG", ""), "Path to config file")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Path to log file (overrides the config)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newKeysCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// repoDir resolves the directory from --dir, the first argument or the working directory
func (app *App) repoDir(args []string) (string, error) {
	dir := app.Dir
	if dir == "" && len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get current directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return abs, nil
}

func (app *App) configService(bus eventbus.EventBus) config.ConfigService {
	var svc config.ConfigService
	if app.ConfigPath != "" {
		svc = config.NewConfigServiceForPath(app.ConfigPath)
	} else {
		svc = config.NewConfigService()
	}
	if bus != nil {
		svc = config.WithBus(svc, bus)
	}
	return svc
}

// loadConfig loads the config; an explicit --config must exist
func (app *App) loadConfig(bus eventbus.EventBus) (*config.Config, error) {
	svc := app.configService(bus)
	if app.ConfigPath != "" {
		if _, err := os.Stat(app.ConfigPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, app.ConfigPath)
		}
	}

	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", svc.Path(), err)
	}
	return cfg, nil
}

// setupLogging redirects the standard logger to the log file.
// The returned closer is never nil.
func (app *App) setupLogging(cfg *config.Config) io.Closer {
	path := app.LogFile
	if path == "" {
		path = cfg.Log.File
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// never write to the terminal the TUI is drawing on
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}
	log.SetOutput(logFile)
	return logFile
}

// logEvents writes every domain event to the log
func logEvents(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventSubmodulesLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SubmodulesLoadedEvent); ok {
			log.Printf("Event: %d submodules loaded from %s", event.Count, event.RepoPath)
		}
	})
	bus.Subscribe(eventbus.EventRefreshFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.RefreshFailedEvent); ok {
			log.Printf("Event: refresh of %s failed: %v", event.RepoPath, event.Err)
		}
	})
	for _, t := range []eventbus.EventType{
		eventbus.EventPopupOpened,
		eventbus.EventPopupClosed,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			log.Printf("Event: %s %+v", e.Type(), e)
		})
	}
}

// traceCursor logs selection and cursor movement from the UI services
func traceCursor(bus events.EventBus) {
	bus.Subscribe(events.NameOf(navigation.CursorMovedEvent{}), func(e interface{}) {
		if event, ok := e.(navigation.CursorMovedEvent); ok {
			log.Printf("Cursor: %v %d -> %d", event.Direction, event.OldIndex, event.NewIndex)
		}
	})
	bus.Subscribe(events.NameOf(selection.RecordsReplacedEvent{}), func(e interface{}) {
		if event, ok := e.(selection.RecordsReplacedEvent); ok {
			log.Printf("Selection: %d records, index %d", event.Total, event.Index)
		}
	})
}

// shutdown flushes the domain bus into the log before the log file is closed
func shutdown(bus eventbus.EventBus, logFile io.Closer) {
	bus.Close()
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
	}
}

func runTUI(ctx context.Context, app *App, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dir, err := app.repoDir(args)
	if err != nil {
		return err
	}

	// nothing reaches the terminal until the log file is known
	log.SetOutput(io.Discard)

	bus := eventbus.New()
	logEvents(bus)

	cfg, err := app.loadConfig(bus)
	if err != nil {
		bus.Close()
		return err
	}

	closer := app.setupLogging(cfg)
	defer shutdown(bus, closer)

	log.Printf("Starting subgrip in %s", dir)

	uiBus := events.NewBus()
	traceCursor(uiBus)

	provider := git.NewSubmoduleService(dir)
	model, err := ui.NewModel(ctx, ui.Options{
		Config:   cfg,
		Bus:      bus,
		UIBus:    uiBus,
		Provider: provider,
		RepoPath: provider.RepoPath(),
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("run program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}
