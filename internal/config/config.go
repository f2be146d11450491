package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"subgrip/internal/eventbus"
)

// ErrConfigNotFound is returned by LoadFromPath when the file does not exist
var ErrConfigNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version    int                 `toml:"version"`
	UISettings UISettings          `toml:"ui"`
	Keys       map[string][]string `toml:"keys,omitempty"` // command name -> chords
	Log        LogSettings         `toml:"log"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PopupWidthPercent  int  `toml:"popup_width_percent"`
	PopupHeightPercent int  `toml:"popup_height_percent"`
	MinWidth           int  `toml:"min_width"`
	MinHeight          int  `toml:"min_height"`
	InfoWidth          int  `toml:"info_width"`
	ShowScrollbar      bool `toml:"show_scrollbar"`
	OpenOnStart        bool `toml:"open_on_start"`
}

// LogSettings controls where the log file is written
type LogSettings struct {
	File string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service using the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "subgrip", "config.toml"),
	}
}

// NewConfigServiceForPath creates a config service bound to an explicit file
func NewConfigServiceForPath(path string) ConfigService {
	return &configService{filePath: path}
}

// WithBus attaches an event bus used to announce loads and saves
func WithBus(cs ConfigService, bus eventbus.EventBus) ConfigService {
	if impl, ok := cs.(*configService); ok {
		impl.bus = bus
	}
	return cs
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults if the file is missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrConfigNotFound) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// Values missing from the file keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Keys == nil {
		cfg.Keys = make(map[string][]string)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// normalize replaces out-of-range values with their defaults
func (c *Config) normalize() {
	d := DefaultConfig().UISettings
	if c.UISettings.PopupWidthPercent <= 0 || c.UISettings.PopupWidthPercent > 100 {
		c.UISettings.PopupWidthPercent = d.PopupWidthPercent
	}
	if c.UISettings.PopupHeightPercent <= 0 || c.UISettings.PopupHeightPercent > 100 {
		c.UISettings.PopupHeightPercent = d.PopupHeightPercent
	}
	if c.UISettings.MinWidth < 0 {
		c.UISettings.MinWidth = d.MinWidth
	}
	if c.UISettings.MinHeight < 0 {
		c.UISettings.MinHeight = d.MinHeight
	}
	if c.UISettings.InfoWidth <= 0 {
		c.UISettings.InfoWidth = d.InfoWidth
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		UISettings: UISettings{
			PopupWidthPercent:  80,
			PopupHeightPercent: 80,
			MinWidth:           60,
			MinHeight:          30,
			InfoWidth:          40,
			ShowScrollbar:      true,
			OpenOnStart:        false,
		},
		Keys: make(map[string][]string),
		Log: LogSettings{
			File: "subgrip.log",
		},
	}
}
