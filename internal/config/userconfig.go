package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig represents the user's custom configuration.
type UserConfig struct {
	Interaction InteractionConfig `toml:"interaction"`
	Terminal    TerminalConfig    `toml:"terminal"`
}

// InteractionConfig holds pointer-interaction settings.
type InteractionConfig struct {
	CopyOnSelect         bool `toml:"copy_on_select"`          // Copy the selection to the clipboard on left release
	SingleLineCopy       bool `toml:"single_line_copy"`        // Collapse copied text to one line
	MultiClickIntervalMs int  `toml:"multi_click_interval_ms"` // Multi-click window in milliseconds (default: 500)
	WheelScrollRows      int  `toml:"wheel_scroll_rows"`       // Rows scrolled per wheel notch outside VT mouse mode (default: 3)
}

// TerminalConfig holds demo terminal settings.
type TerminalConfig struct {
	PreferredShell  string `toml:"preferred_shell"`  // Shell to spawn; auto-detected when empty
	ScrollbackLines int    `toml:"scrollback_lines"` // Lines kept in scrollback (default: 10000)
	ReadOnly        bool   `toml:"read_only"`        // Block input delivery to the child application
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Interaction: InteractionConfig{
			CopyOnSelect:         false,
			SingleLineCopy:       false,
			MultiClickIntervalMs: int(DefaultMultiClickInterval.Milliseconds()),
			WheelScrollRows:      DefaultWheelScrollRows,
		},
		Terminal: TerminalConfig{
			PreferredShell:  "",
			ScrollbackLines: DefaultScrollbackLines,
			ReadOnly:        false,
		},
	}
}

// GetConfigPath returns the path to the configuration file.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("interactty", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("could not resolve config path: %w", err)
	}
	return path, nil
}

// LoadUserConfig loads the configuration file, creating a default one on
// first run. Any load or parse failure falls back to defaults.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from xdg
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if saveErr := SaveUserConfig(cfg); saveErr != nil {
			return cfg, saveErr
		}
		return cfg, nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("could not read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("could not parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveUserConfig writes the configuration to the config file.
func SaveUserConfig(cfg *UserConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

// normalize clamps out-of-range values back to usable defaults.
func (c *UserConfig) normalize() {
	if c.Interaction.MultiClickIntervalMs <= 0 {
		c.Interaction.MultiClickIntervalMs = int(DefaultMultiClickInterval.Milliseconds())
	}
	if c.Interaction.WheelScrollRows <= 0 {
		c.Interaction.WheelScrollRows = DefaultWheelScrollRows
	}
	if c.Terminal.ScrollbackLines < 100 {
		c.Terminal.ScrollbackLines = DefaultScrollbackLines
	}
}
