// Package interactty provides an embeddable terminal host with
// desktop-grade pointer interactions: multi-click word and line selection,
// drag selection with clipboard integration, VT mouse-mode passthrough for
// TUI programs, touch panning through scrollback, and ctrl+click hyperlink
// activation.
//
// # Basic Usage
//
// Create a model with default options and run it:
//
//	model := interactty.New()
//	p := tea.NewProgram(model, interactty.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to customize behavior:
//
//	model := interactty.New(
//		interactty.WithCopyOnSelect(true),
//		interactty.WithShell("/usr/bin/fish"),
//		interactty.WithScrollbackLines(50000),
//	)
package interactty

import (
	tea "charm.land/bubbletea/v2"
	"github.com/dodorz/interactty/internal/app"
	"github.com/dodorz/interactty/internal/config"
)

// Model is the main interactty model that implements tea.Model.
// It wraps the internal App struct and provides a clean public API.
type Model = app.App

// Options configures an interactty instance.
type Options struct {
	// CopyOnSelect copies the selection to the clipboard as soon as the
	// mouse is released.
	CopyOnSelect bool

	// SingleLineCopy collapses multi-row copies into a single line.
	SingleLineCopy bool

	// ReadOnly blocks keyboard and paste input to the hosted shell.
	ReadOnly bool

	// Shell is the shell to host. Leave empty to use the config file
	// value or $SHELL.
	Shell string

	// ScrollbackLines is the number of lines kept in scrollback.
	// Default is 10000.
	ScrollbackLines int

	// MultiClickIntervalMs is the window within which successive clicks
	// accumulate into double and triple clicks. Default is 500.
	MultiClickIntervalMs int

	// WheelScrollRows is the number of rows scrolled per wheel notch.
	// Default is 3.
	WheelScrollRows int

	// UserConfig is a custom user configuration. If nil, the config file
	// is loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring interactty.
type Option func(*Options)

// WithCopyOnSelect enables copying the selection on mouse release.
func WithCopyOnSelect(enabled bool) Option {
	return func(o *Options) {
		o.CopyOnSelect = enabled
	}
}

// WithSingleLineCopy collapses multi-row copies into one line.
func WithSingleLineCopy(enabled bool) Option {
	return func(o *Options) {
		o.SingleLineCopy = enabled
	}
}

// WithReadOnly blocks input delivery to the hosted shell.
func WithReadOnly(enabled bool) Option {
	return func(o *Options) {
		o.ReadOnly = enabled
	}
}

// WithShell sets the shell to host.
func WithShell(shell string) Option {
	return func(o *Options) {
		o.Shell = shell
	}
}

// WithScrollbackLines sets the scrollback buffer size.
func WithScrollbackLines(lines int) Option {
	return func(o *Options) {
		o.ScrollbackLines = lines
	}
}

// WithMultiClickInterval sets the multi-click window in milliseconds.
func WithMultiClickInterval(ms int) Option {
	return func(o *Options) {
		o.MultiClickIntervalMs = ms
	}
}

// WithWheelScrollRows sets the rows scrolled per wheel notch.
func WithWheelScrollRows(rows int) Option {
	return func(o *Options) {
		o.WheelScrollRows = rows
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// New creates a new interactty model with the given options.
// This is the main entry point for using interactty as a library.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	var userConfig *config.UserConfig
	if options.UserConfig != nil {
		userConfig = options.UserConfig
	} else {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		CopyOnSelect:         options.CopyOnSelect,
		SingleLineCopy:       options.SingleLineCopy,
		ReadOnly:             options.ReadOnly,
		Shell:                options.Shell,
		ScrollbackLines:      options.ScrollbackLines,
		MultiClickIntervalMs: options.MultiClickIntervalMs,
	}, userConfig)
	if options.WheelScrollRows > 0 {
		userConfig.Interaction.WheelScrollRows = options.WheelScrollRows
	}

	return app.New(userConfig)
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// an interactty model:
//
//	model := interactty.New()
//	p := tea.NewProgram(model, interactty.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
	}
}

// Config re-exports config accessors so embedders don't need internal
// imports.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
