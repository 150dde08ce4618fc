package config

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and the user config default
// should be kept.
type Overrides struct {
	// CopyOnSelect enables copy-on-select regardless of the config file.
	CopyOnSelect bool

	// SingleLineCopy collapses copied text to one line.
	SingleLineCopy bool

	// ReadOnly blocks input delivery to the child application.
	ReadOnly bool

	// Shell overrides the spawned shell.
	Shell string

	// ScrollbackLines overrides the scrollback buffer size (0 keeps the
	// config value).
	ScrollbackLines int

	// MultiClickIntervalMs overrides the multi-click window (0 keeps the
	// config value).
	MultiClickIntervalMs int
}

// ApplyOverrides applies CLI flag overrides on top of the user config.
func ApplyOverrides(overrides Overrides, cfg *UserConfig) {
	if cfg == nil {
		return
	}
	if overrides.CopyOnSelect {
		cfg.Interaction.CopyOnSelect = true
	}
	if overrides.SingleLineCopy {
		cfg.Interaction.SingleLineCopy = true
	}
	if overrides.ReadOnly {
		cfg.Terminal.ReadOnly = true
	}
	if overrides.Shell != "" {
		cfg.Terminal.PreferredShell = overrides.Shell
	}
	if overrides.ScrollbackLines > 0 {
		cfg.Terminal.ScrollbackLines = overrides.ScrollbackLines
	}
	if overrides.MultiClickIntervalMs > 0 {
		cfg.Interaction.MultiClickIntervalMs = overrides.MultiClickIntervalMs
	}
	cfg.normalize()
}
