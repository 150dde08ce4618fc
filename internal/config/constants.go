// Package config provides configuration constants, user settings, and CLI
// override handling.
package config

import "time"

// =============================================================================
// Pointer Interaction
// =============================================================================

const (
	// DefaultMultiClickInterval is the multi-click window used when the
	// platform double-click interval cannot be queried.
	DefaultMultiClickInterval = 500 * time.Millisecond

	// ClickPositionEpsilon is the maximum distance in device-independent
	// units two clicks may be apart and still count as the same position
	// for multi-click accumulation. Cell-granular hosts quantize positions
	// anyway, so the value only matters for pixel-level input sources.
	ClickPositionEpsilon = 4.0

	// MaxClickCycle bounds the multi-click counter to a repeating
	// 1,2,3,1,2,3,... cycle for char/word/line selection semantics.
	MaxClickCycle = 3

	// DefaultWheelScrollRows is the viewport scroll distance of one wheel
	// notch when the platform scroll-lines setting is unavailable.
	DefaultWheelScrollRows = 3
)

// =============================================================================
// Display Metrics Defaults
// =============================================================================

const (
	// DefaultCellWidth is the assumed font cell width in device pixels when
	// the host has not measured one.
	DefaultCellWidth = 10.0

	// DefaultCellHeight is the assumed font cell height in device pixels.
	DefaultCellHeight = 20.0

	// DefaultRendererScale is the render scale used before the host reports
	// a real DPI scale factor.
	DefaultRendererScale = 1.0
)

// =============================================================================
// Terminal Defaults
// =============================================================================

const (
	// DefaultScrollbackLines is the number of lines kept in the demo
	// terminal's scrollback buffer.
	DefaultScrollbackLines = 10000

	// MinTerminalWidth is the smallest usable terminal width.
	MinTerminalWidth = 10

	// MinTerminalHeight is the smallest usable terminal height.
	MinTerminalHeight = 3

	// NotificationDuration is how long status notifications stay visible.
	NotificationDuration = 1500 * time.Millisecond

	// NormalFPS is the demo host's refresh rate.
	NormalFPS = 60
)
