// Package interaction converts normalized pointer samples into terminal
// semantic actions: text selection, clipboard copy triggers, hyperlink
// activation, VT application mouse-mode forwarding, and touch-driven
// viewport scrolling.
//
// The package owns only small stateful protocols (multi-click counting,
// drag thresholds, pan anchors). Everything that touches the terminal
// buffer goes through the Core capability surface; nothing here blocks or
// performs I/O.
package interaction

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/dodorz/interactty/internal/config"
	"github.com/dodorz/interactty/internal/pointer"
)

// CopyFormat selects the clipboard representation for a copy request.
type CopyFormat uint8

const (
	// CopyFormatAuto defers the format choice to the terminal's setting.
	CopyFormatAuto CopyFormat = iota
	// CopyFormatText forces plain text.
	CopyFormatText
)

// Core is the terminal capability surface consumed by the interactivity
// layer. Implementations are expected to be cheap, non-blocking, and safe
// to call from the single event-delivery goroutine.
type Core interface {
	// HasSelection reports whether a selection is active.
	HasSelection() bool
	// CopyOnSelect reports whether the profile copies on selection release.
	CopyOnSelect() bool
	// IsInReadOnlyMode reports whether input delivery is blocked.
	IsInReadOnlyMode() bool
	// IsVtMouseModeEnabled reports whether the application requested mouse
	// tracking (DECSET 9/1000-1003).
	IsVtMouseModeEnabled() bool

	// GetHyperlink returns the hyperlink target under the cell, or "".
	GetHyperlink(cell uv.Position) string

	// FontCellSize returns the font cell dimensions in device pixels.
	FontCellSize() (width, height float64)
	// RendererScale returns the renderer's DPI scale factor.
	RendererScale() float64

	// ScrollOffset returns the index of the first visible row in the
	// terminal's combined history; the maximum offset is the live bottom.
	ScrollOffset() float64
	// UserScrollViewport scrolls the viewport to the given offset.
	UserScrollViewport(offset float64)

	// UpdateHoveredCell advises the terminal of the hovered cell so it can
	// restyle hyperlinks or tooltips. Purely advisory.
	UpdateHoveredCell(cell uv.Position)

	// LeftClickOnTerminal performs click-based selection: clickCount 1/2/3
	// selects char/word/line, alt toggles box selection, shift extends.
	// onOriginalPosition marks a click at the same spot as the prior
	// no-selection click. copyPending is shared pending-copy state the
	// terminal may set when the click itself created a selection.
	LeftClickOnTerminal(cell uv.Position, clickCount int, alt, shift, onOriginalPosition bool, copyPending *bool)
	// SetSelectionAnchor starts a drag selection at the cell.
	SetSelectionAnchor(cell uv.Position)
	// SetEndSelectionPoint extends the selection's end to the cell.
	SetEndSelectionPoint(cell uv.Position)

	// CopySelectionToClipboard copies the selection, optionally collapsed
	// to one line. Returns false when there is nothing to copy so callers
	// can leave the originating input event unhandled.
	CopySelectionToClipboard(singleLine bool, format CopyFormat) bool
	// PasteText delivers pasted text to the application.
	PasteText(text string)

	// SendMouseEvent encodes and forwards the event to the application's
	// mouse-tracking protocol. Returns false when no tracking mode accepts
	// the event.
	SendMouseEvent(cell uv.Position, transition pointer.Transition, mod uv.KeyMod, wheelDelta int, held pointer.Buttons) bool
}

// Metrics is a read-only snapshot of display measurements used for
// threshold math. Hosts refresh it on font or DPI changes so threshold
// computations stay reproducible instead of querying the core per event.
type Metrics struct {
	CellWidth  float64 // device pixels
	CellHeight float64
	Scale      float64
}

// DefaultMetrics returns the metrics used before a host reports real ones.
func DefaultMetrics() Metrics {
	return Metrics{
		CellWidth:  config.DefaultCellWidth,
		CellHeight: config.DefaultCellHeight,
		Scale:      config.DefaultRendererScale,
	}
}

// CellSizeDIP returns the cell size in device-independent units.
func (m Metrics) CellSizeDIP() (width, height float64) {
	scale := m.Scale
	if scale <= 0 {
		scale = config.DefaultRendererScale
	}
	w, h := m.CellWidth, m.CellHeight
	if w <= 0 {
		w = config.DefaultCellWidth
	}
	if h <= 0 {
		h = config.DefaultCellHeight
	}
	return w / scale, h / scale
}
