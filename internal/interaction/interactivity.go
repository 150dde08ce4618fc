package interaction

import (
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/dodorz/interactty/internal/config"
	"github.com/dodorz/interactty/internal/pointer"
)

// Options configures an Interactivity coordinator. Zero values fall back to
// defaults, so an unobtainable platform setting never propagates an error.
type Options struct {
	// MultiClickInterval is the multi-click window, usually the platform
	// double-click interval. Zero uses the built-in default.
	MultiClickInterval time.Duration

	// WheelScrollRows is the viewport scroll distance of one wheel notch
	// outside VT mouse mode. Zero uses the platform default of 3.
	WheelScrollRows int

	// SingleLineCopy collapses copy-on-select copies to one line.
	SingleLineCopy bool
}

// Interactivity is the top-level pointer dispatcher. For each normalized
// sample it applies a fixed precedence order - hyperlink activation, then
// VT mouse forwarding, then local selection - and mutates the terminal
// through the Core capability surface.
//
// All samples must be delivered serially from one goroutine; state
// mutations are visible to the very next event with no reordering.
type Interactivity struct {
	core    Core
	metrics Metrics

	clicks        ClickAccumulator
	maxClickCycle int

	wheelRows      int
	singleLineCopy bool

	// Transient per-gesture state. A touchdown and a touch anchor are
	// never live at the same time; each device kind's press clears the
	// other's state.
	touchdown            *touchdown
	touchAnchor          *pointer.Point
	lastNoSelectionClick pointer.Point
	haveNoSelectionClick bool
	copyPending          bool

	// OnOpenHyperlink receives the URI of an activated hyperlink. The host
	// owns navigation; nothing is opened here.
	OnOpenHyperlink func(uri string)

	// OnPasteRequest receives a single-use continuation that accepts the
	// pasted text. The host owns clipboard access and may invoke the
	// continuation asynchronously.
	OnPasteRequest func(deliver func(text string))
}

// New returns a coordinator bound to the given terminal core.
func New(core Core, opts Options) *Interactivity {
	rows := opts.WheelScrollRows
	if rows <= 0 {
		rows = config.DefaultWheelScrollRows
	}
	i := &Interactivity{
		core:           core,
		metrics:        DefaultMetrics(),
		clicks:         NewClickAccumulator(opts.MultiClickInterval),
		maxClickCycle:  config.MaxClickCycle,
		wheelRows:      rows,
		singleLineCopy: opts.SingleLineCopy,
	}
	i.RefreshMetrics()
	return i
}

// RefreshMetrics re-reads the font cell size and renderer scale from the
// core into the coordinator's snapshot. Hosts call this on font or DPI
// changes; threshold math between refreshes uses the snapshot only.
func (i *Interactivity) RefreshMetrics() {
	w, h := i.core.FontCellSize()
	i.metrics = Metrics{CellWidth: w, CellHeight: h, Scale: i.core.RendererScale()}
}

// SetMetrics installs an explicit metrics snapshot. Mainly for hosts that
// measure fonts themselves, and for deterministic tests.
func (i *Interactivity) SetMetrics(m Metrics) { i.metrics = m }

// SetMultiClickInterval updates the multi-click window at runtime.
func (i *Interactivity) SetMultiClickInterval(d time.Duration) { i.clicks.SetWindow(d) }

// CopyPending reports whether a drag has extended the selection and a
// clipboard copy is owed on release.
func (i *Interactivity) CopyPending() bool { return i.copyPending }

// PointerPressed dispatches a press sample.
//
// For mouse and pen devices exactly one of hyperlink activation, VT
// forwarding, or selection handling applies, in that order. Hyperlinks win
// over mouse-mode passthrough so link-following stays discoverable inside
// full-screen mouse-mode applications. Touch presses only start a pan.
func (i *Interactivity) PointerPressed(s pointer.Sample) {
	switch s.Device {
	case pointer.DeviceMouse, pointer.DevicePen:
		i.clearTouchAnchor()

		link := i.core.GetHyperlink(s.Cell)
		switch {
		case s.Transition == pointer.TransitionLeftDown &&
			s.Mod.Contains(uv.ModCtrl) && link != "":
			// Activate only on the first click of a burst so a rapid
			// double Ctrl+click does not open the target twice.
			if i.clicks.RegisterClick(s.Screen, s.Time) == 1 {
				i.openHyperlink(link)
			}
		case i.canSendVTMouseInput(s.Mod):
			i.trySendMouseEvent(s)
		case s.Transition == pointer.TransitionLeftDown:
			i.leftClick(s)
		case s.Transition == pointer.TransitionRightDown:
			i.rightClick(s)
		}
	case pointer.DeviceTouch:
		i.touchdown = nil
		i.touchDown(s)
	}
}

// PointerMoved dispatches a move sample. focused mirrors the host window's
// focus; an unfocused surface neither forwards nor drags but still reports
// the hovered cell.
func (i *Interactivity) PointerMoved(s pointer.Sample, focused bool) {
	switch s.Device {
	case pointer.DeviceMouse, pointer.DevicePen:
		i.clearTouchAnchor()

		if focused && !i.core.IsInReadOnlyMode() && i.canSendVTMouseInput(s.Mod) {
			i.trySendMouseEvent(s)
		} else if focused && s.Held.Contains(pointer.ButtonLeft) {
			i.dragSelection(s)
		}
		i.core.UpdateHoveredCell(s.Cell)
	case pointer.DeviceTouch:
		i.touchdown = nil
		if focused {
			i.touchPan(s)
		}
	}
}

// PointerReleased dispatches a release sample. Transient drag and anchor
// state is always cleared, even mid-gesture or after a forwarded release,
// so an interrupted gesture cannot leak into the next one.
func (i *Interactivity) PointerReleased(s pointer.Sample) {
	switch s.Device {
	case pointer.DeviceMouse, pointer.DevicePen:
		if !i.core.IsInReadOnlyMode() && i.canSendVTMouseInput(s.Mod) {
			i.trySendMouseEvent(s)
		} else {
			i.releaseSelection(s)
		}
	case pointer.DeviceTouch:
		i.clearTouchAnchor()
	}
	i.touchdown = nil
}

// MouseWheel dispatches a vertical wheel sample. Inside VT mouse mode the
// event is forwarded; otherwise it scrolls the viewport by the configured
// rows per notch.
func (i *Interactivity) MouseWheel(s pointer.Sample, focused bool) {
	if s.Device == pointer.DeviceTouch || s.Transition != pointer.TransitionWheel {
		return
	}
	if focused && !i.core.IsInReadOnlyMode() && i.canSendVTMouseInput(s.Mod) {
		i.trySendMouseEvent(s)
		return
	}
	rows := -float64(s.WheelDelta) / pointer.WheelNotch * float64(i.wheelRows)
	i.core.UserScrollViewport(i.core.ScrollOffset() + rows)
}

// CopySelection copies the current selection and clears the pending-copy
// flag. Returns false when there is nothing to copy, letting a plain
// Ctrl+C fall through to the application.
func (i *Interactivity) CopySelection(singleLine bool, format CopyFormat) bool {
	i.copyPending = false
	return i.core.CopySelectionToClipboard(singleLine, format)
}

// PasteFromClipboard raises the paste-requested signal. The continuation
// delivers the clipboard text to the terminal once the host has it; the
// event path never blocks on the clipboard.
func (i *Interactivity) PasteFromClipboard() {
	if i.OnPasteRequest == nil {
		return
	}
	core := i.core
	i.OnPasteRequest(func(text string) {
		core.PasteText(text)
	})
}

func (i *Interactivity) openHyperlink(uri string) {
	if i.OnOpenHyperlink != nil {
		i.OnOpenHyperlink(uri)
	}
}
