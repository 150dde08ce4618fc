package vt

import (
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/dodorz/interactty/internal/pointer"
)

// mouseButtonFor picks the X11-style button for an event. Motion samples
// report the most significant held button, or no button at all for hover
// motion under any-event tracking.
func mouseButtonFor(transition pointer.Transition, held pointer.Buttons, wheelDelta int) uv.MouseButton {
	switch transition {
	case pointer.TransitionLeftDown, pointer.TransitionLeftUp:
		return uv.MouseLeft
	case pointer.TransitionMiddleDown, pointer.TransitionMiddleUp:
		return uv.MouseMiddle
	case pointer.TransitionRightDown, pointer.TransitionRightUp:
		return uv.MouseRight
	case pointer.TransitionWheel:
		if wheelDelta > 0 {
			return uv.MouseWheelUp
		}
		return uv.MouseWheelDown
	}
	switch {
	case held.Contains(pointer.ButtonLeft):
		return uv.MouseLeft
	case held.Contains(pointer.ButtonMiddle):
		return uv.MouseMiddle
	case held.Contains(pointer.ButtonRight):
		return uv.MouseRight
	}
	return uv.MouseNone
}

// IsVtMouseModeEnabled reports whether the application enabled any mouse
// tracking mode, making pointer events eligible for forwarding.
func (t *Term) IsVtMouseModeEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mouseModeLocked() != nil
}

// mouseModeLocked returns the most capable mouse tracking mode the
// application enabled, or nil.
func (t *Term) mouseModeLocked() ansi.Mode {
	var mode ansi.Mode
	for _, m := range []ansi.DECMode{
		ansi.ModeMouseX10,         // Button press
		ansi.ModeMouseNormal,      // Button press/release
		ansi.ModeMouseHighlight,   // Button press/release/hilight
		ansi.ModeMouseButtonEvent, // Button press/release/cell motion
		ansi.ModeMouseAnyEvent,    // Button press/release/all motion
	} {
		if t.isModeSet(m) {
			mode = m
		}
	}
	return mode
}

// SendMouseEvent encodes a pointer event for the application's mouse
// tracking protocol and writes it to the input sink. It returns false when
// no tracking mode is enabled, when the active mode does not report this
// event kind, or when the sink is unavailable.
//
// Encoding uses SGR when the application requested it (mode 1006) and the
// legacy X10 byte encoding otherwise.
func (t *Term) SendMouseEvent(cell uv.Position, transition pointer.Transition, mod uv.KeyMod, wheelDelta int, held pointer.Buttons) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	mode := t.mouseModeLocked()
	if mode == nil {
		return false
	}

	// Gate motion events on modes that actually support them.
	// Modes 9/1000/1001 only report clicks; 1002 reports motion while a
	// button is held; 1003 reports all motion.
	if transition == pointer.TransitionNone {
		switch mode {
		case ansi.ModeMouseX10, ansi.ModeMouseNormal, ansi.ModeMouseHighlight:
			return false
		case ansi.ModeMouseButtonEvent:
			if held == 0 {
				return false
			}
		}
	}

	isRelease := transition.IsRelease()
	if isRelease && mode == ansi.ModeMouseX10 {
		// X10 tracking has no release events.
		return false
	}

	isMotion := transition == pointer.TransitionNone
	b := ansi.EncodeMouseButton(mouseButtonFor(transition, held, wheelDelta), isMotion,
		mod.Contains(uv.ModShift),
		mod.Contains(uv.ModAlt),
		mod.Contains(uv.ModCtrl))

	var seq string
	if t.isModeSet(ansi.ModeMouseExtSgr) {
		seq = ansi.MouseSgr(b, cell.X, cell.Y, isRelease)
	} else {
		seq = ansi.MouseX10(b, cell.X, cell.Y)
	}
	return t.writeInputLocked(seq)
}
