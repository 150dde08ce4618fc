package pointer

import (
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// Transitions for bubbletea mouse buttons. Terminals only report mouse
// devices, so every adapted sample is DeviceMouse; touch and pen samples
// come from hosts with richer input sources via Classify.

// pressTransitionFor maps a pressed bubbletea button to a transition.
func pressTransitionFor(b tea.MouseButton) (Transition, Buttons) {
	switch b {
	case tea.MouseLeft:
		return TransitionLeftDown, ButtonLeft
	case tea.MouseMiddle:
		return TransitionMiddleDown, ButtonMiddle
	case tea.MouseRight:
		return TransitionRightDown, ButtonRight
	default:
		return TransitionNone, 0
	}
}

// releaseTransitionFor maps a released bubbletea button to a transition.
func releaseTransitionFor(b tea.MouseButton) (Transition, Buttons) {
	switch b {
	case tea.MouseLeft:
		return TransitionLeftUp, ButtonLeft
	case tea.MouseMiddle:
		return TransitionMiddleUp, ButtonMiddle
	case tea.MouseRight:
		return TransitionRightUp, ButtonRight
	default:
		return TransitionNone, 0
	}
}

// CellMetrics converts cell coordinates to screen positions for hosts whose
// only spatial unit is the terminal cell.
type CellMetrics struct {
	CellWidth  float64
	CellHeight float64
}

func (m CellMetrics) screenPoint(x, y int) Point {
	return Point{X: float64(x) * m.CellWidth, Y: float64(y) * m.CellHeight}
}

// FromClick adapts a bubbletea mouse click message. held is the button set
// before the press; the returned sample carries the set after it.
func FromClick(msg tea.MouseClickMsg, held Buttons, m CellMetrics, at time.Time) Sample {
	mouse := msg.Mouse()
	tr, btn := pressTransitionFor(mouse.Button)
	return Sample{
		Device:     DeviceMouse,
		Screen:     m.screenPoint(mouse.X, mouse.Y),
		Cell:       uv.Pos(mouse.X, mouse.Y),
		Transition: tr,
		Held:       held.With(btn),
		Mod:        uv.KeyMod(mouse.Mod),
		Time:       at,
	}
}

// FromRelease adapts a bubbletea mouse release message.
func FromRelease(msg tea.MouseReleaseMsg, held Buttons, m CellMetrics, at time.Time) Sample {
	mouse := msg.Mouse()
	tr, btn := releaseTransitionFor(mouse.Button)
	return Sample{
		Device:     DeviceMouse,
		Screen:     m.screenPoint(mouse.X, mouse.Y),
		Cell:       uv.Pos(mouse.X, mouse.Y),
		Transition: tr,
		Held:       held.Without(btn),
		Mod:        uv.KeyMod(mouse.Mod),
		Time:       at,
	}
}

// FromMotion adapts a bubbletea mouse motion message.
func FromMotion(msg tea.MouseMotionMsg, held Buttons, m CellMetrics, at time.Time) Sample {
	mouse := msg.Mouse()
	return Sample{
		Device: DeviceMouse,
		Screen: m.screenPoint(mouse.X, mouse.Y),
		Cell:   uv.Pos(mouse.X, mouse.Y),
		Held:   held,
		Mod:    uv.KeyMod(mouse.Mod),
		Time:   at,
	}
}

// FromWheel adapts a bubbletea wheel message. Horizontal wheel buttons
// produce a plain move sample with no delta, mirroring Classify.
func FromWheel(msg tea.MouseWheelMsg, held Buttons, m CellMetrics, at time.Time) Sample {
	mouse := msg.Mouse()
	s := Sample{
		Device: DeviceMouse,
		Screen: m.screenPoint(mouse.X, mouse.Y),
		Cell:   uv.Pos(mouse.X, mouse.Y),
		Held:   held,
		Mod:    uv.KeyMod(mouse.Mod),
		Time:   at,
	}
	switch mouse.Button {
	case tea.MouseWheelUp:
		s.Transition = TransitionWheel
		s.WheelDelta = WheelNotch
	case tea.MouseWheelDown:
		s.Transition = TransitionWheel
		s.WheelDelta = -WheelNotch
	}
	return s
}
