package interaction

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/dodorz/interactty/internal/pointer"
)

// canSendVTMouseInput decides whether an event belongs to the application's
// mouse-tracking protocol. Shift is a deliberate escape hatch: holding it
// forces local selection even while an application has grabbed mouse
// reporting.
func (i *Interactivity) canSendVTMouseInput(mod uv.KeyMod) bool {
	if mod.Contains(uv.ModShift) {
		return false
	}
	return i.core.IsVtMouseModeEnabled()
}

// trySendMouseEvent encodes and forwards the sample to the terminal's mouse
// event sink. A forwarded event is fully owned by this path; callers must
// not additionally run hyperlink or selection logic for it.
func (i *Interactivity) trySendMouseEvent(s pointer.Sample) bool {
	delta := 0
	if s.Transition == pointer.TransitionWheel {
		delta = s.WheelDelta
	}
	return i.core.SendMouseEvent(s.Cell, s.Transition, s.Mod, delta, s.Held)
}
