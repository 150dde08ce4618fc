package pointer

import (
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

// Raw device codes as delivered by platform pointer sources. The values
// mirror the usual platform enumeration; anything else is unsupported.
const (
	RawDeviceTouch = 0
	RawDevicePen   = 1
	RawDeviceMouse = 2
)

// Raw button-transition codes as delivered by platform pointer sources.
const (
	RawUpdateNone = iota
	RawUpdateLeftDown
	RawUpdateLeftUp
	RawUpdateMiddleDown
	RawUpdateMiddleUp
	RawUpdateRightDown
	RawUpdateRightUp
)

// RawSample is a device-level pointer record before normalization.
type RawSample struct {
	Device     int
	Update     int
	Screen     Point
	Cell       uv.Position
	Held       Buttons
	Mod        uv.KeyMod
	Time       time.Time
	WheelDelta int
	Horizontal bool // wheel delta is horizontal motion
	Contact    Point
}

// Classify normalizes a raw platform sample into a canonical Sample.
// It is a pure mapping with no side effects.
//
// Unsupported device codes degrade to a mouse move with no transition, and
// unknown update codes to plain movement; malformed input is never fatal.
// A nonzero vertical wheel delta wins over a coincident button state.
// Horizontal wheel motion is dropped entirely so it can never enter the VT
// forwarding path.
func Classify(raw RawSample) Sample {
	s := Sample{
		Screen:  raw.Screen,
		Cell:    raw.Cell,
		Held:    raw.Held,
		Mod:     raw.Mod,
		Time:    raw.Time,
		Contact: raw.Contact,
	}

	switch raw.Device {
	case RawDeviceMouse:
		s.Device = DeviceMouse
	case RawDevicePen:
		s.Device = DevicePen
	case RawDeviceTouch:
		s.Device = DeviceTouch
	default:
		s.Device = DeviceMouse
		return s
	}

	switch raw.Update {
	case RawUpdateLeftDown:
		s.Transition = TransitionLeftDown
	case RawUpdateLeftUp:
		s.Transition = TransitionLeftUp
	case RawUpdateMiddleDown:
		s.Transition = TransitionMiddleDown
	case RawUpdateMiddleUp:
		s.Transition = TransitionMiddleUp
	case RawUpdateRightDown:
		s.Transition = TransitionRightDown
	case RawUpdateRightUp:
		s.Transition = TransitionRightUp
	default:
		s.Transition = TransitionNone
	}

	if raw.WheelDelta != 0 && !raw.Horizontal {
		s.Transition = TransitionWheel
		s.WheelDelta = raw.WheelDelta
	}

	return s
}
