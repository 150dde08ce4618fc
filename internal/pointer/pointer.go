// Package pointer defines the canonical pointer-event model shared by the
// interactivity layer and its hosts. A host normalizes whatever its input
// source delivers (platform pointer records, bubbletea mouse messages) into
// a Sample before handing it to the coordinator.
package pointer

import (
	"math"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

// DeviceKind identifies the class of pointing device that produced a sample.
type DeviceKind uint8

const (
	// DeviceMouse is a conventional mouse.
	DeviceMouse DeviceKind = iota
	// DevicePen is a stylus; handled identically to a mouse everywhere.
	DevicePen
	// DeviceTouch is a finger contact; drives panning instead of selection.
	DeviceTouch
)

// String returns a human-readable device name for logs.
func (d DeviceKind) String() string {
	switch d {
	case DevicePen:
		return "pen"
	case DeviceTouch:
		return "touch"
	default:
		return "mouse"
	}
}

// Transition is the closed set of button state changes a sample can carry.
type Transition uint8

const (
	// TransitionNone is plain movement with no button change.
	TransitionNone Transition = iota
	// TransitionLeftDown is a left button press.
	TransitionLeftDown
	// TransitionLeftUp is a left button release.
	TransitionLeftUp
	// TransitionMiddleDown is a middle button press.
	TransitionMiddleDown
	// TransitionMiddleUp is a middle button release.
	TransitionMiddleUp
	// TransitionRightDown is a right button press.
	TransitionRightDown
	// TransitionRightUp is a right button release.
	TransitionRightUp
	// TransitionWheel is vertical wheel motion.
	TransitionWheel
)

// IsPress reports whether the transition is any button press.
func (t Transition) IsPress() bool {
	return t == TransitionLeftDown || t == TransitionMiddleDown || t == TransitionRightDown
}

// IsRelease reports whether the transition is any button release.
func (t Transition) IsRelease() bool {
	return t == TransitionLeftUp || t == TransitionMiddleUp || t == TransitionRightUp
}

// Buttons is a bitmask of pointer buttons currently held down.
type Buttons uint8

const (
	// ButtonLeft is the primary button.
	ButtonLeft Buttons = 1 << iota
	// ButtonMiddle is the wheel button.
	ButtonMiddle
	// ButtonRight is the secondary button.
	ButtonRight
)

// Contains reports whether all buttons in o are held.
func (b Buttons) Contains(o Buttons) bool { return b&o == o }

// With returns the set with o added.
func (b Buttons) With(o Buttons) Buttons { return b | o }

// Without returns the set with o removed.
func (b Buttons) Without(o Buttons) Buttons { return b &^ o }

// Point is a screen position in device-independent units.
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance to o.
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Sample is one normalized pointer event. Immutable once classified.
type Sample struct {
	Device     DeviceKind
	Screen     Point       // position in device-independent units
	Cell       uv.Position // position in terminal cells
	Transition Transition
	Held       Buttons   // buttons held after the transition
	Mod        uv.KeyMod // shift/ctrl/alt state
	Time       time.Time
	WheelDelta int   // signed, in wheel notches of WheelNotch; vertical only
	Contact    Point // touch only: contact-rectangle origin
}

// WheelNotch is the delta carried by one detent of a conventional wheel.
const WheelNotch = 120
