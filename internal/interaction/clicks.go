package interaction

import (
	"time"

	"github.com/dodorz/interactty/internal/config"
	"github.com/dodorz/interactty/internal/pointer"
)

// ClickAccumulator is a stateful multi-click detector. Every call to
// RegisterClick registers a click; the count keeps growing for as long as
// clicks land within the spatial epsilon and the multi-click window.
type ClickAccumulator struct {
	lastPos  pointer.Point
	lastTime time.Time
	count    int
	window   time.Duration
	epsilon  float64
}

// NewClickAccumulator returns an accumulator with the given multi-click
// window. A non-positive window falls back to the default interval, so an
// unavailable platform double-click setting is never fatal.
func NewClickAccumulator(window time.Duration) ClickAccumulator {
	if window <= 0 {
		window = config.DefaultMultiClickInterval
	}
	return ClickAccumulator{
		window:  window,
		epsilon: config.ClickPositionEpsilon,
	}
}

// SetWindow updates the multi-click window, keeping the default on
// non-positive values.
func (a *ClickAccumulator) SetWindow(window time.Duration) {
	if window <= 0 {
		window = config.DefaultMultiClickInterval
	}
	a.window = window
}

// RegisterClick records a click at the given position and time and returns
// the number of clicks within the current burst.
//
// The count resets to 1 when the click lands farther than the position
// epsilon from the previous one or outside the multi-click window; it is
// recomputed from those conditions, never incremented blindly. The stored
// position and timestamp are always updated, even on reset.
func (a *ClickAccumulator) RegisterClick(pos pointer.Point, at time.Time) int {
	if pos.DistanceTo(a.lastPos) > a.epsilon || at.Sub(a.lastTime) > a.window {
		a.count = 1
	} else {
		a.count++
	}
	a.lastPos = pos
	a.lastTime = at
	return a.count
}

// BoundClickCount folds a raw click count into a bounded cycle of the given
// size so held rapid clicking produces 1,2,3,1,2,3,... instead of an
// ever-growing counter.
func BoundClickCount(count, limit int) int {
	if count > limit {
		return ((count+limit-1)%limit + 1)
	}
	return count
}
