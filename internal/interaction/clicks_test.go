package interaction

import (
	"testing"
	"time"

	"github.com/dodorz/interactty/internal/pointer"
)

func TestRegisterClickIncrementsWithinWindow(t *testing.T) {
	acc := NewClickAccumulator(500 * time.Millisecond)
	base := time.Now()
	pos := pointer.Point{X: 40, Y: 12}

	for want := 1; want <= 5; want++ {
		at := base.Add(time.Duration(want) * 100 * time.Millisecond)
		if got := acc.RegisterClick(pos, at); got != want {
			t.Fatalf("click %d: got count %d", want, got)
		}
	}
}

func TestRegisterClickResets(t *testing.T) {
	base := time.Now()

	tests := []struct {
		name   string
		second pointer.Point
		delay  time.Duration
		want   int
	}{
		{
			name:   "same position within window",
			second: pointer.Point{X: 10, Y: 10},
			delay:  200 * time.Millisecond,
			want:   2,
		},
		{
			name:   "within epsilon within window",
			second: pointer.Point{X: 12, Y: 11},
			delay:  200 * time.Millisecond,
			want:   2,
		},
		{
			name:   "beyond epsilon",
			second: pointer.Point{X: 30, Y: 10},
			delay:  200 * time.Millisecond,
			want:   1,
		},
		{
			name:   "past the window",
			second: pointer.Point{X: 10, Y: 10},
			delay:  800 * time.Millisecond,
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewClickAccumulator(500 * time.Millisecond)
			acc.RegisterClick(pointer.Point{X: 10, Y: 10}, base)
			if got := acc.RegisterClick(tt.second, base.Add(tt.delay)); got != tt.want {
				t.Errorf("got count %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRegisterClickUpdatesStateOnReset(t *testing.T) {
	acc := NewClickAccumulator(500 * time.Millisecond)
	base := time.Now()

	acc.RegisterClick(pointer.Point{X: 0, Y: 0}, base)
	// Far away: resets to 1 but must store the new position/time...
	acc.RegisterClick(pointer.Point{X: 100, Y: 100}, base.Add(100*time.Millisecond))
	// ...so a followup at the new position continues the burst.
	if got := acc.RegisterClick(pointer.Point{X: 100, Y: 100}, base.Add(200*time.Millisecond)); got != 2 {
		t.Errorf("got count %d, want 2", got)
	}
}

func TestBoundClickCountCycles(t *testing.T) {
	want := []int{1, 2, 3, 1, 2, 3}
	for raw := 1; raw <= 6; raw++ {
		if got := BoundClickCount(raw, 3); got != want[raw-1] {
			t.Errorf("raw %d: got %d, want %d", raw, got, want[raw-1])
		}
	}
}
