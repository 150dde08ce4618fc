package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/dodorz/interactty/internal/pointer"
)

// toContentCell translates screen coordinates to terminal cell coordinates,
// clamped into the content area so drags that wander over the border keep
// extending the selection.
func (a *App) toContentCell(x, y int) uv.Position {
	w, h := a.session.Term.Size()
	cx := x - 1
	cy := y - 1
	if cx < 0 {
		cx = 0
	}
	if cx >= w {
		cx = w - 1
	}
	if cy < 0 {
		cy = 0
	}
	if cy >= h {
		cy = h - 1
	}
	return uv.Pos(cx, cy)
}

// reframe moves a sample's cell coordinates into the terminal content area
// and recomputes its screen position to match.
func (a *App) reframe(s pointer.Sample) pointer.Sample {
	s.Cell = a.toContentCell(s.Cell.X, s.Cell.Y)
	s.Screen = pointer.Point{
		X: float64(s.Cell.X) * a.metrics.CellWidth,
		Y: float64(s.Cell.Y) * a.metrics.CellHeight,
	}
	return s
}

func (a *App) handleMouseClick(msg tea.MouseClickMsg) {
	if a.session == nil {
		return
	}
	s := pointer.FromClick(msg, a.held, a.metrics, time.Now())
	a.held = s.Held
	a.ia.PointerPressed(a.reframe(s))
}

func (a *App) handleMouseRelease(msg tea.MouseReleaseMsg) {
	if a.session == nil {
		return
	}
	s := pointer.FromRelease(msg, a.held, a.metrics, time.Now())
	a.held = s.Held
	a.ia.PointerReleased(a.reframe(s))
}

func (a *App) handleMouseMotion(msg tea.MouseMotionMsg) {
	if a.session == nil {
		return
	}
	s := pointer.FromMotion(msg, a.held, a.metrics, time.Now())
	a.ia.PointerMoved(a.reframe(s), a.focused)
}

func (a *App) handleMouseWheel(msg tea.MouseWheelMsg) {
	if a.session == nil {
		return
	}
	s := pointer.FromWheel(msg, a.held, a.metrics, time.Now())
	a.ia.MouseWheel(a.reframe(s), a.focused)
}
