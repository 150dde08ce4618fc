package vt

import uv "github.com/charmbracelet/ultraviolet"

// ScrollOffset returns the viewport's scrollback position. Zero shows the
// oldest history line; the maximum, equal to the history length, shows the
// live screen.
func (t *Term) ScrollOffset() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrollOffset
}

// MaxScrollOffset returns the offset of the live screen.
func (t *Term) MaxScrollOffset() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return float64(len(t.history))
}

// HistoryLen returns the number of scrollback lines.
func (t *Term) HistoryLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.history)
}

// UserScrollViewport moves the viewport to the given scrollback offset,
// clamped to the buffer. Scrolling to the bottom resumes following the
// application's output; anywhere else freezes the view. The alt screen has
// no scrollback, so scrolling there is a no-op.
func (t *Term) UserScrollViewport(offset float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isAltScreenLocked() {
		return
	}
	top := float64(len(t.history))
	if offset > top {
		offset = top
	}
	if offset < 0 {
		offset = 0
	}
	t.scrollOffset = offset
	t.followTail = offset >= top
}

// VisibleLines returns the viewport rows at the current scroll offset, from
// top to bottom. The slice shares cell storage with the terminal; callers
// must not retain it across writes.
func (t *Term) VisibleLines() []Line {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Line, 0, t.height)
	base := int(t.scrollOffset)
	for y := 0; y < t.height; y++ {
		if line := t.lineAtAbsLocked(base + y); line != nil {
			out = append(out, line)
		} else {
			out = append(out, newLine(t.width))
		}
	}
	return out
}

// VisibleCursor returns the cursor's viewport position and whether it is
// currently on screen. The cursor is only visible when the viewport
// follows the live screen.
func (t *Term) VisibleCursor() (uv.Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	base := int(t.scrollOffset)
	row := len(t.history) + t.curY
	y := row - base
	if y < 0 || y >= t.height {
		return uv.Position{}, false
	}
	return uv.Pos(clamp(t.curX, 0, t.width-1), y), true
}
