package vt

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/dodorz/interactty/internal/interaction"
)

type selectMode int

const (
	selectCell selectMode = iota
	selectWord
	selectLine
)

// bufPos is a cell position in absolute buffer coordinates: Row counts from
// the oldest history line, with the live viewport starting at the history
// length.
type bufPos struct {
	X   int
	Row int
}

func (p bufPos) less(q bufPos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.X < q.X
}

type selection struct {
	active bool
	box    bool
	mode   selectMode
	anchor bufPos
	end    bufPos
}

func (s *selection) clear() { *s = selection{} }

// shiftRows moves the selection when history lines are dropped. A selection
// pushed past the top of the buffer is discarded.
func (s *selection) shiftRows(d int) {
	if !s.active || d == 0 {
		return
	}
	s.anchor.Row += d
	s.end.Row += d
	if s.anchor.Row < 0 && s.end.Row < 0 {
		s.clear()
	}
}

// ordered returns the selection's corners with the start before the end.
func (s *selection) ordered() (bufPos, bufPos) {
	if s.end.less(s.anchor) {
		return s.end, s.anchor
	}
	return s.anchor, s.end
}

func (t *Term) absPosLocked(cell uv.Position) bufPos {
	return bufPos{
		X:   clamp(cell.X, 0, t.width-1),
		Row: int(t.scrollOffset) + clamp(cell.Y, 0, t.height-1),
	}
}

// lineAtAbsLocked returns the buffer line at an absolute row, or nil when
// the row is out of range.
func (t *Term) lineAtAbsLocked(row int) Line {
	if row < 0 {
		return nil
	}
	if row < len(t.history) {
		return t.history[row]
	}
	row -= len(t.history)
	if row < t.height {
		return t.lines[row]
	}
	return nil
}

// HasSelection reports whether a selection is active.
func (t *Term) HasSelection() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sel.active
}

// LeftClickOnTerminal applies a left click's selection semantics. A single
// click clears the selection and arms a fresh one; double and triple clicks
// select the word or line under the cursor, but only when the click landed
// where the first click of the burst did. Shift extends an existing
// selection instead. copyPending tracks whether the resulting selection
// still owes a clipboard copy.
func (t *Term) LeftClickOnTerminal(cell uv.Position, clickCount int, altEnabled, shiftEnabled, isOnOriginalPosition bool, copyPending *bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos := t.absPosLocked(cell)

	if shiftEnabled && t.sel.active {
		t.sel.end = pos
		*copyPending = true
		return
	}

	// A repeated click that wandered off the original position restarts
	// the gesture as a single click.
	if clickCount > 1 && !isOnOriginalPosition {
		clickCount = 1
	}

	switch clickCount {
	case 2:
		line := t.lineAtAbsLocked(pos.Row)
		start, end := line.wordBounds(pos.X)
		t.sel = selection{
			active: true,
			box:    altEnabled,
			mode:   selectWord,
			anchor: bufPos{X: start, Row: pos.Row},
			end:    bufPos{X: end, Row: pos.Row},
		}
		*copyPending = true
	case 3:
		t.sel = selection{
			active: true,
			box:    altEnabled,
			mode:   selectLine,
			anchor: bufPos{X: 0, Row: pos.Row},
			end:    bufPos{X: t.width - 1, Row: pos.Row},
		}
		*copyPending = true
	default:
		t.sel.clear()
		t.sel.box = altEnabled
		*copyPending = false
	}
}

// SetSelectionAnchor starts a cell-granularity selection at the given
// viewport cell, keeping the box flag armed by the initiating click.
func (t *Term) SetSelectionAnchor(cell uv.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pos := t.absPosLocked(cell)
	box := t.sel.box
	t.sel = selection{
		active: true,
		box:    box,
		mode:   selectCell,
		anchor: pos,
		end:    pos,
	}
}

// SetEndSelectionPoint moves the selection's end to the given viewport
// cell. Word and line selections expand in whole units past the pivot.
func (t *Term) SetEndSelectionPoint(cell uv.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.sel.active {
		return
	}
	pos := t.absPosLocked(cell)
	switch t.sel.mode {
	case selectWord:
		line := t.lineAtAbsLocked(pos.Row)
		start, end := line.wordBounds(pos.X)
		if pos.less(t.sel.anchor) {
			pos.X = start
		} else {
			pos.X = end
		}
	case selectLine:
		if pos.less(t.sel.anchor) {
			pos.X = 0
		} else {
			pos.X = t.width - 1
		}
	}
	t.sel.end = pos
}

// ClearSelection drops the active selection.
func (t *Term) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sel.clear()
}

// SelectedText returns the selected text, or "" when nothing is selected.
func (t *Term) SelectedText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectedTextLocked(false)
}

func (t *Term) selectedTextLocked(singleLine bool) string {
	if !t.sel.active {
		return ""
	}
	start, end := t.sel.ordered()

	var rows []string
	for row := start.Row; row <= end.Row; row++ {
		line := t.lineAtAbsLocked(row)
		if line == nil {
			continue
		}
		lo, hi := 0, t.width-1
		if t.sel.box {
			lo, hi = min(start.X, end.X), max(start.X, end.X)
		} else {
			if row == start.Row {
				lo = start.X
			}
			if row == end.Row {
				hi = end.X
			}
		}
		var b strings.Builder
		for x := lo; x <= hi && x < len(line); x++ {
			r := line[x].Rune
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		rows = append(rows, strings.TrimRight(b.String(), " "))
	}

	sep := "\n"
	if singleLine {
		sep = " "
	}
	return strings.Join(rows, sep)
}

// CopySelectionToClipboard copies the selected text through the Copy
// callback. It returns false when there is no selection or the selection is
// empty, so the caller can let the triggering input fall through.
func (t *Term) CopySelectionToClipboard(singleLine bool, format interaction.CopyFormat) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = format // only plain text is produced
	text := t.selectedTextLocked(singleLine)
	if text == "" {
		return false
	}
	if t.cb.Copy != nil {
		t.cb.Copy(text)
	}
	return true
}

// Selected reports whether the visible viewport cell is inside the active
// selection. Renderers use it to highlight the selection.
func (t *Term) Selected(cell uv.Position) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.sel.active {
		return false
	}
	pos := t.absPosLocked(cell)
	start, end := t.sel.ordered()
	if pos.Row < start.Row || pos.Row > end.Row {
		return false
	}
	if t.sel.box {
		return pos.X >= min(start.X, end.X) && pos.X <= max(start.X, end.X)
	}
	if pos.Row == start.Row && pos.X < start.X {
		return false
	}
	if pos.Row == end.Row && pos.X > end.X {
		return false
	}
	return true
}

// GetHyperlink returns the OSC 8 URI under the given viewport cell, or ""
// when the cell carries no link.
func (t *Term) GetHyperlink(cell uv.Position) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	pos := t.absPosLocked(cell)
	line := t.lineAtAbsLocked(pos.Row)
	if line == nil || pos.X < 0 || pos.X >= len(line) {
		return ""
	}
	return line[pos.X].Link
}

// UpdateHoveredCell records the viewport cell under the pointer for hover
// affordances such as link underlining.
func (t *Term) UpdateHoveredCell(cell uv.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hovered = cell
}

// HoveredHyperlink returns the URI under the last hovered cell, or "".
func (t *Term) HoveredHyperlink() string {
	t.mu.Lock()
	hovered := t.hovered
	t.mu.Unlock()
	return t.GetHyperlink(hovered)
}
