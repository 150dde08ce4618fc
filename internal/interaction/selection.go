package interaction

import (
	"math"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/dodorz/interactty/internal/pointer"
)

// touchdown is the position captured on the first click of a sequence when
// no selection exists yet. It pins the drag threshold until the pointer
// moves a quarter of the smaller font-cell dimension away.
type touchdown struct {
	screen pointer.Point
	cell   uv.Position
}

// leftClick runs click-based selection for a left press that neither the
// hyperlink nor the VT forwarding path claimed.
func (i *Interactivity) leftClick(s pointer.Sample) {
	count := i.clicks.RegisterClick(s.Screen, s.Time)
	mapped := BoundClickCount(count, i.maxClickCycle)

	// Capture the position of the first click when no selection is active.
	if mapped == 1 && !i.core.HasSelection() {
		i.touchdown = &touchdown{screen: s.Screen, cell: s.Cell}
		i.lastNoSelectionClick = s.Screen
		i.haveNoSelectionClick = true
	}
	onOriginal := i.haveNoSelectionClick && i.lastNoSelectionClick == s.Screen

	i.core.LeftClickOnTerminal(s.Cell, mapped,
		s.Mod.Contains(uv.ModAlt),
		s.Mod.Contains(uv.ModShift),
		onOriginal,
		&i.copyPending)
}

// dragSelection extends the selection while the left button is held. The
// touchdown point survives until the pointer has moved a quarter of the
// smaller cell dimension away; only then does the drag anchor the
// selection, so an ordinary click never leaves a one-cell selection behind.
func (i *Interactivity) dragSelection(s pointer.Sample) {
	if td := i.touchdown; td != nil {
		w, h := i.metrics.CellSizeDIP()
		threshold := math.Min(w, h) / 4
		if s.Screen.DistanceTo(td.screen) >= threshold {
			i.core.SetSelectionAnchor(s.Cell)
			i.touchdown = nil
		}
	}
	i.setEndSelectionPoint(s.Cell)
}

// setEndSelectionPoint moves the selection's end to the cell and records
// that a clipboard copy is owed on release.
func (i *Interactivity) setEndSelectionPoint(cell uv.Position) {
	i.core.SetEndSelectionPoint(cell)
	i.copyPending = true
}

// rightClick pastes or copies. With copy-on-select active, or with nothing
// selected, a right click always pastes; otherwise it copies the current
// selection as a fallback. A right click never starts a drag.
func (i *Interactivity) rightClick(s pointer.Sample) {
	if i.core.CopyOnSelect() || !i.core.HasSelection() {
		i.PasteFromClipboard()
		return
	}
	i.CopySelection(s.Mod.Contains(uv.ModShift), CopyFormatAuto)
}

// releaseSelection finishes the copy-on-select protocol for a left release.
func (i *Interactivity) releaseSelection(s pointer.Sample) {
	// Only a left release with copy-on-select active performs a copy;
	// right and middle releases do nothing here.
	if i.core.CopyOnSelect() &&
		s.Transition == pointer.TransitionLeftUp &&
		i.copyPending {
		i.CopySelection(i.singleLineCopy, CopyFormatAuto)
	}
}
