package interaction

import (
	"github.com/dodorz/interactty/internal/pointer"
)

// touchDown records the pan anchor at the contact-rectangle origin.
func (i *Interactivity) touchDown(s pointer.Sample) {
	anchor := s.Contact
	i.touchAnchor = &anchor
}

// touchPan integrates sustained vertical touch drag into viewport scroll
// deltas. Motion is integrated incrementally: each time the accumulated
// drag exceeds half a cell height the viewport scrolls and the anchor moves
// to the current position, rather than measuring from a single fixed
// origin. No momentum is modeled.
func (i *Interactivity) touchPan(s pointer.Sample) {
	anchor := i.touchAnchor
	if anchor == nil {
		return
	}

	_, cellHeight := i.metrics.CellSizeDIP()
	dy := s.Contact.Y - anchor.Y
	if dy < 0 {
		if -dy <= cellHeight/2 {
			return
		}
	} else if dy <= cellHeight/2 {
		return
	}

	// Moving the touch point down yields a positive delta, but the
	// viewport should move up, so the row count is sign-inverted.
	rows := -dy / cellHeight
	i.core.UserScrollViewport(i.core.ScrollOffset() + rows)

	next := s.Contact
	i.touchAnchor = &next
}

// clearTouchAnchor drops any pan in progress.
func (i *Interactivity) clearTouchAnchor() {
	i.touchAnchor = nil
}
