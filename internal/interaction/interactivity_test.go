package interaction

import (
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/dodorz/interactty/internal/pointer"
)

type sentMouse struct {
	cell       uv.Position
	transition pointer.Transition
	wheelDelta int
}

type leftClickCall struct {
	cell       uv.Position
	clickCount int
	alt        bool
	shift      bool
	onOriginal bool
}

type copyCall struct {
	singleLine bool
	format     CopyFormat
}

// fakeCore records every capability call so tests can assert the
// coordinator's routing decisions.
type fakeCore struct {
	hasSelection bool
	copyOnSelect bool
	readOnly     bool
	vtMouse      bool
	links        map[uv.Position]string
	cellW, cellH float64
	scale        float64
	scrollOffset float64
	copyResult   bool

	sent       []sentMouse
	leftClicks []leftClickCall
	anchors    []uv.Position
	ends       []uv.Position
	copies     []copyCall
	pastes     []string
	hovered    []uv.Position
	scrolls    []float64
}

func newFakeCore() *fakeCore {
	return &fakeCore{
		cellW:      10,
		cellH:      20,
		scale:      1,
		copyResult: true,
		links:      map[uv.Position]string{},
	}
}

func (f *fakeCore) HasSelection() bool         { return f.hasSelection }
func (f *fakeCore) CopyOnSelect() bool         { return f.copyOnSelect }
func (f *fakeCore) IsInReadOnlyMode() bool     { return f.readOnly }
func (f *fakeCore) IsVtMouseModeEnabled() bool { return f.vtMouse }

func (f *fakeCore) GetHyperlink(cell uv.Position) string { return f.links[cell] }

func (f *fakeCore) FontCellSize() (float64, float64) { return f.cellW, f.cellH }
func (f *fakeCore) RendererScale() float64           { return f.scale }

func (f *fakeCore) ScrollOffset() float64 { return f.scrollOffset }

func (f *fakeCore) UserScrollViewport(offset float64) {
	f.scrolls = append(f.scrolls, offset)
	f.scrollOffset = offset
}

func (f *fakeCore) UpdateHoveredCell(cell uv.Position) {
	f.hovered = append(f.hovered, cell)
}

func (f *fakeCore) LeftClickOnTerminal(cell uv.Position, clickCount int, alt, shift, onOriginalPosition bool, copyPending *bool) {
	f.leftClicks = append(f.leftClicks, leftClickCall{cell, clickCount, alt, shift, onOriginalPosition})
	if clickCount > 1 {
		f.hasSelection = true
		*copyPending = true
	}
}

func (f *fakeCore) SetSelectionAnchor(cell uv.Position) {
	f.anchors = append(f.anchors, cell)
	f.hasSelection = true
}

func (f *fakeCore) SetEndSelectionPoint(cell uv.Position) {
	f.ends = append(f.ends, cell)
}

func (f *fakeCore) CopySelectionToClipboard(singleLine bool, format CopyFormat) bool {
	f.copies = append(f.copies, copyCall{singleLine, format})
	return f.copyResult
}

func (f *fakeCore) PasteText(text string) { f.pastes = append(f.pastes, text) }

func (f *fakeCore) SendMouseEvent(cell uv.Position, transition pointer.Transition, mod uv.KeyMod, wheelDelta int, held pointer.Buttons) bool {
	f.sent = append(f.sent, sentMouse{cell, transition, wheelDelta})
	return true
}

func mouseSample(tr pointer.Transition, cell uv.Position, mod uv.KeyMod, held pointer.Buttons) pointer.Sample {
	return pointer.Sample{
		Device:     pointer.DeviceMouse,
		Screen:     pointer.Point{X: float64(cell.X) * 10, Y: float64(cell.Y) * 20},
		Cell:       cell,
		Transition: tr,
		Held:       held,
		Mod:        mod,
		Time:       time.Now(),
	}
}

func touchSample(tr pointer.Transition, contact pointer.Point) pointer.Sample {
	return pointer.Sample{
		Device:     pointer.DeviceTouch,
		Transition: tr,
		Contact:    contact,
		Time:       time.Now(),
	}
}

func TestVTForwardingTakesPressOverSelection(t *testing.T) {
	core := newFakeCore()
	core.vtMouse = true
	ia := New(core, Options{})

	ia.PointerPressed(mouseSample(pointer.TransitionLeftDown, uv.Pos(3, 4), 0, 0))

	if len(core.sent) != 1 {
		t.Fatalf("forwarded %d events, want 1", len(core.sent))
	}
	if len(core.leftClicks) != 0 {
		t.Errorf("selection click fired despite forwarding")
	}
}

func TestShiftBypassesForwarding(t *testing.T) {
	core := newFakeCore()
	core.vtMouse = true
	ia := New(core, Options{})

	ia.PointerPressed(mouseSample(pointer.TransitionLeftDown, uv.Pos(3, 4), uv.ModShift, 0))

	if len(core.sent) != 0 {
		t.Errorf("forwarded despite shift held")
	}
	if len(core.leftClicks) != 1 {
		t.Fatalf("got %d selection clicks, want 1", len(core.leftClicks))
	}
	if !core.leftClicks[0].shift {
		t.Errorf("shift flag not propagated to click")
	}
}

func TestHyperlinkBeatsForwarding(t *testing.T) {
	core := newFakeCore()
	core.vtMouse = true
	cell := uv.Pos(5, 5)
	core.links[cell] = "https://example.com"

	var opened []string
	ia := New(core, Options{})
	ia.OnOpenHyperlink = func(uri string) { opened = append(opened, uri) }

	ia.PointerPressed(mouseSample(pointer.TransitionLeftDown, cell, uv.ModCtrl, 0))

	if len(opened) != 1 || opened[0] != "https://example.com" {
		t.Fatalf("opened %v, want the link once", opened)
	}
	if len(core.sent) != 0 {
		t.Errorf("press was also forwarded to the application")
	}
	if len(core.leftClicks) != 0 {
		t.Errorf("press also started a selection")
	}
}

func TestHyperlinkFiresOnlyOnFirstClick(t *testing.T) {
	core := newFakeCore()
	cell := uv.Pos(5, 5)
	core.links[cell] = "https://example.com"

	var opened int
	ia := New(core, Options{})
	ia.OnOpenHyperlink = func(string) { opened++ }

	s := mouseSample(pointer.TransitionLeftDown, cell, uv.ModCtrl, 0)
	ia.PointerPressed(s)
	s.Time = s.Time.Add(100 * time.Millisecond)
	ia.PointerPressed(s)

	if opened != 1 {
		t.Errorf("opened %d times, want 1", opened)
	}
}

func TestLeftClickCountsAndDoubleClick(t *testing.T) {
	core := newFakeCore()
	ia := New(core, Options{})

	s := mouseSample(pointer.TransitionLeftDown, uv.Pos(2, 2), 0, 0)
	ia.PointerPressed(s)
	s.Time = s.Time.Add(100 * time.Millisecond)
	ia.PointerPressed(s)

	if len(core.leftClicks) != 2 {
		t.Fatalf("got %d clicks, want 2", len(core.leftClicks))
	}
	if core.leftClicks[0].clickCount != 1 || core.leftClicks[1].clickCount != 2 {
		t.Errorf("click counts %d, %d; want 1, 2",
			core.leftClicks[0].clickCount, core.leftClicks[1].clickCount)
	}
	if !core.leftClicks[0].onOriginal {
		t.Errorf("first click not reported on original position")
	}
}

func TestQuadrupleClickWrapsToSingle(t *testing.T) {
	core := newFakeCore()
	ia := New(core, Options{})

	s := mouseSample(pointer.TransitionLeftDown, uv.Pos(2, 2), 0, 0)
	for i := 0; i < 4; i++ {
		ia.PointerPressed(s)
		s.Time = s.Time.Add(50 * time.Millisecond)
	}

	got := core.leftClicks[len(core.leftClicks)-1].clickCount
	if got != 1 {
		t.Errorf("fourth click mapped to %d, want 1", got)
	}
}

func TestDragSelectionThresholdAndAnchor(t *testing.T) {
	core := newFakeCore()
	ia := New(core, Options{})

	ia.PointerPressed(mouseSample(pointer.TransitionLeftDown, uv.Pos(4, 4), 0, 0))

	// A 2px wiggle stays under the quarter-cell threshold (2.5px): the
	// endpoint still follows the pointer but no anchor is planted.
	move := mouseSample(pointer.TransitionNone, uv.Pos(4, 4), 0, pointer.ButtonLeft)
	move.Screen.X += 2
	ia.PointerMoved(move, true)
	if len(core.anchors) != 0 {
		t.Fatalf("anchor set before threshold crossed")
	}
	if len(core.ends) != 1 {
		t.Fatalf("endpoint not tracking sub-threshold drag")
	}

	// Crossing into the next cell is well past it.
	far := mouseSample(pointer.TransitionNone, uv.Pos(6, 4), 0, pointer.ButtonLeft)
	ia.PointerMoved(far, true)
	if len(core.anchors) != 1 {
		t.Fatalf("got %d anchors, want 1", len(core.anchors))
	}
	if core.anchors[0] != uv.Pos(6, 4) {
		t.Errorf("anchor at %v, want current cell (6,4)", core.anchors[0])
	}
	if len(core.ends) != 2 || core.ends[1] != uv.Pos(6, 4) {
		t.Errorf("endpoint calls %v, want second at (6,4)", core.ends)
	}

	// Continued drag only extends the endpoint.
	ia.PointerMoved(mouseSample(pointer.TransitionNone, uv.Pos(8, 4), 0, pointer.ButtonLeft), true)
	if len(core.anchors) != 1 {
		t.Errorf("anchor re-set during continued drag")
	}
	if len(core.ends) != 3 {
		t.Errorf("got %d endpoint calls, want 3", len(core.ends))
	}
}

func TestCopyOnSelectCopiesOnceOnRelease(t *testing.T) {
	core := newFakeCore()
	core.copyOnSelect = true
	ia := New(core, Options{})

	ia.PointerPressed(mouseSample(pointer.TransitionLeftDown, uv.Pos(4, 4), 0, 0))
	ia.PointerMoved(mouseSample(pointer.TransitionNone, uv.Pos(8, 4), 0, pointer.ButtonLeft), true)
	ia.PointerReleased(mouseSample(pointer.TransitionLeftUp, uv.Pos(8, 4), 0, 0))

	if len(core.copies) != 1 {
		t.Fatalf("got %d copies, want 1", len(core.copies))
	}

	// A second release with nothing pending copies nothing.
	ia.PointerReleased(mouseSample(pointer.TransitionLeftUp, uv.Pos(8, 4), 0, 0))
	if len(core.copies) != 1 {
		t.Errorf("release without pending selection copied again")
	}
}

func TestReleaseWithoutCopyOnSelectDoesNotCopy(t *testing.T) {
	core := newFakeCore()
	ia := New(core, Options{})

	ia.PointerPressed(mouseSample(pointer.TransitionLeftDown, uv.Pos(4, 4), 0, 0))
	ia.PointerMoved(mouseSample(pointer.TransitionNone, uv.Pos(8, 4), 0, pointer.ButtonLeft), true)
	ia.PointerReleased(mouseSample(pointer.TransitionLeftUp, uv.Pos(8, 4), 0, 0))

	if len(core.copies) != 0 {
		t.Errorf("copied on release with copy-on-select disabled")
	}
}

func TestForwardedMoveSkipsSelection(t *testing.T) {
	core := newFakeCore()
	core.vtMouse = true
	ia := New(core, Options{})

	ia.PointerMoved(mouseSample(pointer.TransitionNone, uv.Pos(1, 1), 0, pointer.ButtonLeft), true)

	if len(core.sent) != 1 {
		t.Fatalf("move not forwarded")
	}
	if len(core.anchors) != 0 || len(core.ends) != 0 {
		t.Errorf("forwarded move also drove selection")
	}
	if len(core.hovered) != 1 {
		t.Errorf("hover not updated on forwarded move")
	}
}

func TestUnfocusedMoveOnlyHovers(t *testing.T) {
	core := newFakeCore()
	ia := New(core, Options{})

	ia.PointerPressed(mouseSample(pointer.TransitionLeftDown, uv.Pos(4, 4), 0, 0))
	ia.PointerMoved(mouseSample(pointer.TransitionNone, uv.Pos(8, 4), 0, pointer.ButtonLeft), false)

	if len(core.anchors) != 0 {
		t.Errorf("unfocused move started a selection")
	}
	if len(core.hovered) != 1 {
		t.Errorf("hover skipped for unfocused move")
	}
}

func TestRightClickPasteAndCopy(t *testing.T) {
	tests := []struct {
		name         string
		copyOnSelect bool
		hasSelection bool
		wantPaste    bool
	}{
		{"no selection pastes", false, false, true},
		{"copy-on-select pastes even with selection", true, true, true},
		{"selection without copy-on-select copies", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := newFakeCore()
			core.copyOnSelect = tt.copyOnSelect
			core.hasSelection = tt.hasSelection

			var pasted int
			ia := New(core, Options{})
			ia.OnPasteRequest = func(deliver func(string)) {
				pasted++
				deliver("hello")
			}

			ia.PointerPressed(mouseSample(pointer.TransitionRightDown, uv.Pos(0, 0), 0, 0))

			if tt.wantPaste {
				if pasted != 1 || len(core.pastes) != 1 || core.pastes[0] != "hello" {
					t.Errorf("paste not delivered: requests=%d pastes=%v", pasted, core.pastes)
				}
				if len(core.copies) != 0 {
					t.Errorf("also copied")
				}
			} else {
				if len(core.copies) != 1 {
					t.Errorf("got %d copies, want 1", len(core.copies))
				}
				if pasted != 0 {
					t.Errorf("also pasted")
				}
			}
		})
	}
}

func TestTouchPanScrollsByWholeRows(t *testing.T) {
	core := newFakeCore()
	core.scrollOffset = 50
	ia := New(core, Options{})

	ia.PointerPressed(touchSample(pointer.TransitionLeftDown, pointer.Point{X: 100, Y: 100}))

	// 0.6 of a cell height downward: past the half-cell threshold.
	ia.PointerMoved(touchSample(pointer.TransitionNone, pointer.Point{X: 100, Y: 112}), true)
	if len(core.scrolls) != 1 {
		t.Fatalf("got %d scrolls, want 1", len(core.scrolls))
	}
	if got := core.scrolls[0]; got >= 50 {
		t.Errorf("offset %v after downward pan, want below 50", got)
	}

	// 0.1 of a cell from the new anchor: under threshold, no scroll.
	ia.PointerMoved(touchSample(pointer.TransitionNone, pointer.Point{X: 100, Y: 114}), true)
	if len(core.scrolls) != 1 {
		t.Errorf("sub-threshold pan scrolled")
	}
}

func TestTouchReleaseClearsAnchor(t *testing.T) {
	core := newFakeCore()
	ia := New(core, Options{})

	ia.PointerPressed(touchSample(pointer.TransitionLeftDown, pointer.Point{X: 100, Y: 100}))
	ia.PointerReleased(touchSample(pointer.TransitionLeftUp, pointer.Point{X: 100, Y: 130}))

	// With the anchor gone, the next move establishes a fresh contact
	// instead of panning from the stale one.
	ia.PointerMoved(touchSample(pointer.TransitionNone, pointer.Point{X: 100, Y: 160}), true)
	ia.PointerMoved(touchSample(pointer.TransitionNone, pointer.Point{X: 100, Y: 161}), true)
	if len(core.scrolls) != 0 {
		t.Errorf("pan continued from a released contact")
	}
}

func TestMouseMoveInterruptsTouchPan(t *testing.T) {
	core := newFakeCore()
	ia := New(core, Options{})

	ia.PointerPressed(touchSample(pointer.TransitionLeftDown, pointer.Point{X: 100, Y: 100}))
	ia.PointerMoved(mouseSample(pointer.TransitionNone, uv.Pos(1, 1), 0, 0), true)

	// The mouse move dropped the touch anchor.
	ia.PointerMoved(touchSample(pointer.TransitionNone, pointer.Point{X: 100, Y: 160}), true)
	ia.PointerMoved(touchSample(pointer.TransitionNone, pointer.Point{X: 100, Y: 161}), true)
	if len(core.scrolls) != 0 {
		t.Errorf("touch pan survived a mouse interruption")
	}
}

func TestWheelScrollsViewportWhenNotForwarded(t *testing.T) {
	core := newFakeCore()
	core.scrollOffset = 10
	ia := New(core, Options{WheelScrollRows: 3})

	s := mouseSample(pointer.TransitionWheel, uv.Pos(0, 0), 0, 0)
	s.WheelDelta = pointer.WheelNotch // one notch up
	ia.MouseWheel(s, true)

	if len(core.scrolls) != 1 {
		t.Fatalf("got %d scrolls, want 1", len(core.scrolls))
	}
	if got := core.scrolls[0]; got != 7 {
		t.Errorf("offset %v after wheel up, want 7", got)
	}
}

func TestWheelForwardedInVTMode(t *testing.T) {
	core := newFakeCore()
	core.vtMouse = true
	ia := New(core, Options{})

	s := mouseSample(pointer.TransitionWheel, uv.Pos(0, 0), 0, 0)
	s.WheelDelta = -pointer.WheelNotch
	ia.MouseWheel(s, true)

	if len(core.sent) != 1 || core.sent[0].wheelDelta != -pointer.WheelNotch {
		t.Fatalf("wheel not forwarded: %v", core.sent)
	}
	if len(core.scrolls) != 0 {
		t.Errorf("forwarded wheel also scrolled locally")
	}
}

func TestReadOnlyBlocksForwardedRelease(t *testing.T) {
	core := newFakeCore()
	core.vtMouse = true
	core.readOnly = true
	ia := New(core, Options{})

	ia.PointerReleased(mouseSample(pointer.TransitionLeftUp, uv.Pos(0, 0), 0, 0))
	if len(core.sent) != 0 {
		t.Errorf("release forwarded in read-only mode")
	}
}
