package vt_test

import (
	"bytes"
	"math"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/dodorz/interactty/internal/interaction"
	"github.com/dodorz/interactty/internal/pointer"
	"github.com/dodorz/interactty/internal/vt"
)

func mouseAt(tr pointer.Transition, cell uv.Position, mod uv.KeyMod, held pointer.Buttons) pointer.Sample {
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

func touchAt(tr pointer.Transition, contact pointer.Point) pointer.Sample {
	return pointer.Sample{
		Device:     pointer.DeviceTouch,
		Transition: tr,
		Contact:    contact,
		Time:       time.Now(),
	}
}

// A ctrl+click over an OSC 8 link must activate the link even while the
// application tracks the mouse, and a rapid second ctrl+click must not
// open the target again.
func TestCtrlClickActivatesLinkOverMouseMode(t *testing.T) {
	term := vt.NewTerm(40, 3)
	var sink bytes.Buffer
	term.SetInputWriter(&sink)
	term.WriteString("\x1b]8;;https://example.com\x1b\\docs\x1b]8;;\x1b\\")
	term.WriteString("\x1b[?1000h")

	ia := interaction.New(term, interaction.Options{})
	var opened []string
	ia.OnOpenHyperlink = func(uri string) { opened = append(opened, uri) }

	ia.PointerPressed(mouseAt(pointer.TransitionLeftDown, uv.Pos(1, 0), uv.ModCtrl, 0))

	if len(opened) != 1 || opened[0] != "https://example.com" {
		t.Fatalf("opened = %v, want the link once", opened)
	}
	if sink.Len() != 0 {
		t.Errorf("activating press was forwarded: %q", sink.Bytes())
	}

	ia.PointerReleased(mouseAt(pointer.TransitionLeftUp, uv.Pos(1, 0), uv.ModCtrl, 0))
	if sink.Len() == 0 {
		t.Errorf("release was not forwarded to the application")
	}

	ia.PointerPressed(mouseAt(pointer.TransitionLeftDown, uv.Pos(1, 0), uv.ModCtrl, 0))
	if len(opened) != 1 {
		t.Errorf("second click of the burst re-opened the link: %v", opened)
	}
}

// Touch pans over a real terminal scroll the viewport incrementally: each
// drag past half a cell height moves the offset and re-anchors, and a drag
// below the threshold moves nothing.
func TestTouchPanScrollsRealViewport(t *testing.T) {
	term := vt.NewTerm(10, 3)
	for i := 0; i < 10; i++ {
		term.WriteString("line\r\n")
	}
	if term.MaxScrollOffset() == 0 {
		t.Fatal("no history accumulated")
	}

	ia := interaction.New(term, interaction.Options{})
	start := term.ScrollOffset()

	ia.PointerPressed(touchAt(pointer.TransitionLeftDown, pointer.Point{X: 100, Y: 100}))
	ia.PointerMoved(touchAt(pointer.TransitionNone, pointer.Point{X: 100, Y: 112}), true)
	ia.PointerMoved(touchAt(pointer.TransitionNone, pointer.Point{X: 100, Y: 124}), true)

	if got, want := term.ScrollOffset(), start-1.2; math.Abs(got-want) > 1e-9 {
		t.Errorf("offset after two pans = %v, want %v", got, want)
	}

	ia.PointerReleased(touchAt(pointer.TransitionLeftUp, pointer.Point{X: 100, Y: 124}))
	mid := term.ScrollOffset()

	ia.PointerPressed(touchAt(pointer.TransitionLeftDown, pointer.Point{X: 100, Y: 100}))
	ia.PointerMoved(touchAt(pointer.TransitionNone, pointer.Point{X: 100, Y: 102}), true)

	if got := term.ScrollOffset(); got != mid {
		t.Errorf("sub-threshold pan moved the viewport: %v -> %v", mid, got)
	}
}
