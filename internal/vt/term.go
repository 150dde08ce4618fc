// Package vt implements a virtual terminal screen: an ANSI stream parser
// feeding a cell grid with scrollback, DEC private mode tracking, OSC 8
// hyperlinks, and a selection model. It exposes the capability surface the
// interaction coordinator drives, with mouse reporting encoded back to the
// application through the input sink.
package vt

import (
	"bytes"
	"io"
	"sync"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/parser"

	"github.com/dodorz/interactty/internal/config"
)

// Logger represents a logger interface.
type Logger interface {
	Printf(format string, v ...any)
}

// Callbacks are invoked while processing application output. All of them are
// optional and run with the terminal lock held, so they must not call back
// into the terminal.
type Callbacks struct {
	// Title receives OSC 0/2 window title updates.
	Title func(string)
	// Damage signals that the visible screen changed and needs a repaint.
	Damage func()
	// Copy receives text placed on the clipboard.
	Copy func(string)
	// Bell is invoked on BEL.
	Bell func()
}

// Term is a virtual terminal. The PTY reader goroutine feeds it through
// Write while the UI goroutine reads and mutates it through the capability
// methods; a single mutex serializes both sides.
type Term struct {
	mu sync.Mutex

	width, height int
	lines         []Line // live viewport rows
	altLines      []Line // saved main-screen rows while the alt screen is active
	history       []Line // rows scrolled off the main screen, oldest first
	maxHistory    int

	curX, curY int
	savedX     int
	savedY     int
	curLink    string // active OSC 8 URI applied to written cells

	modes  ansi.Modes
	parser *ansi.Parser

	// scrollOffset is the viewport's position in the scrollback: 0 shows
	// the oldest history line, len(history) the live screen. followTail
	// keeps the offset pinned to the bottom as new lines arrive.
	scrollOffset float64
	followTail   bool

	sel     selection
	hovered uv.Position

	cellWidth, cellHeight float64
	rendererScale         float64

	readOnly       bool
	copyOnSelectOn bool

	input  io.Writer // responses and forwarded input to the application
	cb     Callbacks
	logger Logger

	title string
}

// NewTerm returns a terminal with the given screen size.
func NewTerm(width, height int) *Term {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	t := &Term{
		width:         width,
		height:        height,
		maxHistory:    config.DefaultScrollbackLines,
		modes:         ansi.Modes{},
		followTail:    true,
		cellWidth:     config.DefaultCellWidth,
		cellHeight:    config.DefaultCellHeight,
		rendererScale: config.DefaultRendererScale,
	}
	t.lines = make([]Line, height)
	for i := range t.lines {
		t.lines[i] = newLine(width)
	}
	t.parser = ansi.NewParser()
	t.parser.SetParamsSize(parser.MaxParamsSize)
	t.parser.SetDataSize(256 * 1024)
	t.parser.SetHandler(ansi.Handler{
		Print:     t.handlePrint,
		Execute:   t.handleControl,
		HandleCsi: t.handleCsi,
		HandleOsc: t.handleOsc,
	})
	return t
}

// SetLogger sets the terminal's logger.
func (t *Term) SetLogger(l Logger) { t.logger = l }

// SetCallbacks sets the terminal's callbacks.
func (t *Term) SetCallbacks(cb Callbacks) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cb = cb
}

// SetInputWriter sets the sink for responses and forwarded input, normally
// the PTY. A nil writer drops them.
func (t *Term) SetInputWriter(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.input = w
}

// SetMaxHistoryLines caps the scrollback buffer.
func (t *Term) SetMaxHistoryLines(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 0 {
		n = 0
	}
	t.maxHistory = n
	t.trimHistoryLocked()
}

// SetReadOnly toggles read-only mode; a read-only terminal never forwards
// input to the application.
func (t *Term) SetReadOnly(ro bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.readOnly = ro
}

// SetCopyOnSelect toggles copy-on-select behavior for the selection model.
func (t *Term) SetCopyOnSelect(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.copyOnSelectOn = on
}

// SetCellMetrics installs the host's font cell size in device pixels and
// the renderer scale factor.
func (t *Term) SetCellMetrics(width, height, scale float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width > 0 {
		t.cellWidth = width
	}
	if height > 0 {
		t.cellHeight = height
	}
	if scale > 0 {
		t.rendererScale = scale
	}
}

// Title returns the window title set by the application via OSC 0/2.
func (t *Term) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title
}

// Size returns the terminal's width and height in cells.
func (t *Term) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// Write feeds application output through the ANSI parser.
func (t *Term) Write(p []byte) (int, error) {
	t.mu.Lock()
	for i := range p {
		t.parser.Advance(p[i])
	}
	damage := t.cb.Damage
	t.mu.Unlock()
	if damage != nil {
		damage()
	}
	return len(p), nil
}

// WriteString writes a string of application output.
func (t *Term) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// SendText forwards arbitrary text to the application.
func (t *Term) SendText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeInputLocked(text)
}

func (t *Term) writeInputLocked(s string) bool {
	if t.input == nil {
		return false
	}
	_, err := io.WriteString(t.input, s)
	return err == nil
}

func (t *Term) logf(format string, v ...any) {
	if t.logger != nil {
		t.logger.Printf(format, v...)
	}
}

func (t *Term) isModeSet(m ansi.Mode) bool {
	return t.modes[m] == ansi.ModeSet
}

// IsAltScreen reports whether the alternate screen buffer is active.
func (t *Term) IsAltScreen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isAltScreenLocked()
}

func (t *Term) isAltScreenLocked() bool {
	return t.isModeSet(ansi.ModeAltScreen) || t.isModeSet(ansi.ModeAltScreenSaveCursor)
}

func (t *Term) handlePrint(r rune) {
	if t.curX >= t.width {
		// Autowrap is on unless the application reset it.
		if t.modes[ansi.ModeAutoWrap] != ansi.ModeReset {
			t.curX = 0
			t.lineFeedLocked()
		} else {
			t.curX = t.width - 1
		}
	}
	if t.curY >= 0 && t.curY < t.height && t.curX >= 0 && t.curX < t.width {
		t.lines[t.curY][t.curX] = Cell{Rune: r, Link: t.curLink}
	}
	t.curX++
}

func (t *Term) handleControl(b byte) {
	switch b {
	case '\r':
		t.curX = 0
	case '\n', '\v', '\f':
		t.lineFeedLocked()
	case '\b':
		if t.curX > 0 {
			t.curX--
		}
	case '\t':
		t.curX = (t.curX/8 + 1) * 8
		if t.curX >= t.width {
			t.curX = t.width - 1
		}
	case 0x07: // BEL
		if t.cb.Bell != nil {
			t.cb.Bell()
		}
	}
}

// lineFeedLocked moves the cursor down, scrolling the viewport when it is
// already on the last row.
func (t *Term) lineFeedLocked() {
	if t.curY < t.height-1 {
		t.curY++
		return
	}
	t.scrollUpLocked()
}

// scrollUpLocked pushes the top viewport row into history. The alt screen
// keeps no history; its top row is simply discarded.
func (t *Term) scrollUpLocked() {
	top := t.lines[0]
	copy(t.lines, t.lines[1:])
	t.lines[t.height-1] = newLine(t.width)
	if !t.isAltScreenLocked() {
		t.history = append(t.history, top)
		t.trimHistoryLocked()
		if t.followTail {
			t.scrollOffset = float64(len(t.history))
		}
	}
}

func (t *Term) trimHistoryLocked() {
	if len(t.history) <= t.maxHistory {
		return
	}
	drop := len(t.history) - t.maxHistory
	t.history = t.history[drop:]
	t.sel.shiftRows(-drop)
	t.scrollOffset -= float64(drop)
	if t.scrollOffset < 0 {
		t.scrollOffset = 0
	}
}

func paramAt(params ansi.Params, i, def int) int {
	if i < 0 || i >= len(params) {
		return def
	}
	return params[i].Param(def)
}

func (t *Term) handleCsi(cmd ansi.Cmd, params ansi.Params) {
	switch cmd.Final() {
	case 'A': // CUU
		t.curY -= max(1, paramAt(params, 0, 1))
		if t.curY < 0 {
			t.curY = 0
		}
	case 'B': // CUD
		t.curY += max(1, paramAt(params, 0, 1))
		if t.curY >= t.height {
			t.curY = t.height - 1
		}
	case 'C': // CUF
		t.curX += max(1, paramAt(params, 0, 1))
		if t.curX >= t.width {
			t.curX = t.width - 1
		}
	case 'D': // CUB
		t.curX -= max(1, paramAt(params, 0, 1))
		if t.curX < 0 {
			t.curX = 0
		}
	case 'G': // CHA
		t.curX = clamp(paramAt(params, 0, 1)-1, 0, t.width-1)
	case 'd': // VPA
		t.curY = clamp(paramAt(params, 0, 1)-1, 0, t.height-1)
	case 'H', 'f': // CUP / HVP
		t.curY = clamp(paramAt(params, 0, 1)-1, 0, t.height-1)
		t.curX = clamp(paramAt(params, 1, 1)-1, 0, t.width-1)
	case 'J':
		t.eraseDisplayLocked(paramAt(params, 0, 0))
	case 'K':
		t.eraseLineLocked(paramAt(params, 0, 0))
	case 'h':
		if cmd.Prefix() == '?' {
			t.setDecModeLocked(ansi.DECMode(paramAt(params, 0, 0)), true)
		}
	case 'l':
		if cmd.Prefix() == '?' {
			t.setDecModeLocked(ansi.DECMode(paramAt(params, 0, 0)), false)
		}
	case 'm':
		// Styling is left to the host renderer.
	case 's':
		t.savedX, t.savedY = t.curX, t.curY
	case 'u':
		t.curX, t.curY = t.savedX, t.savedY
	default:
		t.logf("unhandled sequence: CSI %q", cmd.Final())
	}
}

func (t *Term) eraseDisplayLocked(mode int) {
	switch mode {
	case 0:
		t.eraseLineLocked(0)
		for y := t.curY + 1; y < t.height; y++ {
			t.lines[y].clear(0, t.width)
		}
	case 1:
		t.eraseLineLocked(1)
		for y := 0; y < t.curY; y++ {
			t.lines[y].clear(0, t.width)
		}
	case 2:
		for y := range t.lines {
			t.lines[y].clear(0, t.width)
		}
	case 3:
		t.history = nil
		t.sel.clear()
		t.scrollOffset = 0
		t.followTail = true
	}
}

func (t *Term) eraseLineLocked(mode int) {
	if t.curY < 0 || t.curY >= t.height {
		return
	}
	switch mode {
	case 0:
		t.lines[t.curY].clear(t.curX, t.width)
	case 1:
		t.lines[t.curY].clear(0, t.curX+1)
	case 2:
		t.lines[t.curY].clear(0, t.width)
	}
}

// setDecModeLocked tracks a DECSET/DECRST change. Mouse, paste, and screen
// modes are recorded; the alt-screen modes additionally swap buffers.
func (t *Term) setDecModeLocked(mode ansi.DECMode, set bool) {
	switch mode {
	case ansi.ModeMouseX10, ansi.ModeMouseNormal, ansi.ModeMouseHighlight,
		ansi.ModeMouseButtonEvent, ansi.ModeMouseAnyEvent,
		ansi.ModeMouseExtSgr, ansi.ModeBracketedPaste, ansi.ModeAutoWrap:
	case ansi.ModeAltScreen, ansi.ModeAltScreenSaveCursor:
		t.switchAltScreenLocked(mode, set)
	default:
		t.logf("unhandled mode: ?%d", mode.Mode())
		return
	}
	if set {
		t.modes[mode] = ansi.ModeSet
	} else {
		t.modes[mode] = ansi.ModeReset
	}
}

func (t *Term) switchAltScreenLocked(mode ansi.DECMode, set bool) {
	wasAlt := t.isAltScreenLocked()
	if set && !wasAlt {
		if mode == ansi.ModeAltScreenSaveCursor {
			t.savedX, t.savedY = t.curX, t.curY
		}
		t.altLines = t.lines
		t.lines = make([]Line, t.height)
		for i := range t.lines {
			t.lines[i] = newLine(t.width)
		}
		t.curX, t.curY = 0, 0
		t.sel.clear()
	} else if !set && wasAlt && t.altLines != nil {
		t.lines = t.altLines
		t.altLines = nil
		if mode == ansi.ModeAltScreenSaveCursor {
			t.curX, t.curY = t.savedX, t.savedY
		}
		t.sel.clear()
	}
}

func (t *Term) handleOsc(cmd int, data []byte) {
	switch cmd {
	case 0, 2: // window title
		parts := bytes.SplitN(data, []byte{';'}, 2)
		if len(parts) != 2 {
			return
		}
		t.title = string(parts[1])
		if t.cb.Title != nil {
			t.cb.Title(t.title)
		}
	case 8: // hyperlink
		parts := bytes.Split(data, []byte{';'})
		if len(parts) != 3 {
			return
		}
		t.curLink = string(parts[2])
	default:
		t.logf("unhandled sequence: OSC %q", data)
	}
}

// Resize resizes the terminal viewport, clamping the cursor and dropping
// any selection whose coordinates no longer fit.
func (t *Term) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = resizeGrid(t.lines, width, height)
	if t.altLines != nil {
		t.altLines = resizeGrid(t.altLines, width, height)
	}
	for i := range t.history {
		t.history[i] = t.history[i].resize(width)
	}
	t.width, t.height = width, height
	t.curX = clamp(t.curX, 0, width-1)
	t.curY = clamp(t.curY, 0, height-1)
	t.sel.clear()
	if t.followTail {
		t.scrollOffset = float64(len(t.history))
	}
}

func resizeGrid(g []Line, width, height int) []Line {
	out := make([]Line, height)
	for i := range out {
		if i < len(g) {
			out[i] = g[i].resize(width)
		} else {
			out[i] = newLine(width)
		}
	}
	return out
}

// PasteText delivers pasted text to the application, bracketed when the
// application enabled bracketed paste mode.
func (t *Term) PasteText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.readOnly {
		return
	}
	if t.isModeSet(ansi.ModeBracketedPaste) {
		t.writeInputLocked(ansi.BracketedPasteStart)
		t.writeInputLocked(text)
		t.writeInputLocked(ansi.BracketedPasteEnd)
		return
	}
	t.writeInputLocked(text)
}

// CopyOnSelect reports whether a finished selection should be copied
// automatically.
func (t *Term) CopyOnSelect() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyOnSelectOn
}

// IsInReadOnlyMode reports whether the terminal refuses application input.
func (t *Term) IsInReadOnlyMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readOnly
}

// FontCellSize returns the cell size in device pixels.
func (t *Term) FontCellSize() (float64, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cellWidth, t.cellHeight
}

// RendererScale returns the display scale factor.
func (t *Term) RendererScale() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rendererScale
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
