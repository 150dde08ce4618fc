// Package app implements the interactive terminal host: a Bubble Tea model
// that runs a shell in a virtual terminal and routes every pointer event
// through the interaction layer for selection, clipboard, hyperlink, and
// mouse-forwarding behavior.
package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/dodorz/interactty/internal/config"
	"github.com/dodorz/interactty/internal/interaction"
	"github.com/dodorz/interactty/internal/pointer"
	"github.com/dodorz/interactty/internal/vt"
)

// notificationExpiredMsg clears the transient status-line notification.
type notificationExpiredMsg struct{}

// App is the host model. The shell session is started on the first window
// size message, once the usable cell area is known.
type App struct {
	cfg *config.UserConfig

	session *Session
	ia      *interaction.Interactivity

	width, height int
	focused       bool
	held          pointer.Buttons
	metrics       pointer.CellMetrics

	// Clipboard plumbing. The interaction layer hands us a continuation
	// for paste requests; we resolve it when the host terminal answers
	// the OSC 52 read with a ClipboardMsg.
	pendingPaste  func(string)
	readClipboard bool
	setClipboard  string
	haveCopy      bool

	openURL string

	notification string

	startErr error
}

// New returns an App bound to the given configuration.
func New(cfg *config.UserConfig) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &App{
		cfg:     cfg,
		focused: true,
		metrics: pointer.CellMetrics{
			CellWidth:  config.DefaultCellWidth,
			CellHeight: config.DefaultCellHeight,
		},
	}
}

// Init implements tea.Model. The session starts once the first
// WindowSizeMsg arrives.
func (a *App) Init() tea.Cmd {
	return nil
}

// Session exposes the running shell session, nil before the first resize.
func (a *App) Session() *Session {
	return a.session
}

// Cleanup terminates the shell. Call after the program finishes.
func (a *App) Cleanup() {
	if a.session != nil {
		a.session.Close()
	}
}

// contentSize returns the terminal cell area inside the window chrome: a
// one-cell border on each side plus the status line at the bottom.
func (a *App) contentSize() (int, int) {
	w := a.width - 2
	h := a.height - 3
	if w < config.MinTerminalWidth {
		w = config.MinTerminalWidth
	}
	if h < config.MinTerminalHeight {
		h = config.MinTerminalHeight
	}
	return w, h
}

func (a *App) startSession() tea.Cmd {
	w, h := a.contentSize()
	session, err := StartSession(a.cfg, w, h)
	if err != nil {
		a.startErr = err
		return tea.Quit
	}
	a.session = session

	term := session.Term
	// Only the Copy callback is wired: it fires synchronously from
	// clipboard copies on the UI goroutine. Title is polled during render,
	// and repaints ride on the session's output events.
	term.SetCallbacks(vt.Callbacks{
		Copy: func(text string) {
			a.setClipboard = text
			a.haveCopy = true
		},
	})

	a.ia = interaction.New(term, interaction.Options{
		MultiClickInterval: time.Duration(a.cfg.Interaction.MultiClickIntervalMs) * time.Millisecond,
		WheelScrollRows:    a.cfg.Interaction.WheelScrollRows,
		SingleLineCopy:     a.cfg.Interaction.SingleLineCopy,
	})
	a.ia.SetMetrics(interaction.Metrics{
		CellWidth:  a.metrics.CellWidth,
		CellHeight: a.metrics.CellHeight,
		Scale:      config.DefaultRendererScale,
	})
	a.ia.OnOpenHyperlink = func(uri string) {
		a.openURL = uri
	}
	a.ia.OnPasteRequest = func(deliver func(string)) {
		a.pendingPaste = deliver
		a.readClipboard = true
	}

	return session.Listen()
}

// StartError returns the error that aborted session startup, if any.
func (a *App) StartError() error {
	return a.startErr
}

func (a *App) notify(message string) tea.Cmd {
	a.notification = message
	return tea.Tick(config.NotificationDuration, func(time.Time) tea.Msg {
		return notificationExpiredMsg{}
	})
}

// queuedCmds drains the side effects the interaction callbacks accumulated
// during this update: clipboard writes, clipboard reads, and hyperlink
// opens.
func (a *App) queuedCmds() []tea.Cmd {
	var cmds []tea.Cmd
	if a.haveCopy {
		cmds = append(cmds, tea.SetClipboard(a.setClipboard))
		cmds = append(cmds, a.notify("copied selection"))
		a.haveCopy = false
		a.setClipboard = ""
	}
	if a.readClipboard {
		cmds = append(cmds, tea.ReadClipboard)
		a.readClipboard = false
	}
	if a.openURL != "" {
		cmds = append(cmds, openURLCmd(a.openURL))
		cmds = append(cmds, a.notify("opening "+a.openURL))
		a.openURL = ""
	}
	return cmds
}
