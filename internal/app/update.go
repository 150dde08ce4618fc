package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/dodorz/interactty/internal/interaction"
)

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.session == nil {
			cmds = append(cmds, a.startSession())
		} else {
			w, h := a.contentSize()
			a.session.Resize(w, h)
		}

	case tea.KeyPressMsg:
		cmds = append(cmds, a.handleKeyPress(msg))

	case tea.FocusMsg:
		a.focused = true
	case tea.BlurMsg:
		a.focused = false

	case tea.MouseClickMsg:
		a.handleMouseClick(msg)
	case tea.MouseReleaseMsg:
		a.handleMouseRelease(msg)
	case tea.MouseMotionMsg:
		a.handleMouseMotion(msg)
	case tea.MouseWheelMsg:
		a.handleMouseWheel(msg)

	case tea.PasteMsg:
		// Bracketed paste from the host terminal goes straight to the
		// shell.
		if a.session != nil {
			a.session.Term.PasteText(msg.Content)
		}

	case tea.ClipboardMsg:
		// OSC 52 read response; resolves the outstanding paste request.
		if a.pendingPaste != nil {
			deliver := a.pendingPaste
			a.pendingPaste = nil
			deliver(msg.Content)
		}

	case outputMsg:
		if a.session != nil {
			cmds = append(cmds, a.session.Listen())
		}

	case shellExitedMsg:
		return a, tea.Quit

	case notificationExpiredMsg:
		a.notification = ""
	}

	cmds = append(cmds, a.queuedCmds()...)
	return a, tea.Batch(cmds...)
}

// handleKeyPress routes host shortcuts and forwards everything else to the
// shell as raw bytes.
func (a *App) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	if a.session == nil {
		return nil
	}

	switch msg.String() {
	case "ctrl+shift+c":
		// Falls through to the shell when there is nothing to copy, so a
		// plain interrupt still works for shells bound to it.
		if a.ia.CopySelection(a.cfg.Interaction.SingleLineCopy, interaction.CopyFormatAuto) {
			return nil
		}
	case "ctrl+shift+v":
		a.ia.PasteFromClipboard()
		return nil
	case "shift+pgup":
		term := a.session.Term
		_, h := term.Size()
		term.UserScrollViewport(term.ScrollOffset() - float64(h))
		return nil
	case "shift+pgdown":
		term := a.session.Term
		_, h := term.Size()
		term.UserScrollViewport(term.ScrollOffset() + float64(h))
		return nil
	}

	if a.cfg.Terminal.ReadOnly {
		return nil
	}
	raw := keyBytes(msg)
	if len(raw) == 0 {
		return nil
	}
	// Typing jumps the viewport back to the live screen.
	term := a.session.Term
	term.UserScrollViewport(term.MaxScrollOffset())
	_ = a.session.WriteInput(raw)
	return nil
}
