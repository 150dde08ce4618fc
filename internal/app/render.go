package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

var (
	borderFocused   = lipgloss.Color("12")
	borderUnfocused = lipgloss.Color("8")
	selectionStyle  = lipgloss.NewStyle().Reverse(true)
	hyperlinkStyle  = lipgloss.NewStyle().Underline(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// View implements tea.Model.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.ReportFocus = true

	if a.session == nil {
		if a.startErr != nil {
			view.SetContent("failed to start shell: " + a.startErr.Error())
		} else {
			view.SetContent("starting shell...")
		}
		return view
	}

	borderColor := borderUnfocused
	if a.focused {
		borderColor = borderFocused
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Render(a.renderTerminal())

	canvas := lipgloss.NewCanvas(
		lipgloss.NewLayer(box).X(0).Y(0).Z(0).ID(a.session.ID),
		lipgloss.NewLayer(a.renderStatusLine()).X(0).Y(a.height-1).Z(1).ID("status"),
	)
	view.SetContent(lipgloss.Sprint(canvas.Render()))

	// Forward all motion so hover affordances and drag selection both work;
	// the interaction layer decides what the child application sees.
	view.MouseMode = tea.MouseModeAllMotion
	view.Cursor = a.terminalCursor()

	return view
}

// renderTerminal renders the visible viewport with the selection shown in
// reverse video and hovered hyperlinks underlined.
func (a *App) renderTerminal() string {
	term := a.session.Term
	lines := term.VisibleLines()
	hoveredLink := term.HoveredHyperlink()

	var b strings.Builder
	for y, line := range lines {
		if y > 0 {
			b.WriteByte('\n')
		}
		// Group runs of cells that share styling so styles wrap whole
		// spans instead of single runes.
		var run strings.Builder
		var runSelected, runLinked bool
		flush := func() {
			if run.Len() == 0 {
				return
			}
			text := run.String()
			switch {
			case runSelected:
				b.WriteString(selectionStyle.Render(text))
			case runLinked:
				b.WriteString(hyperlinkStyle.Render(text))
			default:
				b.WriteString(text)
			}
			run.Reset()
		}
		for x, cell := range line {
			selected := term.Selected(uv.Pos(x, y))
			linked := cell.Link != "" && cell.Link == hoveredLink
			if x > 0 && (selected != runSelected || linked != runLinked) {
				flush()
			}
			runSelected, runLinked = selected, linked
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			run.WriteRune(r)
		}
		flush()
	}
	return b.String()
}

// renderStatusLine draws the bottom status bar: title, scrollback position,
// mode flags, and any transient notification.
func (a *App) renderStatusLine() string {
	term := a.session.Term

	title := term.Title()
	if title == "" {
		title = "interactty"
	}

	var flags []string
	if a.cfg.Terminal.ReadOnly {
		flags = append(flags, "read-only")
	}
	if a.cfg.Interaction.CopyOnSelect {
		flags = append(flags, "copy-on-select")
	}
	if term.IsVtMouseModeEnabled() {
		flags = append(flags, "mouse")
	}

	offset, top := term.ScrollOffset(), term.MaxScrollOffset()
	scroll := ""
	if offset < top {
		scroll = fmt.Sprintf(" [scroll %d/%d]", int(offset), int(top))
	}

	left := statusStyle.Render(title + scroll)
	if len(flags) > 0 {
		left += statusStyle.Render(" (" + strings.Join(flags, ", ") + ")")
	}
	if a.notification != "" {
		left += " " + noticeStyle.Render(a.notification)
	}
	return left
}

// terminalCursor returns the host cursor placed over the shell's cursor
// cell, or nil while scrolled back or unfocused.
func (a *App) terminalCursor() *tea.Cursor {
	if !a.focused {
		return nil
	}
	pos, ok := a.session.Term.VisibleCursor()
	if !ok {
		return nil
	}
	// +1 for the border on each axis.
	return tea.NewCursor(pos.X+1, pos.Y+1)
}
