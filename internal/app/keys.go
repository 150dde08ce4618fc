package app

import tea "charm.land/bubbletea/v2"

// keyBytes encodes a key press as the raw bytes a shell expects on its
// PTY. Keys with no terminal encoding return nil.
func keyBytes(msg tea.KeyPressMsg) []byte {
	switch msg.Code {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyTab:
		if msg.Mod&tea.ModShift != 0 {
			return []byte("\x1b[Z")
		}
		return []byte{'\t'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyEscape:
		return []byte{0x1b}
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyHome:
		return []byte("\x1b[H")
	case tea.KeyEnd:
		return []byte("\x1b[F")
	case tea.KeyInsert:
		return []byte("\x1b[2~")
	case tea.KeyDelete:
		return []byte("\x1b[3~")
	case tea.KeyPgUp:
		return []byte("\x1b[5~")
	case tea.KeyPgDown:
		return []byte("\x1b[6~")
	case tea.KeyF1:
		return []byte("\x1bOP")
	case tea.KeyF2:
		return []byte("\x1bOQ")
	case tea.KeyF3:
		return []byte("\x1bOR")
	case tea.KeyF4:
		return []byte("\x1bOS")
	case tea.KeyF5:
		return []byte("\x1b[15~")
	case tea.KeyF6:
		return []byte("\x1b[17~")
	case tea.KeyF7:
		return []byte("\x1b[18~")
	case tea.KeyF8:
		return []byte("\x1b[19~")
	case tea.KeyF9:
		return []byte("\x1b[20~")
	case tea.KeyF10:
		return []byte("\x1b[21~")
	case tea.KeyF11:
		return []byte("\x1b[23~")
	case tea.KeyF12:
		return []byte("\x1b[24~")
	}

	// Ctrl+letter and friends map into the C0 range.
	if msg.Mod&tea.ModCtrl != 0 {
		c := msg.Code
		switch {
		case c >= 'a' && c <= 'z':
			return []byte{byte(c) - 'a' + 1}
		case c >= 'A' && c <= 'Z':
			return []byte{byte(c) - 'A' + 1}
		case c == ' ' || c == '@':
			return []byte{0x00}
		case c == '[':
			return []byte{0x1b}
		case c == '\\':
			return []byte{0x1c}
		case c == ']':
			return []byte{0x1d}
		case c == '^':
			return []byte{0x1e}
		case c == '_' || c == '/':
			return []byte{0x1f}
		}
		return nil
	}

	if msg.Text == "" {
		return nil
	}
	if msg.Mod&tea.ModAlt != 0 {
		return append([]byte{0x1b}, msg.Text...)
	}
	return []byte(msg.Text)
}
