package app

import (
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	xpty "github.com/charmbracelet/x/xpty"
	"github.com/google/uuid"

	"github.com/dodorz/interactty/internal/config"
	"github.com/dodorz/interactty/internal/vt"
)

// Cache for the terminal environment (detect once, reuse for every shell).
var (
	localTermType  string
	localColorTerm string
	localEnvOnce   sync.Once
)

// outputMsg signals that the shell produced output and the screen needs a
// repaint.
type outputMsg struct{}

// shellExitedMsg signals that the shell process ended.
type shellExitedMsg struct{}

// Session owns one shell process: its PTY, the virtual terminal fed by the
// PTY, and the goroutines shuttling bytes between them.
type Session struct {
	ID   string
	Term *vt.Term
	Pty  xpty.Pty
	Cmd  *exec.Cmd

	events chan tea.Msg
	closed atomic.Bool
}

// StartSession spawns a shell on a fresh PTY driving a virtual terminal of
// the given size.
func StartSession(cfg *config.UserConfig, width, height int) (*Session, error) {
	s := &Session{
		ID:     uuid.New().String(),
		events: make(chan tea.Msg, 16),
	}

	term := vt.NewTerm(width, height)
	term.SetMaxHistoryLines(cfg.Terminal.ScrollbackLines)
	term.SetReadOnly(cfg.Terminal.ReadOnly)
	term.SetCopyOnSelect(cfg.Interaction.CopyOnSelect)
	if os.Getenv("INTERACTTY_DEBUG") == "1" {
		term.SetLogger(log.New(os.Stderr, "vt: ", log.LstdFlags))
	}
	s.Term = term

	shell := detectShell(cfg)
	// #nosec G204 - the shell is intentionally user-controlled
	cmd := exec.Command(shell)

	termType, colorTerm := getTerminalEnv()
	cmd.Env = append(os.Environ(),
		"TERM="+termType,
		"COLORTERM="+colorTerm,
		"TERM_PROGRAM=interactty",
		"INTERACTTY_SESSION_ID="+s.ID,
	)

	pty, err := xpty.NewPty(width, height)
	if err != nil {
		return nil, err
	}
	if err := pty.Start(cmd); err != nil {
		_ = pty.Close()
		return nil, err
	}
	// Some PTY implementations only accept a resize once the process runs.
	_ = pty.Resize(width, height)

	s.Pty = pty
	s.Cmd = cmd
	term.SetInputWriter(pty)

	// Shell output to terminal.
	go func() {
		buf := make([]byte, 32*1024)
		for {
			n, err := pty.Read(buf)
			if n > 0 {
				_, _ = term.Write(buf[:n])
				s.notify(outputMsg{})
			}
			if err != nil {
				return
			}
		}
	}()

	// Process lifecycle.
	go func() {
		_ = cmd.Wait()
		s.notify(shellExitedMsg{})
	}()

	return s, nil
}

// notify queues an event for the UI, dropping it when a repaint is already
// pending.
func (s *Session) notify(msg tea.Msg) {
	if s.closed.Load() {
		return
	}
	select {
	case s.events <- msg:
	default:
	}
}

// Listen returns a command that delivers the session's next event.
func (s *Session) Listen() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-s.events
		if !ok {
			return nil
		}
		return msg
	}
}

// WriteInput forwards raw input bytes to the shell.
func (s *Session) WriteInput(p []byte) error {
	if s.closed.Load() || s.Pty == nil {
		return io.ErrClosedPipe
	}
	_, err := s.Pty.Write(p)
	return err
}

// Resize resizes both the PTY and the virtual terminal.
func (s *Session) Resize(width, height int) {
	if width < config.MinTerminalWidth {
		width = config.MinTerminalWidth
	}
	if height < config.MinTerminalHeight {
		height = config.MinTerminalHeight
	}
	s.Term.Resize(width, height)
	if s.Pty != nil {
		_ = s.Pty.Resize(width, height)
	}
}

// Close terminates the shell and releases the PTY.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	if s.Cmd != nil && s.Cmd.Process != nil {
		_ = s.Cmd.Process.Kill()
	}
	if s.Pty != nil {
		_ = s.Pty.Close()
	}
}

func detectShell(cfg *config.UserConfig) string {
	if cfg != nil && cfg.Terminal.PreferredShell != "" {
		preferred := cfg.Terminal.PreferredShell
		if runtime.GOOS == "windows" {
			if _, err := exec.LookPath(preferred); err == nil {
				return preferred
			}
		} else if _, err := os.Stat(preferred); err == nil {
			return preferred
		}
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}

	if runtime.GOOS == "windows" {
		for _, shell := range []string{"powershell.exe", "pwsh.exe", "cmd.exe"} {
			if _, err := exec.LookPath(shell); err == nil {
				return shell
			}
		}
		return "cmd.exe"
	}

	for _, shell := range []string{"/bin/bash", "/bin/zsh", "/bin/fish", "/bin/sh"} {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}

// getTerminalEnv returns TERM and COLORTERM values for the shells we spawn,
// cached after first detection.
func getTerminalEnv() (termType, colorTerm string) {
	localEnvOnce.Do(func() {
		profile := colorprofile.Detect(os.Stdout, os.Environ())
		localTermType, localColorTerm = profileToEnv(profile)
	})
	return localTermType, localColorTerm
}

// profileToEnv converts a detected color profile to TERM and COLORTERM
// values, preserving the parent TERM where it is more specific.
func profileToEnv(profile colorprofile.Profile) (termType, colorTerm string) {
	parentTerm := os.Getenv("TERM")

	switch profile {
	case colorprofile.TrueColor:
		if parentTerm != "" {
			termType = parentTerm
		} else {
			termType = "xterm-256color"
		}
		colorTerm = "truecolor"
	case colorprofile.ANSI256:
		switch {
		case strings.Contains(parentTerm, "256color"):
			termType = parentTerm
		case strings.HasPrefix(parentTerm, "screen"):
			termType = "screen-256color"
		case strings.HasPrefix(parentTerm, "tmux"):
			termType = "tmux-256color"
		default:
			termType = "xterm-256color"
		}
	case colorprofile.ANSI:
		if parentTerm != "" && parentTerm != "dumb" {
			termType = parentTerm
		} else {
			termType = "xterm"
		}
	case colorprofile.Ascii, colorprofile.NoTTY:
		termType = "dumb"
	default:
		termType = "xterm-256color"
	}
	return termType, colorTerm
}
