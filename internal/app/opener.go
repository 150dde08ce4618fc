package app

import (
	"os/exec"
	"runtime"

	tea "charm.land/bubbletea/v2"
)

// openURLCmd launches the platform URL handler for a hyperlink the user
// activated with ctrl+click.
func openURLCmd(uri string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", uri)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
		default:
			cmd = exec.Command("xdg-open", uri)
		}
		// Detach; we don't care whether the handler succeeds.
		_ = cmd.Start()
		return nil
	}
}
