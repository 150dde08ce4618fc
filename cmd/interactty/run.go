package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/dodorz/interactty/internal/app"
	"github.com/dodorz/interactty/internal/config"
	"golang.org/x/term"
)

// debugLogEvent appends pointer and key events to /tmp/interactty-events.log
// when INTERACTTY_DEBUG=1, to diagnose misrouted clicks and phantom keys.
func debugLogEvent(msg tea.Msg) {
	if os.Getenv("INTERACTTY_DEBUG") != "1" {
		return
	}

	var logLine string
	switch m := msg.(type) {
	case tea.KeyPressMsg:
		logLine = fmt.Sprintf("[%s] KEY key=%q code=%d mod=%d text=%q\n",
			time.Now().Format("15:04:05.000"), m.String(), m.Code, m.Mod, m.Text)
	case tea.MouseClickMsg:
		logLine = fmt.Sprintf("[%s] CLICK x=%d y=%d button=%d\n",
			time.Now().Format("15:04:05.000"), m.X, m.Y, m.Button)
	case tea.MouseReleaseMsg:
		logLine = fmt.Sprintf("[%s] RELEASE x=%d y=%d button=%d\n",
			time.Now().Format("15:04:05.000"), m.X, m.Y, m.Button)
	default:
		return
	}

	f, err := os.OpenFile("/tmp/interactty-events.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(logLine)
	_ = f.Close()
}

func filterEvents(_ tea.Model, msg tea.Msg) tea.Msg {
	debugLogEvent(msg)
	return msg
}

func runLocal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactty must be run in a terminal")
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		CopyOnSelect:         copyOnSelect,
		SingleLineCopy:       singleLineCopy,
		ReadOnly:             readOnly,
		Shell:                shellOverride,
		ScrollbackLines:      scrollbackLines,
		MultiClickIntervalMs: multiClickInterval,
	}, userConfig)

	if debugMode {
		_ = os.Setenv("INTERACTTY_DEBUG", "1")
		configPath, _ := config.GetConfigPath()
		log.Printf("Configuration: %s", configPath)
	}

	model := app.New(userConfig)

	p := tea.NewProgram(
		model,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterEvents),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if finalApp, ok := finalModel.(*app.App); ok {
		finalApp.Cleanup()
		if startErr := finalApp.StartError(); startErr != nil {
			return fmt.Errorf("failed to start shell: %w", startErr)
		}
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}

func printConfigPath() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to determine config path: %w", err)
	}
	fmt.Println(configPath)
	return nil
}
