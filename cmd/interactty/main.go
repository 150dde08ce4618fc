// Package main implements interactty, a terminal host with rich pointer
// interactions: multi-click selection, VT mouse passthrough, touch panning,
// and ctrl+click hyperlink activation for the hosted shell.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode          bool
	copyOnSelect       bool
	singleLineCopy     bool
	readOnly           bool
	shellOverride      string
	scrollbackLines    int
	multiClickInterval int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "interactty",
		Short: "Terminal host with rich pointer interactions",
		Long: `interactty hosts a shell inside your terminal and layers desktop-grade
pointer handling on top of it: word and line selection by multi-click,
drag selection with copy shortcuts, mouse-mode passthrough for TUI
programs, touch panning through scrollback, and ctrl+click to open
hyperlinks.`,
		Example: `  # Run interactty
  interactty

  # Copy text as soon as it is selected
  interactty --copy-on-select

  # Host a specific shell
  interactty --shell /usr/bin/fish

  # Watch output without being able to type
  interactty --read-only`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&copyOnSelect, "copy-on-select", false, "Copy the selection to the clipboard as soon as the mouse is released")
	rootCmd.PersistentFlags().BoolVar(&singleLineCopy, "single-line-copy", false, "Collapse multi-row copies into a single line")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Block keyboard and paste input to the hosted shell")
	rootCmd.PersistentFlags().StringVar(&shellOverride, "shell", "", "Shell to host (default: from config or $SHELL)")
	rootCmd.PersistentFlags().IntVar(&scrollbackLines, "scrollback-lines", 0, "Number of lines to keep in scrollback (default: from config or 10000)")
	rootCmd.PersistentFlags().IntVar(&multiClickInterval, "multi-click-interval", 0, "Multi-click window in milliseconds (default: from config or 500)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage interactty configuration",
		Long:  `Manage the interactty configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the interactty configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
