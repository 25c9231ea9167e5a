package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/brandon-arrendondo/knots/internal/scan"
	"github.com/brandon-arrendondo/knots/internal/tui"
)

var tuiRecursive bool

var tuiCmd = &cobra.Command{
	Use:   "tui <path>",
	Short: "Browse the testability matrix interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVarP(&tuiRecursive, "recursive", "r", false, "recurse into directories")
}

func runTUI(cmd *cobra.Command, args []string) error {
	path := args[0]

	files, _, err := scan.Collect(path, tuiRecursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No .c/.h files found")
		return nil
	}

	result := scan.Run(context.Background(), files, nil)

	model := tui.NewModel(result.Functions)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
