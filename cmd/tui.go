package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/tui"
)

var noAltScreen bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit contacts interactively",
	Long:  "Starts a terminal UI with live search, an add form, and remove/clear actions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// runTUI blocks until the user quits the terminal UI.
func runTUI(cmd *cobra.Command) error {
	opts := []tea.ProgramOption{
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if !noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	app.log.Info("starting tui", "backend", app.cfg.Storage.Backend)
	if _, err := tea.NewProgram(tui.New(cmd.Context(), app.contacts), opts...).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func init() {

	tuiCmd.Flags().BoolVar(&noAltScreen,
		"no-alt-screen", false, "Render inline instead of on the alternate screen")

	rootCmd.AddCommand(tuiCmd)
}
