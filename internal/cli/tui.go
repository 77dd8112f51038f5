package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/andy/invoiceflow/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal UI",
	Long: `Launch the interactive invoice review dashboard.

When stdout is not a terminal the dashboard summary is printed instead.`,
	RunE: launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) error {
	if !stdoutIsTerminal() {
		return printDashboard(cmd)
	}
	return tui.Run(cmd.Context(), appInstance)
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
