package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/invoiceflow/internal/domain"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDashboard(cmd)
	},
}

// printDashboard writes the metric cards and recent invoices as plain text
func printDashboard(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	d, err := appInstance.DashboardService.GetDashboard(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	m := d.Metrics
	fmt.Fprintf(out, "Pending invoices:  %d (%s)\n", m.PendingCount, domain.FormatAmount(m.PendingAmount))
	fmt.Fprintf(out, "Approved:          %d (%s)\n", m.ApprovedCount, domain.FormatAmount(m.ApprovedAmount))
	fmt.Fprintf(out, "Rejected:          %d (%s)\n", m.RejectedCount, domain.FormatAmount(m.RejectedAmount))
	fmt.Fprintf(out, "Needs attention:   %d\n", m.FlaggedCount)
	if d.DefaultMethod != nil {
		fmt.Fprintf(out, "Default payment:   %s\n", d.DefaultMethod.Label())
	} else {
		fmt.Fprintln(out, "Default payment:   none")
	}
	fmt.Fprintln(out)

	if len(d.Recent) > 0 {
		fmt.Fprintln(out, "Recent invoices")
		printInvoiceTable(out, d.Recent)
	}
	return nil
}
