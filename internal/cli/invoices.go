package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/service"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Review invoices",
	Long:  `List, inspect, approve, and reject invoices in the review queue.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		// Parse filters
		var statuses []domain.InvoiceStatus
		raw, _ := cmd.Flags().GetStringSlice("status")
		for _, s := range raw {
			status, err := domain.ParseInvoiceStatus(s)
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}

		invoices, err := appInstance.InvoiceService.ListInvoices(ctx, statuses...)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		if len(invoices) == 0 {
			fmt.Fprintln(out, "No invoices found")
			return nil
		}

		printInvoiceTable(out, invoices)
		fmt.Fprintf(out, "\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [invoice_id]",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		invoice, err := appInstance.InvoiceService.GetInvoice(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}

		changes, err := appInstance.InvoiceService.StatusHistory(ctx, invoice.ID)
		if err != nil {
			return fmt.Errorf("failed to load status history: %w", err)
		}

		title := invoice.InvoiceNumber
		if title == "" {
			title = "#" + invoice.ID
		}

		fmt.Fprintln(out, strings.Repeat("=", 80))
		fmt.Fprintf(out, "Invoice: %s\n", title)
		fmt.Fprintln(out, strings.Repeat("=", 80))
		fmt.Fprintf(out, "Vendor:       %s\n", invoice.Vendor)
		printIfSet(out, "Address:", invoice.VendorAddress)
		printIfSet(out, "Tax ID:", invoice.VendorTaxID)
		fmt.Fprintf(out, "Amount:       %s\n", invoice.Amount)
		fmt.Fprintf(out, "Date:         %s\n", invoice.Date)
		printIfSet(out, "Due:", invoice.DueDate)
		fmt.Fprintf(out, "Status:       %s\n", invoice.Status.Label())
		fmt.Fprintf(out, "Verification: %s\n", invoice.VerificationStatus.Label())
		printIfSet(out, "Department:", invoice.Department)
		printIfSet(out, "Cost center:", invoice.CostCenter)
		printIfSet(out, "File:", string(invoice.FileType))
		fmt.Fprintln(out)

		if len(invoice.LineItems) > 0 {
			fmt.Fprintln(out, "Line Items:")
			fmt.Fprintln(out, strings.Repeat("-", 80))
			fmt.Fprintf(out, "%-40s %8s %14s %14s\n", "Description", "Qty", "Unit Price", "Total")
			fmt.Fprintln(out, strings.Repeat("-", 80))
			for _, item := range invoice.LineItems {
				fmt.Fprintf(out, "%-40s %8d %14s %14s\n",
					truncate(item.Description, 40),
					item.Quantity,
					item.UnitPrice,
					item.Total,
				)
			}
			fmt.Fprintln(out, strings.Repeat("-", 80))
			fmt.Fprintln(out)
		}

		if len(invoice.Comments) > 0 {
			fmt.Fprintln(out, "Comments:")
			for _, c := range invoice.Comments {
				fmt.Fprintf(out, "  [%s] %s\n", c.CreatedAt.Format("15:04"), c.Body)
			}
			fmt.Fprintln(out)
		}

		if len(changes) > 0 {
			fmt.Fprintln(out, "Status changes:")
			for _, ch := range changes {
				fmt.Fprintf(out, "  [%s] %s -> %s\n", ch.ChangedAt.Format("15:04"), ch.From.Label(), ch.To.Label())
			}
		}

		if next := domain.NextStatuses(invoice.Status); len(next) == 0 {
			fmt.Fprintln(out, "This invoice has been decided.")
		}
		fmt.Fprintln(out, strings.Repeat("=", 80))
		return nil
	},
}

var invoicesApproveCmd = &cobra.Command{
	Use:   "approve [invoice_id...]",
	Short: "Approve one or more invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return decideInvoices(cmd, args, domain.InvoiceStatusApproved)
	},
}

var invoicesRejectCmd = &cobra.Command{
	Use:   "reject [invoice_id...]",
	Short: "Reject one or more invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return decideInvoices(cmd, args, domain.InvoiceStatusRejected)
	},
}

var invoicesCommentCmd = &cobra.Command{
	Use:   "comment [invoice_id] [text...]",
	Short: "Add a comment to an invoice",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		comment, err := appInstance.InvoiceService.AddComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Comment added to invoice %s\n", comment.InvoiceID)
		return nil
	},
}

var invoicesHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show approved and rejected invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		history, err := appInstance.InvoiceService.History(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		fmt.Fprintf(out, "Approved (%d)\n", len(history.Approved))
		if len(history.Approved) > 0 {
			printInvoiceTable(out, history.Approved)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Rejected (%d)\n", len(history.Rejected))
		if len(history.Rejected) > 0 {
			printInvoiceTable(out, history.Rejected)
		}
		return nil
	},
}

// decideInvoices approves or rejects the given ids, or every open invoice with --all
func decideInvoices(cmd *cobra.Command, args []string, status domain.InvoiceStatus) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	svc := appInstance.InvoiceService

	all, _ := cmd.Flags().GetBool("all")
	switch {
	case all && len(args) > 0:
		return fmt.Errorf("pass invoice IDs or --all, not both")
	case !all && len(args) == 0:
		return fmt.Errorf("no invoice IDs given (use --all for every open invoice)")
	}

	// A single id mirrors the detail view; several ids mirror a bulk selection
	if len(args) == 1 {
		var err error
		if status == domain.InvoiceStatusApproved {
			err = svc.Approve(ctx, args[0])
		} else {
			err = svc.Reject(ctx, args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ %s\n", singleDecisionMessage(status))
		return nil
	}

	ids := args
	if all {
		open, err := svc.ListInvoices(ctx, domain.InvoiceStatusPending, domain.InvoiceStatusReview)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}
		ids = domain.InvoiceIDs(open)
		if len(ids) == 0 {
			fmt.Fprintln(out, "No open invoices")
			return nil
		}
	}

	var (
		result *service.TransitionResult
		err    error
	)
	if status == domain.InvoiceStatusApproved {
		result, err = svc.ApproveMany(ctx, ids)
	} else {
		result, err = svc.RejectMany(ctx, ids)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ %s\n", bulkDecisionMessage(status, len(result.Matched), len(result.Skipped)))
	return nil
}

func singleDecisionMessage(status domain.InvoiceStatus) string {
	if status == domain.InvoiceStatusApproved {
		return "Invoice approved successfully"
	}
	return "Invoice rejected"
}

func bulkDecisionMessage(status domain.InvoiceStatus, n, skipped int) string {
	msg := fmt.Sprintf("%d invoice(s) %s", n, status)
	if skipped > 0 {
		msg += fmt.Sprintf(", %d already decided", skipped)
	}
	return msg
}

func printInvoiceTable(out io.Writer, invoices []domain.Invoice) {
	fmt.Fprintf(out, "%-5s %-28s %12s %-10s %-10s %-12s\n", "ID", "Vendor", "Amount", "Date", "Status", "Verification")
	fmt.Fprintln(out, strings.Repeat("-", 82))
	for _, inv := range invoices {
		fmt.Fprintf(out, "%-5s %-28s %12s %-10s %-10s %-12s\n",
			truncate(inv.ID, 5),
			truncate(inv.Vendor, 28),
			inv.Amount,
			truncate(inv.Date, 10),
			inv.Status.Label(),
			inv.VerificationStatus.Label(),
		)
	}
}

func printIfSet(out io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(out, "%-13s %s\n", label, value)
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesApproveCmd)
	invoicesCmd.AddCommand(invoicesRejectCmd)
	invoicesCmd.AddCommand(invoicesCommentCmd)
	invoicesCmd.AddCommand(invoicesHistoryCmd)

	// List flags
	invoicesListCmd.Flags().StringSlice("status", nil, "Filter by status (pending, review, approved, rejected)")

	// Decision flags
	invoicesApproveCmd.Flags().Bool("all", false, "Approve every pending or in-review invoice")
	invoicesRejectCmd.Flags().Bool("all", false, "Reject every pending or in-review invoice")
}
