package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/service"
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Manage payment methods",
	Long:  `List, add, remove, and choose the default payment method.`,
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payment methods",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		methods, err := appInstance.PaymentService.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list payment methods: %w", err)
		}

		if account := appInstance.Account; !account.IsZero() {
			fmt.Fprintf(out, "Account: %s <%s>\n", account.Name, account.Email)
			printIfSet(out, "Company:", account.Company)
			printIfSet(out, "Phone:", account.Phone)
			fmt.Fprintln(out)
		}

		if len(methods) == 0 {
			fmt.Fprintln(out, "No payment methods found")
			return nil
		}

		fmt.Fprintf(out, "%-38s %-8s %-32s %-10s %s\n", "ID", "Type", "Method", "Status", "Default")
		fmt.Fprintln(out, strings.Repeat("-", 98))
		for _, m := range methods {
			def := ""
			if m.IsDefault {
				def = "✓"
			}
			fmt.Fprintf(out, "%-38s %-8s %-32s %-10s %s\n",
				m.ID,
				m.Type,
				truncate(m.Label(), 32),
				m.Status,
				def,
			)
		}

		fmt.Fprintf(out, "\nTotal: %d payment method(s)\n", len(methods))
		return nil
	},
}

var paymentsDefaultCmd = &cobra.Command{
	Use:   "default [method_id]",
	Short: "Make a payment method the default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.PaymentService.SetDefault(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to set default: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Default payment method updated")
		return nil
	},
}

var paymentsRemoveCmd = &cobra.Command{
	Use:   "remove [method_id]",
	Short: "Remove a payment method",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.PaymentService.Remove(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to remove payment method: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Payment method removed")
		return nil
	},
}

var paymentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a payment method",
	Long: `Add a payment method. New methods start pending verification.

Examples:
  invoiceflow payments add --type card --brand Mastercard --last4 5454
  invoiceflow payments add --type bank --account "Payroll" --last4 1200
  invoiceflow payments add --type paypal --email ap@company.com
  invoiceflow payments add --type crypto --last4 9911`,
	RunE: func(cmd *cobra.Command, args []string) error {
		typeStr, _ := cmd.Flags().GetString("type")
		typ, err := domain.ParsePaymentMethodType(typeStr)
		if err != nil {
			return err
		}

		brand, _ := cmd.Flags().GetString("brand")
		last4, _ := cmd.Flags().GetString("last4")
		account, _ := cmd.Flags().GetString("account")
		email, _ := cmd.Flags().GetString("email")

		m, err := appInstance.PaymentService.Add(cmd.Context(), service.NewPaymentMethodInput{
			Type:        typ,
			Brand:       brand,
			Last4:       last4,
			AccountName: account,
			Email:       email,
		})
		if err != nil {
			return fmt.Errorf("failed to add payment method: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "✓ Payment method added (pending verification)")
		fmt.Fprintf(out, "  %s (%s)\n", m.Label(), m.ID)
		if m.IsDefault {
			fmt.Fprintln(out, "  Set as default")
		}
		return nil
	},
}

func init() {
	paymentsCmd.AddCommand(paymentsListCmd)
	paymentsCmd.AddCommand(paymentsDefaultCmd)
	paymentsCmd.AddCommand(paymentsRemoveCmd)
	paymentsCmd.AddCommand(paymentsAddCmd)

	// Add flags
	paymentsAddCmd.Flags().String("type", "", "Method type: card, bank, paypal, crypto (required)")
	paymentsAddCmd.MarkFlagRequired("type")
	paymentsAddCmd.Flags().String("brand", "", "Card brand (default Visa)")
	paymentsAddCmd.Flags().String("last4", "", "Last four digits of the card, account, or wallet")
	paymentsAddCmd.Flags().String("account", "", "Bank account name (default New Account)")
	paymentsAddCmd.Flags().String("email", "", "PayPal email")
}
