package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoiceflow/internal/domain"
)

var (
	// Colors
	primaryColor = lipgloss.Color("39")  // Blue
	accentColor  = lipgloss.Color("205") // Pink
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // Bright cyan
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))

	// Box styles
	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1)

	// Layout
	borderColor    = lipgloss.Color("63") // Soft purple
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true) // Bright yellow

	// Metric cards
	cardStyle = boxStyle.
			BorderForeground(borderColor).
			Padding(0, 2).
			Width(24)
	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
)

// statusBadge renders an invoice status with color
func statusBadge(status domain.InvoiceStatus) string {
	switch status {
	case domain.InvoiceStatusPending:
		return lipgloss.NewStyle().Foreground(warningColor).Render("PENDING")
	case domain.InvoiceStatusReview:
		return lipgloss.NewStyle().Foreground(primaryColor).Render("REVIEW")
	case domain.InvoiceStatusApproved:
		return lipgloss.NewStyle().Foreground(successColor).Render("APPROVED")
	case domain.InvoiceStatusRejected:
		return lipgloss.NewStyle().Foreground(errorColor).Render("REJECTED")
	default:
		return string(status)
	}
}

// verificationBadge renders the vendor verification status; empty when unknown
func verificationBadge(v domain.VerificationStatus) string {
	switch v {
	case domain.VerificationVerified:
		return lipgloss.NewStyle().Foreground(successColor).Render("✓ verified")
	case domain.VerificationNew:
		return lipgloss.NewStyle().Foreground(primaryColor).Render("● new vendor")
	case domain.VerificationSuspicious:
		return lipgloss.NewStyle().Foreground(warningColor).Render("⚠ suspicious")
	case domain.VerificationFlagged:
		return lipgloss.NewStyle().Foreground(errorColor).Render("⚑ flagged")
	default:
		return ""
	}
}

// methodStatusBadge renders the verification state of a payment method
func methodStatusBadge(s domain.PaymentMethodStatus) string {
	switch s {
	case domain.PaymentMethodVerified:
		return lipgloss.NewStyle().Foreground(successColor).Render("verified")
	case domain.PaymentMethodPending:
		return lipgloss.NewStyle().Foreground(warningColor).Render("pending")
	case domain.PaymentMethodFailed:
		return lipgloss.NewStyle().Foreground(errorColor).Render("failed")
	default:
		return string(s)
	}
}
