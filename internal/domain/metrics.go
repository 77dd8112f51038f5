package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Metrics summarizes the review queue for the dashboard cards
type Metrics struct {
	PendingCount   int
	PendingAmount  decimal.Decimal
	ApprovedCount  int
	ApprovedAmount decimal.Decimal
	RejectedCount  int
	RejectedAmount decimal.Decimal
	FlaggedCount   int // open invoices whose vendor verification needs a hold
}

// ComputeMetrics totals the collection per status. Pending and review both
// count as pending. An unparsable amount aborts with an error naming the invoice.
func ComputeMetrics(invoices []Invoice) (Metrics, error) {
	m := Metrics{
		PendingAmount:  decimal.Zero,
		ApprovedAmount: decimal.Zero,
		RejectedAmount: decimal.Zero,
	}

	for _, inv := range invoices {
		amount, err := ParseAmount(inv.Amount)
		if err != nil {
			return Metrics{}, fmt.Errorf("invoice %s: %w", inv.ID, err)
		}

		switch inv.Status {
		case InvoiceStatusPending, InvoiceStatusReview:
			m.PendingCount++
			m.PendingAmount = m.PendingAmount.Add(amount)
			if inv.VerificationStatus.NeedsHold() {
				m.FlaggedCount++
			}
		case InvoiceStatusApproved:
			m.ApprovedCount++
			m.ApprovedAmount = m.ApprovedAmount.Add(amount)
		case InvoiceStatusRejected:
			m.RejectedCount++
			m.RejectedAmount = m.RejectedAmount.Add(amount)
		}
	}

	return m, nil
}
