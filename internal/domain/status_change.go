package domain

import "time"

// StatusChange is one audit record of an invoice moving between statuses
type StatusChange struct {
	ID        int64
	InvoiceID string
	From      InvoiceStatus
	To        InvoiceStatus
	ChangedAt time.Time
}
