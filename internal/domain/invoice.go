package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusReview   InvoiceStatus = "review"
	InvoiceStatusApproved InvoiceStatus = "approved"
	InvoiceStatusRejected InvoiceStatus = "rejected"
)

// InvoiceStatuses lists every workflow status in display order
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusPending,
	InvoiceStatusReview,
	InvoiceStatusApproved,
	InvoiceStatusRejected,
}

// ParseInvoiceStatus converts user input into an InvoiceStatus
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status := InvoiceStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown invoice status %q", s)
	}
	return status, nil
}

// Valid reports whether s is one of the known workflow statuses
func (s InvoiceStatus) Valid() bool {
	for _, known := range InvoiceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the display name of the status
func (s InvoiceStatus) Label() string {
	switch s {
	case InvoiceStatusPending:
		return "Pending"
	case InvoiceStatusReview:
		return "Review"
	case InvoiceStatusApproved:
		return "Approved"
	case InvoiceStatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// IsOpen returns true while the invoice still awaits a decision
func (s InvoiceStatus) IsOpen() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusReview
}

type VerificationStatus string

const (
	VerificationNone       VerificationStatus = ""
	VerificationVerified   VerificationStatus = "verified"
	VerificationSuspicious VerificationStatus = "suspicious"
	VerificationNew        VerificationStatus = "new"
	VerificationFlagged    VerificationStatus = "flagged"
)

// Valid reports whether v is empty or a known vendor verification status
func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationNone, VerificationVerified, VerificationSuspicious, VerificationNew, VerificationFlagged:
		return true
	}
	return false
}

// Label returns the display name of the verification status
func (v VerificationStatus) Label() string {
	switch v {
	case VerificationVerified:
		return "Verified"
	case VerificationSuspicious:
		return "Suspicious"
	case VerificationNew:
		return "New"
	case VerificationFlagged:
		return "Flagged"
	default:
		return "-"
	}
}

// NeedsHold returns true for vendors that should not be approved without a closer look
func (v VerificationStatus) NeedsHold() bool {
	return v == VerificationSuspicious || v == VerificationFlagged
}

type FileType string

const (
	FileTypePDF      FileType = "pdf"
	FileTypeImage    FileType = "image"
	FileTypeDocument FileType = "document"
)

// Invoice is a billing record under review.
// Amount and Date are display strings exactly as received.
type Invoice struct {
	ID                 string
	Vendor             string
	Amount             string
	Date               string
	Status             InvoiceStatus
	VerificationStatus VerificationStatus

	// Detail fields, optional
	InvoiceNumber string
	VendorAddress string
	VendorTaxID   string
	DueDate       string
	Department    string
	CostCenter    string
	FileType      FileType

	// Related data (populated by repository)
	LineItems []LineItem
	Comments  []*Comment
}

// LineItem is one billed position of an invoice
type LineItem struct {
	Description string
	Quantity    int
	UnitPrice   string
	Total       string
}

// Comment is a reviewer note attached to an invoice for the session
type Comment struct {
	ID        int64
	InvoiceID string
	Body      string
	CreatedAt time.Time
}

// NewComment creates a comment with a trimmed body
func NewComment(invoiceID, body string) *Comment {
	return &Comment{
		InvoiceID: invoiceID,
		Body:      strings.TrimSpace(body),
		CreatedAt: time.Now(),
	}
}

// Validate returns an error if the comment is invalid
func (c *Comment) Validate() error {
	if c.InvoiceID == "" {
		return errors.New("invoice ID is required")
	}
	if c.Body == "" {
		return errors.New("comment cannot be empty")
	}
	return nil
}

// Validate returns an error if the invoice is invalid
func (i *Invoice) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("invoice ID is required")
	}
	if strings.TrimSpace(i.Vendor) == "" {
		return errors.New("vendor is required")
	}
	if !i.Status.Valid() {
		return fmt.Errorf("invalid status %q", i.Status)
	}
	if !i.VerificationStatus.Valid() {
		return fmt.Errorf("invalid verification status %q", i.VerificationStatus)
	}
	switch i.FileType {
	case "", FileTypePDF, FileTypeImage, FileTypeDocument:
	default:
		return fmt.Errorf("invalid file type %q", i.FileType)
	}
	for n, item := range i.LineItems {
		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("line item %d: description is required", n+1)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("line item %d: quantity cannot be negative", n+1)
		}
	}
	return nil
}

// SetStatus returns a copy of invoices in which every invoice whose ID is in
// ids carries status. Other invoices are unchanged, order is preserved and the
// input slice is never modified. IDs absent from the collection are ignored.
func SetStatus(invoices []Invoice, ids []string, status InvoiceStatus) []Invoice {
	targets := idSet(ids)

	out := make([]Invoice, len(invoices))
	for n, inv := range invoices {
		if _, ok := targets[inv.ID]; ok {
			inv.Status = status
		}
		out[n] = inv
	}
	return out
}

// FilterByStatus returns the invoices with one of the given statuses, in collection order
func FilterByStatus(invoices []Invoice, statuses ...InvoiceStatus) []Invoice {
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		for _, s := range statuses {
			if inv.Status == s {
				out = append(out, inv)
				break
			}
		}
	}
	return out
}

// FindInvoice returns the invoice with the given ID
func FindInvoice(invoices []Invoice, id string) (Invoice, bool) {
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return Invoice{}, false
}

// InvoiceIDs returns the IDs of the collection in order
func InvoiceIDs(invoices []Invoice) []string {
	ids := make([]string, len(invoices))
	for n, inv := range invoices {
		ids[n] = inv.ID
	}
	return ids
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
