package domain

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is wrapped by every TransitionError
var ErrIllegalTransition = errors.New("illegal status transition")

// allowedTransitions lists the statuses reachable from each status.
// Approved and rejected are terminal.
var allowedTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusPending: {InvoiceStatusReview, InvoiceStatusApproved, InvoiceStatusRejected},
	InvoiceStatusReview:  {InvoiceStatusPending, InvoiceStatusApproved, InvoiceStatusRejected},
}

// TransitionError reports an invoice that cannot move to the requested status
type TransitionError struct {
	InvoiceID string
	From      InvoiceStatus
	To        InvoiceStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invoice %s: cannot move from %s to %s", e.InvoiceID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// CanTransition reports whether an invoice in status from may move to status to.
// Staying in the same status is always allowed and changes nothing.
func CanTransition(from, to InvoiceStatus) bool {
	if from == to {
		return to.Valid()
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses an invoice in status s may move to
func NextStatuses(s InvoiceStatus) []InvoiceStatus {
	next := allowedTransitions[s]
	out := make([]InvoiceStatus, len(next))
	copy(out, next)
	return out
}

// CheckTransition validates moving every invoice of the collection whose ID is
// in ids to status. It returns nil when all moves are legal, otherwise the
// joined TransitionErrors in collection order. Unknown IDs are not errors.
func CheckTransition(invoices []Invoice, ids []string, to InvoiceStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown target status %q", ErrIllegalTransition, to)
	}

	targets := idSet(ids)
	var errs []error
	for _, inv := range invoices {
		if _, ok := targets[inv.ID]; !ok {
			continue
		}
		if !CanTransition(inv.Status, to) {
			errs = append(errs, &TransitionError{InvoiceID: inv.ID, From: inv.Status, To: to})
		}
	}
	return errors.Join(errs...)
}

// ChangedIDs returns the IDs whose status differs between before and after.
// Both slices must describe the same collection in the same order.
func ChangedIDs(before, after []Invoice) []string {
	var ids []string
	for n := range before {
		if n < len(after) && before[n].Status != after[n].Status {
			ids = append(ids, before[n].ID)
		}
	}
	return ids
}
