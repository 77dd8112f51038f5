package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/invoiceflow/internal/common"
	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/repository"
)

var (
	ErrVerificationHold = errors.New("invoice vendor is not verified")
	ErrNoInvoices       = errors.New("no invoices given")
)

// TransitionResult reports what a status transition did
type TransitionResult struct {
	Status  domain.InvoiceStatus
	Matched []string // requested ids present in the collection
	Changed []string // matched ids whose status actually changed
	Skipped []string // already decided ids left alone by a bulk decision
}

// History splits decided invoices by outcome, in collection order
type History struct {
	Approved []domain.Invoice
	Rejected []domain.Invoice
}

// InvoiceService manages the review workflow of the invoice collection
type InvoiceService interface {
	// ListInvoices lists the collection, optionally restricted to some statuses
	ListInvoices(ctx context.Context, statuses ...domain.InvoiceStatus) ([]domain.Invoice, error)

	// GetInvoice retrieves an invoice with line items and comments
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)

	// Transition moves every listed invoice to status, all or nothing
	Transition(ctx context.Context, ids []string, status domain.InvoiceStatus) (*TransitionResult, error)

	// Approve and Reject decide a single invoice from the detail view
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error

	// ApproveMany and RejectMany decide the open invoices of a selection.
	// Invoices that are already approved or rejected are reported as skipped.
	ApproveMany(ctx context.Context, ids []string) (*TransitionResult, error)
	RejectMany(ctx context.Context, ids []string) (*TransitionResult, error)

	// AddComment attaches a reviewer note to an invoice
	AddComment(ctx context.Context, invoiceID, body string) (*domain.Comment, error)

	// History lists approved and rejected invoices
	History(ctx context.Context) (*History, error)

	// StatusHistory lists the recorded status changes of an invoice
	StatusHistory(ctx context.Context, id string) ([]*domain.StatusChange, error)
}

// InvoiceOptions carries review policy from config
type InvoiceOptions struct {
	HoldUnverified bool
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	opts        InvoiceOptions
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, opts InvoiceOptions) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		opts:        opts,
	}
}

func (s *invoiceService) ListInvoices(ctx context.Context, statuses ...domain.InvoiceStatus) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return invoices, nil
	}
	return domain.FilterByStatus(invoices, statuses...), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) Transition(
	ctx context.Context,
	ids []string,
	status domain.InvoiceStatus,
) (*TransitionResult, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, invoices, ids, status)
}

// transition applies status to ids of the listed collection
func (s *invoiceService) transition(
	ctx context.Context,
	invoices []domain.Invoice,
	ids []string,
	status domain.InvoiceStatus,
) (*TransitionResult, error) {
	// Validate every move before touching anything
	if err := s.checkTransition(invoices, ids, status); err != nil {
		common.LogError(err, "invoice status change refused", common.Fields{
			"invoice_ids": ids,
			"status":      string(status),
		})
		return nil, err
	}

	updated := domain.SetStatus(invoices, ids, status)
	result := &TransitionResult{
		Status:  status,
		Matched: matchedIDs(invoices, ids),
		Changed: domain.ChangedIDs(invoices, updated),
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, result.Changed, status); err != nil {
		common.LogError(err, "invoice status change failed", common.Fields{
			"invoice_ids": result.Changed,
			"status":      string(status),
		})
		return nil, err
	}

	common.LogInfo("invoice status changed", common.Fields{
		"invoice_ids": result.Changed,
		"status":      string(status),
		"requested":   len(ids),
	})

	return result, nil
}

func (s *invoiceService) checkTransition(invoices []domain.Invoice, ids []string, status domain.InvoiceStatus) error {
	if err := domain.CheckTransition(invoices, ids, status); err != nil {
		return err
	}
	if status == domain.InvoiceStatusApproved && s.opts.HoldUnverified {
		return checkHold(invoices, ids)
	}
	return nil
}

func (s *invoiceService) Approve(ctx context.Context, id string) error {
	return s.decide(ctx, id, domain.InvoiceStatusApproved)
}

func (s *invoiceService) Reject(ctx context.Context, id string) error {
	return s.decide(ctx, id, domain.InvoiceStatusRejected)
}

// decide transitions one invoice that must exist
func (s *invoiceService) decide(ctx context.Context, id string, status domain.InvoiceStatus) error {
	result, err := s.Transition(ctx, []string{id}, status)
	if err != nil {
		return err
	}
	if len(result.Matched) == 0 {
		return fmt.Errorf("invoice %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (s *invoiceService) ApproveMany(ctx context.Context, ids []string) (*TransitionResult, error) {
	return s.decideMany(ctx, ids, domain.InvoiceStatusApproved)
}

func (s *invoiceService) RejectMany(ctx context.Context, ids []string) (*TransitionResult, error) {
	return s.decideMany(ctx, ids, domain.InvoiceStatusRejected)
}

// decideMany moves the open invoices among ids to status and skips decided ones
func (s *invoiceService) decideMany(ctx context.Context, ids []string, status domain.InvoiceStatus) (*TransitionResult, error) {
	if len(ids) == 0 {
		return nil, ErrNoInvoices
	}

	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var open, skipped []string
	for _, id := range matchedIDs(invoices, ids) {
		inv, _ := domain.FindInvoice(invoices, id)
		if inv.Status.IsOpen() {
			open = append(open, id)
		} else {
			skipped = append(skipped, id)
		}
	}

	result, err := s.transition(ctx, invoices, open, status)
	if err != nil {
		return nil, err
	}
	result.Skipped = skipped
	return result, nil
}

func (s *invoiceService) AddComment(ctx context.Context, invoiceID, body string) (*domain.Comment, error) {
	comment := domain.NewComment(invoiceID, body)
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	if err := s.invoiceRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	common.LogInfo("comment added", common.Fields{
		"invoice_id": invoiceID,
		"comment_id": comment.ID,
	})

	return comment, nil
}

func (s *invoiceService) History(ctx context.Context) (*History, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &History{
		Approved: domain.FilterByStatus(invoices, domain.InvoiceStatusApproved),
		Rejected: domain.FilterByStatus(invoices, domain.InvoiceStatusRejected),
	}, nil
}

func (s *invoiceService) StatusHistory(ctx context.Context, id string) ([]*domain.StatusChange, error) {
	if _, err := s.invoiceRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetStatusHistory(ctx, id)
}

// checkHold refuses approval of targets whose vendor verification needs a closer look
func checkHold(invoices []domain.Invoice, ids []string) error {
	var errs []error
	for _, id := range ids {
		inv, ok := domain.FindInvoice(invoices, id)
		if !ok || inv.Status == domain.InvoiceStatusApproved {
			continue
		}
		if inv.VerificationStatus.NeedsHold() {
			errs = append(errs, fmt.Errorf("%w: invoice %s is %s", ErrVerificationHold, id, inv.VerificationStatus))
		}
	}
	return errors.Join(errs...)
}

// matchedIDs returns the ids present in the collection, in collection order
func matchedIDs(invoices []domain.Invoice, ids []string) []string {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var out []string
	for _, inv := range invoices {
		if wanted[inv.ID] {
			out = append(out, inv.ID)
		}
	}
	return out
}
