package repository

import (
	"context"

	"github.com/andy/invoiceflow/internal/domain"
)

// InvoiceRepository manages the invoice collection of the session
type InvoiceRepository interface {
	// Create appends an invoice and its line items to the collection
	Create(ctx context.Context, invoice *domain.Invoice) error
	// GetByID includes line items and comments
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	// List returns the collection in order, without related data
	List(ctx context.Context) ([]domain.Invoice, error)
	// UpdateStatus creates an audit record per changed invoice. Unknown ids are ignored.
	UpdateStatus(ctx context.Context, ids []string, status domain.InvoiceStatus) error
	AddComment(ctx context.Context, comment *domain.Comment) error
	ListComments(ctx context.Context, invoiceID string) ([]*domain.Comment, error)
	GetStatusHistory(ctx context.Context, invoiceID string) ([]*domain.StatusChange, error)
}

// PaymentMethodRepository manages the payment method registry of the session
type PaymentMethodRepository interface {
	// List returns the registry in order
	List(ctx context.Context) ([]domain.PaymentMethod, error)
	// ReplaceAll stores methods as the whole registry in one transaction
	ReplaceAll(ctx context.Context, methods []domain.PaymentMethod) error
}
