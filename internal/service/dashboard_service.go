package service

import (
	"context"

	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/repository"
)

// Dashboard is everything the overview screen shows
type Dashboard struct {
	Metrics        domain.Metrics
	Recent         []domain.Invoice
	DefaultMethod  *domain.PaymentMethod // nil when the registry is empty
	PaymentMethods int
}

// DashboardService provides aggregations for the overview screen
type DashboardService interface {
	// GetDashboard combines metrics, recent invoices and the default payment method
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	invoiceRepo repository.InvoiceRepository
	methodRepo  repository.PaymentMethodRepository
	recentCount int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	invoiceRepo repository.InvoiceRepository,
	methodRepo repository.PaymentMethodRepository,
	recentCount int,
) DashboardService {
	return &dashboardService{
		invoiceRepo: invoiceRepo,
		methodRepo:  methodRepo,
		recentCount: recentCount,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := domain.ComputeMetrics(invoices)
	if err != nil {
		return nil, err
	}

	methods, err := s.methodRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Metrics:        metrics,
		Recent:         firstN(invoices, s.recentCount),
		PaymentMethods: len(methods),
	}
	if def, ok := domain.DefaultPaymentMethod(methods); ok {
		d.DefaultMethod = &def
	}

	return d, nil
}

func firstN(invoices []domain.Invoice, n int) []domain.Invoice {
	if n < 0 {
		n = 0
	}
	if n > len(invoices) {
		n = len(invoices)
	}
	return invoices[:n]
}
