package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/andy/invoiceflow/internal/common"
	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/repository"
)

// NewPaymentMethodInput holds the user-supplied fields of a new method.
// Fields that do not apply to Type are ignored.
type NewPaymentMethodInput struct {
	Type        domain.PaymentMethodType
	Brand       string
	Last4       string
	AccountName string
	Email       string
}

// PaymentService manages the payment method registry
type PaymentService interface {
	List(ctx context.Context) ([]domain.PaymentMethod, error)

	// SetDefault makes id the only default method
	SetDefault(ctx context.Context, id string) error

	// Remove deletes a method, promoting the first remaining one if it was the default
	Remove(ctx context.Context, id string) error

	// Add appends a pending method; it becomes default only in an empty registry
	Add(ctx context.Context, input NewPaymentMethodInput) (*domain.PaymentMethod, error)
}

type paymentService struct {
	methodRepo repository.PaymentMethodRepository
	newID      func() string
}

// NewPaymentService creates a new payment service
func NewPaymentService(methodRepo repository.PaymentMethodRepository) PaymentService {
	return &paymentService{
		methodRepo: methodRepo,
		newID:      uuid.NewString,
	}
}

func (s *paymentService) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.methodRepo.List(ctx)
}

func (s *paymentService) SetDefault(ctx context.Context, id string) error {
	methods, err := s.methodRepo.List(ctx)
	if err != nil {
		return err
	}
	if _, ok := domain.FindPaymentMethod(methods, id); !ok {
		return fmt.Errorf("payment method %s: %w", id, common.ErrNotFound)
	}

	if err := s.methodRepo.ReplaceAll(ctx, domain.SetDefault(methods, id)); err != nil {
		common.LogError(err, "failed to set default payment method", common.Fields{"method_id": id})
		return err
	}

	common.LogInfo("default payment method set", common.Fields{"method_id": id})
	return nil
}

func (s *paymentService) Remove(ctx context.Context, id string) error {
	methods, err := s.methodRepo.List(ctx)
	if err != nil {
		return err
	}
	if _, ok := domain.FindPaymentMethod(methods, id); !ok {
		return fmt.Errorf("payment method %s: %w", id, common.ErrNotFound)
	}

	remaining := domain.RemovePaymentMethod(methods, id)
	if err := s.methodRepo.ReplaceAll(ctx, remaining); err != nil {
		common.LogError(err, "failed to remove payment method", common.Fields{"method_id": id})
		return err
	}

	fields := common.Fields{"method_id": id}
	if def, ok := domain.DefaultPaymentMethod(remaining); ok {
		fields["default_id"] = def.ID
	}
	common.LogInfo("payment method removed", fields)
	return nil
}

func (s *paymentService) Add(ctx context.Context, input NewPaymentMethodInput) (*domain.PaymentMethod, error) {
	methods, err := s.methodRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	m := domain.NewPaymentMethod(s.newID(), input.Type)
	switch input.Type {
	case domain.PaymentMethodCard:
		if brand := strings.TrimSpace(input.Brand); brand != "" {
			m.Brand = brand
		}
		m.Last4 = strings.TrimSpace(input.Last4)
	case domain.PaymentMethodBank:
		if name := strings.TrimSpace(input.AccountName); name != "" {
			m.AccountName = name
		}
		m.Last4 = strings.TrimSpace(input.Last4)
	case domain.PaymentMethodCrypto:
		m.Last4 = strings.TrimSpace(input.Last4)
	case domain.PaymentMethodPayPal:
		m.Email = strings.TrimSpace(input.Email)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	updated := domain.AddPaymentMethod(methods, m)
	if err := s.methodRepo.ReplaceAll(ctx, updated); err != nil {
		common.LogError(err, "failed to add payment method", common.Fields{
			"method_id": m.ID,
			"type":      string(m.Type),
		})
		return nil, err
	}

	added := updated[len(updated)-1]
	common.LogInfo("payment method added", common.Fields{
		"method_id":  added.ID,
		"type":       string(added.Type),
		"is_default": added.IsDefault,
	})

	return &added, nil
}
