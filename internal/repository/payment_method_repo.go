package repository

import (
	"context"
	"fmt"

	"github.com/andy/invoiceflow/internal/db"
	"github.com/andy/invoiceflow/internal/domain"
)

// PaymentMethodRepo is a SQLite implementation of PaymentMethodRepository
type PaymentMethodRepo struct {
	db *db.DB
}

// NewPaymentMethodRepo creates a new PaymentMethodRepo
func NewPaymentMethodRepo(database *db.DB) *PaymentMethodRepo {
	return &PaymentMethodRepo{db: database}
}

// List retrieves the registry in order
func (r *PaymentMethodRepo) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	query := `
		SELECT id, type, brand, last4, account_name, email, is_default, status
		FROM payment_methods
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	methods := make([]domain.PaymentMethod, 0)
	for rows.Next() {
		var m domain.PaymentMethod
		var typ, status string
		var isDefault int

		err := rows.Scan(
			&m.ID,
			&typ,
			&m.Brand,
			&m.Last4,
			&m.AccountName,
			&m.Email,
			&isDefault,
			&status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}

		m.Type = domain.PaymentMethodType(typ)
		m.Status = domain.PaymentMethodStatus(status)
		m.IsDefault = isDefault == 1
		methods = append(methods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment methods: %w", err)
	}

	return methods, nil
}

// ReplaceAll stores methods as the registry. Either every row is written or none.
func (r *PaymentMethodRepo) ReplaceAll(ctx context.Context, methods []domain.PaymentMethod) error {
	if err := domain.CheckDefault(methods); err != nil {
		return fmt.Errorf("invalid registry: %w", err)
	}
	for _, m := range methods {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("invalid payment method %s: %w", m.ID, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payment_methods`); err != nil {
		return fmt.Errorf("failed to clear payment methods: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO payment_methods (id, position, type, brand, last4, account_name, email, is_default, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for n, m := range methods {
		_, err := stmt.ExecContext(ctx,
			m.ID,
			n,
			string(m.Type),
			m.Brand,
			m.Last4,
			m.AccountName,
			m.Email,
			boolToInt(m.IsDefault),
			string(m.Status),
		)
		if err != nil {
			return fmt.Errorf("failed to store payment method %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
