package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/invoiceflow/internal/common"
	"github.com/andy/invoiceflow/internal/db"
	"github.com/andy/invoiceflow/internal/domain"
)

// InvoiceRepo is a SQLite implementation of InvoiceRepository
type InvoiceRepo struct {
	db *db.DB
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(database *db.DB) *InvoiceRepo {
	return &InvoiceRepo{db: database}
}

const invoiceColumns = `
	id, vendor, amount, date, status, verification_status,
	invoice_number, vendor_address, vendor_tax_id, due_date,
	department, cost_center, file_type
`

// Create appends an invoice to the end of the collection
func (r *InvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invoices (
			id, position, vendor, amount, date, status, verification_status,
			invoice_number, vendor_address, vendor_tax_id, due_date,
			department, cost_center, file_type
		)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM invoices), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		invoice.ID,
		invoice.Vendor,
		invoice.Amount,
		invoice.Date,
		string(invoice.Status),
		string(invoice.VerificationStatus),
		invoice.InvoiceNumber,
		invoice.VendorAddress,
		invoice.VendorTaxID,
		invoice.DueDate,
		invoice.Department,
		invoice.CostCenter,
		string(invoice.FileType),
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice %s: %w", invoice.ID, err)
	}

	itemQuery := `
		INSERT INTO invoice_line_items (invoice_id, position, description, quantity, unit_price, total)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for n, item := range invoice.LineItems {
		_, err := tx.ExecContext(ctx, itemQuery,
			invoice.ID,
			n,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.Total,
		)
		if err != nil {
			return fmt.Errorf("failed to add line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an invoice with its line items and comments
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`

	invoice := &domain.Invoice{}
	if err := scanInvoice(r.db.QueryRowContext(ctx, query, id), invoice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	items, err := r.getLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.LineItems = items

	comments, err := r.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Comments = comments

	return invoice, nil
}

// List retrieves the whole collection in order
func (r *InvoiceRepo) List(ctx context.Context) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		var invoice domain.Invoice
		if err := scanInvoice(rows, &invoice); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

// UpdateStatus moves every listed invoice to status in one transaction
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, ids []string, status domain.InvoiceStatus) error {
	if len(ids) == 0 {
		return nil
	}
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateStmt, err := tx.PrepareContext(ctx, `UPDATE invoices SET status = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer updateStmt.Close()

	auditStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO status_changes (invoice_id, from_status, to_status, changed_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer auditStmt.Close()

	changedAt := formatTime()
	for _, id := range ids {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT status FROM invoices WHERE id = ?`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read status of invoice %s: %w", id, err)
		}
		if domain.InvoiceStatus(current) == status {
			continue
		}

		if _, err := updateStmt.ExecContext(ctx, string(status), id); err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", id, err)
		}
		if _, err := auditStmt.ExecContext(ctx, id, current, string(status), changedAt); err != nil {
			return fmt.Errorf("failed to create audit record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AddComment attaches a comment to an invoice
func (r *InvoiceRepo) AddComment(ctx context.Context, comment *domain.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices WHERE id = ?`, comment.InvoiceID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check invoice: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("invoice %s: %w", comment.InvoiceID, common.ErrNotFound)
	}

	query := `
		INSERT INTO invoice_comments (invoice_id, body, created_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		comment.InvoiceID,
		comment.Body,
		comment.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get comment ID: %w", err)
	}

	comment.ID = id
	return nil
}

// ListComments retrieves the comments of an invoice, oldest first
func (r *InvoiceRepo) ListComments(ctx context.Context, invoiceID string) ([]*domain.Comment, error) {
	query := `
		SELECT id, invoice_id, body, created_at
		FROM invoice_comments
		WHERE invoice_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		c := &domain.Comment{}
		var createdAt string

		if err := rows.Scan(&c.ID, &c.InvoiceID, &c.Body, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}

		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// GetStatusHistory retrieves the audit trail for an invoice, oldest first
func (r *InvoiceRepo) GetStatusHistory(ctx context.Context, invoiceID string) ([]*domain.StatusChange, error) {
	query := `
		SELECT id, invoice_id, from_status, to_status, changed_at
		FROM status_changes
		WHERE invoice_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}
	defer rows.Close()

	history := make([]*domain.StatusChange, 0)
	for rows.Next() {
		h := &domain.StatusChange{}
		var from, to, changedAt string

		if err := rows.Scan(&h.ID, &h.InvoiceID, &from, &to, &changedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}

		h.From = domain.InvoiceStatus(from)
		h.To = domain.InvoiceStatus(to)
		if h.ChangedAt, err = parseTime(changedAt); err != nil {
			return nil, fmt.Errorf("failed to parse changed_at: %w", err)
		}

		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return history, nil
}

func (r *InvoiceRepo) getLineItems(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	query := `
		SELECT description, quantity, unit_price, total
		FROM invoice_line_items
		WHERE invoice_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get line items: %w", err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.Description, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line items: %w", err)
	}

	return items, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanInvoice reads one row selected with invoiceColumns
func scanInvoice(row rowScanner, invoice *domain.Invoice) error {
	var status, verification, fileType string

	err := row.Scan(
		&invoice.ID,
		&invoice.Vendor,
		&invoice.Amount,
		&invoice.Date,
		&status,
		&verification,
		&invoice.InvoiceNumber,
		&invoice.VendorAddress,
		&invoice.VendorTaxID,
		&invoice.DueDate,
		&invoice.Department,
		&invoice.CostCenter,
		&fileType,
	)
	if err != nil {
		return err
	}

	invoice.Status = domain.InvoiceStatus(status)
	invoice.VerificationStatus = domain.VerificationStatus(verification)
	invoice.FileType = domain.FileType(fileType)
	return nil
}
