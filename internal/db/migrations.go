package db

import (
	"fmt"
)

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
-- Invoices under review, position keeps seed order
CREATE TABLE invoices (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    vendor TEXT NOT NULL,
    amount TEXT NOT NULL,
    date TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('pending', 'review', 'approved', 'rejected')),
    verification_status TEXT NOT NULL DEFAULT '',
    invoice_number TEXT NOT NULL DEFAULT '',
    vendor_address TEXT NOT NULL DEFAULT '',
    vendor_tax_id TEXT NOT NULL DEFAULT '',
    due_date TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT '',
    cost_center TEXT NOT NULL DEFAULT '',
    file_type TEXT NOT NULL DEFAULT ''
);

-- Invoice line items
CREATE TABLE invoice_line_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    invoice_id TEXT NOT NULL REFERENCES invoices(id),
    position INTEGER NOT NULL,
    description TEXT NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 1,
    unit_price TEXT NOT NULL DEFAULT '',
    total TEXT NOT NULL DEFAULT ''
);

-- Reviewer comments
CREATE TABLE invoice_comments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    invoice_id TEXT NOT NULL REFERENCES invoices(id),
    body TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Audit trail for status changes
CREATE TABLE status_changes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    invoice_id TEXT NOT NULL REFERENCES invoices(id),
    from_status TEXT NOT NULL,
    to_status TEXT NOT NULL,
    changed_at TEXT NOT NULL
);

-- Payment methods, position keeps registry order
CREATE TABLE payment_methods (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('card', 'bank', 'paypal', 'crypto')),
    brand TEXT NOT NULL DEFAULT '',
    last4 TEXT NOT NULL DEFAULT '',
    account_name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    is_default INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL CHECK (status IN ('verified', 'pending', 'failed'))
);

-- Indexes
CREATE INDEX idx_invoices_position ON invoices(position);
CREATE INDEX idx_invoices_status ON invoices(status);
CREATE INDEX idx_line_items_invoice ON invoice_line_items(invoice_id, position);
CREATE INDEX idx_comments_invoice ON invoice_comments(invoice_id);
CREATE INDEX idx_status_changes_invoice ON status_changes(invoice_id);
CREATE UNIQUE INDEX idx_payment_methods_default ON payment_methods(is_default) WHERE is_default = 1;
`,
	},
}

// RunMigrations applies all pending database migrations
func (db *DB) RunMigrations() error {
	// Ensure schema_version table exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Apply pending migrations in a transaction
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		if _, err := tx.Exec(m.sql); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}

	return nil
}
