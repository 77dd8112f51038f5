package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSession_AppliesSchema(t *testing.T) {
	db, err := OpenSession()
	require.NoError(t, err)
	defer db.Close()

	var version int
	require.NoError(t, db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	for _, table := range []string{"invoices", "invoice_line_items", "invoice_comments", "status_changes", "payment_methods"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}

	// running again is a no-op
	assert.NoError(t, db.RunMigrations())
}

func TestOpenSession_Isolated(t *testing.T) {
	first, err := OpenSession()
	require.NoError(t, err)
	defer first.Close()

	_, err = first.Exec(`INSERT INTO invoices (id, position, vendor, amount, date, status) VALUES ('1', 0, 'Acme', '$1', 'Today', 'pending')`)
	require.NoError(t, err)

	second, err := OpenSession()
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestSchema_SingleDefaultMethod(t *testing.T) {
	db, err := OpenSession()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO payment_methods (id, position, type, last4, is_default, status) VALUES ('a', 0, 'crypto', '1111', 1, 'pending')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO payment_methods (id, position, type, last4, is_default, status) VALUES ('b', 1, 'crypto', '2222', 1, 'pending')`)
	assert.Error(t, err)
}
