package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/invoiceflow/internal/app"
	"github.com/andy/invoiceflow/internal/config"
	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/service"
)

func loadInvoicesScreen(t *testing.T, a *app.App) *InvoicesModel {
	t.Helper()
	m := NewInvoicesModel(context.Background(), a)
	model := settle(t, m, m.Init())
	return model.(*InvoicesModel)
}

func statusOf(t *testing.T, m *InvoicesModel, id string) domain.InvoiceStatus {
	t.Helper()
	inv, ok := domain.FindInvoice(m.invoices, id)
	require.True(t, ok, "invoice %s", id)
	return inv.Status
}

func TestInvoices_ListView(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	require.Len(t, m.invoices, 9)
	view := m.View()
	assert.Contains(t, view, "Invoice Review")
	assert.Contains(t, view, "Amazon Web Services")
	assert.Contains(t, view, "suspicious")
	assert.NotContains(t, view, "selected")
}

func TestInvoices_BulkApprove(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	// select invoices 1 and 5
	press(t, m, "space", "down", "down", "down", "down", "space")
	assert.Equal(t, []string{"1", "5"}, m.selection.IDs())
	assert.Contains(t, m.View(), "2 selected")

	press(t, m, "A")

	require.NoError(t, m.err)
	require.NotNil(t, m.toast)
	assert.Equal(t, "2 invoice(s) approved", m.toast.text)
	assert.Equal(t, toastSuccess, m.toast.kind)
	assert.Zero(t, m.selection.Len())
	assert.Equal(t, domain.InvoiceStatusApproved, statusOf(t, m, "1"))
	assert.Equal(t, domain.InvoiceStatusApproved, statusOf(t, m, "5"))
	assert.Equal(t, domain.InvoiceStatusReview, statusOf(t, m, "3"))
}

func TestInvoices_BulkRejectToastIsError(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	press(t, m, "down", "down", "space", "R")

	require.NotNil(t, m.toast)
	assert.Equal(t, "1 invoice(s) rejected", m.toast.text)
	assert.Equal(t, toastError, m.toast.kind)
	assert.Equal(t, domain.InvoiceStatusRejected, statusOf(t, m, "3"))
}

func TestInvoices_BulkWithoutSelectionDoesNothing(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	_, cmd := m.Update(keyPress("A"))
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
	assert.Nil(t, m.toast)
}

func TestInvoices_ToggleAllThenApprove(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	press(t, m, "a")
	require.Equal(t, 9, m.selection.Len())

	press(t, m, "A")

	require.NoError(t, m.err)
	require.NotNil(t, m.toast)
	assert.Equal(t, "3 invoice(s) approved, 6 already decided", m.toast.text)
	assert.Zero(t, m.selection.Len())
	for _, id := range []string{"1", "3", "5"} {
		assert.Equal(t, domain.InvoiceStatusApproved, statusOf(t, m, id), "invoice %s", id)
	}
	assert.Equal(t, domain.InvoiceStatusRejected, statusOf(t, m, "7"))
	assert.Equal(t, domain.InvoiceStatusRejected, statusOf(t, m, "9"))
}

func TestInvoices_ToggleAllThenReject(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	press(t, m, "a", "R")

	require.NoError(t, m.err)
	require.NotNil(t, m.toast)
	assert.Equal(t, "3 invoice(s) rejected, 6 already decided", m.toast.text)
	assert.Equal(t, toastError, m.toast.kind)
	assert.Zero(t, m.selection.Len())
	assert.Equal(t, domain.InvoiceStatusApproved, statusOf(t, m, "2"))
	assert.Equal(t, domain.InvoiceStatusRejected, statusOf(t, m, "3"))
}

func TestInvoices_FailedBulkKeepsSelection(t *testing.T) {
	a := newTestApp(t, func(cfg *config.Config) { cfg.Review.HoldUnverified = true })
	m := loadInvoicesScreen(t, a)

	// invoice 3 has a suspicious vendor
	press(t, m, "space", "down", "down", "space", "A")

	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, service.ErrVerificationHold)
	assert.Nil(t, m.toast)
	assert.Equal(t, 2, m.selection.Len())
	assert.Equal(t, domain.InvoiceStatusPending, statusOf(t, m, "1"))
	assert.Contains(t, m.View(), "Error:")

	// the next key clears the error
	press(t, m, "u")
	assert.NoError(t, m.err)
	assert.Zero(t, m.selection.Len())
}

func TestInvoices_ToggleAllTwiceRestores(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	press(t, m, "a")
	assert.Equal(t, 9, m.selection.Len())
	assert.True(t, m.selection.AllSelected(m.invoices))

	press(t, m, "a")
	assert.Zero(t, m.selection.Len())
}

func TestInvoices_HoldUnverified(t *testing.T) {
	a := newTestApp(t, func(cfg *config.Config) { cfg.Review.HoldUnverified = true })
	m := loadInvoicesScreen(t, a)

	// invoice 3 has a suspicious vendor
	press(t, m, "down", "down", "space", "A")

	assert.ErrorIs(t, m.err, service.ErrVerificationHold)
	assert.Equal(t, domain.InvoiceStatusReview, statusOf(t, m, "3"))
}

func TestInvoices_DetailApprove(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	press(t, m, "enter")
	require.Equal(t, invoiceViewDetail, m.mode)
	view := m.View()
	assert.Contains(t, view, "Invoice INV-2024-3847")
	assert.Contains(t, view, "410 Terry Ave N")
	assert.Contains(t, view, "EC2 Instances")
	assert.Contains(t, view, "A: approve")

	press(t, m, "A")

	assert.Equal(t, invoiceViewList, m.mode)
	assert.Nil(t, m.selected)
	require.NotNil(t, m.toast)
	assert.Equal(t, "Invoice approved successfully", m.toast.text)
	assert.Equal(t, domain.InvoiceStatusApproved, statusOf(t, m, "1"))

	// the audit trail shows up when reopening
	press(t, m, "enter")
	assert.Contains(t, m.View(), "Pending -> Approved")
	assert.NotContains(t, m.View(), "A: approve")
}

func TestInvoices_DetailReject(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	press(t, m, "down", "down", "down", "down", "enter", "R")

	require.NotNil(t, m.toast)
	assert.Equal(t, "Invoice rejected", m.toast.text)
	assert.Equal(t, toastError, m.toast.kind)
	assert.Equal(t, domain.InvoiceStatusRejected, statusOf(t, m, "5"))
}

func TestInvoices_DetailRejectDecidedFails(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	press(t, m, "down", "enter", "R")

	assert.Equal(t, invoiceViewDetail, m.mode)
	assert.ErrorIs(t, m.err, domain.ErrIllegalTransition)
	assert.Equal(t, domain.InvoiceStatusApproved, statusOf(t, m, "2"))
}

func TestInvoices_Comment(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	press(t, m, "enter")
	var model tea.Model = m
	model = typeText(model, "c", "Checked with AP")
	require.Equal(t, invoiceViewComment, m.mode)
	assert.True(t, m.IsCapturingInput())

	press(t, model, "enter")

	require.NoError(t, m.err)
	assert.Equal(t, invoiceViewDetail, m.mode)
	require.Len(t, m.selected.Comments, 1)
	assert.Equal(t, "Checked with AP", m.selected.Comments[0].Body)
	assert.Contains(t, m.View(), "Checked with AP")
	assert.Equal(t, "Comment added", m.toast.text)
}

func TestInvoices_EmptyCommentRejected(t *testing.T) {
	m := loadInvoicesScreen(t, newTestApp(t))

	press(t, m, "enter")
	typeText(m, "c", "   ")

	_, cmd := m.Update(keyPress("enter"))
	assert.Nil(t, cmd)
	assert.Error(t, m.err)
	assert.Equal(t, invoiceViewComment, m.mode)

	press(t, m, "esc")
	assert.Equal(t, invoiceViewDetail, m.mode)
	assert.False(t, m.IsCapturingInput())
}

func TestDecisionToast(t *testing.T) {
	tests := []struct {
		name string
		msg  invoicesDecidedMsg
		text string
		kind toastKind
	}{
		{"single approve", invoicesDecidedMsg{status: domain.InvoiceStatusApproved, count: 1, single: true}, "Invoice approved successfully", toastSuccess},
		{"single reject", invoicesDecidedMsg{status: domain.InvoiceStatusRejected, count: 1, single: true}, "Invoice rejected", toastError},
		{"bulk approve", invoicesDecidedMsg{status: domain.InvoiceStatusApproved, count: 3}, "3 invoice(s) approved", toastSuccess},
		{"bulk reject", invoicesDecidedMsg{status: domain.InvoiceStatusRejected, count: 1}, "1 invoice(s) rejected", toastError},
		{"bulk with decided", invoicesDecidedMsg{status: domain.InvoiceStatusApproved, count: 2, skipped: 4}, "2 invoice(s) approved, 4 already decided", toastSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decisionToast(tt.msg)
			assert.Equal(t, tt.text, got.text)
			assert.Equal(t, tt.kind, got.kind)
		})
	}
}
