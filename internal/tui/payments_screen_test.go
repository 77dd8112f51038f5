package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/invoiceflow/internal/app"
	"github.com/andy/invoiceflow/internal/common"
	"github.com/andy/invoiceflow/internal/domain"
)

func loadPaymentsScreen(t *testing.T, a *app.App) *PaymentsModel {
	t.Helper()
	m := NewPaymentsModel(context.Background(), a)
	model := settle(t, m, m.Init())
	return model.(*PaymentsModel)
}

func defaultLabel(t *testing.T, methods []domain.PaymentMethod) string {
	t.Helper()
	def, ok := domain.DefaultPaymentMethod(methods)
	require.True(t, ok, "registry has no default")
	return def.Label()
}

func TestPayments_ListView(t *testing.T) {
	m := loadPaymentsScreen(t, newTestApp(t))

	require.Len(t, m.methods, 3)
	view := m.View()
	assert.Contains(t, view, "Visa •••• 4242")
	assert.Contains(t, view, "Business Checking •••• 8765")
	assert.Contains(t, view, "business@company.com")
	assert.Contains(t, view, "★ default")
}

func TestPayments_AccountInformation(t *testing.T) {
	a := newTestApp(t)
	m := loadPaymentsScreen(t, a)

	view := m.View()
	assert.Contains(t, view, "Account Information")
	assert.Contains(t, view, "John Doe")
	assert.Contains(t, view, "john@company.com")
	assert.Contains(t, view, "+1 (555) 123-4567")

	a.Account = domain.Account{}
	assert.NotContains(t, m.View(), "Account Information")
}

func TestPayments_SetDefault(t *testing.T) {
	m := loadPaymentsScreen(t, newTestApp(t))

	press(t, m, "down", "d")

	require.NoError(t, m.err)
	require.NotNil(t, m.toast)
	assert.Equal(t, "Default payment method updated", m.toast.text)
	assert.Equal(t, "Business Checking •••• 8765", defaultLabel(t, m.methods))
	assert.NoError(t, domain.CheckDefault(m.methods))

	// idempotent
	press(t, m, "d")
	assert.Equal(t, "Business Checking •••• 8765", defaultLabel(t, m.methods))
}

func TestPayments_RemoveDefaultPromotesFirst(t *testing.T) {
	m := loadPaymentsScreen(t, newTestApp(t))

	press(t, m, "x")

	require.NotNil(t, m.toast)
	assert.Equal(t, "Payment method removed", m.toast.text)
	require.Len(t, m.methods, 2)
	assert.Equal(t, "Business Checking •••• 8765", defaultLabel(t, m.methods))
}

func TestPayments_RemoveAll(t *testing.T) {
	m := loadPaymentsScreen(t, newTestApp(t))

	press(t, m, "x", "x", "x")

	assert.Empty(t, m.methods)
	assert.Contains(t, m.View(), "No payment methods")

	// nothing left to act on
	_, cmd := m.Update(keyPress("x"))
	assert.Nil(t, cmd)
}

func TestPayments_AddBankAccount(t *testing.T) {
	m := loadPaymentsScreen(t, newTestApp(t))

	press(t, m, "n")
	require.True(t, m.IsCapturingInput())
	assert.Equal(t, domain.PaymentMethodCard, m.selectedType())

	typeText(m, "right")
	assert.Equal(t, domain.PaymentMethodBank, m.selectedType())
	assert.Contains(t, m.View(), "Account name:")
	assert.NotContains(t, m.View(), "Card brand:")

	typeText(m, "tab", "Payroll", "tab", "1200")
	press(t, m, "enter")

	require.NoError(t, m.err)
	assert.False(t, m.IsCapturingInput())
	require.NotNil(t, m.toast)
	assert.Equal(t, "Payment method added (pending verification)", m.toast.text)
	require.Len(t, m.methods, 4)

	added := m.methods[3]
	assert.Equal(t, "Payroll •••• 1200", added.Label())
	assert.Equal(t, domain.PaymentMethodPending, added.Status)
	assert.False(t, added.IsDefault)
	assert.Equal(t, "Visa •••• 4242", defaultLabel(t, m.methods))
}

func TestPayments_AddTypeCyclesBothWays(t *testing.T) {
	m := loadPaymentsScreen(t, newTestApp(t))

	press(t, m, "n")
	typeText(m, "left")
	assert.Equal(t, domain.PaymentMethodCrypto, m.selectedType())
	typeText(m, "right", "right")
	assert.Equal(t, domain.PaymentMethodBank, m.selectedType())
}

func TestPayments_AddInvalidStaysInForm(t *testing.T) {
	m := loadPaymentsScreen(t, newTestApp(t))

	press(t, m, "n")
	typeText(m, "tab", "tab", "12")
	press(t, m, "ctrl+s")

	assert.ErrorIs(t, m.err, common.ErrInvalidInput)
	assert.True(t, m.IsCapturingInput())
	assert.Len(t, m.methods, 3)
	assert.Contains(t, m.View(), "Error:")

	press(t, m, "esc")
	assert.False(t, m.IsCapturingInput())
	assert.NoError(t, m.err)
}
