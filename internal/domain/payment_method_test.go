package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "1", Type: PaymentMethodCard, Brand: "Visa", Last4: "4242", IsDefault: true, Status: PaymentMethodVerified},
		{ID: "2", Type: PaymentMethodBank, AccountName: "Business Checking", Last4: "8765", Status: PaymentMethodVerified},
		{ID: "3", Type: PaymentMethodPayPal, Email: "business@company.com", Status: PaymentMethodVerified},
	}
}

func defaultIDs(methods []PaymentMethod) []string {
	var ids []string
	for _, m := range methods {
		if m.IsDefault {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func TestSetDefault(t *testing.T) {
	methods := sampleMethods()

	got := SetDefault(methods, "3")
	assert.Equal(t, []string{"3"}, defaultIDs(got))
	assert.Equal(t, []string{"1"}, defaultIDs(methods), "input must not change")

	again := SetDefault(got, "3")
	assert.Equal(t, got, again, "set default is idempotent")
	assert.NoError(t, CheckDefault(again))
}

func TestSetDefault_UnknownID(t *testing.T) {
	methods := sampleMethods()
	got := SetDefault(methods, "nope")
	assert.Equal(t, methods, got)
}

func TestRemovePaymentMethod(t *testing.T) {
	tests := []struct {
		name        string
		methods     []PaymentMethod
		remove      string
		wantIDs     []string
		wantDefault []string
	}{
		{
			name:        "only method",
			methods:     []PaymentMethod{{ID: "a", IsDefault: true}},
			remove:      "a",
			wantIDs:     []string{},
			wantDefault: nil,
		},
		{
			name:        "default is repaired",
			methods:     sampleMethods(),
			remove:      "1",
			wantIDs:     []string{"2", "3"},
			wantDefault: []string{"2"},
		},
		{
			name:        "non-default keeps default",
			methods:     sampleMethods(),
			remove:      "2",
			wantIDs:     []string{"1", "3"},
			wantDefault: []string{"1"},
		},
		{
			name:        "unknown id",
			methods:     sampleMethods(),
			remove:      "x",
			wantIDs:     []string{"1", "2", "3"},
			wantDefault: []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemovePaymentMethod(tt.methods, tt.remove)
			ids := make([]string, 0, len(got))
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantDefault, defaultIDs(got))
			assert.NoError(t, CheckDefault(got))
		})
	}
}

func TestAddPaymentMethod(t *testing.T) {
	first := AddPaymentMethod(nil, PaymentMethod{ID: "a", Type: PaymentMethodCrypto, Last4: "1234", Status: PaymentMethodVerified})
	require.Len(t, first, 1)
	assert.True(t, first[0].IsDefault)
	assert.Equal(t, PaymentMethodPending, first[0].Status)

	methods := sampleMethods()
	got := AddPaymentMethod(methods, PaymentMethod{ID: "4", Type: PaymentMethodCrypto, Last4: "1234", IsDefault: true})
	require.Len(t, got, 4)
	assert.False(t, got[3].IsDefault)
	assert.Equal(t, PaymentMethodPending, got[3].Status)
	assert.Equal(t, []string{"1"}, defaultIDs(got))
	assert.Len(t, methods, 3)
}

func TestCheckDefault(t *testing.T) {
	assert.NoError(t, CheckDefault(nil))
	assert.NoError(t, CheckDefault(sampleMethods()))

	none := []PaymentMethod{{ID: "1"}, {ID: "2"}}
	assert.ErrorIs(t, CheckDefault(none), ErrNoDefaultMethod)

	two := []PaymentMethod{{ID: "1", IsDefault: true}, {ID: "2", IsDefault: true}}
	assert.ErrorIs(t, CheckDefault(two), ErrMultipleDefaultMethods)
}

func TestPaymentMethod_Label(t *testing.T) {
	methods := sampleMethods()
	assert.Equal(t, "Visa •••• 4242", methods[0].Label())
	assert.Equal(t, "Business Checking •••• 8765", methods[1].Label())
	assert.Equal(t, "business@company.com", methods[2].Label())

	crypto := PaymentMethod{Type: PaymentMethodCrypto, Last4: "9911"}
	assert.Equal(t, "Crypto Wallet •••• 9911", crypto.Label())
}

func TestPaymentMethod_Validate(t *testing.T) {
	tests := []struct {
		name    string
		method  PaymentMethod
		wantErr bool
	}{
		{name: "card", method: sampleMethods()[0]},
		{name: "bank", method: sampleMethods()[1]},
		{name: "paypal", method: sampleMethods()[2]},
		{name: "card short last4", method: PaymentMethod{ID: "x", Type: PaymentMethodCard, Brand: "Visa", Last4: "42", Status: PaymentMethodPending}, wantErr: true},
		{name: "card letters", method: PaymentMethod{ID: "x", Type: PaymentMethodCard, Brand: "Visa", Last4: "42ab", Status: PaymentMethodPending}, wantErr: true},
		{name: "bank without name", method: PaymentMethod{ID: "x", Type: PaymentMethodBank, Last4: "1234", Status: PaymentMethodPending}, wantErr: true},
		{name: "paypal bad email", method: PaymentMethod{ID: "x", Type: PaymentMethodPayPal, Email: "nope", Status: PaymentMethodPending}, wantErr: true},
		{name: "unknown type", method: PaymentMethod{ID: "x", Type: "cash", Status: PaymentMethodPending}, wantErr: true},
		{name: "missing id", method: PaymentMethod{Type: PaymentMethodCrypto, Last4: "1234", Status: PaymentMethodPending}, wantErr: true},
		{name: "bad status", method: PaymentMethod{ID: "x", Type: PaymentMethodCrypto, Last4: "1234", Status: "odd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.method.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPaymentMethod_Defaults(t *testing.T) {
	card := NewPaymentMethod("a", PaymentMethodCard)
	assert.Equal(t, "Visa", card.Brand)
	assert.Equal(t, PaymentMethodPending, card.Status)

	bank := NewPaymentMethod("b", PaymentMethodBank)
	assert.Equal(t, "New Account", bank.AccountName)

	_, err := ParsePaymentMethodType("wire")
	assert.Error(t, err)
	typ, err := ParsePaymentMethodType("PayPal")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodPayPal, typ)
}
