package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/invoiceflow/internal/common"
	"github.com/andy/invoiceflow/internal/domain"
)

type mockMethodRepo struct {
	methods    []domain.PaymentMethod
	replaced   int
	replaceErr error
}

func (m *mockMethodRepo) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	out := make([]domain.PaymentMethod, len(m.methods))
	copy(out, m.methods)
	return out, nil
}
func (m *mockMethodRepo) ReplaceAll(ctx context.Context, methods []domain.PaymentMethod) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if err := domain.CheckDefault(methods); err != nil {
		return err
	}
	m.replaced++
	m.methods = methods
	return nil
}

func registry() []domain.PaymentMethod {
	return []domain.PaymentMethod{
		{ID: "1", Type: domain.PaymentMethodCard, Brand: "Visa", Last4: "4242", IsDefault: true, Status: domain.PaymentMethodVerified},
		{ID: "2", Type: domain.PaymentMethodBank, AccountName: "Business Checking", Last4: "8765", Status: domain.PaymentMethodVerified},
		{ID: "3", Type: domain.PaymentMethodPayPal, Email: "business@company.com", Status: domain.PaymentMethodVerified},
	}
}

func newTestPaymentService(repo *mockMethodRepo) *paymentService {
	n := 0
	return &paymentService{
		methodRepo: repo,
		newID: func() string {
			n++
			return "new-" + string(rune('0'+n))
		},
	}
}

func TestPaymentService_SetDefault(t *testing.T) {
	ctx := context.Background()
	repo := &mockMethodRepo{methods: registry()}
	svc := newTestPaymentService(repo)

	require.NoError(t, svc.SetDefault(ctx, "2"))
	def, ok := domain.DefaultPaymentMethod(repo.methods)
	require.True(t, ok)
	assert.Equal(t, "2", def.ID)

	// idempotent
	require.NoError(t, svc.SetDefault(ctx, "2"))
	assert.NoError(t, domain.CheckDefault(repo.methods))

	err := svc.SetDefault(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, 2, repo.replaced, "unknown id leaves the registry alone")
}

func TestPaymentService_Remove(t *testing.T) {
	ctx := context.Background()
	repo := &mockMethodRepo{methods: registry()}
	svc := newTestPaymentService(repo)

	require.NoError(t, svc.Remove(ctx, "1"))
	require.Len(t, repo.methods, 2)
	assert.True(t, repo.methods[0].IsDefault, "first remaining method is promoted")
	assert.Equal(t, "2", repo.methods[0].ID)

	require.NoError(t, svc.Remove(ctx, "3"))
	require.NoError(t, svc.Remove(ctx, "2"))
	assert.Empty(t, repo.methods)

	assert.ErrorIs(t, svc.Remove(ctx, "2"), common.ErrNotFound)
}

func TestPaymentService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("empty registry gets a default", func(t *testing.T) {
		repo := &mockMethodRepo{}
		svc := newTestPaymentService(repo)

		m, err := svc.Add(ctx, NewPaymentMethodInput{Type: domain.PaymentMethodCard, Last4: "1234"})
		require.NoError(t, err)
		assert.True(t, m.IsDefault)
		assert.Equal(t, "Visa", m.Brand)
		assert.Equal(t, domain.PaymentMethodPending, m.Status)
		assert.Equal(t, "new-1", m.ID)
	})

	t.Run("appended method is not default", func(t *testing.T) {
		repo := &mockMethodRepo{methods: registry()}
		svc := newTestPaymentService(repo)

		m, err := svc.Add(ctx, NewPaymentMethodInput{Type: domain.PaymentMethodBank, Last4: "0001"})
		require.NoError(t, err)
		assert.False(t, m.IsDefault)
		assert.Equal(t, "New Account", m.AccountName)
		require.Len(t, repo.methods, 4)
		assert.Equal(t, m.ID, repo.methods[3].ID)
	})

	t.Run("invalid input", func(t *testing.T) {
		repo := &mockMethodRepo{methods: registry()}
		svc := newTestPaymentService(repo)

		_, err := svc.Add(ctx, NewPaymentMethodInput{Type: domain.PaymentMethodPayPal, Email: "not-an-email"})
		assert.ErrorIs(t, err, common.ErrInvalidInput)

		_, err = svc.Add(ctx, NewPaymentMethodInput{Type: domain.PaymentMethodCrypto, Last4: "12"})
		assert.ErrorIs(t, err, common.ErrInvalidInput)
		assert.Len(t, repo.methods, 3)
	})
}

func TestNewPaymentService_UsesUUIDs(t *testing.T) {
	repo := &mockMethodRepo{}
	svc := NewPaymentService(repo)

	m, err := svc.Add(context.Background(), NewPaymentMethodInput{Type: domain.PaymentMethodPayPal, Email: "ap@company.com"})
	require.NoError(t, err)
	assert.Len(t, m.ID, 36)
}

func TestPaymentService_StoreFailureIsLogged(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, common.SetupLogger(slog.LevelInfo, "json", &buf))

	repo := &mockMethodRepo{methods: registry(), replaceErr: errors.New("disk full")}
	svc := newTestPaymentService(repo)

	err := svc.SetDefault(context.Background(), "2")
	assert.EqualError(t, err, "disk full")
	assert.Contains(t, buf.String(), `"msg":"failed to set default payment method"`)
	assert.Contains(t, buf.String(), `"error":"disk full"`)

	assert.Error(t, svc.Remove(context.Background(), "3"))
	assert.Contains(t, buf.String(), `"msg":"failed to remove payment method"`)
	assert.Equal(t, registry(), repo.methods)
}
