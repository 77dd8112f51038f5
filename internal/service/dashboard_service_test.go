package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/invoiceflow/internal/domain"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	ctx := context.Background()
	svc := NewDashboardService(
		newMockInvoiceRepo(reviewQueue()...),
		&mockMethodRepo{methods: registry()},
		3,
	)

	d, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, d.Metrics.PendingCount)
	assert.Equal(t, "$3,995.00", domain.FormatAmount(d.Metrics.PendingAmount))
	assert.Equal(t, "$2,990.00", domain.FormatAmount(d.Metrics.ApprovedAmount))
	assert.Equal(t, "$5,000.00", domain.FormatAmount(d.Metrics.RejectedAmount))
	assert.Equal(t, 1, d.Metrics.FlaggedCount)

	assert.Equal(t, []string{"1", "2", "3"}, domain.InvoiceIDs(d.Recent))
	require.NotNil(t, d.DefaultMethod)
	assert.Equal(t, "1", d.DefaultMethod.ID)
	assert.Equal(t, 3, d.PaymentMethods)
}

func TestDashboardService_EmptyRegistry(t *testing.T) {
	svc := NewDashboardService(newMockInvoiceRepo(), &mockMethodRepo{}, 5)

	d, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Nil(t, d.DefaultMethod)
	assert.Empty(t, d.Recent)
	assert.Equal(t, 0, d.Metrics.PendingCount)
}

func TestDashboardService_RecentCount(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{count: 2, want: 2},
		{count: 100, want: 6},
		{count: 0, want: 0},
		{count: -1, want: 0},
	}

	for _, tt := range tests {
		svc := NewDashboardService(newMockInvoiceRepo(reviewQueue()...), &mockMethodRepo{}, tt.count)
		d, err := svc.GetDashboard(context.Background())
		require.NoError(t, err)
		assert.Len(t, d.Recent, tt.want, "recent count %d", tt.count)
	}
}

func TestDashboardService_BadAmount(t *testing.T) {
	repo := newMockInvoiceRepo(domain.Invoice{ID: "x", Vendor: "Acme", Amount: "n/a", Status: domain.InvoiceStatusPending})
	svc := NewDashboardService(repo, &mockMethodRepo{}, 5)

	_, err := svc.GetDashboard(context.Background())
	assert.ErrorContains(t, err, "invoice x")
}
