package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "$3,240", want: "3240"},
		{in: "$3,240.00", want: "3240"},
		{in: " $156 ", want: "156"},
		{in: "-$12.50", want: "-12.5"},
		{in: "1000000", want: "1000000"},
		{in: "", wantErr: true},
		{in: "$", wantErr: true},
		{in: "twelve", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "$156.00", FormatAmount(decimal.NewFromInt(156)))
	assert.Equal(t, "$3,995.00", FormatAmount(decimal.NewFromInt(3995)))
	assert.Equal(t, "$124,350.50", FormatAmount(decimal.RequireFromString("124350.5")))
	assert.Equal(t, "-$1,200.00", FormatAmount(decimal.NewFromInt(-1200)))
}

func TestComputeMetrics(t *testing.T) {
	m, err := ComputeMetrics(sampleInvoices())
	require.NoError(t, err)

	assert.Equal(t, 3, m.PendingCount)
	assert.Equal(t, "$3,995.00", FormatAmount(m.PendingAmount))
	assert.Equal(t, 2, m.ApprovedCount)
	assert.Equal(t, "$2,990.00", FormatAmount(m.ApprovedAmount))
	assert.Equal(t, 0, m.RejectedCount)
	assert.True(t, m.RejectedAmount.IsZero())
	assert.Equal(t, 1, m.FlaggedCount)
}

func TestComputeMetrics_BadAmount(t *testing.T) {
	_, err := ComputeMetrics([]Invoice{{ID: "7", Amount: "lots", Status: InvoiceStatusPending}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invoice 7")
}
