package inventory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmarisk/domain/core"
)

func TestExpiryRisk(t *testing.T) {
	tests := []struct {
		name              string
		stock, days, rate int
		want              RiskLabel
	}{
		{"expiring and overstocked", 1500, 120, 10, RiskHigh},
		{"exactly 180 days is safe", 1500, 180, 10, RiskLow},
		{"179 days", 1500, 179, 10, RiskHigh},
		{"stock equals 30 days of sales", 300, 10, 10, RiskLow},
		{"stock one above 30 days of sales", 301, 10, 10, RiskHigh},
		{"far from expiry", 8000, 700, 1, RiskLow},
		{"fast mover", 500, 30, 69, RiskLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpiryRisk(tt.stock, tt.days, tt.rate))
		})
	}
}

func TestNewLotDerivesLabelAndValue(t *testing.T) {
	lot := NewLot(1200, 90, 15, decimal.RequireFromString("10.29"))

	assert.Equal(t, RiskHigh, lot.RiskLabel)
	assert.True(t, decimal.RequireFromString("12348").Equal(lot.TotalValue), lot.TotalValue.String())
	assert.Equal(t, []float64{1200, 90, 15}, lot.Features())
}

func TestFriendlyName(t *testing.T) {
	assert.Equal(t, "Tempo Restante (Dias)", FriendlyName(ColDaysToExpiry))
	assert.Equal(t, "Volume em Estoque (Unid.)", FriendlyName(ColStock))
	assert.Equal(t, "Giro de Vendas (Diário)", FriendlyName(ColDailySaleRate))
	assert.Equal(t, "unknown", FriendlyName("unknown"))
}

func TestRiskLabelString(t *testing.T) {
	assert.Equal(t, "Baixo Risco", RiskLow.String())
	assert.Equal(t, "Alto Risco", RiskHigh.String())
}

func TestCoverageDays(t *testing.T) {
	assert.InDelta(t, 150.0, CoverageDays(1500, 10), 1e-9)
	assert.InDelta(t, 33.333, CoverageDays(100, 3), 1e-3)
	assert.Zero(t, CoverageDays(100, 0))
}

func TestLotInputValidate(t *testing.T) {
	require.NoError(t, DefaultLotInput().Validate())
	require.NoError(t, LotInput{Stock: 0, DaysToExpiry: 0, DailySaleRate: 1}.Validate())
	require.NoError(t, LotInput{Stock: 10000, DaysToExpiry: 730, DailySaleRate: 100}.Validate())

	bad := []LotInput{
		{Stock: -1, DaysToExpiry: 10, DailySaleRate: 5},
		{Stock: 10001, DaysToExpiry: 10, DailySaleRate: 5},
		{Stock: 10, DaysToExpiry: 731, DailySaleRate: 5},
		{Stock: 10, DaysToExpiry: 10, DailySaleRate: 0},
		{Stock: 10, DaysToExpiry: 10, DailySaleRate: 101},
	}
	for _, in := range bad {
		err := in.Validate()
		require.Error(t, err, "%+v", in)
		assert.True(t, errors.Is(err, core.ErrInvalidLot))
	}
}
