// Package inventory holds the lot record the dashboard scores and the
// expiry-risk rule used to label simulated lots.
package inventory

import (
	"github.com/shopspring/decimal"

	"pharmarisk/domain/core"
)

// Column names, kept identical to the ones the classifier was trained on.
const (
	ColStock         = "Estoque_Atual_unidades"
	ColDaysToExpiry  = "Dias_Ate_Vencimento"
	ColDailySaleRate = "Taxa_Venda_Media_Dia"
	ColUnitCost      = "Custo_por_Unidade_R$"
	ColRiskLabel     = "Risco_Vencimento"
	ColTotalValue    = "Valor_Total_R$"
	ColPredictedRisk = "Previsao_Risco"
)

// FeatureNames is the positional order of every feature vector fed to the model.
var FeatureNames = []string{ColStock, ColDaysToExpiry, ColDailySaleRate}

var friendlyNames = map[string]string{
	ColDaysToExpiry:  "Tempo Restante (Dias)",
	ColStock:         "Volume em Estoque (Unid.)",
	ColDailySaleRate: "Giro de Vendas (Diário)",
}

// FriendlyName returns the operator-facing label of a feature column.
func FriendlyName(feature string) string {
	if name, ok := friendlyNames[feature]; ok {
		return name
	}
	return feature
}

// RiskLabel is the binary expiry-risk class.
type RiskLabel int

const (
	RiskLow  RiskLabel = 0
	RiskHigh RiskLabel = 1
)

// ClassNames are the report labels, indexed by RiskLabel.
var ClassNames = []string{"Baixo Risco", "Alto Risco"}

func (r RiskLabel) String() string {
	if r == RiskHigh {
		return ClassNames[1]
	}
	return ClassNames[0]
}

// Rule thresholds for the simulated ground truth.
const (
	RiskDaysThreshold  = 180
	RiskCoverageFactor = 30
)

// Lot is one inventory batch.
type Lot struct {
	Stock         int
	DaysToExpiry  int
	DailySaleRate int
	UnitCost      decimal.Decimal
	RiskLabel     RiskLabel
	TotalValue    decimal.Decimal
	PredictedRisk RiskLabel
}

// ExpiryRisk labels a lot high risk when it expires within 180 days and holds
// more than 30 days of sales.
func ExpiryRisk(stock, daysToExpiry, dailySaleRate int) RiskLabel {
	if daysToExpiry < RiskDaysThreshold && stock > RiskCoverageFactor*dailySaleRate {
		return RiskHigh
	}
	return RiskLow
}

// NewLot builds a lot and derives its label and total value.
func NewLot(stock, daysToExpiry, dailySaleRate int, unitCost decimal.Decimal) Lot {
	return Lot{
		Stock:         stock,
		DaysToExpiry:  daysToExpiry,
		DailySaleRate: dailySaleRate,
		UnitCost:      unitCost,
		RiskLabel:     ExpiryRisk(stock, daysToExpiry, dailySaleRate),
		TotalValue:    unitCost.Mul(decimal.NewFromInt(int64(stock))),
	}
}

// Features returns the lot's feature vector in FeatureNames order.
func (l Lot) Features() []float64 {
	return FeatureVector(l.Stock, l.DaysToExpiry, l.DailySaleRate)
}

// FeatureVector builds one model input row.
func FeatureVector(stock, daysToExpiry, dailySaleRate int) []float64 {
	return []float64{float64(stock), float64(daysToExpiry), float64(dailySaleRate)}
}

// CoverageDays is how many days the stock lasts at the given sale rate.
func CoverageDays(stock, dailySaleRate int) float64 {
	if dailySaleRate <= 0 {
		return 0
	}
	return float64(stock) / float64(dailySaleRate)
}

// Bounds is an inclusive integer range with a default.
type Bounds struct {
	Min, Max, Default int
}

// Sidebar input bounds.
var (
	StockBounds = Bounds{Min: 0, Max: 10000, Default: 1500}
	DaysBounds  = Bounds{Min: 0, Max: 730, Default: 120}
	RateBounds  = Bounds{Min: 1, Max: 100, Default: 10}
)

// LotInput is what the operator submits from the sidebar.
type LotInput struct {
	Stock         int
	DaysToExpiry  int
	DailySaleRate int
}

// DefaultLotInput returns the slider defaults.
func DefaultLotInput() LotInput {
	return LotInput{
		Stock:         StockBounds.Default,
		DaysToExpiry:  DaysBounds.Default,
		DailySaleRate: RateBounds.Default,
	}
}

// Validate rejects values outside the slider bounds.
func (in LotInput) Validate() error {
	checks := []struct {
		field  string
		value  int
		bounds Bounds
	}{
		{ColStock, in.Stock, StockBounds},
		{ColDaysToExpiry, in.DaysToExpiry, DaysBounds},
		{ColDailySaleRate, in.DailySaleRate, RateBounds},
	}
	for _, c := range checks {
		if c.value < c.bounds.Min || c.value > c.bounds.Max {
			return core.NewLotRangeError(c.field, c.value, c.bounds.Min, c.bounds.Max)
		}
	}
	return nil
}
