package analysis

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmarisk/domain/core"
	"pharmarisk/domain/inventory"
)

func lotWith(days int, value string, predicted inventory.RiskLabel) inventory.Lot {
	return inventory.Lot{
		Stock:         100,
		DaysToExpiry:  days,
		DailySaleRate: 1,
		TotalValue:    decimal.RequireFromString(value),
		PredictedRisk: predicted,
	}
}

func TestComputeExecutiveMetrics(t *testing.T) {
	lots := []inventory.Lot{
		lotWith(30, "1000.10", inventory.RiskHigh),
		lotWith(91, "2345.50", inventory.RiskHigh),
		lotWith(400, "99999.99", inventory.RiskLow),
		lotWith(10, "5.00", inventory.RiskLow),
	}

	m, err := ComputeExecutiveMetrics(lots)
	require.NoError(t, err)

	assert.Equal(t, 4, m.TotalLots)
	assert.Equal(t, 2, m.HighRiskLots)
	assert.InDelta(t, 50.0, m.HighRiskShare, 1e-9)
	assert.True(t, decimal.RequireFromString("3345.60").Equal(m.ValueAtRisk), m.ValueAtRisk.String())
	assert.InDelta(t, 60.5, m.MeanDaysAtRisk, 1e-9)
}

func TestComputeExecutiveMetricsNoHighRisk(t *testing.T) {
	m, err := ComputeExecutiveMetrics([]inventory.Lot{lotWith(400, "10", inventory.RiskLow)})
	require.NoError(t, err)
	assert.Zero(t, m.HighRiskLots)
	assert.Zero(t, m.HighRiskShare)
	assert.Zero(t, m.MeanDaysAtRisk)
	assert.True(t, m.ValueAtRisk.IsZero())

	_, err = ComputeExecutiveMetrics(nil)
	assert.True(t, errors.Is(err, core.ErrEmptyData))
}

func TestConfusionMatrix(t *testing.T) {
	actual := []int{0, 0, 0, 1, 1, 1, 1, 0}
	predicted := []int{0, 1, 0, 1, 0, 1, 1, 0}

	cm, err := NewConfusionMatrix(actual, predicted)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{3, 1}, {1, 3}}, cm.Counts())
	assert.Equal(t, 1, cm.FalseNegatives())
	assert.Equal(t, 1, cm.FalsePositives())
	assert.Equal(t, 8, cm.Total())
	assert.Equal(t, 6, cm.Correct())
}

func TestConfusionMatrixAlwaysTwoByTwo(t *testing.T) {
	cm, err := NewConfusionMatrix([]int{0, 0, 0}, []int{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{3, 0}, {0, 0}}, cm.Counts())
	assert.Zero(t, cm.FalseNegatives())
}

func TestConfusionMatrixErrors(t *testing.T) {
	_, err := NewConfusionMatrix([]int{0}, []int{0, 1})
	assert.Error(t, err)

	_, err = NewConfusionMatrix(nil, nil)
	assert.True(t, errors.Is(err, core.ErrEmptyData))

	_, err = NewConfusionMatrix([]int{2}, []int{0})
	assert.Error(t, err)
}

func TestClassificationReport(t *testing.T) {
	// actual 0: 6 rows, 5 predicted 0; actual 1: 4 rows, 2 predicted 1
	actual := []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1}
	predicted := []int{0, 0, 0, 0, 0, 1, 1, 1, 0, 0}
	cm, err := NewConfusionMatrix(actual, predicted)
	require.NoError(t, err)

	report := NewClassificationReport(cm, inventory.ClassNames)
	require.Len(t, report.Rows, 5)

	labels := make([]string, len(report.Rows))
	for i, row := range report.Rows {
		labels[i] = row.Label
	}
	assert.Equal(t, []string{"Baixo Risco", "Alto Risco", "accuracy", "macro avg", "weighted avg"}, labels)

	low, _ := report.Row("Baixo Risco")
	assert.InDelta(t, 5.0/7.0, low.Precision, 1e-12)
	assert.InDelta(t, 5.0/6.0, low.Recall, 1e-12)
	assert.InDelta(t, 2*(5.0/7.0)*(5.0/6.0)/((5.0/7.0)+(5.0/6.0)), low.F1, 1e-12)
	assert.Equal(t, 6.0, low.Support)

	high, _ := report.Row("Alto Risco")
	assert.InDelta(t, 2.0/3.0, high.Precision, 1e-12)
	assert.InDelta(t, 0.5, high.Recall, 1e-12)
	assert.InDelta(t, 4.0/7.0, high.F1, 1e-12)
	assert.Equal(t, 4.0, high.Support)

	acc, _ := report.Row(RowAccuracy)
	assert.InDelta(t, 0.7, report.Accuracy, 1e-12)
	assert.Equal(t, []float64{report.Accuracy, report.Accuracy, report.Accuracy, report.Accuracy}, acc.Values())

	macro, _ := report.Row(RowMacroAvg)
	assert.InDelta(t, (low.Recall+high.Recall)/2, macro.Recall, 1e-12)
	assert.Equal(t, 10.0, macro.Support)

	weighted, _ := report.Row(RowWeightedAvg)
	assert.InDelta(t, (low.F1*6+high.F1*4)/10, weighted.F1, 1e-12)
	assert.InDelta(t, 0.7, weighted.Recall, 1e-12)
	assert.Equal(t, 10.0, weighted.Support)

	maxima := report.ColumnMaxima()
	assert.InDelta(t, 5.0/7.0, maxima[0], 1e-12)
	assert.InDelta(t, 5.0/6.0, maxima[1], 1e-12)
	assert.Equal(t, 10.0, maxima[3])

	_, ok := report.Row("missing")
	assert.False(t, ok)
}

func TestClassificationReportZeroDivision(t *testing.T) {
	cm, err := NewConfusionMatrix([]int{0, 0}, []int{0, 0})
	require.NoError(t, err)

	report := NewClassificationReport(cm, inventory.ClassNames)
	high, _ := report.Row("Alto Risco")
	assert.Equal(t, ReportRow{Label: "Alto Risco"}, high)
	assert.Equal(t, 1.0, report.Accuracy)
}

func TestRankImportances(t *testing.T) {
	ranked, err := RankImportances(inventory.FeatureNames, []float64{0.32, 0.54, 0.14})
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Tempo Restante (Dias)", ranked[0].Factor)
	assert.Equal(t, 0.54, ranked[0].Importance)
	assert.Equal(t, "Volume em Estoque (Unid.)", ranked[1].Factor)
	assert.Equal(t, inventory.ColStock, ranked[1].Feature)
	assert.Equal(t, "Giro de Vendas (Diário)", ranked[2].Factor)
	assert.Equal(t, 0.14, ranked[2].Importance)

	_, err = RankImportances(inventory.FeatureNames, []float64{1})
	assert.Error(t, err)
}

func TestRankImportancesKeepsTiesInFeatureOrder(t *testing.T) {
	ranked, err := RankImportances(inventory.FeatureNames, []float64{0.3, 0.3, 0.4})
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, inventory.FeatureNames[2], ranked[0].Feature)
	assert.Equal(t, inventory.FeatureNames[0], ranked[1].Feature)
	assert.Equal(t, inventory.FeatureNames[1], ranked[2].Feature)
}
