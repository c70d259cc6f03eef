package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmarisk/adapters/artifact"
	"pharmarisk/domain/core"
	"pharmarisk/domain/inventory"
	"pharmarisk/internal"
	apperrors "pharmarisk/internal/errors"
	"pharmarisk/internal/testkit"
	"pharmarisk/ports"
)

// stubClassifier predicts class 1 when days < 180 and echoes fixed probabilities
type stubClassifier struct {
	importances []float64
	predictErr  error
}

func (c *stubClassifier) Predict(rows [][]float64) ([]int, error) {
	if c.predictErr != nil {
		return nil, c.predictErr
	}
	out := make([]int, len(rows))
	for i, row := range rows {
		if row[1] < 180 {
			out[i] = 1
		}
	}
	return out, nil
}

func (c *stubClassifier) PredictProba(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if row[1] < 180 {
			out[i] = []float64{0.2, 0.8}
		} else {
			out[i] = []float64{0.7, 0.3}
		}
	}
	return out, nil
}

func (c *stubClassifier) FeatureImportances() ([]float64, error) {
	if c.importances == nil {
		return nil, core.ErrNoFeatureImportances
	}
	return c.importances, nil
}

func (c *stubClassifier) FeatureNames() []string { return inventory.FeatureNames }
func (c *stubClassifier) Kind() string           { return "stub" }

type fixedSource struct{ lots []inventory.Lot }

func (s fixedSource) GenerateLots(ctx context.Context, seed int64) ([]inventory.Lot, error) {
	out := make([]inventory.Lot, len(s.lots))
	copy(out, s.lots)
	return out, nil
}

func (s fixedSource) LotCount() int { return len(s.lots) }

func quietLogger() *internal.Logger {
	return internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError, true)
}

func sampleLots() []inventory.Lot {
	cost := decimal.RequireFromString("10.00")
	return []inventory.Lot{
		inventory.NewLot(5000, 30, 10, cost), // high, predicted high
		inventory.NewLot(100, 90, 50, cost),  // low, predicted high
		inventory.NewLot(6000, 400, 5, cost), // low, predicted low
		inventory.NewLot(7000, 179, 1, cost), // high, predicted high
	}
}

func newStubService(c ports.Classifier) *DashboardService {
	kit := testkit.NewTestKit(0)
	return NewDashboardService(c, fixedSource{lots: sampleLots()}, kit.RNGAdapter(), 0, quietLogger())
}

func TestRender(t *testing.T) {
	svc := newStubService(&stubClassifier{importances: []float64{0.3, 0.6, 0.1}})

	d, err := svc.Render(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), d.Seed)
	assert.Equal(t, "stub", d.ModelKind)
	require.NotNil(t, d.Manifest)
	assert.Equal(t, int64(7), d.Manifest.Seed)
	assert.NoError(t, d.Manifest.Validate())
	assert.Equal(t, 4, d.Metrics.TotalLots)
	assert.Equal(t, 3, d.Metrics.HighRiskLots)
	assert.InDelta(t, 75.0, d.Metrics.HighRiskShare, 1e-9)
	assert.True(t, decimal.RequireFromString("121000").Equal(d.Metrics.ValueAtRisk), d.Metrics.ValueAtRisk.String())

	assert.Equal(t, [][]int{{1, 1}, {0, 2}}, d.Confusion.Counts())
	assert.Zero(t, d.Confusion.FalseNegatives())
	assert.NotEmpty(t, d.HeatmapPNG)
	assert.Empty(t, d.HeatmapError)

	require.Len(t, d.Importances, 3)
	assert.Equal(t, inventory.ColDaysToExpiry, d.Importances[0].Feature)
	assert.Contains(t, d.ImportanceSpec, "#00a68d")
	assert.Empty(t, d.ChartError)

	assert.Equal(t, 4, d.Frame().Nrow())
}

func TestRenderWithoutImportancesStillRenders(t *testing.T) {
	svc := newStubService(&stubClassifier{})

	d, err := svc.Render(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, ChartErrorMessage, d.ChartError)
	assert.Empty(t, d.ImportanceSpec)
	assert.Equal(t, 4, d.Metrics.TotalLots)
	assert.NotNil(t, d.Confusion)
}

func TestRenderPropagatesPredictFailure(t *testing.T) {
	svc := newStubService(&stubClassifier{predictErr: core.ErrFeatureMismatch})

	_, err := svc.Render(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFeatureMismatch))
}

func TestRenderWithGeneratedInventory(t *testing.T) {
	model, err := artifact.Load(filepath.Join("..", "modelo_risco_vencimento.json"), inventory.FeatureNames)
	require.NoError(t, err)

	kit := testkit.NewTestKit(300)
	svc := NewDashboardService(model, kit, kit.RNGAdapter(), 0, quietLogger())

	first, err := svc.Render(context.Background(), 42)
	require.NoError(t, err)
	second, err := svc.Render(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 300, first.Metrics.TotalLots)
	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.Manifest.Fingerprint, second.Manifest.Fingerprint)
	assert.NotEqual(t, first.Manifest.RenderID, second.Manifest.RenderID)
	assert.Equal(t, first.Confusion.Counts(), second.Confusion.Counts())
	assert.Equal(t, 300, first.Confusion.Total())
}

func TestResolveSeed(t *testing.T) {
	kit := testkit.NewTestKit(10)

	fixed := NewDashboardService(&stubClassifier{}, kit, kit.RNGAdapter(), 99, quietLogger())
	assert.Equal(t, int64(5), fixed.ResolveSeed(5))
	assert.Equal(t, int64(99), fixed.ResolveSeed(0))

	fresh := NewDashboardService(&stubClassifier{}, kit, kit.RNGAdapter(), 0, quietLogger())
	assert.NotZero(t, fresh.ResolveSeed(0))
}

func TestPredictLotMatchesModelProbability(t *testing.T) {
	model, err := artifact.Load(filepath.Join("..", "modelo_risco_vencimento.json"), inventory.FeatureNames)
	require.NoError(t, err)
	kit := testkit.NewTestKit(10)
	svc := NewDashboardService(model, kit, kit.RNGAdapter(), 0, quietLogger())

	input := inventory.DefaultLotInput()
	p, err := svc.PredictLot(input)
	require.NoError(t, err)

	proba, err := model.PredictProba([][]float64{{1500, 120, 10}})
	require.NoError(t, err)

	assert.True(t, p.HighRisk())
	assert.InDelta(t, proba[0][1], p.Probability, 1e-12)
	assert.Equal(t, fmt.Sprintf("%.2f%%", proba[0][1]*100), p.ProbabilityPercent())
	assert.Equal(t, "96.61%", p.ProbabilityPercent())
	assert.Equal(t, "🚨 RISCO ALTO DE PERDA", p.Headline())
	assert.Equal(t, "96.61% de risco confirmado", p.Confidence())
	assert.Contains(t, p.Action(), "transferência imediata")
	assert.Equal(t, "150.0", p.CoverageDisplay())
}

func TestPredictLotLowRisk(t *testing.T) {
	svc := newStubService(&stubClassifier{})

	p, err := svc.PredictLot(inventory.LotInput{Stock: 100, DaysToExpiry: 400, DailySaleRate: 3})
	require.NoError(t, err)

	assert.False(t, p.HighRisk())
	assert.InDelta(t, 0.7, p.Probability, 1e-12)
	assert.Equal(t, "✅ RISCO BAIXO", p.Headline())
	assert.Equal(t, "70.00% de segurança", p.Confidence())
	assert.Equal(t, "AÇÃO: Monitoramento padrão. Estoque alinhado com o giro.", p.Action())
	assert.Equal(t, "33.3", p.CoverageDisplay())
}

func TestPredictLotRejectsOutOfRange(t *testing.T) {
	svc := newStubService(&stubClassifier{})

	_, err := svc.PredictLot(inventory.LotInput{Stock: 10001, DaysToExpiry: 10, DailySaleRate: 1})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
	assert.True(t, errors.Is(err, core.ErrInvalidLot))

	_, err = svc.PredictLot(inventory.LotInput{Stock: 10, DaysToExpiry: 10, DailySaleRate: 0})
	assert.Error(t, err)
}
