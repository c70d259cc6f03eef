package app

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"

	"pharmarisk/domain/inventory"
	"pharmarisk/domain/run"
	"pharmarisk/internal"
	"pharmarisk/internal/analysis"
	"pharmarisk/internal/testkit"
	"pharmarisk/ports"
	"pharmarisk/ui/charts"
)

// ChartErrorMessage is shown in place of the importance chart when it cannot be built
const ChartErrorMessage = "Não foi possível gerar o gráfico de Importância das Features."

// LotSource produces the simulated inventory for a seed
type LotSource interface {
	GenerateLots(ctx context.Context, seed int64) ([]inventory.Lot, error)
	LotCount() int
}

// DashboardService scores a simulated inventory and derives everything the page shows
type DashboardService struct {
	classifier ports.Classifier
	source     LotSource
	rngPort    ports.RNGPort
	fixedSeed  int64
	logger     *internal.Logger
}

// Dashboard is one render of the page, identified by its seed
type Dashboard struct {
	Seed      int64
	ModelKind string
	Manifest  *run.RenderManifest
	Lots      []inventory.Lot

	Metrics analysis.ExecutiveMetrics

	Importances    []analysis.FactorImportance
	ImportanceSpec string
	ChartError     string

	Confusion    *analysis.ConfusionMatrix
	Report       analysis.ClassificationReport
	HeatmapPNG   []byte
	HeatmapError string
}

// NewDashboardService wires the classifier to a lot source. A non-zero
// fixedSeed pins every render to the same inventory.
func NewDashboardService(classifier ports.Classifier, source LotSource, rngPort ports.RNGPort, fixedSeed int64, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{
		classifier: classifier,
		source:     source,
		rngPort:    rngPort,
		fixedSeed:  fixedSeed,
		logger:     logger,
	}
}

// ResolveSeed picks the seed for a render: the requested one, else the
// configured one, else a fresh draw.
func (s *DashboardService) ResolveSeed(requested int64) int64 {
	if requested != 0 {
		return requested
	}
	if s.fixedSeed != 0 {
		return s.fixedSeed
	}
	return s.rngPort.NewSeed()
}

// ModelKind names the loaded classifier family
func (s *DashboardService) ModelKind() string {
	return s.classifier.Kind()
}

// ScoreLots generates the inventory for seed and fills PredictedRisk on every lot
func (s *DashboardService) ScoreLots(ctx context.Context, seed int64) ([]inventory.Lot, error) {
	lots, err := s.source.GenerateLots(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("generate lots: %w", err)
	}

	rows := make([][]float64, len(lots))
	for i, lot := range lots {
		rows[i] = lot.Features()
	}
	predicted, err := s.classifier.Predict(rows)
	if err != nil {
		return nil, fmt.Errorf("predict lots: %w", err)
	}
	if len(predicted) != len(lots) {
		return nil, fmt.Errorf("predict lots: got %d predictions for %d lots", len(predicted), len(lots))
	}
	for i := range lots {
		lots[i].PredictedRisk = inventory.RiskLabel(predicted[i])
	}
	return lots, nil
}

// Render builds the full dashboard for seed. Chart and heatmap failures are
// reported on the Dashboard so the rest of the page still renders.
func (s *DashboardService) Render(ctx context.Context, seed int64) (*Dashboard, error) {
	lots, err := s.ScoreLots(ctx, seed)
	if err != nil {
		return nil, err
	}

	metrics, err := analysis.ComputeExecutiveMetrics(lots)
	if err != nil {
		return nil, fmt.Errorf("executive metrics: %w", err)
	}

	d := &Dashboard{
		Seed:      seed,
		ModelKind: s.classifier.Kind(),
		Manifest:  run.NewRenderManifest(seed, s.classifier.Kind(), len(lots)),
		Lots:      lots,
		Metrics:   metrics,
	}

	if err := s.buildImportance(d); err != nil {
		s.logger.Warn("importance chart unavailable: %v", err)
		d.ChartError = ChartErrorMessage
	}

	if err := s.buildDiagnostics(d); err != nil {
		return nil, err
	}

	s.logger.Debug("rendered dashboard seed=%d lots=%d high_risk=%d", seed, metrics.TotalLots, metrics.HighRiskLots)
	return d, nil
}

func (s *DashboardService) buildImportance(d *Dashboard) error {
	importances, err := s.classifier.FeatureImportances()
	if err != nil {
		return err
	}
	ranked, err := analysis.RankImportances(s.classifier.FeatureNames(), importances)
	if err != nil {
		return err
	}
	spec, err := charts.ImportanceChart(ranked)
	if err != nil {
		return err
	}
	js, err := spec.JSON()
	if err != nil {
		return err
	}
	d.Importances = ranked
	d.ImportanceSpec = js
	return nil
}

func (s *DashboardService) buildDiagnostics(d *Dashboard) error {
	actual := make([]int, len(d.Lots))
	predicted := make([]int, len(d.Lots))
	for i, lot := range d.Lots {
		actual[i] = int(lot.RiskLabel)
		predicted[i] = int(lot.PredictedRisk)
	}
	cm, err := analysis.NewConfusionMatrix(actual, predicted)
	if err != nil {
		return fmt.Errorf("confusion matrix: %w", err)
	}
	d.Confusion = cm
	d.Report = analysis.NewClassificationReport(cm, inventory.ClassNames)

	png, err := charts.RenderHeatmapPNG(cm.Counts(), charts.ConfusionHeatmapOptions())
	if err != nil {
		s.logger.Warn("confusion heatmap unavailable: %v", err)
		d.HeatmapError = "Não foi possível gerar a Matriz de Confusão."
		return nil
	}
	d.HeatmapPNG = png
	return nil
}

// Frame lays the scored lots out as a dataframe
func (d *Dashboard) Frame() dataframe.DataFrame {
	return testkit.LotsFrame(d.Lots)
}
