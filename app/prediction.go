package app

import (
	"fmt"

	"pharmarisk/domain/inventory"
	"pharmarisk/internal/errors"
)

// LotPrediction is the sidebar result for one hypothetical lot
type LotPrediction struct {
	Input inventory.LotInput
	Risk  inventory.RiskLabel
	// Probability is the model's probability of the predicted class, in [0, 1]
	Probability  float64
	CoverageDays float64
}

// PredictLot scores a single lot entered by the operator
func (s *DashboardService) PredictLot(input inventory.LotInput) (*LotPrediction, error) {
	if err := input.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	row := [][]float64{inventory.FeatureVector(input.Stock, input.DaysToExpiry, input.DailySaleRate)}
	predicted, err := s.classifier.Predict(row)
	if err != nil {
		return nil, errors.Wrap(err, "predict lot")
	}
	proba, err := s.classifier.PredictProba(row)
	if err != nil {
		return nil, errors.Wrap(err, "predict lot probability")
	}
	if len(predicted) != 1 || len(proba) != 1 {
		return nil, errors.InternalError("classifier returned no prediction")
	}
	class := predicted[0]
	if class < 0 || class >= len(proba[0]) {
		return nil, errors.InternalError(fmt.Sprintf("predicted class %d has no probability", class))
	}

	s.logger.Debug("predicted lot stock=%d days=%d rate=%d class=%d", input.Stock, input.DaysToExpiry, input.DailySaleRate, class)
	return &LotPrediction{
		Input:        input,
		Risk:         inventory.RiskLabel(class),
		Probability:  proba[0][class],
		CoverageDays: inventory.CoverageDays(input.Stock, input.DailySaleRate),
	}, nil
}

// HighRisk reports whether the model flagged the lot
func (p *LotPrediction) HighRisk() bool { return p.Risk == inventory.RiskHigh }

// ProbabilityPercent renders the class probability as "NN.NN%"
func (p *LotPrediction) ProbabilityPercent() string {
	return fmt.Sprintf("%.2f%%", p.Probability*100)
}

// Headline is the status banner
func (p *LotPrediction) Headline() string {
	if p.HighRisk() {
		return "🚨 RISCO ALTO DE PERDA"
	}
	return "✅ RISCO BAIXO"
}

// Confidence is the probability sentence under the banner
func (p *LotPrediction) Confidence() string {
	return p.ProbabilityPercent() + " " + p.ConfidenceNote()
}

// ConfidenceNote says what the probability measures
func (p *LotPrediction) ConfidenceNote() string {
	if p.HighRisk() {
		return "de risco confirmado"
	}
	return "de segurança"
}

// Action is the recommended operator action
func (p *LotPrediction) Action() string {
	if p.HighRisk() {
		return "AÇÃO: O lote tem mais estoque do que será vendido. Considere transferência imediata ou promoção."
	}
	return "AÇÃO: Monitoramento padrão. Estoque alinhado com o giro."
}

// CoverageDisplay formats the stock coverage with one decimal
func (p *LotPrediction) CoverageDisplay() string {
	return fmt.Sprintf("%.1f", p.CoverageDays)
}
