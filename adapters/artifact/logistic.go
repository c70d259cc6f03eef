package artifact

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"pharmarisk/domain/core"
)

// logistic is a binary LogisticRegression: P(1) = sigmoid(coef·x + intercept).
// It has no feature importances.
type logistic struct {
	baseModel
	coef      []float64
	intercept float64
}

func newLogistic(base baseModel, coef []float64, intercept float64) (*logistic, error) {
	if len(coef) != len(base.names) {
		return nil, fmt.Errorf("%w: %d coefficients for %d features", core.ErrFeatureMismatch, len(coef), len(base.names))
	}
	base.importances = nil
	return &logistic{baseModel: base, coef: coef, intercept: intercept}, nil
}

func (m *logistic) PredictProba(rows [][]float64) ([][]float64, error) {
	if err := m.checkRows(rows); err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		p := 1 / (1 + math.Exp(-(floats.Dot(m.coef, row) + m.intercept)))
		out[i] = []float64{1 - p, p}
	}
	return out, nil
}

func (m *logistic) Predict(rows [][]float64) ([]int, error) {
	probas, err := m.PredictProba(rows)
	if err != nil {
		return nil, err
	}
	return argmaxRows(probas), nil
}
