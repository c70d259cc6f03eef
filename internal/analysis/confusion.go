package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"pharmarisk/domain/core"
)

// ConfusionMatrix counts (actual, predicted) pairs. Rows are actual classes,
// columns predicted classes; it is always NumClasses x NumClasses even when a
// class never occurs.
type ConfusionMatrix struct {
	counts *mat.Dense
}

// NumClasses is the number of risk classes
const NumClasses = 2

// NewConfusionMatrix tallies actual against predicted labels
func NewConfusionMatrix(actual, predicted []int) (*ConfusionMatrix, error) {
	if len(actual) != len(predicted) {
		return nil, fmt.Errorf("confusion matrix: %d actual labels vs %d predicted", len(actual), len(predicted))
	}
	if len(actual) == 0 {
		return nil, core.ErrEmptyData
	}

	counts := mat.NewDense(NumClasses, NumClasses, nil)
	for i := range actual {
		a, p := actual[i], predicted[i]
		if a < 0 || a >= NumClasses || p < 0 || p >= NumClasses {
			return nil, fmt.Errorf("confusion matrix: row %d has labels (%d, %d) outside [0, %d)", i, a, p, NumClasses)
		}
		counts.Set(a, p, counts.At(a, p)+1)
	}
	return &ConfusionMatrix{counts: counts}, nil
}

// At returns the number of rows with the given actual and predicted class
func (c *ConfusionMatrix) At(actual, predicted int) int {
	return int(c.counts.At(actual, predicted))
}

// Counts returns the matrix as nested slices, actual-major
func (c *ConfusionMatrix) Counts() [][]int {
	out := make([][]int, NumClasses)
	for i := range out {
		out[i] = make([]int, NumClasses)
		for j := range out[i] {
			out[i][j] = c.At(i, j)
		}
	}
	return out
}

// FalseNegatives are high-risk lots the model called low risk
func (c *ConfusionMatrix) FalseNegatives() int { return c.At(1, 0) }

// FalsePositives are low-risk lots the model called high risk
func (c *ConfusionMatrix) FalsePositives() int { return c.At(0, 1) }

// Total is the number of rows tallied
func (c *ConfusionMatrix) Total() int {
	return int(mat.Sum(c.counts))
}

// Correct is the number of rows on the diagonal
func (c *ConfusionMatrix) Correct() int {
	return int(mat.Trace(c.counts))
}

// actualSupport is the row sum for one class
func (c *ConfusionMatrix) actualSupport(class int) float64 {
	return floats.Sum(mat.Row(nil, class, c.counts))
}

// predictedCount is the column sum for one class
func (c *ConfusionMatrix) predictedCount(class int) float64 {
	return floats.Sum(mat.Col(nil, class, c.counts))
}
