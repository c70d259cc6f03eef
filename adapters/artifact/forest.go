package artifact

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"pharmarisk/domain/core"
)

// forest averages the leaf class distributions of its trees, like
// RandomForestClassifier.predict_proba. A decision tree is a forest of one.
type forest struct {
	baseModel
	trees []TreeSpec
}

func newForest(base baseModel, trees []TreeSpec) (*forest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: %s has no trees", core.ErrInvalidArtifact, base.kind)
	}
	for i, tree := range trees {
		if err := validateTree(tree, len(base.names), base.nClasses); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", core.ErrInvalidArtifact, i, err)
		}
	}
	return &forest{baseModel: base, trees: trees}, nil
}

// validateTree requires children to come after their parent, which rules out
// cycles and keeps traversal bounded by the node count.
func validateTree(t TreeSpec, nFeatures, nClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		if len(t.Value[i]) != nClasses {
			return fmt.Errorf("node %d value has %d classes, want %d", i, len(t.Value[i]), nClasses)
		}
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == -1 {
			if right != -1 {
				return fmt.Errorf("node %d has only one child", i)
			}
			if floats.Sum(t.Value[i]) <= 0 {
				return fmt.Errorf("leaf %d has no samples", i)
			}
			continue
		}
		if left <= i || right <= i || left >= n || right >= n {
			return fmt.Errorf("node %d children (%d, %d) out of order", i, left, right)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, t.Feature[i], nFeatures)
		}
	}
	return nil
}

// leaf walks one row down the tree: left when x[feature] <= threshold
func leaf(t TreeSpec, row []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != -1 {
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

func (f *forest) PredictProba(rows [][]float64) ([][]float64, error) {
	if err := f.checkRows(rows); err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		proba := make([]float64, f.nClasses)
		for _, tree := range f.trees {
			counts := leaf(tree, row)
			floats.AddScaled(proba, 1/floats.Sum(counts), counts)
		}
		floats.Scale(1/float64(len(f.trees)), proba)
		out[i] = proba
	}
	return out, nil
}

func (f *forest) Predict(rows [][]float64) ([]int, error) {
	probas, err := f.PredictProba(rows)
	if err != nil {
		return nil, err
	}
	return argmaxRows(probas), nil
}

// argmaxRows picks the most probable class per row; ties go to the lower class
func argmaxRows(probas [][]float64) []int {
	labels := make([]int, len(probas))
	for i, p := range probas {
		labels[i] = floats.MaxIdx(p)
	}
	return labels
}
