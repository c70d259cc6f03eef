package analysis

import (
	"cmp"
	"fmt"
	"slices"

	"pharmarisk/domain/inventory"
)

// FactorImportance is one bar of the feature-importance chart
type FactorImportance struct {
	Feature    string  `json:"feature"`
	Factor     string  `json:"Fator de Risco"`
	Importance float64 `json:"Importância"`
}

// RankImportances orders features by descending importance and maps them to
// their friendly names. Tied features keep their input order.
func RankImportances(featureNames []string, importances []float64) ([]FactorImportance, error) {
	if len(featureNames) != len(importances) {
		return nil, fmt.Errorf("%d importances for %d features", len(importances), len(featureNames))
	}

	inds := make([]int, len(importances))
	for i := range inds {
		inds[i] = i
	}
	slices.SortStableFunc(inds, func(a, b int) int {
		return cmp.Compare(importances[b], importances[a])
	})

	ranked := make([]FactorImportance, len(inds))
	for i, idx := range inds {
		ranked[i] = FactorImportance{
			Feature:    featureNames[idx],
			Factor:     inventory.FriendlyName(featureNames[idx]),
			Importance: importances[idx],
		}
	}
	return ranked, nil
}
