// Package artifact loads the serialized risk classifier. The JSON layout
// mirrors scikit-learn's fitted attributes (tree_.children_left, coef_,
// feature_importances_, ...) so a trained estimator can be exported with a
// few lines of Python.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"pharmarisk/domain/core"
	"pharmarisk/ports"
)

// Model kinds understood by Load
const (
	KindRandomForest       = "random_forest"
	KindDecisionTree       = "decision_tree"
	KindLogisticRegression = "logistic_regression"
)

// Document is the on-disk artifact
type Document struct {
	Kind               string     `json:"kind"`
	FeatureNames       []string   `json:"feature_names"`
	Classes            []int      `json:"classes"`
	FeatureImportances []float64  `json:"feature_importances,omitempty"`
	Trees              []TreeSpec `json:"trees,omitempty"`
	Coef               []float64  `json:"coef,omitempty"`
	Intercept          float64    `json:"intercept,omitempty"`
}

// TreeSpec is one fitted tree in scikit-learn's flat array form.
// Node i is a leaf when ChildrenLeft[i] == -1.
type TreeSpec struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Load reads the artifact at path. A missing file yields core.ErrArtifactNotFound.
// When expected is non-empty the artifact's feature names must equal it.
func Load(path string, expected []string) (ports.Classifier, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.NewArtifactNotFoundError(path)
		}
		return nil, fmt.Errorf("open model artifact %s: %w", path, err)
	}
	defer f.Close()

	model, err := Decode(f, expected)
	if err != nil {
		return nil, fmt.Errorf("load model artifact %s: %w", path, err)
	}
	return model, nil
}

// Decode parses and validates an artifact document
func Decode(r io.Reader, expected []string) (ports.Classifier, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidArtifact, err)
	}
	return Build(doc, expected)
}

// Build validates a decoded document and returns the matching classifier
func Build(doc Document, expected []string) (ports.Classifier, error) {
	base, err := newBaseModel(doc, expected)
	if err != nil {
		return nil, err
	}

	switch doc.Kind {
	case KindRandomForest, KindDecisionTree:
		if doc.Kind == KindDecisionTree && len(doc.Trees) != 1 {
			return nil, fmt.Errorf("%w: decision_tree needs exactly one tree, got %d", core.ErrInvalidArtifact, len(doc.Trees))
		}
		model, err := newForest(base, doc.Trees)
		if err != nil {
			return nil, err
		}
		return model, nil
	case KindLogisticRegression:
		model, err := newLogistic(base, doc.Coef, doc.Intercept)
		if err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("%w: unknown model kind %q", core.ErrInvalidArtifact, doc.Kind)
	}
}

// baseModel carries what every model kind shares
type baseModel struct {
	kind        string
	names       []string
	nClasses    int
	importances []float64
}

func newBaseModel(doc Document, expected []string) (baseModel, error) {
	if len(doc.FeatureNames) == 0 {
		return baseModel{}, fmt.Errorf("%w: feature_names is empty", core.ErrInvalidArtifact)
	}
	if len(expected) > 0 && !slices.Equal(doc.FeatureNames, expected) {
		return baseModel{}, fmt.Errorf("%w: artifact features %v, dashboard expects %v", core.ErrFeatureMismatch, doc.FeatureNames, expected)
	}
	if !slices.Equal(doc.Classes, []int{0, 1}) {
		return baseModel{}, fmt.Errorf("%w: classes must be [0 1], got %v", core.ErrInvalidArtifact, doc.Classes)
	}
	if doc.FeatureImportances != nil && len(doc.FeatureImportances) != len(doc.FeatureNames) {
		return baseModel{}, fmt.Errorf("%w: %d importances for %d features", core.ErrFeatureMismatch, len(doc.FeatureImportances), len(doc.FeatureNames))
	}
	return baseModel{
		kind:        doc.Kind,
		names:       slices.Clone(doc.FeatureNames),
		nClasses:    len(doc.Classes),
		importances: slices.Clone(doc.FeatureImportances),
	}, nil
}

func (b baseModel) Kind() string { return b.kind }

func (b baseModel) FeatureNames() []string { return slices.Clone(b.names) }

func (b baseModel) FeatureImportances() ([]float64, error) {
	if len(b.importances) == 0 {
		return nil, core.ErrNoFeatureImportances
	}
	return slices.Clone(b.importances), nil
}

func (b baseModel) checkRows(rows [][]float64) error {
	for i, row := range rows {
		if len(row) != len(b.names) {
			return fmt.Errorf("%w: row %d has %d values, model takes %d", core.ErrFeatureMismatch, i, len(row), len(b.names))
		}
	}
	return nil
}
