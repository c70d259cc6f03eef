package ports

// Classifier is a pre-trained binary model loaded from an artifact.
// Rows are feature vectors in the order reported by FeatureNames.
type Classifier interface {
	// Predict returns the class index of each row
	Predict(rows [][]float64) ([]int, error)

	// PredictProba returns one probability vector per row, indexed by class
	PredictProba(rows [][]float64) ([][]float64, error)

	// FeatureImportances returns the per-feature importance scores aligned with
	// FeatureNames, or core.ErrNoFeatureImportances when the model has none
	FeatureImportances() ([]float64, error)

	// FeatureNames lists the input columns the model was trained on
	FeatureNames() []string

	// Kind names the model family, e.g. "random_forest"
	Kind() string
}
