package analysis

import (
	"gonum.org/v1/gonum/floats"
)

// Report column headers, in display order
var ReportColumns = []string{"precision", "recall", "f1-score", "support"}

// Summary row labels
const (
	RowAccuracy    = "accuracy"
	RowMacroAvg    = "macro avg"
	RowWeightedAvg = "weighted avg"
)

// ReportRow is one line of the classification report
type ReportRow struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   float64
}

// Values returns the row in ReportColumns order
func (r ReportRow) Values() []float64 {
	return []float64{r.Precision, r.Recall, r.F1, r.Support}
}

// ClassificationReport holds per-class rows followed by accuracy, macro avg
// and weighted avg. The accuracy row repeats the accuracy in every column,
// matching the transposed scikit-learn report dict.
type ClassificationReport struct {
	Rows     []ReportRow
	Accuracy float64
}

// NewClassificationReport derives precision/recall/F1 from a confusion matrix.
// Any metric with a zero denominator is reported as 0.
func NewClassificationReport(cm *ConfusionMatrix, classNames []string) ClassificationReport {
	n := NumClasses
	precision := make([]float64, n)
	recall := make([]float64, n)
	f1 := make([]float64, n)
	support := make([]float64, n)

	var rows []ReportRow
	for class := 0; class < n; class++ {
		tp := float64(cm.At(class, class))
		support[class] = cm.actualSupport(class)
		precision[class] = safeDiv(tp, cm.predictedCount(class))
		recall[class] = safeDiv(tp, support[class])
		f1[class] = safeDiv(2*precision[class]*recall[class], precision[class]+recall[class])

		label := classLabel(classNames, class)
		rows = append(rows, ReportRow{
			Label:     label,
			Precision: precision[class],
			Recall:    recall[class],
			F1:        f1[class],
			Support:   support[class],
		})
	}

	total := floats.Sum(support)
	accuracy := safeDiv(float64(cm.Correct()), total)

	rows = append(rows,
		ReportRow{Label: RowAccuracy, Precision: accuracy, Recall: accuracy, F1: accuracy, Support: accuracy},
		ReportRow{
			Label:     RowMacroAvg,
			Precision: floats.Sum(precision) / float64(n),
			Recall:    floats.Sum(recall) / float64(n),
			F1:        floats.Sum(f1) / float64(n),
			Support:   total,
		},
		ReportRow{
			Label:     RowWeightedAvg,
			Precision: safeDiv(floats.Dot(precision, support), total),
			Recall:    safeDiv(floats.Dot(recall, support), total),
			F1:        safeDiv(floats.Dot(f1, support), total),
			Support:   total,
		},
	)

	return ClassificationReport{Rows: rows, Accuracy: accuracy}
}

// ColumnMaxima returns, per column, the largest value in the report
func (r ClassificationReport) ColumnMaxima() []float64 {
	maxima := make([]float64, len(ReportColumns))
	for col := range maxima {
		values := make([]float64, len(r.Rows))
		for i, row := range r.Rows {
			values[i] = row.Values()[col]
		}
		if len(values) > 0 {
			maxima[col] = floats.Max(values)
		}
	}
	return maxima
}

// Row looks a row up by label
func (r ClassificationReport) Row(label string) (ReportRow, bool) {
	for _, row := range r.Rows {
		if row.Label == label {
			return row, true
		}
	}
	return ReportRow{}, false
}

func classLabel(names []string, class int) string {
	if class < len(names) {
		return names[class]
	}
	return string(rune('0' + class))
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
