package excel

import (
	"github.com/go-gota/gota/dataframe"

	"pharmarisk/internal/analysis"
)

// Sheet names of the diagnostics workbook
const (
	SheetSummary   = "Resumo"
	SheetReport    = "Relatorio"
	SheetConfusion = "Matriz"
	SheetLots      = "Lotes"
	SheetHighRisk  = "Lotes em Risco"
)

// DiagnosticsWorkbook is everything one dashboard render exports
type DiagnosticsWorkbook struct {
	Seed        int64
	ModelKind   string
	Fingerprint string
	Metrics     analysis.ExecutiveMetrics
	Confusion   *analysis.ConfusionMatrix
	Report      analysis.ClassificationReport
	Lots        dataframe.DataFrame
	HighRisk    dataframe.DataFrame
}
