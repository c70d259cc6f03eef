// Package analysis computes the executive metrics and model diagnostics the
// dashboard shows for one simulated inventory.
package analysis

import (
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"pharmarisk/domain/core"
	"pharmarisk/domain/inventory"
)

// ExecutiveMetrics summarises the lots the model flags as high risk
type ExecutiveMetrics struct {
	TotalLots    int
	HighRiskLots int
	// HighRiskShare is a percentage in [0, 100]
	HighRiskShare  float64
	ValueAtRisk    decimal.Decimal
	MeanDaysAtRisk float64
}

// ComputeExecutiveMetrics aggregates over PredictedRisk, not the ground-truth label.
func ComputeExecutiveMetrics(lots []inventory.Lot) (ExecutiveMetrics, error) {
	if len(lots) == 0 {
		return ExecutiveMetrics{}, core.ErrEmptyData
	}

	metrics := ExecutiveMetrics{TotalLots: len(lots), ValueAtRisk: decimal.Zero}
	var days []float64
	for _, lot := range lots {
		if lot.PredictedRisk != inventory.RiskHigh {
			continue
		}
		metrics.HighRiskLots++
		metrics.ValueAtRisk = metrics.ValueAtRisk.Add(lot.TotalValue)
		days = append(days, float64(lot.DaysToExpiry))
	}

	metrics.HighRiskShare = float64(metrics.HighRiskLots) / float64(metrics.TotalLots) * 100
	if len(days) > 0 {
		mean, err := stats.Mean(days)
		if err != nil {
			return ExecutiveMetrics{}, err
		}
		metrics.MeanDaysAtRisk = mean
	}
	return metrics, nil
}
