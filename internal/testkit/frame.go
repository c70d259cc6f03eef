package testkit

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"pharmarisk/domain/inventory"
)

// LotsFrame lays the lots out as a dataframe with the training column names.
// Money columns are kept as fixed two-decimal strings so exports do not pick up
// float noise.
func LotsFrame(lots []inventory.Lot) dataframe.DataFrame {
	n := len(lots)
	stock := make([]int, n)
	days := make([]int, n)
	rate := make([]int, n)
	cost := make([]string, n)
	label := make([]int, n)
	total := make([]string, n)
	predicted := make([]int, n)

	for i, lot := range lots {
		stock[i] = lot.Stock
		days[i] = lot.DaysToExpiry
		rate[i] = lot.DailySaleRate
		cost[i] = lot.UnitCost.StringFixed(2)
		label[i] = int(lot.RiskLabel)
		total[i] = lot.TotalValue.StringFixed(2)
		predicted[i] = int(lot.PredictedRisk)
	}

	return dataframe.New(
		series.New(stock, series.Int, inventory.ColStock),
		series.New(days, series.Int, inventory.ColDaysToExpiry),
		series.New(rate, series.Int, inventory.ColDailySaleRate),
		series.New(cost, series.String, inventory.ColUnitCost),
		series.New(label, series.Int, inventory.ColRiskLabel),
		series.New(total, series.String, inventory.ColTotalValue),
		series.New(predicted, series.Int, inventory.ColPredictedRisk),
	)
}

// HighRiskFrame keeps only lots the model flagged as high risk
func HighRiskFrame(df dataframe.DataFrame) dataframe.DataFrame {
	return df.Filter(dataframe.F{
		Colname:    inventory.ColPredictedRisk,
		Comparator: series.Eq,
		Comparando: int(inventory.RiskHigh),
	})
}
