package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pharmarisk/app"
	"pharmarisk/domain/inventory"
)

func newPredictCmd(opts *rootOptions) *cobra.Command {
	input := inventory.DefaultLotInput()

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score a single lot",
		Long: `Score a single lot with the loaded model.

Example: riskdash predict --stock 1500 --days 120 --rate 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(opts)
			if err != nil {
				return err
			}
			p, err := rt.Dashboard.PredictLot(input)
			if err != nil {
				return err
			}
			printPrediction(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().IntVar(&input.Stock, "stock", input.Stock, "Current stock in units")
	cmd.Flags().IntVar(&input.DaysToExpiry, "days", input.DaysToExpiry, "Days until expiry")
	cmd.Flags().IntVar(&input.DailySaleRate, "rate", input.DailySaleRate, "Average units sold per day")
	return cmd
}

func printPrediction(w io.Writer, p *app.LotPrediction) {
	fmt.Fprintln(w, p.Headline())
	fmt.Fprintf(w, "Probabilidade: %s\n", p.Confidence())
	fmt.Fprintln(w, p.Action())
	fmt.Fprintf(w, "Estoque Suficiente para: %s dias\n", p.CoverageDisplay())
	fmt.Fprintf(w, "Tempo restante: %d dias\n", p.Input.DaysToExpiry)
}
