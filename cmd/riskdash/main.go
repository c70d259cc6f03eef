package main

import (
	stderrors "errors"
	"os"

	"github.com/spf13/cobra"

	"pharmarisk/internal"
	"pharmarisk/internal/errors"
)

func main() {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "riskdash",
		Short:         "Expiry-risk dashboard for pharmaceutical inventory lots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.modelPath, "model", "", "Path to the classifier artifact (overrides MODEL_PATH)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().IntVar(&opts.lotCount, "lots", 0, "Simulated lots per render (overrides MOCK_LOT_COUNT)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newPredictCmd(opts),
		newExportCmd(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		internal.DefaultLogger.Error("%s", userMessage(err))
		os.Exit(1)
	}
}

// userMessage prefers the operator-facing text of a startup failure
func userMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Code == errors.CodeNotFound {
		return appErr.Message
	}
	return err.Error()
}
