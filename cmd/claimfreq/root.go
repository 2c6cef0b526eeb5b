package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/insurekit/claimfreq/core/model"
	"github.com/insurekit/claimfreq/dataset"
	"github.com/insurekit/claimfreq/evaluate"
	"github.com/insurekit/claimfreq/glm"
	"github.com/insurekit/claimfreq/pkg/log"
	"github.com/insurekit/claimfreq/visualize"
)

var (
	flagData      string
	flagTrainFrac float64
	flagSeed      int64
	flagPlotDir   string
	flagOut       string
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "claimfreq",
	Short: "Fit and compare Poisson claim-frequency models on a motor policy dataset",
	Long: `claimfreq runs the claim-frequency analysis pipeline: load the policy
dataset, derive factor and frequency columns, render descriptive charts,
split into training and validation sets, fit intercept-only, full and
stepwise-selected Poisson models, and print the comparison table.`,
	RunE: runPipeline,
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&flagData, "data", "", "policy dataset CSV (default: bundled reference dataset)")
	rootCmd.Flags().Float64Var(&flagTrainFrac, "train-frac", 0.8, "training fraction of the split")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 42, "random seed of the split")
	rootCmd.Flags().StringVar(&flagPlotDir, "plot-dir", "", "directory for descriptive charts (empty: skip charts)")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "file for the compact stepwise model, gob-encoded (empty: skip)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return err
	}
	log.SetupLogger(flagLogLevel)
	log.InstallZerologWarnSink(os.Stderr)

	// Load. A missing dataset aborts before any processing.
	var (
		data *dataset.Dataset
		err  error
	)
	if flagData == "" {
		data, err = dataset.LoadReference()
	} else {
		data, err = dataset.LoadCSV(flagData)
	}
	if err != nil {
		return err
	}

	// Transform.
	transformed, err := data.Transform()
	if err != nil {
		return err
	}

	// Descriptive charts.
	if flagPlotDir != "" {
		if err := os.MkdirAll(flagPlotDir, 0o755); err != nil {
			return err
		}
		if err := visualize.ExposureHistogram(transformed, filepath.Join(flagPlotDir, "exposure_hist.png")); err != nil {
			return err
		}
		if err := visualize.ClaimsBar(transformed, filepath.Join(flagPlotDir, "claims_by_exposure.png")); err != nil {
			return err
		}
		if _, err := visualize.ClaimsBarByNCD(transformed, flagPlotDir); err != nil {
			return err
		}
	}

	// Split.
	train, validation, err := transformed.Split(flagTrainFrac, flagSeed)
	if err != nil {
		return err
	}

	// Fit the three models.
	intercept := glm.NewPoissonGLM()
	if err := intercept.Fit(train, nil); err != nil {
		return err
	}
	full := glm.NewPoissonGLM()
	if err := full.Fit(train, dataset.FactorColumns()); err != nil {
		return err
	}
	stepwise, _, err := glm.Stepwise(train, dataset.FactorColumns())
	if err != nil {
		return err
	}

	summary, err := stepwise.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary)

	// Evaluate.
	comparison, err := evaluate.Evaluate([]evaluate.Labeled{
		{Label: "intercept", Model: intercept},
		{Label: "full", Model: full},
		{Label: "stepwise", Model: stepwise},
	}, train, validation)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), comparison.String())

	// Trim and optionally persist the selected model.
	compact, err := stepwise.Compact()
	if err != nil {
		return err
	}
	if flagOut != "" {
		if err := model.SaveModel(compact, flagOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "compact model written to %s\n", flagOut)
	}
	return nil
}
