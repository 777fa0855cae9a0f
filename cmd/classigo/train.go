package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/classigo/dataset"
	"github.com/YuminosukeSato/classigo/metrics"
	"github.com/YuminosukeSato/classigo/pipeline"
)

var trainCommand = &cobra.Command{
	Use:   "train DATA.csv",
	Short: "Train a classifier on a labeled CSV dataset and report held-out metrics",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		label, _ := cmd.Flags().GetString("label")
		ds, err := dataset.LoadCSV(args[0], label)
		if err != nil {
			fatal("failed to load dataset", err)
		}

		cfg := pipeline.DefaultConfig()
		cfg.HoldoutFraction, _ = cmd.Flags().GetFloat64("holdout")
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
		cfg.MaxIter, _ = cmd.Flags().GetInt("max-iter")
		cfg.Tol, _ = cmd.Flags().GetFloat64("tol")
		noScale, _ := cmd.Flags().GetBool("no-scale")
		cfg.Scale = !noScale
		cfg.ModelPath, _ = cmd.Flags().GetString("model")

		result, err := pipeline.Run(ds, cfg)
		if err != nil {
			fatal("pipeline failed", err)
		}

		result.Report.Write(os.Stdout)
		fmt.Printf("AUC: %.2f\n", result.AUC)

		plotDir, _ := cmd.Flags().GetString("plot-dir")
		if plotDir != "" {
			if err := savePlots(result, plotDir); err != nil {
				fatal("failed to render plots", err)
			}
		}
	},
}

func init() {
	trainCommand.Flags().String("label", "label", "Name of the label column")
	trainCommand.Flags().Float64("holdout", 0.25, "Fraction of rows held out for evaluation")
	trainCommand.Flags().Int64("seed", 42, "Random seed for the split and weight initialization")
	trainCommand.Flags().Int("max-iter", 100, "Iteration cap for the solver")
	trainCommand.Flags().Float64("tol", 1e-4, "Stopping tolerance on the gradient norm")
	trainCommand.Flags().Bool("no-scale", false, "Disable feature standardization")
	trainCommand.Flags().StringP("model", "m", "", "Path to write the fitted model bundle")
	trainCommand.Flags().String("plot-dir", "", "Directory to write confusion matrix and ROC curve PNGs")
}

// savePlots renders the confusion matrix and ROC curve of the held-out
// partition into dir.
func savePlots(result *pipeline.Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := metrics.SaveConfusionMatrixPlot(result.Report.Matrix,
		filepath.Join(dir, "confusion_matrix.png")); err != nil {
		return err
	}

	scores, err := result.Bundle.ProbaPositive(result.Test)
	if err != nil {
		return err
	}
	yTrue, err := result.Bundle.EncodedLabels(result.Test)
	if err != nil {
		return err
	}
	return metrics.SaveROCPlot(yTrue, scores, filepath.Join(dir, "roc_curve.png"))
}
