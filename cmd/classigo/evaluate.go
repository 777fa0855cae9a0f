package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/classigo/dataset"
	"github.com/YuminosukeSato/classigo/pipeline"
)

var evaluateCommand = &cobra.Command{
	Use:   "evaluate DATA.csv",
	Short: "Score a saved model against a labeled CSV dataset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("model")
		bundle, err := pipeline.LoadBundle(path)
		if err != nil {
			fatal("failed to load model bundle", err)
		}

		label, _ := cmd.Flags().GetString("label")
		ds, err := dataset.LoadCSV(args[0], label)
		if err != nil {
			fatal("failed to load dataset", err)
		}

		report, err := bundle.Evaluate(ds)
		if err != nil {
			fatal("evaluation failed", err)
		}
		report.Write(os.Stdout)
	},
}

func init() {
	evaluateCommand.Flags().String("label", "label", "Name of the label column")
	evaluateCommand.Flags().StringP("model", "m", "model.gob", "Path of the fitted model bundle")
}
