package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/classigo/dataset"
	"github.com/YuminosukeSato/classigo/pipeline"
)

var predictCommand = &cobra.Command{
	Use:   "predict DATA.csv",
	Short: "Classify CSV rows with a saved model, one predicted label per line",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("model")
		bundle, err := pipeline.LoadBundle(path)
		if err != nil {
			fatal("failed to load model bundle", err)
		}

		// The input may carry a label column to drop, or be feature-only.
		label, _ := cmd.Flags().GetString("label")
		var ds *dataset.Dataset
		if label != "" {
			ds, err = dataset.LoadCSV(args[0], label)
		} else {
			ds, err = dataset.LoadFeaturesCSV(args[0])
		}
		if err != nil {
			fatal("failed to load dataset", err)
		}

		predicted, err := bundle.Predict(ds)
		if err != nil {
			fatal("prediction failed", err)
		}
		for _, p := range predicted {
			fmt.Println(p)
		}
	},
}

func init() {
	predictCommand.Flags().String("label", "", "Name of a label column to drop before classifying")
	predictCommand.Flags().StringP("model", "m", "model.gob", "Path of the fitted model bundle")
}
