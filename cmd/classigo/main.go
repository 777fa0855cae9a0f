// Command classigo trains, evaluates and applies binary classifiers over CSV
// datasets.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/classigo/pkg/log"
)

var rootCommand = &cobra.Command{
	Use:   "classigo",
	Short: "Binary classification pipeline over CSV datasets",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		log.SetupLogger(level)
		log.EnableStructuredWarnings()
	},
}

func init() {
	rootCommand.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCommand.AddCommand(trainCommand)
	rootCommand.AddCommand(evaluateCommand)
	rootCommand.AddCommand(predictCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

// fatal logs the error with its stack trace and exits.
func fatal(msg string, err error) {
	slog.Error(msg, log.ErrAttr(err))
	os.Exit(1)
}
