// Package classigo provides a batch binary-classification pipeline for Go:
// stratified splitting, logistic regression training, prediction, evaluation
// and model persistence.
//
// The API follows scikit-learn conventions (Fit/Predict/Transform, functional
// options, typed errors and warnings), so the workflow reads the same way a
// Python notebook would, while staying idiomatic Go.
//
// # Installation
//
// Install classigo using go get:
//
//	go get github.com/YuminosukeSato/classigo
//
// # Quick Start
//
// Run the whole pipeline over a labeled dataset:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/classigo/dataset"
//	    "github.com/YuminosukeSato/classigo/pipeline"
//	)
//
//	func main() {
//	    ds, err := dataset.LoadCSV("data.csv", "label")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    cfg := pipeline.DefaultConfig()
//	    cfg.ModelPath = "model.gob"
//
//	    result, err := pipeline.Run(ds, cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(result.Report)
//	}
//
// The individual stages are usable on their own:
//
//	trainIdx, testIdx, err := model_selection.StratifiedSplit(labels, 0.25, 42)
//
//	clf := linear.NewLogisticRegression(
//	    linear.WithMaxIter(200),
//	    linear.WithRandomState(42),
//	)
//	err = clf.Fit(X, y)
//
// # Packages
//
// The library is organized into several packages:
//
//   - dataset: In-memory labeled tables and CSV loading
//   - model_selection: Stratified train/test splitting
//   - preprocessing: Label encoding and feature scaling
//   - linear: Logistic regression classifier
//   - metrics: Accuracy, precision/recall/F1, confusion matrix, ROC/AUC
//   - pipeline: The five stages as one forward pass, plus model bundles
//   - core/model: Core interfaces, fitted-state tracking, artifact format
//   - core/parallel: Parallel processing utilities
//
// # Command Line
//
// The classigo command wraps the pipeline for CSV files:
//
//	classigo train data.csv --label label --holdout 0.25 -m model.gob
//	classigo evaluate holdout.csv -m model.gob
//	classigo predict unlabeled.csv -m model.gob
//
// # License
//
// classigo is released under the MIT License.
package classigo
