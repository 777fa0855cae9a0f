// Package pipeline runs the full classification workflow over a labeled
// dataset: stratified split, scaling, training, prediction, evaluation and
// model persistence, with structured logging per stage.
package pipeline

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classigo/dataset"
	"github.com/YuminosukeSato/classigo/linear"
	"github.com/YuminosukeSato/classigo/metrics"
	"github.com/YuminosukeSato/classigo/model_selection"
	"github.com/YuminosukeSato/classigo/pkg/errors"
	"github.com/YuminosukeSato/classigo/pkg/log"
	"github.com/YuminosukeSato/classigo/preprocessing"
)

// Config holds the pipeline parameters.
type Config struct {
	// HoldoutFraction is the share of rows reserved for evaluation.
	HoldoutFraction float64

	// Seed drives the stratified shuffle and weight initialization.
	Seed int64

	// MaxIter caps the solver iterations.
	MaxIter int

	// Tol is the solver stopping tolerance on the gradient norm.
	Tol float64

	// Scale standardizes features using statistics from the training
	// partition.
	Scale bool

	// ModelPath, when non-empty, is where the fitted bundle is written.
	ModelPath string
}

// DefaultConfig returns the standard pipeline parameters.
func DefaultConfig() Config {
	return Config{
		HoldoutFraction: 0.25,
		Seed:            42,
		MaxIter:         100,
		Tol:             1e-4,
		Scale:           true,
	}
}

// Result holds everything the pipeline produced: the fitted bundle, the
// evaluation report, and the held-out predictions it was scored on.
type Result struct {
	Bundle *Bundle
	Report *metrics.ClassificationReport

	// AUC is the area under the ROC curve on the held-out partition.
	AUC float64

	// TestLabels and Predicted are the held-out true and predicted labels,
	// order-aligned.
	TestLabels []string
	Predicted  []string

	// Test is the held-out partition the report was scored on.
	Test *dataset.Dataset

	TrainRows int
	TestRows  int
}

// Run executes the pipeline on ds and returns the evaluation result. The
// model is fitted on the training partition only; the held-out partition is
// used exclusively for scoring.
func Run(ds *dataset.Dataset, cfg Config) (*Result, error) {
	start := time.Now()

	// Split.
	train, test, err := model_selection.TrainTestSplit(ds, cfg.HoldoutFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}
	slog.Info("dataset partitioned",
		slog.String(log.StageKey, log.StageSplit),
		slog.Int(log.SamplesKey, ds.NumRows()),
		slog.Int(log.TrainSamplesKey, train.NumRows()),
		slog.Int(log.TestSamplesKey, test.NumRows()),
		slog.Float64(log.HoldoutKey, cfg.HoldoutFraction),
		slog.Int64(log.SeedKey, cfg.Seed))

	// Train.
	encoder := preprocessing.NewLabelEncoder()
	yTrain, err := encoder.FitTransform(train.Labels)
	if err != nil {
		return nil, err
	}

	var scaler *preprocessing.StandardScaler
	XTrain := mat.Matrix(train.X)
	if cfg.Scale {
		scaler = preprocessing.NewStandardScalerDefault()
		XTrain, err = scaler.FitTransform(train.X)
		if err != nil {
			return nil, err
		}
	}

	clf := linear.NewLogisticRegression(
		linear.WithMaxIter(cfg.MaxIter),
		linear.WithTol(cfg.Tol),
		linear.WithRandomState(cfg.Seed),
	)
	if err := clf.Fit(XTrain, yTrain); err != nil {
		return nil, err
	}
	slog.Info("model fitted",
		slog.String(log.StageKey, log.StageTrain),
		slog.String(log.ModelNameKey, "LogisticRegression"),
		slog.Int(log.FeaturesKey, train.NumFeatures()),
		slog.Int(log.ClassesKey, len(encoder.Classes())),
		slog.Int(log.IterationsKey, clf.NIter()),
		slog.Bool(log.ConvergedKey, clf.Converged()))

	bundle := &Bundle{
		FeatureNames: ds.FeatureNames,
		Model:        clf,
		Scaler:       scaler,
		Encoder:      encoder,
	}

	// Predict.
	predicted, err := bundle.Predict(test)
	if err != nil {
		return nil, err
	}
	slog.Info("held-out rows classified",
		slog.String(log.StageKey, log.StagePredict),
		slog.Int(log.SamplesKey, test.NumRows()))

	// Evaluate.
	report, err := metrics.Report(encoder.Classes(), test.Labels, predicted)
	if err != nil {
		return nil, err
	}
	auc, err := bundle.scoreAUC(test)
	if err != nil {
		return nil, err
	}
	slog.Info("evaluation complete",
		slog.String(log.StageKey, log.StageEvaluate),
		slog.Float64(log.AccuracyKey, report.Accuracy),
		slog.Float64("metrics.auc", auc),
		slog.Int64(log.DurationMsKey, time.Since(start).Milliseconds()))

	// Persist.
	if cfg.ModelPath != "" {
		if err := bundle.Save(cfg.ModelPath); err != nil {
			return nil, err
		}
		slog.Info("model bundle written",
			slog.String(log.StageKey, log.StagePersist),
			slog.String(log.PathKey, cfg.ModelPath))
	}

	return &Result{
		Bundle:     bundle,
		Report:     report,
		AUC:        auc,
		TestLabels: test.Labels,
		Predicted:  predicted,
		Test:       test,
		TrainRows:  train.NumRows(),
		TestRows:   test.NumRows(),
	}, nil
}

// scoreAUC ranks the positive-class probabilities against the encoded labels
// of the held-out partition.
func (b *Bundle) scoreAUC(ds *dataset.Dataset) (float64, error) {
	scores, err := b.ProbaPositive(ds)
	if err != nil {
		return 0, err
	}
	yTrue, err := b.EncodedLabels(ds)
	if err != nil {
		return 0, err
	}
	return metrics.AUC(yTrue, scores)
}

// features validates the dataset schema against the bundle and applies the
// scaler when one was fitted.
func (b *Bundle) features(ds *dataset.Dataset) (mat.Matrix, error) {
	if len(ds.FeatureNames) != len(b.FeatureNames) {
		return nil, errors.NewDimensionError("pipeline.features",
			len(b.FeatureNames), len(ds.FeatureNames), 1)
	}
	for i, name := range b.FeatureNames {
		if ds.FeatureNames[i] != name {
			return nil, errors.NewValidationError("dataset",
				"feature columns do not match the fitted schema", ds.FeatureNames[i])
		}
	}

	if b.Scaler == nil {
		return ds.X, nil
	}
	return b.Scaler.Transform(ds.X)
}
