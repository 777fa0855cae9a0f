// Package log defines standard attribute keys for pipeline operations.
//
// Using these keys consistently across the split, fit, predict, evaluate and
// persist stages keeps the JSON logs filterable by stage and by data shape.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "LogisticRegression".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "save", "load"
	OperationKey = "ml.operation"

	// StageKey identifies the pipeline stage emitting the entry.
	// Standard values: "split", "train", "predict", "evaluate", "persist"
	StageKey = "pipeline.stage"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// TrainSamplesKey and TestSamplesKey describe a train/test partition.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"

	// ClassesKey is the number of distinct classes in the label column.
	ClassesKey = "data.classes"
)

// Training and evaluation results.
const (
	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// IterationsKey records solver iterations actually used.
	IterationsKey = "training.iterations"

	// ConvergedKey records whether the solver met its tolerance.
	ConvergedKey = "training.converged"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Configuration.
const (
	// SeedKey records the random seed for reproducibility.
	SeedKey = "config.random_seed"

	// HoldoutKey records the test fraction used for the split.
	HoldoutKey = "config.holdout_fraction"

	// PathKey records a filesystem path for persistence operations.
	PathKey = "persist.path"
)

// Standard attribute value constants.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationSave      = "save"
	OperationLoad      = "load"

	StageSplit    = "split"
	StageTrain    = "train"
	StagePredict  = "predict"
	StageEvaluate = "evaluate"
	StagePersist  = "persist"
)
