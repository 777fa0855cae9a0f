package pipeline

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classigo/dataset"
)

// separableDataset builds a two-feature dataset with nPerClass rows per class,
// where class "A" clusters near the origin and class "B" is shifted away.
func separableDataset(t *testing.T, nPerClass int) *dataset.Dataset {
	t.Helper()

	n := 2 * nPerClass
	X := mat.NewDense(n, 2, nil)
	labels := make([]string, n)
	for i := 0; i < nPerClass; i++ {
		jitter := 0.1 * float64(i%5)
		X.SetRow(i, []float64{jitter, jitter + 0.2})
		labels[i] = "A"
		X.SetRow(nPerClass+i, []float64{3 + jitter, 3.2 + jitter})
		labels[nPerClass+i] = "B"
	}

	ds, err := dataset.New([]string{"x1", "x2"}, X, labels)
	if err != nil {
		t.Fatalf("dataset.New() failed: %v", err)
	}
	return ds
}

func TestRun(t *testing.T) {
	ds := separableDataset(t, 20)

	cfg := DefaultConfig()
	result, err := Run(ds, cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if result.TrainRows+result.TestRows != ds.NumRows() {
		t.Errorf("partition sizes %d + %d should sum to %d",
			result.TrainRows, result.TestRows, ds.NumRows())
	}
	if result.TestRows != 10 {
		t.Errorf("TestRows = %d, want 10 for 40 rows at 0.25 holdout", result.TestRows)
	}
	if len(result.Predicted) != result.TestRows {
		t.Errorf("got %d predictions for %d held-out rows", len(result.Predicted), result.TestRows)
	}

	// Cleanly separated clusters should classify near-perfectly.
	if result.Report.Accuracy < 0.9 {
		t.Errorf("accuracy = %v on separable data, want >= 0.9", result.Report.Accuracy)
	}
	if result.AUC < 0.9 {
		t.Errorf("AUC = %v on separable data, want >= 0.9", result.AUC)
	}
	if result.Report.Matrix.Total() != result.TestRows {
		t.Errorf("confusion matrix total = %d, want %d", result.Report.Matrix.Total(), result.TestRows)
	}
}

func TestRun_Deterministic(t *testing.T) {
	ds := separableDataset(t, 15)
	cfg := DefaultConfig()

	first, err := Run(ds, cfg)
	if err != nil {
		t.Fatalf("first Run() failed: %v", err)
	}
	second, err := Run(ds, cfg)
	if err != nil {
		t.Fatalf("second Run() failed: %v", err)
	}

	if first.Report.Accuracy != second.Report.Accuracy {
		t.Errorf("same-seed runs disagree on accuracy: %v vs %v",
			first.Report.Accuracy, second.Report.Accuracy)
	}
	for i := range first.Predicted {
		if first.Predicted[i] != second.Predicted[i] {
			t.Fatalf("same-seed runs disagree on prediction %d: %q vs %q",
				i, first.Predicted[i], second.Predicted[i])
		}
	}
}

func TestRun_WithoutScaling(t *testing.T) {
	ds := separableDataset(t, 15)

	cfg := DefaultConfig()
	cfg.Scale = false
	result, err := Run(ds, cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if result.Bundle.Scaler != nil {
		t.Error("bundle should not carry a scaler when scaling is disabled")
	}
	if result.Report.Accuracy < 0.9 {
		t.Errorf("accuracy = %v on separable data, want >= 0.9", result.Report.Accuracy)
	}
}

func TestRun_Errors(t *testing.T) {
	single := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	ds, err := dataset.New([]string{"x"}, single, []string{"A", "A", "A", "A"})
	if err != nil {
		t.Fatalf("dataset.New() failed: %v", err)
	}

	cfg := DefaultConfig()
	if _, err := Run(ds, cfg); err == nil {
		t.Error("Run() should fail on a single-class dataset")
	}

	cfg.HoldoutFraction = 1.5
	if _, err := Run(separableDataset(t, 10), cfg); err == nil {
		t.Error("Run() should fail on an out-of-range holdout fraction")
	}
}

func TestBundle_SaveLoad(t *testing.T) {
	ds := separableDataset(t, 15)
	path := filepath.Join(t.TempDir(), "model.gob")

	cfg := DefaultConfig()
	cfg.ModelPath = path
	result, err := Run(ds, cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("model artifact not written: %v", err)
	}

	loaded, err := LoadBundle(path)
	if err != nil {
		t.Fatalf("LoadBundle() failed: %v", err)
	}

	// The loaded bundle must classify identically to the in-memory one.
	want, err := result.Bundle.Predict(ds)
	if err != nil {
		t.Fatalf("Predict() on original bundle failed: %v", err)
	}
	got, err := loaded.Predict(ds)
	if err != nil {
		t.Fatalf("Predict() on loaded bundle failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("prediction counts differ: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("prediction %d differs after reload: %q vs %q", i, got[i], want[i])
		}
	}
}

func TestBundle_Evaluate(t *testing.T) {
	ds := separableDataset(t, 15)

	result, err := Run(ds, DefaultConfig())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	report, err := result.Bundle.Evaluate(ds)
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	if math.Abs(report.Accuracy-1.0) > 0.1 {
		t.Errorf("full-dataset accuracy = %v on separable data, want near 1.0", report.Accuracy)
	}
}

func TestBundle_SchemaMismatch(t *testing.T) {
	ds := separableDataset(t, 15)

	result, err := Run(ds, DefaultConfig())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	renamed := &dataset.Dataset{
		FeatureNames: []string{"a", "b"},
		X:            ds.X,
		Labels:       ds.Labels,
	}
	if _, err := result.Bundle.Predict(renamed); err == nil {
		t.Error("Predict() should reject a dataset whose columns do not match the fitted schema")
	}

	narrow := mat.NewDense(4, 1, []float64{0, 0, 3, 3})
	narrowDS, err := dataset.New([]string{"x1"}, narrow, []string{"A", "A", "B", "B"})
	if err != nil {
		t.Fatalf("dataset.New() failed: %v", err)
	}
	if _, err := result.Bundle.Predict(narrowDS); err == nil {
		t.Error("Predict() should reject a dataset with the wrong column count")
	}
}
