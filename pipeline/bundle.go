package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classigo/core/model"
	"github.com/YuminosukeSato/classigo/dataset"
	"github.com/YuminosukeSato/classigo/linear"
	"github.com/YuminosukeSato/classigo/metrics"
	"github.com/YuminosukeSato/classigo/preprocessing"
)

// Bundle groups the fitted model with the preprocessing state it was trained
// behind, so a persisted artifact can classify raw datasets on its own. The
// Scaler is nil when the pipeline ran without feature scaling.
type Bundle struct {
	FeatureNames []string
	Model        *linear.LogisticRegression
	Scaler       *preprocessing.StandardScaler
	Encoder      *preprocessing.LabelEncoder
}

// Predict classifies every row of ds and returns the predicted labels in row
// order, decoded back to the original label values.
func (b *Bundle) Predict(ds *dataset.Dataset) ([]string, error) {
	X, err := b.features(ds)
	if err != nil {
		return nil, err
	}
	predictions, err := b.Model.Predict(X)
	if err != nil {
		return nil, err
	}
	return b.Encoder.InverseTransform(predictions)
}

// ProbaPositive returns the positive-class probability for every row of ds,
// in row order.
func (b *Bundle) ProbaPositive(ds *dataset.Dataset) (*mat.VecDense, error) {
	X, err := b.features(ds)
	if err != nil {
		return nil, err
	}
	probas, err := b.Model.PredictProba(X)
	if err != nil {
		return nil, err
	}

	n := ds.NumRows()
	scores := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		scores.SetVec(i, probas.At(i, 1))
	}
	return scores, nil
}

// EncodedLabels converts the dataset's label column into a class-index vector
// in the encoder's class order.
func (b *Bundle) EncodedLabels(ds *dataset.Dataset) (*mat.VecDense, error) {
	y, err := b.Encoder.Transform(ds.Labels)
	if err != nil {
		return nil, err
	}

	n := ds.NumRows()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, y.At(i, 0))
	}
	return out, nil
}

// Evaluate classifies ds and scores the predictions against its label column.
func (b *Bundle) Evaluate(ds *dataset.Dataset) (*metrics.ClassificationReport, error) {
	predicted, err := b.Predict(ds)
	if err != nil {
		return nil, err
	}
	return metrics.Report(b.Encoder.Classes(), ds.Labels, predicted)
}

// Save writes the bundle to path as a versioned artifact.
func (b *Bundle) Save(path string) error {
	return model.SaveModel(b, path)
}

// LoadBundle reads a bundle previously written by Save.
func LoadBundle(path string) (*Bundle, error) {
	b := &Bundle{}
	if err := model.LoadModel(b, path); err != nil {
		return nil, err
	}
	return b, nil
}
