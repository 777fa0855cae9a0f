// Package dataset provides an in-memory labeled table: named numeric feature
// columns plus one categorical label column.
package dataset

import (
	"github.com/YuminosukeSato/classigo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a labeled tabular dataset. Features are already numeric by the
// time a Dataset exists; the label column holds raw categorical values.
type Dataset struct {
	FeatureNames []string
	X            *mat.Dense // n_samples x n_features
	Labels       []string   // n_samples
}

// New builds a Dataset and validates that shapes agree: one label per row and
// one name per feature column.
func New(featureNames []string, X *mat.Dense, labels []string) (*Dataset, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("dataset.New", "empty data", errors.ErrEmptyData)
	}
	if len(labels) != r {
		return nil, errors.NewDimensionError("dataset.New", r, len(labels), 0)
	}
	if len(featureNames) != c {
		return nil, errors.NewDimensionError("dataset.New", c, len(featureNames), 1)
	}
	return &Dataset{FeatureNames: featureNames, X: X, Labels: labels}, nil
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	r, _ := d.X.Dims()
	return r
}

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int {
	_, c := d.X.Dims()
	return c
}

// Select returns a new Dataset containing the given rows, in the given order.
// The feature matrix is copied; the receiver is not modified.
func (d *Dataset) Select(indices []int) (*Dataset, error) {
	n := d.NumRows()
	c := d.NumFeatures()

	X := mat.NewDense(len(indices), c, nil)
	labels := make([]string, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, errors.NewValueError("dataset.Select", "row index out of range")
		}
		X.SetRow(i, mat.Row(nil, idx, d.X))
		labels[i] = d.Labels[idx]
	}
	return &Dataset{FeatureNames: d.FeatureNames, X: X, Labels: labels}, nil
}

// ClassCounts returns the number of rows per distinct label value.
func (d *Dataset) ClassCounts() map[string]int {
	counts := make(map[string]int)
	for _, l := range d.Labels {
		counts[l]++
	}
	return counts
}
