// Package preprocessing provides label encoding and feature scaling.
package preprocessing

import (
	"bytes"
	"encoding/gob"
	"sort"

	"github.com/YuminosukeSato/classigo/core/model"
	"github.com/YuminosukeSato/classigo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LabelEncoder maps categorical label values to class indices 0..n-1 and
// back. Classes are sorted lexically so the mapping is deterministic for a
// given label set.
type LabelEncoder struct {
	state *model.StateManager

	// ClassLabels holds the distinct labels in encoding order.
	ClassLabels []string
}

// NewLabelEncoder creates a new LabelEncoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{
		state: model.NewStateManager(),
	}
}

// Fit learns the distinct label values.
func (e *LabelEncoder) Fit(labels []string) error {
	if len(labels) == 0 {
		return errors.NewModelError("LabelEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	seen := make(map[string]bool)
	classes := make([]string, 0, 2)
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			classes = append(classes, l)
		}
	}
	sort.Strings(classes)

	e.ClassLabels = classes
	e.state.SetFitted()
	return nil
}

// Transform converts labels into an n x 1 matrix of class indices.
func (e *LabelEncoder) Transform(labels []string) (*mat.Dense, error) {
	if !e.state.IsFitted() {
		return nil, errors.NewNotFittedError("LabelEncoder", "Transform")
	}

	index := make(map[string]int, len(e.ClassLabels))
	for i, c := range e.ClassLabels {
		index[c] = i
	}

	y := mat.NewDense(len(labels), 1, nil)
	for i, l := range labels {
		idx, ok := index[l]
		if !ok {
			return nil, errors.NewValidationError("labels", "unknown label value", l)
		}
		y.Set(i, 0, float64(idx))
	}
	return y, nil
}

// FitTransform fits the encoder and transforms labels in one call.
func (e *LabelEncoder) FitTransform(labels []string) (*mat.Dense, error) {
	if err := e.Fit(labels); err != nil {
		return nil, err
	}
	return e.Transform(labels)
}

// InverseTransform converts an n x 1 matrix of class indices back to labels.
func (e *LabelEncoder) InverseTransform(y mat.Matrix) ([]string, error) {
	if !e.state.IsFitted() {
		return nil, errors.NewNotFittedError("LabelEncoder", "InverseTransform")
	}

	r, c := y.Dims()
	if c != 1 {
		return nil, errors.NewValueError("LabelEncoder.InverseTransform", "y must be a column vector")
	}

	labels := make([]string, r)
	for i := 0; i < r; i++ {
		idx := int(y.At(i, 0))
		if idx < 0 || idx >= len(e.ClassLabels) {
			return nil, errors.NewValidationError("y", "class index out of range", idx)
		}
		labels[i] = e.ClassLabels[idx]
	}
	return labels, nil
}

// Classes returns the labels in encoding order.
func (e *LabelEncoder) Classes() []string {
	return e.ClassLabels
}

// labelEncoderSnapshot is the gob representation of a LabelEncoder.
type labelEncoderSnapshot struct {
	ClassLabels []string
	Fitted      bool
}

// GobEncode implements gob.GobEncoder.
func (e *LabelEncoder) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	snap := labelEncoderSnapshot{
		ClassLabels: e.ClassLabels,
		Fitted:      e.state.IsFitted(),
	}
	if err := gob.NewEncoder(&buf).Encode(&snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (e *LabelEncoder) GobDecode(data []byte) error {
	var snap labelEncoderSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return err
	}
	e.ClassLabels = snap.ClassLabels
	if e.state == nil {
		e.state = model.NewStateManager()
	}
	if snap.Fitted {
		e.state.SetFitted()
	}
	return nil
}
