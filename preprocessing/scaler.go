package preprocessing

import (
	"bytes"
	"encoding/gob"
	"math"

	"github.com/YuminosukeSato/classigo/core/model"
	"github.com/YuminosukeSato/classigo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// StandardScaler standardizes features to zero mean and unit variance.
// Statistics are learned from the training partition only and reused on the
// evaluation partition.
type StandardScaler struct {
	state *model.StateManager

	// Mean holds the per-feature mean.
	Mean []float64

	// Scale holds the per-feature standard deviation.
	Scale []float64

	// NFeatures is the number of feature columns seen during fitting.
	NFeatures int

	// WithMean controls whether the mean is subtracted (default: true).
	WithMean bool

	// WithStd controls whether features are divided by the standard
	// deviation (default: true).
	WithStd bool
}

// NewStandardScaler creates a StandardScaler with the given behavior flags.
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault creates a StandardScaler with default settings.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit computes the per-feature mean and standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	if s.WithMean {
		for j := 0; j < c; j++ {
			sum := 0.0
			for i := 0; i < r; i++ {
				sum += X.At(i, j)
			}
			s.Mean[j] = sum / float64(r)
		}
	}

	if s.WithStd {
		for j := 0; j < c; j++ {
			sumSquares := 0.0
			for i := 0; i < r; i++ {
				diff := X.At(i, j) - s.Mean[j]
				sumSquares += diff * diff
			}
			variance := sumSquares / float64(r)
			s.Scale[j] = math.Sqrt(variance)

			// Near-zero deviation becomes 1 to avoid division by zero.
			if math.Abs(s.Scale[j]) < 1e-8 {
				s.Scale[j] = 1.0
			}
		}
	} else {
		for j := 0; j < c; j++ {
			s.Scale[j] = 1.0
		}
	}

	s.state.SetFitted()
	return nil
}

// Transform standardizes X using the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !s.state.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler and transforms X in one call.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// standardScalerSnapshot is the gob representation of a StandardScaler.
type standardScalerSnapshot struct {
	Mean      []float64
	Scale     []float64
	NFeatures int
	WithMean  bool
	WithStd   bool
	Fitted    bool
}

// GobEncode implements gob.GobEncoder.
func (s *StandardScaler) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	snap := standardScalerSnapshot{
		Mean:      s.Mean,
		Scale:     s.Scale,
		NFeatures: s.NFeatures,
		WithMean:  s.WithMean,
		WithStd:   s.WithStd,
		Fitted:    s.state.IsFitted(),
	}
	if err := gob.NewEncoder(&buf).Encode(&snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (s *StandardScaler) GobDecode(data []byte) error {
	var snap standardScalerSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return err
	}
	s.Mean = snap.Mean
	s.Scale = snap.Scale
	s.NFeatures = snap.NFeatures
	s.WithMean = snap.WithMean
	s.WithStd = snap.WithStd
	if s.state == nil {
		s.state = model.NewStateManager()
	}
	if snap.Fitted {
		s.state.SetFitted()
	}
	return nil
}
