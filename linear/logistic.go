// Package linear provides linear classification models.
package linear

import (
	"bytes"
	"encoding/gob"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classigo/core/model"
	"github.com/YuminosukeSato/classigo/core/parallel"
	"github.com/YuminosukeSato/classigo/pkg/errors"
)

var (
	_ model.Classifier  = (*LogisticRegression)(nil)
	_ model.Persistable = (*LogisticRegression)(nil)
)

// LogisticRegression implements binary logistic regression trained with
// batch gradient descent.
//
// Exhausting maxIter before the gradient drops below the stopping tolerance
// raises a ConvergenceWarning but is not fatal: the partially optimized model
// is returned fitted, mirroring scikit-learn's behavior.
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	penalty      string  // Regularization: "l2", "none"
	c            float64 // Inverse regularization strength (1/lambda)
	fitIntercept bool    // Whether to fit an intercept term
	randomState  int64   // Random seed for weight initialization
	maxIter      int     // Iteration cap for the solver
	tol          float64 // Stopping tolerance on the gradient norm

	// Model parameters
	coef      []float64 // Coefficients, one per feature
	intercept float64   // Intercept term
	classes   []int     // Class labels in decision order (negative, positive)
	nFeatures int       // Feature count seen during fitting
	nIter     int       // Iterations actually used by the solver
	converged bool      // Whether the solver met the tolerance

	rand *rand.Rand
}

// NewLogisticRegression creates a LogisticRegression classifier with the
// given options applied over scikit-learn-compatible defaults.
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		penalty:      "l2",
		c:            1.0,
		fitIntercept: true,
		randomState:  -1,
		maxIter:      100,
		tol:          1e-4,
	}

	for _, opt := range opts {
		opt(lr)
	}

	if lr.randomState >= 0 {
		lr.rand = rand.New(rand.NewSource(lr.randomState))
	} else {
		lr.rand = rand.New(rand.NewSource(rand.Int63()))
	}

	return lr
}

// Fit trains the classifier on X with binary targets y (a column vector of
// class labels, e.g. the output of LabelEncoder.Transform).
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if nSamples != yRows {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}

	lr.extractClasses(y)
	if len(lr.classes) != 2 {
		return errors.NewValueError("LogisticRegression.Fit",
			"this classifier is binary; y must contain exactly two distinct classes")
	}

	lr.nFeatures = nFeatures
	lr.initializeWeights(nFeatures)

	// Convert labels to 0/1 against the positive class.
	yBinary := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		if int(y.At(i, 0)) == lr.classes[1] {
			yBinary[i] = 1.0
		}
	}

	lr.descend(X, yBinary)

	if !lr.converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.maxIter, ""))
	}

	lr.state.SetFitted()
	lr.state.SetDimensions(nFeatures, nSamples)
	return nil
}

// extractClasses identifies the unique class labels in y, sorted ascending.
func (lr *LogisticRegression) extractClasses(y mat.Matrix) {
	rows, _ := y.Dims()
	classMap := make(map[int]bool)

	for i := 0; i < rows; i++ {
		classMap[int(y.At(i, 0))] = true
	}

	lr.classes = make([]int, 0, len(classMap))
	for class := range classMap {
		lr.classes = append(lr.classes, class)
	}

	for i := 0; i < len(lr.classes)-1; i++ {
		for j := i + 1; j < len(lr.classes); j++ {
			if lr.classes[i] > lr.classes[j] {
				lr.classes[i], lr.classes[j] = lr.classes[j], lr.classes[i]
			}
		}
	}
}

// initializeWeights seeds the coefficients with small random values.
func (lr *LogisticRegression) initializeWeights(nFeatures int) {
	lr.coef = make([]float64, nFeatures)
	lr.intercept = 0
	for j := range lr.coef {
		lr.coef[j] = lr.rand.NormFloat64() * 0.01
	}
}

// descend runs batch gradient descent until the gradient norm drops below the
// tolerance or the iteration cap is reached.
func (lr *LogisticRegression) descend(X mat.Matrix, yBinary []float64) {
	nSamples := len(yBinary)
	nFeatures := lr.nFeatures

	baseLearningRate := 1.0
	lr.converged = false

	predictions := make([]float64, nSamples)

	for iter := 0; iter < lr.maxIter; iter++ {
		// Forward pass.
		const parallelThreshold = 1000
		parallel.ParallelizeWithThreshold(nSamples, parallelThreshold, func(start, end int) {
			for i := start; i < end; i++ {
				z := lr.intercept
				for j := 0; j < nFeatures; j++ {
					z += X.At(i, j) * lr.coef[j]
				}
				predictions[i] = sigmoid(z)
			}
		})

		// Gradients.
		gradWeights := make([]float64, nFeatures)
		gradIntercept := 0.0
		for i := 0; i < nSamples; i++ {
			residual := predictions[i] - yBinary[i]
			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}
		for j := range gradWeights {
			gradWeights[j] /= float64(nSamples)
		}
		gradIntercept /= float64(nSamples)

		if lr.penalty == "l2" {
			lambda := 1.0 / lr.c
			for j := range lr.coef {
				gradWeights[j] += lambda * lr.coef[j] / float64(nSamples)
			}
		}

		// Decaying learning rate.
		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))

		for j := range lr.coef {
			lr.coef[j] -= learningRate * gradWeights[j]
		}
		if lr.fitIntercept {
			lr.intercept -= learningRate * gradIntercept
		}

		lr.nIter = iter + 1

		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradWeights {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.tol {
			lr.converged = true
			break
		}
	}
}

// decision computes the linear score for row i of X.
func (lr *LogisticRegression) decision(X mat.Matrix, i int) float64 {
	z := lr.intercept
	for j := 0; j < lr.nFeatures; j++ {
		z += X.At(i, j) * lr.coef[j]
	}
	return z
}

// checkPredictInput validates that X matches the training schema.
func (lr *LogisticRegression) checkPredictInput(op string, X mat.Matrix) error {
	if !lr.state.IsFitted() {
		return errors.NewNotFittedError("LogisticRegression", op)
	}
	_, c := X.Dims()
	if c != lr.nFeatures {
		return errors.NewDimensionError("LogisticRegression."+op, lr.nFeatures, c, 1)
	}
	return nil
}

// Predict returns the predicted class label for each input row, in input
// order. A probability of exactly 0.5 goes to the positive class.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.checkPredictInput("Predict", X); err != nil {
		return nil, err
	}

	nSamples, _ := X.Dims()
	predictions := mat.NewDense(nSamples, 1, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(nSamples, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if sigmoid(lr.decision(X, i)) >= 0.5 {
				predictions.Set(i, 0, float64(lr.classes[1]))
			} else {
				predictions.Set(i, 0, float64(lr.classes[0]))
			}
		}
	})

	return predictions, nil
}

// PredictProba returns probability estimates, one column per class in
// Classes() order.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.checkPredictInput("PredictProba", X); err != nil {
		return nil, err
	}

	nSamples, _ := X.Dims()
	probas := mat.NewDense(nSamples, 2, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(nSamples, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			p := sigmoid(lr.decision(X, i))
			probas.Set(i, 0, 1.0-p)
			probas.Set(i, 1, p)
		}
	})

	return probas, nil
}

// Score returns the mean accuracy on the given test data and labels.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	nSamples, _ := X.Dims()
	yRows, _ := y.Dims()
	if yRows != nSamples {
		return 0, errors.NewDimensionError("LogisticRegression.Score", nSamples, yRows, 0)
	}

	correct := 0
	for i := 0; i < nSamples; i++ {
		if predictions.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(nSamples), nil
}

// Classes returns the class labels in decision order.
func (lr *LogisticRegression) Classes() []int {
	out := make([]int, len(lr.classes))
	copy(out, lr.classes)
	return out
}

// Coef returns a copy of the fitted coefficients.
func (lr *LogisticRegression) Coef() []float64 {
	out := make([]float64, len(lr.coef))
	copy(out, lr.coef)
	return out
}

// Intercept returns the fitted intercept term.
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept
}

// NIter returns the number of solver iterations actually used.
func (lr *LogisticRegression) NIter() int {
	return lr.nIter
}

// Converged reports whether the solver met its tolerance within maxIter.
func (lr *LogisticRegression) Converged() bool {
	return lr.converged
}

// Save writes the fitted model to path as a versioned artifact.
func (lr *LogisticRegression) Save(path string) error {
	if !lr.state.IsFitted() {
		return errors.NewNotFittedError("LogisticRegression", "Save")
	}
	return model.SaveModel(lr, path)
}

// Load reads a model previously written by Save. The loaded model produces
// identical predictions to the one that was saved.
func (lr *LogisticRegression) Load(path string) error {
	return model.LoadModel(lr, path)
}

// sigmoid computes the logistic function.
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// logisticSnapshot is the gob representation of a LogisticRegression.
type logisticSnapshot struct {
	Penalty      string
	C            float64
	FitIntercept bool
	RandomState  int64
	MaxIter      int
	Tol          float64

	Coef      []float64
	Intercept float64
	Classes   []int
	NFeatures int
	NIter     int
	Converged bool
	Fitted    bool
}

// GobEncode implements gob.GobEncoder.
func (lr *LogisticRegression) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	snap := logisticSnapshot{
		Penalty:      lr.penalty,
		C:            lr.c,
		FitIntercept: lr.fitIntercept,
		RandomState:  lr.randomState,
		MaxIter:      lr.maxIter,
		Tol:          lr.tol,
		Coef:         lr.coef,
		Intercept:    lr.intercept,
		Classes:      lr.classes,
		NFeatures:    lr.nFeatures,
		NIter:        lr.nIter,
		Converged:    lr.converged,
		Fitted:       lr.state.IsFitted(),
	}
	if err := gob.NewEncoder(&buf).Encode(&snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (lr *LogisticRegression) GobDecode(data []byte) error {
	var snap logisticSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return err
	}

	lr.penalty = snap.Penalty
	lr.c = snap.C
	lr.fitIntercept = snap.FitIntercept
	lr.randomState = snap.RandomState
	lr.maxIter = snap.MaxIter
	lr.tol = snap.Tol
	lr.coef = snap.Coef
	lr.intercept = snap.Intercept
	lr.classes = snap.Classes
	lr.nFeatures = snap.NFeatures
	lr.nIter = snap.NIter
	lr.converged = snap.Converged

	if lr.state == nil {
		lr.state = model.NewStateManager()
	}
	if lr.rand == nil {
		if snap.RandomState >= 0 {
			lr.rand = rand.New(rand.NewSource(snap.RandomState))
		} else {
			lr.rand = rand.New(rand.NewSource(rand.Int63()))
		}
	}
	if snap.Fitted {
		lr.state.SetFitted()
		lr.state.SetDimensions(snap.NFeatures, 0)
	}
	return nil
}
