// Package metrics provides evaluation metrics for classification.
package metrics

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/classigo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Accuracy computes the fraction of positions where yTrue and yPred match.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("Accuracy", "nil vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError computes the fraction of misclassified positions,
// i.e. 1 - Accuracy.
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// AUC computes the area under the ROC curve for binary labels (0/1) against
// predicted scores. Tied scores contribute half a pair each. When only one
// class is present the metric is undefined and 0.5 is returned.
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("AUC", "nil vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("AUC", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("AUC", n, yPred.Len(), 0)
	}

	nPos := 0
	for i := 0; i < n; i++ {
		label := yTrue.AtVec(i)
		if label != 0 && label != 1 {
			return 0, errors.NewValueError("AUC", "labels must be binary (0 or 1)")
		}
		if label == 1 {
			nPos++
		}
	}
	nNeg := n - nPos

	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present in yTrue", 0.5))
		return 0.5, nil
	}

	// Mann-Whitney statistic via average ranks, which handles ties.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return yPred.AtVec(idx[a]) < yPred.AtVec(idx[b])
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && yPred.AtVec(idx[j]) == yPred.AtVec(idx[i]) {
			j++
		}
		avgRank := float64(i+j+1) / 2.0 // ranks are 1-based
		for k := i; k < j; k++ {
			ranks[idx[k]] = avgRank
		}
		i = j
	}

	var sumPosRanks float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			sumPosRanks += ranks[i]
		}
	}

	auc := (sumPosRanks - float64(nPos)*float64(nPos+1)/2.0) / (float64(nPos) * float64(nNeg))
	return auc, nil
}

// AUCMatrix computes AUC for matrix inputs, using the first column of each.
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	yTrueVec, err := firstColumn("AUCMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	yPredVec, err := firstColumn("AUCMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return AUC(yTrueVec, yPredVec)
}

// BinaryLogLoss computes the negative log-likelihood of binary labels under
// predicted probabilities. Probabilities are clipped away from 0 and 1 to
// keep the logarithm finite.
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("BinaryLogLoss", "nil vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("BinaryLogLoss", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("BinaryLogLoss", n, yPred.Len(), 0)
	}

	const eps = 1e-15

	var sum float64
	for i := 0; i < n; i++ {
		label := yTrue.AtVec(i)
		if label != 0 && label != 1 {
			return 0, errors.NewValueError("BinaryLogLoss", "labels must be binary (0 or 1)")
		}

		p := yPred.AtVec(i)
		if p < eps {
			p = eps
		}
		if p > 1-eps {
			p = 1 - eps
		}

		sum += label*math.Log(p) + (1-label)*math.Log(1-p)
	}
	return -sum / float64(n), nil
}

// firstColumn extracts column 0 of a matrix as a VecDense.
func firstColumn(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, errors.NewValueError(op, "nil matrix")
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}

	vec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		vec.SetVec(i, m.At(i, 0))
	}
	return vec, nil
}
