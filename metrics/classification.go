package metrics

import (
	"github.com/YuminosukeSato/classigo/pkg/errors"
)

// ConfusionMatrix is a count table of true class vs. predicted class, with
// rows indexed by true class and columns by predicted class, both in the
// fixed order given at construction.
type ConfusionMatrix struct {
	Classes []string
	Counts  [][]int
}

// NewConfusionMatrix tallies equal-length, order-aligned true and predicted
// label sequences against the known class set. Labels outside the class set
// are an error.
func NewConfusionMatrix(classes, yTrue, yPred []string) (*ConfusionMatrix, error) {
	const op = "metrics.NewConfusionMatrix"

	if len(classes) < 2 {
		return nil, errors.NewValueError(op, "need at least two classes")
	}
	if len(yTrue) == 0 {
		return nil, errors.NewValueError(op, "empty label sequence")
	}
	if len(yTrue) != len(yPred) {
		return nil, errors.NewDimensionError(op, len(yTrue), len(yPred), 0)
	}

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	counts := make([][]int, len(classes))
	for i := range counts {
		counts[i] = make([]int, len(classes))
	}

	for i := range yTrue {
		ti, ok := index[yTrue[i]]
		if !ok {
			return nil, errors.NewValidationError("yTrue", "label not in known class set", yTrue[i])
		}
		pi, ok := index[yPred[i]]
		if !ok {
			return nil, errors.NewValidationError("yPred", "label not in known class set", yPred[i])
		}
		counts[ti][pi]++
	}

	return &ConfusionMatrix{Classes: classes, Counts: counts}, nil
}

// Total returns the number of evaluated rows, i.e. the sum of all cells.
func (cm *ConfusionMatrix) Total() int {
	total := 0
	for _, row := range cm.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

// Diagonal returns the number of correctly classified rows.
func (cm *ConfusionMatrix) Diagonal() int {
	d := 0
	for i := range cm.Counts {
		d += cm.Counts[i][i]
	}
	return d
}

// Accuracy returns the diagonal sum divided by the total.
func (cm *ConfusionMatrix) Accuracy() float64 {
	return float64(cm.Diagonal()) / float64(cm.Total())
}

// Support returns the number of rows whose true class is classes[i].
func (cm *ConfusionMatrix) Support(i int) int {
	s := 0
	for _, c := range cm.Counts[i] {
		s += c
	}
	return s
}

// predicted returns the number of rows predicted as classes[i].
func (cm *ConfusionMatrix) predicted(i int) int {
	p := 0
	for t := range cm.Counts {
		p += cm.Counts[t][i]
	}
	return p
}

// Precision returns TP / predicted-positive for classes[i]. When no row was
// predicted as the class the metric is undefined: 0 is returned and an
// UndefinedMetricWarning is raised.
func (cm *ConfusionMatrix) Precision(i int) float64 {
	predicted := cm.predicted(i)
	if predicted == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision",
			"no predicted samples for class "+cm.Classes[i], 0))
		return 0
	}
	return float64(cm.Counts[i][i]) / float64(predicted)
}

// Recall returns TP / actual-positive for classes[i]. When the class has no
// true rows the metric is undefined: 0 is returned and an
// UndefinedMetricWarning is raised.
func (cm *ConfusionMatrix) Recall(i int) float64 {
	support := cm.Support(i)
	if support == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall",
			"no true samples for class "+cm.Classes[i], 0))
		return 0
	}
	return float64(cm.Counts[i][i]) / float64(support)
}

// F1 returns the harmonic mean of precision and recall for classes[i],
// or 0 when both are 0.
func (cm *ConfusionMatrix) F1(i int) float64 {
	p := cm.Precision(i)
	r := cm.Recall(i)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// ClassMetrics holds the per-class (or averaged) evaluation numbers.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport is the derived, read-only evaluation summary:
// scalar accuracy, per-class metrics, macro/weighted averages, and the
// confusion matrix they were computed from.
type ClassificationReport struct {
	Classes     []string
	PerClass    []ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
	Matrix      *ConfusionMatrix
}

// Report evaluates order-aligned true and predicted labels against the known
// class set.
//
// Macro averages are unweighted means of the per-class metrics; weighted
// averages weight each class by its support.
func Report(classes, yTrue, yPred []string) (*ClassificationReport, error) {
	cm, err := NewConfusionMatrix(classes, yTrue, yPred)
	if err != nil {
		return nil, err
	}

	report := &ClassificationReport{
		Classes:  classes,
		PerClass: make([]ClassMetrics, len(classes)),
		Accuracy: cm.Accuracy(),
		Matrix:   cm,
	}

	total := cm.Total()
	for i := range classes {
		m := ClassMetrics{
			Precision: cm.Precision(i),
			Recall:    cm.Recall(i),
			F1:        cm.F1(i),
			Support:   cm.Support(i),
		}
		report.PerClass[i] = m

		report.MacroAvg.Precision += m.Precision / float64(len(classes))
		report.MacroAvg.Recall += m.Recall / float64(len(classes))
		report.MacroAvg.F1 += m.F1 / float64(len(classes))

		w := float64(m.Support) / float64(total)
		report.WeightedAvg.Precision += m.Precision * w
		report.WeightedAvg.Recall += m.Recall * w
		report.WeightedAvg.F1 += m.F1 * w
	}
	report.MacroAvg.Support = total
	report.WeightedAvg.Support = total

	return report, nil
}
