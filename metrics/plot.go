package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/classigo/pkg/errors"
)

// confusionGrid adapts a ConfusionMatrix to plotter.GridXYZ.
type confusionGrid struct {
	cm *ConfusionMatrix
}

func (g confusionGrid) Dims() (c, r int) {
	n := len(g.cm.Classes)
	return n, n
}

func (g confusionGrid) Z(c, r int) float64 {
	// Row 0 of the matrix is drawn at the top.
	n := len(g.cm.Classes)
	return float64(g.cm.Counts[n-1-r][c])
}

func (g confusionGrid) X(c int) float64 { return float64(c) }

func (g confusionGrid) Y(r int) float64 { return float64(r) }

// SaveConfusionMatrixPlot renders the confusion matrix as a heatmap PNG.
func SaveConfusionMatrixPlot(cm *ConfusionMatrix, path string) error {
	p := plot.New()
	p.Title.Text = "Confusion matrix"
	p.X.Label.Text = "Predicted class"
	p.Y.Label.Text = "True class"

	pal := moreland.SmoothBlueRed().Palette(255)
	heatmap := plotter.NewHeatMap(confusionGrid{cm: cm}, pal)
	p.Add(heatmap)

	n := len(cm.Classes)
	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	for i, class := range cm.Classes {
		xTicks[i] = plot.Tick{Value: float64(i), Label: class}
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: class}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)

	if err := p.Save(4*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save confusion matrix plot to %s", path)
	}
	return nil
}

// ROCCurve computes the receiver operating characteristic of binary labels
// (0/1) against predicted scores. The returned slices hold the false and
// true positive rates at each distinct threshold, from (0, 0) to (1, 1).
func ROCCurve(yTrue, scores *mat.VecDense) (fpr, tpr []float64, err error) {
	if yTrue == nil || scores == nil {
		return nil, nil, errors.NewValueError("ROCCurve", "nil vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return nil, nil, errors.NewValueError("ROCCurve", "empty vector")
	}
	if scores.Len() != n {
		return nil, nil, errors.NewDimensionError("ROCCurve", n, scores.Len(), 0)
	}

	nPos, nNeg := 0, 0
	for i := 0; i < n; i++ {
		label := yTrue.AtVec(i)
		switch label {
		case 1:
			nPos++
		case 0:
			nNeg++
		default:
			return nil, nil, errors.NewValueError("ROCCurve", "labels must be binary (0 or 1)")
		}
	}
	if nPos == 0 || nNeg == 0 {
		return nil, nil, errors.NewValueError("ROCCurve", "both classes must be present")
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return scores.AtVec(idx[a]) > scores.AtVec(idx[b])
	})

	fpr = []float64{0}
	tpr = []float64{0}
	tp, fp := 0, 0
	for i := 0; i < n; {
		// Consume tied scores together so the curve has one point per
		// distinct threshold.
		j := i
		for j < n && scores.AtVec(idx[j]) == scores.AtVec(idx[i]) {
			if yTrue.AtVec(idx[j]) == 1 {
				tp++
			} else {
				fp++
			}
			j++
		}
		fpr = append(fpr, float64(fp)/float64(nNeg))
		tpr = append(tpr, float64(tp)/float64(nPos))
		i = j
	}

	return fpr, tpr, nil
}

// SaveROCPlot renders the ROC curve as a PNG, with the chance diagonal for
// reference.
func SaveROCPlot(yTrue, scores *mat.VecDense, path string) error {
	fpr, tpr, err := ROCCurve(yTrue, scores)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "ROC curve"
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	curve := make(plotter.XYs, len(fpr))
	for i := range fpr {
		curve[i].X = fpr[i]
		curve[i].Y = tpr[i]
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		return errors.Wrap(err, "failed to build ROC line")
	}
	p.Add(line)

	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return errors.Wrap(err, "failed to build chance diagonal")
	}
	diagonal.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diagonal)

	if err := p.Save(4*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save ROC plot to %s", path)
	}
	return nil
}
