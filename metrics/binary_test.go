package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func vecOrNil(data []float64) *mat.VecDense {
	if len(data) == 0 {
		return nil
	}
	return mat.NewVecDense(len(data), data)
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect accuracy",
			yTrue: []float64{0, 1, 1, 0},
			yPred: []float64{0, 1, 1, 0},
			want:  1.0,
		},
		{
			name:  "three of four correct",
			yTrue: []float64{0, 0, 1, 1},
			yPred: []float64{0, 1, 1, 1},
			want:  0.75,
		},
		{
			name:  "zero accuracy",
			yTrue: []float64{0, 0, 0},
			yPred: []float64{1, 1, 1},
			want:  0.0,
		},
		{
			name:    "empty vectors",
			wantErr: true,
		},
		{
			name:    "dimension mismatch",
			yTrue:   []float64{0, 1},
			yPred:   []float64{0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(vecOrNil(tt.yTrue), vecOrNil(tt.yPred))
			if (err != nil) != tt.wantErr {
				t.Errorf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassificationError(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect classification",
			yTrue: []float64{0, 1, 1, 0},
			yPred: []float64{0, 1, 1, 0},
			want:  0.0,
		},
		{
			name:  "half wrong",
			yTrue: []float64{0, 0, 1, 1},
			yPred: []float64{0, 1, 1, 0},
			want:  0.5,
		},
		{
			name:  "all wrong",
			yTrue: []float64{0, 0, 0},
			yPred: []float64{1, 1, 1},
			want:  1.0,
		},
		{
			name:    "empty vectors",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassificationError(vecOrNil(tt.yTrue), vecOrNil(tt.yPred))
			if (err != nil) != tt.wantErr {
				t.Errorf("ClassificationError() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ClassificationError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAUC(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect ranking",
			yTrue: []float64{0, 0, 0, 1, 1, 1},
			yPred: []float64{0.1, 0.2, 0.3, 0.7, 0.8, 0.9},
			want:  1.0,
		},
		{
			name:  "inverted ranking",
			yTrue: []float64{0, 0, 0, 1, 1, 1},
			yPred: []float64{0.9, 0.8, 0.7, 0.3, 0.2, 0.1},
			want:  0.0,
		},
		{
			name:  "all scores tied",
			yTrue: []float64{0, 1, 0, 1},
			yPred: []float64{0.5, 0.5, 0.5, 0.5},
			want:  0.5,
		},
		{
			name:  "one misranked pair",
			yTrue: []float64{0, 0, 1, 1},
			yPred: []float64{0.1, 0.4, 0.35, 0.8},
			want:  0.75,
		},
		{
			name:  "only positive labels",
			yTrue: []float64{1, 1, 1, 1},
			yPred: []float64{0.1, 0.4, 0.35, 0.8},
			want:  0.5, // undefined, falls back to 0.5
		},
		{
			name:  "only negative labels",
			yTrue: []float64{0, 0, 0, 0},
			yPred: []float64{0.1, 0.4, 0.35, 0.8},
			want:  0.5, // undefined, falls back to 0.5
		},
		{
			name:    "non-binary labels",
			yTrue:   []float64{0, 0.5, 1},
			yPred:   []float64{0.1, 0.5, 0.9},
			wantErr: true,
		},
		{
			name:    "dimension mismatch",
			yTrue:   []float64{0, 1},
			yPred:   []float64{0.5},
			wantErr: true,
		},
		{
			name:    "empty vectors",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AUC(vecOrNil(tt.yTrue), vecOrNil(tt.yPred))
			if (err != nil) != tt.wantErr {
				t.Errorf("AUC() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("AUC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAUCMatrix(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   mat.Matrix
		yPred   mat.Matrix
		want    float64
		wantErr bool
	}{
		{
			name:  "column matrix input",
			yTrue: mat.NewDense(4, 1, []float64{0, 0, 1, 1}),
			yPred: mat.NewDense(4, 1, []float64{0.1, 0.4, 0.35, 0.8}),
			want:  0.75,
		},
		{
			name:  "multi-column matrix uses first column",
			yTrue: mat.NewDense(4, 2, []float64{0, 9, 0, 9, 1, 9, 1, 9}),
			yPred: mat.NewDense(4, 2, []float64{0.1, 9, 0.4, 9, 0.35, 9, 0.8, 9}),
			want:  0.75,
		},
		{
			name:    "nil matrix",
			yTrue:   nil,
			yPred:   mat.NewDense(1, 1, []float64{0.5}),
			wantErr: true,
		},
		{
			name:    "empty matrix",
			yTrue:   &mat.Dense{},
			yPred:   &mat.Dense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AUCMatrix(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("AUCMatrix() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("AUCMatrix() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBinaryLogLoss(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "near-perfect predictions",
			yTrue: []float64{0, 0, 1, 1},
			yPred: []float64{0, 0, 1, 1}, // clipped away from 0 and 1
			want:  0.0,
		},
		{
			name:  "confident correct predictions",
			yTrue: []float64{0, 0, 1, 1},
			yPred: []float64{0.1, 0.2, 0.8, 0.9},
			want:  0.164252,
		},
		{
			name:  "confident wrong predictions",
			yTrue: []float64{0, 0, 1, 1},
			yPred: []float64{0.9, 0.9, 0.1, 0.1},
			want:  2.3025851,
		},
		{
			name:    "non-binary labels",
			yTrue:   []float64{0, 0.5, 1},
			yPred:   []float64{0.1, 0.5, 0.9},
			wantErr: true,
		},
		{
			name:    "empty vectors",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BinaryLogLoss(vecOrNil(tt.yTrue), vecOrNil(tt.yPred))
			if (err != nil) != tt.wantErr {
				t.Errorf("BinaryLogLoss() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 0.01 {
				t.Errorf("BinaryLogLoss() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestROCCurve(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
	scores := mat.NewVecDense(4, []float64{0.1, 0.4, 0.35, 0.8})

	fpr, tpr, err := ROCCurve(yTrue, scores)
	if err != nil {
		t.Fatalf("ROCCurve() failed: %v", err)
	}

	if len(fpr) != len(tpr) {
		t.Fatalf("fpr and tpr lengths differ: %d vs %d", len(fpr), len(tpr))
	}
	if fpr[0] != 0 || tpr[0] != 0 {
		t.Errorf("curve should start at (0, 0), got (%v, %v)", fpr[0], tpr[0])
	}
	last := len(fpr) - 1
	if fpr[last] != 1 || tpr[last] != 1 {
		t.Errorf("curve should end at (1, 1), got (%v, %v)", fpr[last], tpr[last])
	}
	for i := 1; i < len(fpr); i++ {
		if fpr[i] < fpr[i-1] || tpr[i] < tpr[i-1] {
			t.Fatalf("curve must be monotone, broke at point %d", i)
		}
	}

	// Thresholds: 0.8 -> (0, 0.5), 0.4 -> (0.5, 0.5), 0.35 -> (0.5, 1), 0.1 -> (1, 1).
	wantFPR := []float64{0, 0, 0.5, 0.5, 1}
	wantTPR := []float64{0, 0.5, 0.5, 1, 1}
	if len(fpr) != len(wantFPR) {
		t.Fatalf("got %d points, want %d", len(fpr), len(wantFPR))
	}
	for i := range wantFPR {
		if !almostEqual(fpr[i], wantFPR[i]) || !almostEqual(tpr[i], wantTPR[i]) {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, fpr[i], tpr[i], wantFPR[i], wantTPR[i])
		}
	}
}

func TestROCCurve_Errors(t *testing.T) {
	tests := []struct {
		name   string
		yTrue  []float64
		scores []float64
	}{
		{
			name:   "single class",
			yTrue:  []float64{1, 1, 1},
			scores: []float64{0.1, 0.5, 0.9},
		},
		{
			name:   "non-binary labels",
			yTrue:  []float64{0, 2, 1},
			scores: []float64{0.1, 0.5, 0.9},
		},
		{
			name:   "dimension mismatch",
			yTrue:  []float64{0, 1},
			scores: []float64{0.5},
		},
		{
			name: "empty vectors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ROCCurve(vecOrNil(tt.yTrue), vecOrNil(tt.scores)); err == nil {
				t.Error("ROCCurve() should fail")
			}
		})
	}
}

func BenchmarkAUC(b *testing.B) {
	n := 1000
	yTrue := make([]float64, n)
	yPred := make([]float64, n)
	for i := 0; i < n; i++ {
		if i >= n/2 {
			yTrue[i] = 1
		}
		yPred[i] = float64(i) / float64(n)
	}
	yTrueVec := mat.NewVecDense(n, yTrue)
	yPredVec := mat.NewVecDense(n, yPred)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = AUC(yTrueVec, yPredVec)
	}
}
