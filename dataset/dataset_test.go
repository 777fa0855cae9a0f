package dataset

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNew_Validation(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	tests := []struct {
		name    string
		names   []string
		labels  []string
		wantErr bool
	}{
		{
			name:   "valid",
			names:  []string{"f1", "f2"},
			labels: []string{"A", "B"},
		},
		{
			name:    "label count mismatch",
			names:   []string{"f1", "f2"},
			labels:  []string{"A"},
			wantErr: true,
		},
		{
			name:    "feature name count mismatch",
			names:   []string{"f1"},
			labels:  []string{"A", "B"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.names, X, tt.labels)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
	})
	ds, err := New([]string{"f1", "f2"}, X, []string{"A", "B", "A"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	sub, err := ds.Select([]int{2, 0})
	if err != nil {
		t.Fatalf("Select() failed: %v", err)
	}

	if sub.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", sub.NumRows())
	}
	if got := sub.X.At(0, 0); got != 5 {
		t.Errorf("X[0,0] = %v, want 5", got)
	}
	if sub.Labels[0] != "A" || sub.Labels[1] != "A" {
		t.Errorf("Labels = %v, want [A A]", sub.Labels)
	}

	if _, err := ds.Select([]int{3}); err == nil {
		t.Error("Select() with out-of-range index should fail")
	}
}

func TestReadCSV(t *testing.T) {
	csvData := `age,income,label
25,40000,A
32,55000,B
47,61000,A
`
	ds, err := ReadCSV(strings.NewReader(csvData), "label")
	if err != nil {
		t.Fatalf("ReadCSV() failed: %v", err)
	}

	if ds.NumRows() != 3 || ds.NumFeatures() != 2 {
		t.Errorf("shape = (%d, %d), want (3, 2)", ds.NumRows(), ds.NumFeatures())
	}
	if ds.FeatureNames[0] != "age" || ds.FeatureNames[1] != "income" {
		t.Errorf("FeatureNames = %v", ds.FeatureNames)
	}
	if ds.Labels[1] != "B" {
		t.Errorf("Labels[1] = %v, want B", ds.Labels[1])
	}
	if got := ds.X.At(2, 1); got != 61000 {
		t.Errorf("X[2,1] = %v, want 61000", got)
	}

	counts := ds.ClassCounts()
	if counts["A"] != 2 || counts["B"] != 1 {
		t.Errorf("ClassCounts() = %v", counts)
	}
}

func TestReadFeaturesCSV(t *testing.T) {
	csvData := `age,income
25,40000
32,55000
`
	ds, err := ReadFeaturesCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadFeaturesCSV() failed: %v", err)
	}

	if ds.NumRows() != 2 || ds.NumFeatures() != 2 {
		t.Errorf("shape = (%d, %d), want (2, 2)", ds.NumRows(), ds.NumFeatures())
	}
	for i, l := range ds.Labels {
		if l != "" {
			t.Errorf("Labels[%d] = %q, want empty", i, l)
		}
	}

	if _, err := ReadFeaturesCSV(strings.NewReader("a,b\n")); err == nil {
		t.Error("ReadFeaturesCSV() should fail on a header-only file")
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		col  string
	}{
		{
			name: "missing label column",
			data: "a,b\n1,2\n",
			col:  "label",
		},
		{
			name: "non-numeric feature",
			data: "a,label\nx,A\n",
			col:  "label",
		},
		{
			name: "no feature columns",
			data: "label\nA\n",
			col:  "label",
		},
		{
			name: "no data rows",
			data: "a,label\n",
			col:  "label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.data), tt.col); err == nil {
				t.Error("ReadCSV() should fail")
			}
		})
	}
}
