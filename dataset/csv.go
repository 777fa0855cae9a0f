package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/YuminosukeSato/classigo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LoadCSV reads a headered CSV file into a Dataset. The column named
// labelColumn becomes the label; every other column must parse as float64.
func LoadCSV(path, labelColumn string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	ds, err := ReadCSV(file, labelColumn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return ds, nil
}

// LoadFeaturesCSV reads a headered CSV file with no label column into a
// Dataset whose labels are all empty, for classifying unlabeled rows.
func LoadFeaturesCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	ds, err := ReadFeaturesCSV(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return ds, nil
}

// ReadFeaturesCSV reads headered, label-free CSV content from r into a
// Dataset whose labels are all empty.
func ReadFeaturesCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header row")
	}

	var rows []float64
	nRows := 0
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read record at line %d", line+1)
		}
		line++
		nRows++

		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "non-numeric feature %q at line %d column %d", field, line, i+1)
			}
			rows = append(rows, v)
		}
	}

	if nRows == 0 {
		return nil, errors.NewModelError("dataset.ReadFeaturesCSV", "empty data", errors.ErrEmptyData)
	}

	X := mat.NewDense(nRows, len(header), rows)
	return New(header, X, make([]string, nRows))
}

// ReadCSV reads headered CSV content from r into a Dataset.
func ReadCSV(r io.Reader, labelColumn string) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header row")
	}

	labelIdx := -1
	featureNames := make([]string, 0, len(header)-1)
	for i, name := range header {
		if name == labelColumn {
			labelIdx = i
			continue
		}
		featureNames = append(featureNames, name)
	}
	if labelIdx < 0 {
		return nil, errors.NewValidationError("labelColumn", "column not found in header", labelColumn)
	}
	if len(featureNames) == 0 {
		return nil, errors.NewValueError("dataset.ReadCSV", "no feature columns besides the label")
	}

	var rows []float64
	var labels []string
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read record at line %d", line+1)
		}
		line++

		for i, field := range rec {
			if i == labelIdx {
				labels = append(labels, field)
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "non-numeric feature %q at line %d column %d", field, line, i+1)
			}
			rows = append(rows, v)
		}
	}

	if len(labels) == 0 {
		return nil, errors.NewModelError("dataset.ReadCSV", "empty data", errors.ErrEmptyData)
	}

	X := mat.NewDense(len(labels), len(featureNames), rows)
	return New(featureNames, X, labels)
}
