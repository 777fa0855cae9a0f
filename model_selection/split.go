// Package model_selection provides utilities for partitioning datasets into
// training and evaluation subsets.
package model_selection

import (
	"math"
	"math/rand"
	"sort"

	"github.com/YuminosukeSato/classigo/dataset"
	"github.com/YuminosukeSato/classigo/pkg/errors"
)

// StratifiedSplit partitions row indices into disjoint train and test sets
// whose class proportions match the full label column. The partition is
// deterministic for a given (labels, testSize, seed).
//
// Per-class test counts use largest-remainder rounding, so the test set holds
// round(n * testSize) rows in total and each class ratio deviates from the
// global ratio by at most one row.
func StratifiedSplit(labels []string, testSize float64, seed int64) (trainIdx, testIdx []int, err error) {
	const op = "model_selection.StratifiedSplit"

	if len(labels) == 0 {
		return nil, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.NewValidationError("testSize", "must be in the open interval (0, 1)", testSize)
	}

	// Group row indices by class, preserving first-seen order inside each
	// class so the shuffle below is the only source of randomness.
	byClass := make(map[string][]int)
	classOrder := make([]string, 0, 2)
	for i, l := range labels {
		if _, ok := byClass[l]; !ok {
			classOrder = append(classOrder, l)
		}
		byClass[l] = append(byClass[l], i)
	}
	sort.Strings(classOrder)

	if len(classOrder) < 2 {
		return nil, nil, errors.NewStratificationError(op, "", 0, "label column must contain at least two distinct values")
	}

	total := len(labels)
	testTotal := int(math.Round(float64(total) * testSize))
	if testTotal < len(classOrder) || total-testTotal < len(classOrder) {
		return nil, nil, errors.NewStratificationError(op, "", 0,
			"holdout fraction leaves too few rows to represent every class on both sides")
	}

	// Largest-remainder allocation of the test budget across classes.
	counts := make([]int, len(classOrder))
	remainders := make([]float64, len(classOrder))
	allocated := 0
	for ci, class := range classOrder {
		members := byClass[class]
		if len(members) < 2 {
			return nil, nil, errors.NewStratificationError(op, class, len(members),
				"every class needs at least one row on each side of the partition")
		}
		exact := float64(len(members)) * testSize
		counts[ci] = int(math.Floor(exact))
		remainders[ci] = exact - math.Floor(exact)
		allocated += counts[ci]
	}
	order := make([]int, len(classOrder))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for i := 0; allocated < testTotal; i++ {
		counts[order[i%len(order)]]++
		allocated++
	}

	rng := rand.New(rand.NewSource(seed))
	for ci, class := range classOrder {
		members := byClass[class]
		nTest := counts[ci]
		if nTest == 0 || nTest == len(members) {
			return nil, nil, errors.NewStratificationError(op, class, len(members),
				"too few members to stratify at the requested ratio")
		}

		shuffled := make([]int, len(members))
		copy(shuffled, members)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		testIdx = append(testIdx, shuffled[:nTest]...)
		trainIdx = append(trainIdx, shuffled[nTest:]...)
	}

	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx, nil
}

// TrainTestSplit partitions a labeled dataset into stratified train and test
// subsets with the given holdout fraction and seed.
func TrainTestSplit(ds *dataset.Dataset, testSize float64, seed int64) (train, test *dataset.Dataset, err error) {
	trainIdx, testIdx, err := StratifiedSplit(ds.Labels, testSize, seed)
	if err != nil {
		return nil, nil, err
	}

	train, err = ds.Select(trainIdx)
	if err != nil {
		return nil, nil, err
	}
	test, err = ds.Select(testIdx)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}
