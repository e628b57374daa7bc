// Package neighbors implements k-nearest-neighbor prediction with
// optional inverse-distance weighting.
//
// Two estimators cover the two label types: Regressor predicts a
// continuous response, Classifier predicts a categorical label. Both
// are lazy learners following the Fit/Predict split: Fit validates and
// stores a copy of the training set, Predict computes a fresh
// train-by-query distance matrix per call.
//
// Distances are plain Euclidean over all feature columns with no
// internal scaling. Callers whose features live on different scales
// should standardize them first, for example with the preprocessing
// package.
package neighbors

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statfit/core/parallel"
)

// epsilon offsets neighbor distances before inversion so an exact hit
// does not divide by zero.
const epsilon = 1e-10

// parallelThreshold keeps small query batches sequential.
const parallelThreshold = 1000

// config carries the settings shared by Regressor and Classifier.
type config struct {
	k        int
	weighted bool
	verbose  bool
}

func defaultConfig() config {
	return config{k: 5}
}

// Option configures a Regressor or Classifier.
type Option func(*config)

// WithK sets the number of neighbors consulted per query point.
// Default 5. Validated against the training size during Fit.
func WithK(k int) Option {
	return func(c *config) {
		c.k = k
	}
}

// WithWeighted toggles inverse-distance weighting of neighbor votes and
// averages. Default false, giving a plain majority vote or mean.
func WithWeighted(weighted bool) Option {
	return func(c *config) {
		c.weighted = weighted
	}
}

// WithVerbose enables info-level logging of fit and predict progress.
func WithVerbose(verbose bool) Option {
	return func(c *config) {
		c.verbose = verbose
	}
}

// distanceMatrix returns the nQuery x nTrain matrix of Euclidean
// distances between every query row and every training row. The matrix
// is read-only after construction and shared across the per-query
// computations.
func distanceMatrix(query, train *mat.Dense) *mat.Dense {
	nQuery, cols := query.Dims()
	nTrain, _ := train.Dims()

	dists := mat.NewDense(nQuery, nTrain, nil)
	parallel.ParallelizeWithThreshold(nQuery, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < nTrain; j++ {
				var sum float64
				for c := 0; c < cols; c++ {
					diff := query.At(i, c) - train.At(j, c)
					sum += diff * diff
				}
				dists.Set(i, j, math.Sqrt(sum))
			}
		}
	})
	return dists
}

// nearest returns the k training indices closest to query row qi in
// ascending distance order. Equal distances resolve in favor of the
// lower training index, so the selection is deterministic regardless of
// how the per-query loop is scheduled.
func nearest(dists *mat.Dense, qi, k int) []int {
	_, nTrain := dists.Dims()

	idxs := make([]int, nTrain)
	for j := range idxs {
		idxs[j] = j
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return dists.At(qi, idxs[a]) < dists.At(qi, idxs[b])
	})
	return idxs[:k]
}

// neighborWeights returns the voting weight of each selected neighbor.
// Weighted mode inverts the epsilon-offset distance; a weight that
// comes out non-finite collapses to zero instead of propagating
// infinity. Unweighted mode gives every neighbor weight one.
func neighborWeights(dists *mat.Dense, qi int, neighbors []int, weighted bool) []float64 {
	weights := make([]float64, len(neighbors))
	for i, j := range neighbors {
		if !weighted {
			weights[i] = 1
			continue
		}
		w := 1 / (dists.At(qi, j) + epsilon)
		if math.IsInf(w, 0) || math.IsNaN(w) {
			w = 0
		}
		weights[i] = w
	}
	return weights
}
