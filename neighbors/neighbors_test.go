package neighbors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestDistanceMatrix(t *testing.T) {
	train := mat.NewDense(2, 2, []float64{
		0, 0,
		3, 4,
	})
	query := mat.NewDense(2, 2, []float64{
		0, 0,
		6, 8,
	})

	dists := distanceMatrix(query, train)

	assert.InDelta(t, 0.0, dists.At(0, 0), 1e-12)
	assert.InDelta(t, 5.0, dists.At(0, 1), 1e-12)
	assert.InDelta(t, 10.0, dists.At(1, 0), 1e-12)
	assert.InDelta(t, 5.0, dists.At(1, 1), 1e-12)
}

func TestNearest_StableTieBreak(t *testing.T) {
	// The query is equidistant from training rows 0 and 2; the lower
	// index must come first.
	dists := mat.NewDense(1, 3, []float64{1, 2, 1})

	assert.Equal(t, []int{0, 2}, nearest(dists, 0, 2))
	assert.Equal(t, []int{0}, nearest(dists, 0, 1))
}

func TestNeighborWeights(t *testing.T) {
	dists := mat.NewDense(1, 3, []float64{0, 0.5, 2})

	unweighted := neighborWeights(dists, 0, []int{0, 1, 2}, false)
	assert.Equal(t, []float64{1, 1, 1}, unweighted)

	weighted := neighborWeights(dists, 0, []int{0, 1, 2}, true)
	assert.InDelta(t, 1e10, weighted[0], 1)
	assert.InDelta(t, 2.0, weighted[1], 1e-6)
	assert.InDelta(t, 0.5, weighted[2], 1e-6)
}

func TestVote(t *testing.T) {
	labels := []string{"a", "b", "b", "a"}

	// Unit weights reduce to majority voting.
	assert.Equal(t, "b", vote(labels, []int{0, 1, 2}, []float64{1, 1, 1}))

	// On a tie the label encountered first in neighbor order wins.
	assert.Equal(t, "b", vote(labels, []int{1, 0}, []float64{1, 1}))
	assert.Equal(t, "a", vote(labels, []int{0, 1}, []float64{1, 1}))

	// A single heavy vote overrides the count.
	assert.Equal(t, "a", vote(labels, []int{0, 1, 2}, []float64{5, 1, 1}))
}
