package neighbors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statfit/pkg/errors"
)

func TestClassifier_MajorityVote(t *testing.T) {
	trainX := mat.NewDense(5, 2, []float64{
		0, 0,
		0.1, 0,
		5, 5,
		5, 5.1,
		5.1, 5,
	})
	trainY := []string{"a", "a", "b", "b", "b"}

	clf := NewClassifier(WithK(3))
	require.NoError(t, clf.Fit(trainX, trainY))

	preds, err := clf.Predict(mat.NewDense(2, 2, []float64{
		0, 0.05,
		5, 5.05,
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, preds)
}

func TestClassifier_WeightedVoteOverridesCount(t *testing.T) {
	trainX := mat.NewDense(3, 1, []float64{0, 1, 1.1})
	trainY := []string{"a", "b", "b"}
	query := mat.NewDense(1, 1, []float64{0.001})

	// Unweighted, the two "b" rows outvote the single "a".
	clf := NewClassifier(WithK(3))
	require.NoError(t, clf.Fit(trainX, trainY))
	preds, err := clf.Predict(query)
	require.NoError(t, err)
	assert.Equal(t, "b", preds[0])

	// Weighted, the near "a" row carries roughly 500 times the weight
	// of both "b" rows combined.
	clf = NewClassifier(WithK(3), WithWeighted(true))
	require.NoError(t, clf.Fit(trainX, trainY))
	preds, err = clf.Predict(query)
	require.NoError(t, err)
	assert.Equal(t, "a", preds[0])
}

func TestClassifier_TieBreakFirstEncountered(t *testing.T) {
	t.Run("two equidistant labels", func(t *testing.T) {
		trainX := mat.NewDense(2, 1, []float64{0, 2})
		trainY := []string{"x", "y"}

		for _, weighted := range []bool{false, true} {
			clf := NewClassifier(WithK(2), WithWeighted(weighted))
			require.NoError(t, clf.Fit(trainX, trainY))

			preds, err := clf.Predict(mat.NewDense(1, 1, []float64{1}))
			require.NoError(t, err)
			assert.Equal(t, "x", preds[0], "weighted=%v", weighted)
		}
	})

	t.Run("two-against-two", func(t *testing.T) {
		trainX := mat.NewDense(4, 1, []float64{0, 0.5, 1.5, 2})
		trainY := []string{"x", "x", "y", "y"}

		clf := NewClassifier(WithK(4))
		require.NoError(t, clf.Fit(trainX, trainY))

		// Neighbor order by distance is rows 1, 2, 0, 3, so "x" is
		// encountered first and wins the 2-2 tie.
		preds, err := clf.Predict(mat.NewDense(1, 1, []float64{1}))
		require.NoError(t, err)
		assert.Equal(t, "x", preds[0])
	})
}

func TestClassifier_KOneReproducesLabels(t *testing.T) {
	trainX := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	})
	trainY := []string{"a", "b", "c", "d"}

	clf := NewClassifier(WithK(1))
	require.NoError(t, clf.Fit(trainX, trainY))

	preds, err := clf.Predict(trainX)
	require.NoError(t, err)
	assert.Equal(t, trainY, preds)
}

func TestClassifier_Evaluate(t *testing.T) {
	trainX := mat.NewDense(4, 1, []float64{0, 1, 4, 5})
	trainY := []string{"a", "a", "b", "b"}

	clf := NewClassifier(WithK(1))
	require.NoError(t, clf.Fit(trainX, trainY))

	queryX := mat.NewDense(4, 1, []float64{0.1, 0.9, 4.1, 2.4})
	yTrue := []string{"a", "b", "b", "b"}

	result, err := clf.Evaluate(queryX, yTrue)
	require.NoError(t, err)

	// Predictions are a, a, b, a: two of the four true labels match.
	assert.Equal(t, []string{"a", "a", "b", "a"}, result.Predictions)
	assert.InDelta(t, 0.5, result.Accuracy, 1e-12)
	assert.InDelta(t, 0.5, result.ErrorRate, 1e-12)
	assert.InDelta(t, 1.0, result.Accuracy+result.ErrorRate, 1e-12)

	require.NotNil(t, result.Confusion)
	assert.Equal(t, 1, result.Confusion.At("a", "a"))
	assert.Equal(t, 0, result.Confusion.At("a", "b"))
	assert.Equal(t, 2, result.Confusion.At("b", "a"))
	assert.Equal(t, 1, result.Confusion.At("b", "b"))
}

func TestClassifier_Validation(t *testing.T) {
	trainX := mat.NewDense(3, 1, []float64{0, 1, 2})
	trainY := []string{"a", "b", "a"}

	t.Run("k larger than training set", func(t *testing.T) {
		err := NewClassifier(WithK(4)).Fit(trainX, trainY)
		var paramErr *errors.InvalidParameterError
		require.ErrorAs(t, err, &paramErr)
	})

	t.Run("label length mismatch", func(t *testing.T) {
		err := NewClassifier(WithK(1)).Fit(trainX, []string{"a", "b"})
		var dimErr *errors.DimensionError
		require.ErrorAs(t, err, &dimErr)
	})

	t.Run("predict before fit", func(t *testing.T) {
		_, err := NewClassifier().Predict(mat.NewDense(1, 1, []float64{0}))
		var notFitted *errors.NotFittedError
		require.ErrorAs(t, err, &notFitted)
	})

	t.Run("feature count mismatch", func(t *testing.T) {
		clf := NewClassifier(WithK(1))
		require.NoError(t, clf.Fit(trainX, trainY))

		_, err := clf.Predict(mat.NewDense(1, 3, []float64{0, 0, 0}))
		var dimErr *errors.DimensionError
		require.ErrorAs(t, err, &dimErr)
	})
}
