package neighbors

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statfit/core/model"
	"github.com/YuminosukeSato/statfit/core/parallel"
	"github.com/YuminosukeSato/statfit/metrics"
	"github.com/YuminosukeSato/statfit/pkg/errors"
	"github.com/YuminosukeSato/statfit/pkg/log"
)

// Classifier predicts a categorical label by (optionally
// inverse-distance-weighted) voting among the k nearest training
// labels.
type Classifier struct {
	config
	state  *model.StateManager
	logger log.Logger

	trainX *mat.Dense
	trainY []string
}

// ClassificationResult bundles predictions with their evaluation
// against known labels. Returned by Evaluate.
type ClassificationResult struct {
	Predictions []string
	Accuracy    float64
	ErrorRate   float64
	Confusion   *metrics.ConfusionMatrix
}

// NewClassifier creates a KNN classifier with the given options.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		config: defaultConfig(),
		state:  model.NewStateManager(),
		logger: log.GetLoggerWithName("knn.classifier"),
	}
	for _, opt := range opts {
		opt(&c.config)
	}
	return c
}

// Fit validates and stores a copy of the training set.
func (c *Classifier) Fit(X mat.Matrix, y []string) (err error) {
	const op = "KNNClassifier.Fit"
	defer errors.Recover(&err, op)

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewValueError(op, "empty training set")
	}
	if len(y) != rows {
		return errors.NewDimensionError(op, rows, len(y), 0)
	}
	if c.k < 1 || c.k > rows {
		return errors.NewInvalidParameterError(op, "k",
			fmt.Sprintf("must be between 1 and the number of training samples (%d)", rows), c.k)
	}
	if err := errors.CheckMatrix(op, X, rows, cols, 0); err != nil {
		return err
	}

	c.trainX = mat.DenseCopyOf(X)
	c.trainY = append([]string(nil), y...)
	c.state.SetDimensions(cols, rows)
	c.state.SetFitted()

	if c.verbose {
		c.logger.Info("training set stored",
			log.OperationKey, log.OperationFit,
			log.TrainSamplesKey, rows,
			log.FeaturesKey, cols,
			log.NeighborsKey, c.k,
			log.WeightedKey, c.weighted,
		)
	}
	return nil
}

// Predict returns the predicted label for every row of X.
func (c *Classifier) Predict(X mat.Matrix) (predictions []string, err error) {
	const op = "KNNClassifier.Predict"
	defer errors.Recover(&err, op)

	if err := c.state.RequireFitted("KNNClassifier", "Predict"); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	nFeatures, _ := c.state.GetDimensions()
	if rows == 0 {
		return nil, errors.NewValueError(op, "empty query set")
	}
	if cols != nFeatures {
		return nil, errors.NewDimensionError(op, nFeatures, cols, 1)
	}
	if err := errors.CheckMatrix(op, X, rows, cols, 0); err != nil {
		return nil, err
	}

	start := time.Now()
	dists := distanceMatrix(mat.DenseCopyOf(X), c.trainX)

	predictions = make([]string, rows)
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			neighbors := nearest(dists, i, c.k)
			weights := neighborWeights(dists, i, neighbors, c.weighted)
			predictions[i] = vote(c.trainY, neighbors, weights)
		}
	})

	if c.verbose {
		c.logger.Info("prediction finished",
			log.OperationKey, log.OperationPredict,
			log.SamplesKey, rows,
			log.NeighborsKey, c.k,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return predictions, nil
}

// Evaluate predicts every row of X and scores the predictions against
// the true labels, including a confusion matrix.
func (c *Classifier) Evaluate(X mat.Matrix, yTrue []string) (*ClassificationResult, error) {
	const op = "KNNClassifier.Evaluate"

	rows, _ := X.Dims()
	if len(yTrue) != rows {
		return nil, errors.NewDimensionError(op, rows, len(yTrue), 0)
	}

	predictions, err := c.Predict(X)
	if err != nil {
		return nil, err
	}

	accuracy, err := metrics.Accuracy(yTrue, predictions)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	errorRate, err := metrics.ErrorRate(yTrue, predictions)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	confusion, err := metrics.NewConfusionMatrix(yTrue, predictions)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	result := &ClassificationResult{
		Predictions: predictions,
		Accuracy:    accuracy,
		ErrorRate:   errorRate,
		Confusion:   confusion,
	}

	if c.verbose {
		c.logger.Info("evaluation finished",
			log.OperationKey, log.OperationEvaluate,
			log.SamplesKey, rows,
			log.AccuracyKey, result.Accuracy,
		)
	}
	return result, nil
}

// vote returns the label with the largest weight sum among the
// neighbors. Labels tie-break by first encounter in ascending-distance
// order, which realizes both the weighted argmax rule and, with unit
// weights, the plain majority vote.
func vote(labels []string, neighbors []int, weights []float64) string {
	order := make([]string, 0, len(neighbors))
	totals := make(map[string]float64, len(neighbors))
	for i, j := range neighbors {
		label := labels[j]
		if _, seen := totals[label]; !seen {
			order = append(order, label)
		}
		totals[label] += weights[i]
	}

	best := order[0]
	for _, label := range order[1:] {
		if totals[label] > totals[best] {
			best = label
		}
	}
	return best
}
