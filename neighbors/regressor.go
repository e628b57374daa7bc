package neighbors

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statfit/core/model"
	"github.com/YuminosukeSato/statfit/core/parallel"
	"github.com/YuminosukeSato/statfit/metrics"
	"github.com/YuminosukeSato/statfit/pkg/errors"
	"github.com/YuminosukeSato/statfit/pkg/log"
)

// Regressor predicts a continuous response as the (optionally
// inverse-distance-weighted) average of the k nearest training
// responses.
type Regressor struct {
	config
	state  *model.StateManager
	logger log.Logger

	trainX *mat.Dense
	trainY []float64
}

// RegressionResult bundles predictions with their evaluation against
// known responses. Returned by Evaluate; created once per call and
// never retained by the estimator.
type RegressionResult struct {
	Predictions []float64
	Residuals   []float64
	SSE         float64
	MSE         float64
	RMSE        float64
}

// NewRegressor creates a KNN regressor with the given options.
func NewRegressor(opts ...Option) *Regressor {
	r := &Regressor{
		config: defaultConfig(),
		state:  model.NewStateManager(),
		logger: log.GetLoggerWithName("knn.regressor"),
	}
	for _, opt := range opts {
		opt(&r.config)
	}
	return r
}

// Fit validates and stores a copy of the training set. As a lazy
// learner the regressor builds nothing else until Predict.
func (r *Regressor) Fit(X mat.Matrix, y []float64) (err error) {
	const op = "KNNRegressor.Fit"
	defer errors.Recover(&err, op)

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewValueError(op, "empty training set")
	}
	if len(y) != rows {
		return errors.NewDimensionError(op, rows, len(y), 0)
	}
	if r.k < 1 || r.k > rows {
		return errors.NewInvalidParameterError(op, "k",
			fmt.Sprintf("must be between 1 and the number of training samples (%d)", rows), r.k)
	}
	if err := errors.CheckMatrix(op, X, rows, cols, 0); err != nil {
		return err
	}
	if err := errors.CheckNumericalStability(op, y, 0); err != nil {
		return err
	}

	r.trainX = mat.DenseCopyOf(X)
	r.trainY = append([]float64(nil), y...)
	r.state.SetDimensions(cols, rows)
	r.state.SetFitted()

	if r.verbose {
		r.logger.Info("training set stored",
			log.OperationKey, log.OperationFit,
			log.TrainSamplesKey, rows,
			log.FeaturesKey, cols,
			log.NeighborsKey, r.k,
			log.WeightedKey, r.weighted,
		)
	}
	return nil
}

// Predict returns the predicted response for every row of X.
func (r *Regressor) Predict(X mat.Matrix) (predictions []float64, err error) {
	const op = "KNNRegressor.Predict"
	defer errors.Recover(&err, op)

	if err := r.state.RequireFitted("KNNRegressor", "Predict"); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	nFeatures, _ := r.state.GetDimensions()
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
	dists := distanceMatrix(mat.DenseCopyOf(X), r.trainX)

	predictions = make([]float64, rows)
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			neighbors := nearest(dists, i, r.k)
			weights := neighborWeights(dists, i, neighbors, r.weighted)
			predictions[i] = weightedAverage(r.trainY, neighbors, weights)
		}
	})

	if r.verbose {
		r.logger.Info("prediction finished",
			log.OperationKey, log.OperationPredict,
			log.SamplesKey, rows,
			log.NeighborsKey, r.k,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return predictions, nil
}

// Evaluate predicts every row of X and scores the predictions against
// the true responses.
func (r *Regressor) Evaluate(X mat.Matrix, yTrue []float64) (*RegressionResult, error) {
	const op = "KNNRegressor.Evaluate"

	rows, _ := X.Dims()
	if len(yTrue) != rows {
		return nil, errors.NewDimensionError(op, rows, len(yTrue), 0)
	}
	if err := errors.CheckNumericalStability(op, yTrue, 0); err != nil {
		return nil, err
	}

	predictions, err := r.Predict(X)
	if err != nil {
		return nil, err
	}

	residuals := make([]float64, len(predictions))
	for i := range predictions {
		residuals[i] = yTrue[i] - predictions[i]
	}

	trueVec := mat.NewVecDense(len(yTrue), append([]float64(nil), yTrue...))
	predVec := mat.NewVecDense(len(predictions), predictions)
	sse, err := metrics.SSE(trueVec, predVec)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	mse, err := metrics.MSE(trueVec, predVec)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	result := &RegressionResult{
		Predictions: predictions,
		Residuals:   residuals,
		SSE:         sse,
		MSE:         mse,
		RMSE:        math.Sqrt(mse),
	}

	if r.verbose {
		r.logger.Info("evaluation finished",
			log.OperationKey, log.OperationEvaluate,
			log.SamplesKey, rows,
			log.MSEKey, result.MSE,
			log.RMSEKey, result.RMSE,
		)
	}
	return result, nil
}

// weightedAverage combines the neighbor responses. With unit weights it
// reduces to the plain mean. A vanishing weight sum yields zero via
// SafeDivide rather than NaN.
func weightedAverage(y []float64, neighbors []int, weights []float64) float64 {
	var num, den float64
	for i, j := range neighbors {
		num += weights[i] * y[j]
		den += weights[i]
	}
	return errors.SafeDivide(num, den)
}
