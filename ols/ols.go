// Package ols fits a single-predictor ordinary least squares model
// y = b0 + b1*x and derives the classical inference around it:
// coefficient standard errors and t-tests, confidence and prediction
// bands at every observed x, and the ANOVA decomposition with its
// F-test.
//
// Two solution strategies are available and must agree: the textbook
// normal-equation inverse and a QR factorization solved by
// back-substitution. Every reported statistic is derived solely from
// the solved coefficients, the residuals and the degrees of freedom,
// so the strategy choice affects numerical conditioning only.
//
// Example:
//
//	model := ols.New(
//	    ols.WithMethod(ols.MethodQR),
//	    ols.WithInterval(ols.IntervalBoth),
//	    ols.WithLevel(0.95),
//	)
//	result, err := model.Fit(y, x)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Summary())
package ols

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statfit/pkg/errors"
	"github.com/YuminosukeSato/statfit/pkg/log"
)

// Method selects the least-squares solution strategy.
type Method string

const (
	// MethodInverse solves the normal equations via (X'X)^-1.
	MethodInverse Method = "inverse"
	// MethodQR solves via QR factorization and back-substitution.
	MethodQR Method = "qr"
)

// Interval selects which interval bands Fit evaluates at the observed
// x values.
type Interval string

const (
	IntervalNone       Interval = "none"
	IntervalConfidence Interval = "confidence"
	IntervalPrediction Interval = "prediction"
	IntervalBoth       Interval = "both"
)

// Model is a configured ordinary least squares engine. Fit does not
// mutate it, so one Model may serve many datasets.
type Model struct {
	method   Method
	interval Interval
	level    float64
	verbose  bool
	logger   log.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithMethod sets the solution strategy. Default MethodInverse.
func WithMethod(method Method) Option {
	return func(m *Model) {
		m.method = method
	}
}

// WithInterval sets which interval bands to evaluate. Default
// IntervalNone.
func WithInterval(interval Interval) Option {
	return func(m *Model) {
		m.interval = interval
	}
}

// WithLevel sets the confidence level for every interval and
// coefficient bound, strictly between 0 and 1. Default 0.95.
func WithLevel(level float64) Option {
	return func(m *Model) {
		m.level = level
	}
}

// WithVerbose enables info-level logging of fit progress.
func WithVerbose(verbose bool) Option {
	return func(m *Model) {
		m.verbose = verbose
	}
}

// New creates a Model with the given options.
func New(opts ...Option) *Model {
	m := &Model{
		method:   MethodInverse,
		interval: IntervalNone,
		level:    0.95,
		logger:   log.GetLoggerWithName("ols"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Method returns the configured solution strategy.
func (m *Model) Method() Method { return m.method }

// Level returns the configured confidence level.
func (m *Model) Level() float64 { return m.level }

// Fit estimates y = b0 + b1*x by least squares and returns the full
// inference bundle. The response comes first, matching the y ~ x
// formula notation.
func (m *Model) Fit(y, x []float64) (result *FitResult, err error) {
	const op = "ols.Fit"
	defer errors.Recover(&err, op)

	slv, err := solverFor(m.method)
	if err != nil {
		return nil, err
	}
	if err := validateInterval(m.interval); err != nil {
		return nil, err
	}
	if m.level <= 0 || m.level >= 1 {
		return nil, errors.NewInvalidParameterError(op, "level", "must be in (0, 1)", m.level)
	}

	n := len(y)
	if n == 0 {
		return nil, errors.NewValueError(op, "empty input")
	}
	if len(x) != n {
		return nil, errors.NewDimensionError(op, n, len(x), 0)
	}
	if n <= nCols {
		return nil, errors.NewValueError(op, "need at least 3 observations to estimate the residual variance")
	}
	if err := errors.CheckNumericalStability(op, x, 0); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability(op, y, 0); err != nil {
		return nil, err
	}

	if m.verbose {
		m.logger.Info("fit started",
			log.OperationKey, log.OperationFit,
			log.SamplesKey, n,
			log.MethodKey, string(m.method),
			log.LevelKey, m.level,
		)
	}
	start := time.Now()

	X := mat.NewDense(n, nCols, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
		X.Set(i, 1, x[i])
	}
	yVec := mat.NewVecDense(n, append([]float64(nil), y...))

	beta, err := slv.solve(X, yVec)
	if err != nil {
		return nil, err
	}

	result, err = m.buildResult(x, y, X, beta)
	if err != nil {
		return nil, err
	}

	if m.verbose {
		m.logger.Info("fit finished",
			log.OperationKey, log.OperationFit,
			log.SamplesKey, n,
			log.R2ScoreKey, result.RSquared,
			log.FStatKey, result.FValue,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return result, nil
}

func validateInterval(interval Interval) error {
	switch interval {
	case IntervalNone, IntervalConfidence, IntervalPrediction, IntervalBoth:
		return nil
	default:
		return errors.NewInvalidParameterError("ols.Fit", "interval",
			`must be "none", "confidence", "prediction" or "both"`, string(interval))
	}
}
