// Package loess implements locally weighted scatterplot smoothing.
//
// The smoother fits a separate low-degree polynomial around every input
// point, weighting nearby observations with the Tukey tri-weight kernel
// and solving the weighted normal equations per point. Window selection
// and kernel weighting are deliberately decoupled: a window that is not
// symmetric around its query point may hand some selected neighbors a
// weight of exactly zero.
//
// Example:
//
//	smoother := loess.New(loess.WithSpan(0.5), loess.WithDegree(2))
//	result, err := smoother.Fit(x, y)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.MSE)
package loess

import (
	"context"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statfit/core/parallel"
	"github.com/YuminosukeSato/statfit/pkg/errors"
	"github.com/YuminosukeSato/statfit/pkg/log"
)

// parallelThreshold is the input size above which per-point fits run on
// multiple goroutines.
const parallelThreshold = 1000

// Smoother is a LOESS estimator. Configure it with options and call Fit;
// the receiver itself stays unchanged across calls.
type Smoother struct {
	span    float64
	degree  int
	verbose bool

	logger log.Logger
}

// Option configures a Smoother.
type Option func(*Smoother)

// WithSpan sets the fraction of points in each local window, strictly
// between 0 and 1. Default 0.5.
func WithSpan(span float64) Option {
	return func(s *Smoother) {
		s.span = span
	}
}

// WithDegree sets the local polynomial degree, 1 or 2. Default 1.
func WithDegree(degree int) Option {
	return func(s *Smoother) {
		s.degree = degree
	}
}

// WithVerbose enables info-level logging of fit progress.
func WithVerbose(verbose bool) Option {
	return func(s *Smoother) {
		s.verbose = verbose
	}
}

// New creates a Smoother with the given options.
func New(opts ...Option) *Smoother {
	s := &Smoother{
		span:   0.5,
		degree: 1,
		logger: log.GetLoggerWithName("loess"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Span returns the configured window fraction.
func (s *Smoother) Span() float64 { return s.span }

// Degree returns the configured polynomial degree.
func (s *Smoother) Degree() int { return s.degree }

// FitResult bundles the smoothed curve and its error metrics. It is
// created once per Fit call and never mutated afterwards.
type FitResult struct {
	// Fitted holds the smoothed value at each input point.
	Fitted []float64
	// Residuals holds y - Fitted.
	Residuals []float64

	SSE float64
	MSE float64

	// Span, Degree and WindowSize record the configuration the curve was
	// produced with.
	Span       float64
	Degree     int
	WindowSize int
}

// Fit smooths y over x and returns the fitted curve.
//
// Every point is fitted independently: the WindowSize nearest neighbors
// (stable ascending distance, ties resolved by original index) are
// weighted by the tri-weight kernel and a degree-d polynomial is solved
// through them. A failure at any point aborts the whole fit.
func (s *Smoother) Fit(x, y []float64) (result *FitResult, err error) {
	defer errors.Recover(&err, "loess.Fit")

	const op = "loess.Fit"

	if s.span <= 0 || s.span >= 1 {
		return nil, errors.NewInvalidParameterError(op, "span", "must be in (0, 1)", s.span)
	}
	if s.degree != 1 && s.degree != 2 {
		return nil, errors.NewInvalidParameterError(op, "degree", "must be 1 or 2", s.degree)
	}

	n := len(x)
	if n == 0 {
		return nil, errors.NewValueError(op, "empty input")
	}
	if len(y) != n {
		return nil, errors.NewDimensionError(op, n, len(y), 0)
	}

	if err := errors.CheckNumericalStability(op, x, 0); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability(op, y, 0); err != nil {
		return nil, err
	}

	windowSize := int(s.span * float64(n))
	p := s.degree + 1
	if windowSize < p {
		return nil, errors.NewInsufficientNeighborsError(op, windowSize, p)
	}

	start := time.Now()
	if s.verbose {
		s.logger.Info("smoothing started",
			log.OperationKey, log.OperationFit,
			log.SamplesKey, n,
			log.SpanKey, s.span,
			log.DegreeKey, s.degree,
			log.WindowSizeKey, windowSize,
		)
	}

	fitted := make([]float64, n)
	pointErrs := make([]error, n)

	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(startIdx, endIdx int) {
		for i := startIdx; i < endIdx; i++ {
			fitted[i], pointErrs[i] = s.fitPoint(x, y, i, windowSize)
		}
	})

	// Per-point failures abort the fit; the lowest index wins so the
	// outcome does not depend on goroutine scheduling.
	for i, perr := range pointErrs {
		if perr != nil {
			return nil, errors.Wrapf(perr, "%s: point %d", op, i)
		}
	}

	residuals := make([]float64, n)
	sse := 0.0
	for i := range fitted {
		residuals[i] = y[i] - fitted[i]
		sse += residuals[i] * residuals[i]
	}
	mse := sse / float64(n)

	if s.verbose {
		s.logger.Info("smoothing finished",
			log.OperationKey, log.OperationFit,
			log.SamplesKey, n,
			log.MSEKey, mse,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}

	return &FitResult{
		Fitted:     fitted,
		Residuals:  residuals,
		SSE:        sse,
		MSE:        mse,
		Span:       s.span,
		Degree:     s.degree,
		WindowSize: windowSize,
	}, nil
}

// fitPoint fits the local polynomial at x[i] and evaluates it there.
func (s *Smoother) fitPoint(x, y []float64, i, windowSize int) (float64, error) {
	const op = "loess.Fit"

	neighbors := nearestIndices(x, i, windowSize)

	// Bandwidth is half the window size, as a point count. Window size is
	// at least degree+1 >= 2, so h >= 1.
	h := float64(windowSize / 2)

	w := len(neighbors)
	p := s.degree + 1
	weights := make([]float64, w)
	for j, idx := range neighbors {
		weights[j] = triWeight((x[idx] - x[i]) / h)
	}

	// Weighted normal equations (XᵀWX)β = XᵀWy over the neighbor subset.
	design := mat.NewDense(w, p, nil)
	response := mat.NewVecDense(w, nil)
	for j, idx := range neighbors {
		design.Set(j, 0, 1)
		design.Set(j, 1, x[idx])
		if s.degree == 2 {
			design.Set(j, 2, x[idx]*x[idx])
		}
		response.SetVec(j, y[idx])
	}
	weightDiag := mat.NewDiagDense(w, weights)

	var xtw mat.Dense
	xtw.Mul(design.T(), weightDiag)

	var xtwx mat.Dense
	xtwx.Mul(&xtw, design)

	var xtwy mat.VecDense
	xtwy.MulVec(&xtw, response)

	var inv mat.Dense
	if err := inv.Inverse(&xtwx); err != nil {
		return 0, errors.NewSingularMatrixError(op, p, p)
	}

	var beta mat.VecDense
	beta.MulVec(&inv, &xtwy)

	value := beta.AtVec(0) + beta.AtVec(1)*x[i]
	if s.degree == 2 {
		value += beta.AtVec(2) * x[i] * x[i]
	}

	if err := errors.CheckScalar(op, value, i); err != nil {
		return 0, err
	}

	if s.verbose && s.logger.Enabled(context.Background(), log.LevelDebug) {
		s.logger.Debug("local fit",
			"point", i,
			"neighbors", len(neighbors),
			"weights_sum", sum(weights),
		)
	}

	return value, nil
}

// nearestIndices returns the windowSize indices closest to x[i] in
// ascending distance order. Equal distances keep their original index
// order.
func nearestIndices(x []float64, i, windowSize int) []int {
	n := len(x)
	idxs := make([]int, n)
	dists := make([]float64, n)
	for j := 0; j < n; j++ {
		idxs[j] = j
		dists[j] = math.Abs(x[j] - x[i])
	}

	sort.SliceStable(idxs, func(a, b int) bool {
		return dists[idxs[a]] < dists[idxs[b]]
	})

	return idxs[:windowSize]
}

// triWeight is the Tukey tri-weight kernel (1-|u|³)³ for |u| <= 1, else 0.
func triWeight(u float64) float64 {
	a := math.Abs(u)
	if a > 1 {
		return 0
	}
	c := 1 - a*a*a
	return c * c * c
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
