package ols

import (
	"fmt"
	"strings"
)

// Coefficient is one row of the coefficient table: the estimate with
// its standard error, t-test and confidence bounds at the fit level.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	T        float64
	P        float64
	Lower    float64
	Upper    float64
}

// AnovaTable decomposes the total sum of squares about the mean into
// the part explained by the regression and the residual part, with the
// F-test of the overall regression.
type AnovaTable struct {
	DFRegression int
	DFResidual   int
	SSRegression float64
	SSResidual   float64
	SSTotal      float64
	MSRegression float64
	// MSResidual is the residual variance estimate, SSE/(n-2).
	MSResidual float64
	F          float64
	P          float64
}

// IntervalKind distinguishes the two interval bands around the fitted
// line.
type IntervalKind string

const (
	// KindConfidence bounds the mean response at x.
	KindConfidence IntervalKind = "confidence"
	// KindPrediction bounds a new individual observation at x, so it is
	// strictly wider than the confidence band.
	KindPrediction IntervalKind = "prediction"
)

// IntervalRow is an interval band evaluated at one observed x.
type IntervalRow struct {
	X      float64
	Fitted float64
	Kind   IntervalKind
	Lower  float64
	Upper  float64
}

// FitResult is the immutable output bundle of a Fit call.
type FitResult struct {
	N      int
	Method Method
	Level  float64

	Coefficients []Coefficient
	Fitted       []float64
	Residuals    []float64

	// SSE is the residual sum of squares; MSE divides it by n so the
	// value is comparable across model families. The residual variance
	// estimate SSE/(n-2) lives in ANOVA.MSResidual.
	SSE float64
	MSE float64

	RSquared float64
	FValue   float64
	FPValue  float64

	ANOVA AnovaTable

	// Intervals holds the requested bands at every observed x, all
	// confidence rows first, then all prediction rows.
	Intervals []IntervalRow
}

// Summary renders the coefficient and ANOVA tables as plain text.
func (r *FitResult) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "OLS regression, method=%s, n=%d\n\n", r.Method, r.N)

	level := r.Level * 100
	fmt.Fprintf(&b, "%-12s %12s %12s %10s %12s %12s %12s\n",
		"", "Estimate", "Std.Error", "t value", "Pr(>|t|)",
		fmt.Sprintf("Lower %.4g%%", level), fmt.Sprintf("Upper %.4g%%", level))
	for _, c := range r.Coefficients {
		fmt.Fprintf(&b, "%-12s %12.6f %12.6f %10.4f %12.4g %12.6f %12.6f\n",
			c.Name, c.Estimate, c.StdErr, c.T, c.P, c.Lower, c.Upper)
	}

	a := r.ANOVA
	fmt.Fprintf(&b, "\nAnalysis of variance:\n")
	fmt.Fprintf(&b, "%-12s %6s %14s %14s %12s %12s\n", "", "df", "SS", "MS", "F", "Pr(>F)")
	fmt.Fprintf(&b, "%-12s %6d %14.6f %14.6f %12.4f %12.4g\n",
		"Regression", a.DFRegression, a.SSRegression, a.MSRegression, a.F, a.P)
	fmt.Fprintf(&b, "%-12s %6d %14.6f %14.6f\n",
		"Residuals", a.DFResidual, a.SSResidual, a.MSResidual)
	fmt.Fprintf(&b, "%-12s %6d %14.6f\n",
		"Total", a.DFRegression+a.DFResidual, a.SSTotal)

	fmt.Fprintf(&b, "\nR-squared: %.6f\n", r.RSquared)
	return b.String()
}
