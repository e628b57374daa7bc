package ols

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/statfit/pkg/errors"
)

// nCols is the width of the single-predictor design matrix [1, x].
const nCols = 2

// buildResult derives every reported statistic from the solved
// coefficients, the residuals and the degrees of freedom. Nothing in
// here depends on which solver produced beta.
func (m *Model) buildResult(x, y []float64, X *mat.Dense, beta *mat.VecDense) (*FitResult, error) {
	const op = "ols.Fit"
	n := len(y)
	dfRes := n - nCols

	b0 := beta.AtVec(0)
	b1 := beta.AtVec(1)

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	var sse float64
	for i := range y {
		fitted[i] = b0 + b1*x[i]
		residuals[i] = y[i] - fitted[i]
		sse += residuals[i] * residuals[i]
	}
	if err := errors.CheckNumericalStability(op, fitted, 0); err != nil {
		return nil, err
	}

	yMean := stat.Mean(y, nil)

	// The deviation form is exactly zero when y is constant; guard the
	// decomposition scale before anything divides by it.
	var syy float64
	for _, v := range y {
		d := v - yMean
		syy += d * d
	}
	if syy == 0 {
		return nil, errors.NewValueError(op, "response has zero variance")
	}

	var yty float64
	for _, v := range y {
		yty += v * v
	}
	ssTot := yty - float64(n)*yMean*yMean

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxBeta mat.VecDense
	xtxBeta.MulVec(&xtx, beta)
	ssReg := mat.Dot(beta, &xtxBeta) - float64(n)*yMean*yMean

	sigma2 := sse / float64(dfRes)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, errors.NewSingularMatrixError(op, nCols, nCols)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfRes)}
	tCrit := tDist.Quantile(1 - (1-m.level)/2)

	names := [nCols]string{"(Intercept)", "x"}
	coeffs := make([]Coefficient, nCols)
	for j := 0; j < nCols; j++ {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		tStat, pVal := tTest(est, se, tDist)
		coeffs[j] = Coefficient{
			Name:     names[j],
			Estimate: est,
			StdErr:   se,
			T:        tStat,
			P:        pVal,
			Lower:    est - tCrit*se,
			Upper:    est + tCrit*se,
		}
	}

	fStat := ssReg / sigma2
	fP := fPValue(fStat, 1, float64(dfRes))
	anova := AnovaTable{
		DFRegression: 1,
		DFResidual:   dfRes,
		SSRegression: ssReg,
		SSResidual:   sse,
		SSTotal:      ssTot,
		MSRegression: ssReg,
		MSResidual:   sigma2,
		F:            fStat,
		P:            fP,
	}

	return &FitResult{
		N:            n,
		Method:       m.method,
		Level:        m.level,
		Coefficients: coeffs,
		Fitted:       fitted,
		Residuals:    residuals,
		SSE:          sse,
		MSE:          sse / float64(n),
		RSquared:     ssReg / ssTot,
		FValue:       fStat,
		FPValue:      fP,
		ANOVA:        anova,
		Intervals:    m.intervalRows(x, fitted, sigma2, tCrit),
	}, nil
}

// intervalRows evaluates the requested bands at every observed x, all
// confidence rows first, then all prediction rows.
func (m *Model) intervalRows(x, fitted []float64, sigma2, tCrit float64) []IntervalRow {
	if m.interval == IntervalNone {
		return nil
	}

	n := len(x)
	xMean := stat.Mean(x, nil)
	sxx := stat.Variance(x, nil) * float64(n-1)
	sigmaHat := math.Sqrt(sigma2)

	var rows []IntervalRow
	if m.interval == IntervalConfidence || m.interval == IntervalBoth {
		rows = append(rows, intervalBand(KindConfidence, x, fitted, xMean, sxx, sigmaHat, tCrit, 0)...)
	}
	if m.interval == IntervalPrediction || m.interval == IntervalBoth {
		rows = append(rows, intervalBand(KindPrediction, x, fitted, xMean, sxx, sigmaHat, tCrit, 1)...)
	}
	return rows
}

// intervalBand evaluates one band at every observed x. extra is 0 for
// the mean-response band and 1 for the individual-prediction band,
// which widens the standard error under the root.
func intervalBand(kind IntervalKind, x, fitted []float64, xMean, sxx, sigmaHat, tCrit, extra float64) []IntervalRow {
	n := float64(len(x))
	rows := make([]IntervalRow, len(x))
	for i := range x {
		d := x[i] - xMean
		se := sigmaHat * math.Sqrt(extra+1/n+d*d/sxx)
		rows[i] = IntervalRow{
			X:      x[i],
			Fitted: fitted[i],
			Kind:   kind,
			Lower:  fitted[i] - tCrit*se,
			Upper:  fitted[i] + tCrit*se,
		}
	}
	return rows
}

// tTest returns the t statistic and two-sided p-value against a zero
// null. A zero standard error cannot produce NaN: the statistic goes to
// 0 or +/-Inf and the p-value to 1 or 0 accordingly.
func tTest(estimate, se float64, dist distuv.StudentsT) (float64, float64) {
	if se == 0 {
		if estimate == 0 {
			return 0, 1
		}
		return math.Copysign(math.Inf(1), estimate), 0
	}

	t := estimate / se
	if math.IsInf(t, 0) {
		return t, 0
	}
	p := 2 * dist.Survival(math.Abs(t))
	return t, errors.ClipValue(p, 0, 1)
}

// fPValue is the upper-tail probability of the F distribution with
// (d1, d2) degrees of freedom.
func fPValue(f, d1, d2 float64) float64 {
	if math.IsInf(f, 1) {
		return 0
	}
	if f <= 0 {
		return 1
	}
	dist := distuv.F{D1: d1, D2: d2}
	return errors.ClipValue(dist.Survival(f), 0, 1)
}
