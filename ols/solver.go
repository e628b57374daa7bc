package ols

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statfit/pkg/errors"
)

// solver is one strategy for solving the least-squares system. Both
// strategies answer the same normal equations, so everything derived
// downstream is independent of which one ran.
type solver interface {
	name() string
	solve(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error)
}

func solverFor(method Method) (solver, error) {
	switch method {
	case MethodInverse:
		return inverseSolver{}, nil
	case MethodQR:
		return qrSolver{}, nil
	default:
		return nil, errors.NewInvalidParameterError("ols.Fit", "method",
			`must be "inverse" or "qr"`, string(method))
	}
}

// inverseSolver computes beta = (X'X)^-1 X'y directly from the normal
// equations.
type inverseSolver struct{}

func (inverseSolver) name() string { return string(MethodInverse) }

func (inverseSolver) solve(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	_, p := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, errors.NewSingularMatrixError("ols.Fit", p, p)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	beta := mat.NewVecDense(p, nil)
	beta.MulVec(&inv, &xty)
	return beta, nil
}

// qrSolver factors X = QR and solves R beta = Q'y by back-substitution
// from the bottom row up. Orthogonality of Q makes this route better
// conditioned than forming X'X.
type qrSolver struct{}

func (qrSolver) name() string { return string(MethodQR) }

func (qrSolver) solve(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	_, p := X.Dims()

	var qr mat.QR
	qr.Factorize(X)

	var q, r mat.Dense
	qr.QTo(&q)
	qr.RTo(&r)

	var qty mat.VecDense
	qty.MulVec(q.T(), y)

	// A vanishing diagonal entry of R means X has (numerically)
	// dependent columns.
	tol := 1e-12 * math.Max(1, math.Abs(r.At(0, 0)))

	beta := mat.NewVecDense(p, nil)
	for j := p - 1; j >= 0; j-- {
		if math.Abs(r.At(j, j)) <= tol {
			return nil, errors.NewSingularMatrixError("ols.Fit", p, p)
		}
		v := qty.AtVec(j)
		for k := j + 1; k < p; k++ {
			v -= r.At(j, k) * beta.AtVec(k)
		}
		beta.SetVec(j, v/r.At(j, j))
	}
	return beta, nil
}
