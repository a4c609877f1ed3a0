// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadrature

import (
	"math"

	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
)

// legendreAndDeriv evaluates the Legendre polynomial P_n and its
// derivative at x via the standard three-term recurrence
//
//	(k+1) P_{k+1}(x) = (2k+1) x P_k(x) - k P_{k-1}(x)
//
// together with the derivative identity
//
//	P'_n(x) = n/(x^2-1) · (x P_n(x) - P_{n-1}(x))
func legendreAndDeriv(n int, x float64) (pn, dpn float64) {
	if n == 0 {
		return 1, 0
	}
	p0, p1 := 1.0, x
	for k := 1; k < n; k++ {
		p2 := ((2*float64(k)+1)*x*p1 - float64(k)*p0) / float64(k+1)
		p0, p1 = p1, p2
	}
	pn = p1
	if math.Abs(x*x-1) < 1e-14 {
		// at the endpoints use the known closed form P'_n(±1) = n(n+1)/2 · (±1)^{n-1}
		sign := 1.0
		if x < 0 && n%2 == 0 {
			sign = -1.0
		}
		dpn = sign * float64(n) * float64(n+1) / 2
		return
	}
	dpn = float64(n) / (x*x - 1) * (x*pn - p0)
	return
}

// legendreSum evaluates f(x) = P_{n-1}(x) + P_n(x) and its derivative,
// the defining polynomial of the Gauss-Radau (left) abscissas (§8;
// A&S 25.4.31): its n roots are the n Radau-left nodes, one of which
// is exactly x = -1.
func legendreSum(n int, x float64) (f, df float64) {
	pn1, dpn1 := legendreAndDeriv(n-1, x)
	pn, dpn := legendreAndDeriv(n, x)
	return pn1 + pn, dpn1 + dpn
}

// deflatedNewtonRoots finds all n real roots of a function given by
// eval(n, x) -> (f, f') in [-1, 1], using gosl/num.NlSolver (the
// teacher's own nonlinear-solve package, grounded on
// ana/pressurised_cylinder.go's Calc_c and msolid/princstrainsup.go's
// stress-update, both of which drive it as a scalar/small-system
// Newton solve through an Init(neq, ffcn, Jfcn, dfdxFcn, useDn, numJ,
// prms)/Solve(x, silent) pair) against a single deflated residual,
// with Chebyshev initial guesses and deflation against already-found
// roots carried in the closure rather than in NlSolver itself (which
// has no notion of deflation).
func deflatedNewtonRoots(n int, eval func(n int, x float64) (f, df float64)) []float64 {
	roots := make([]float64, 0, n)
	for k := 1; k <= n; k++ {
		guess := -math.Cos(math.Pi * (float64(k) - 0.5) / float64(n))

		// the deflated residual g(x) = f(x) / prod(x-r_i) shares f's
		// zeros away from the already-found roots; its Newton
		// derivative reduces to (f' - f*corr)/prod, so the solved
		// system is plain Newton on g, not f.
		ffcn := func(fx, x []float64) error {
			f, _ := eval(n, x[0])
			prod := 1.0
			for _, r := range roots {
				prod *= x[0] - r
			}
			fx[0] = f / prod
			return nil
		}
		dfdxFcn := func(J [][]float64, x []float64) error {
			f, df := eval(n, x[0])
			corr, prod := 0.0, 1.0
			for _, r := range roots {
				corr += 1 / (x[0] - r)
				prod *= x[0] - r
			}
			J[0][0] = (df - f*corr) / prod
			return nil
		}

		var nls num.NlSolver
		nls.Init(1, ffcn, nil, dfdxFcn, true, false, nil)
		x := []float64{guess}
		nls.Solve(x, true)
		nls.Clean()

		roots = append(roots, x[0])
	}
	for i := 0; i < len(roots); i++ {
		for j := i + 1; j < len(roots); j++ {
			if roots[j] < roots[i] {
				roots[i], roots[j] = roots[j], roots[i]
			}
		}
	}
	return roots
}

// gaussLegendreNodes returns the m (interior, open) Gauss-Legendre
// nodes on [-1, 1] sorted ascending.
func gaussLegendreNodes(m int) []float64 {
	return deflatedNewtonRoots(m, func(n int, x float64) (float64, float64) {
		return legendreAndDeriv(n, x)
	})
}

// gaussRadauRightNodes returns the m Gauss-Radau nodes on [-1, 1],
// including the fixed right endpoint +1, sorted ascending. Computed
// by finding the m Radau-left nodes (which include -1, a root of
// legendreSum since P_{m-1}(-1) = -P_m(-1)) and reflecting x -> -x.
func gaussRadauRightNodes(m int) []float64 {
	left := deflatedNewtonRoots(m, legendreSum)
	right := make([]float64, m)
	for i, x := range left {
		right[m-1-i] = -x
	}
	return right
}

// gaussLobattoNodes returns the m Gauss-Lobatto nodes on [-1, 1],
// including both endpoints, via the Legendre-collocation fixed-point
// iteration (Trefethen-style lglnodes): start from the Chebyshev-
// Gauss-Lobatto points and iterate
//
//	x <- x - (x P_{n}(x) - P_{n-1}(x)) / ((n+1) P_n(x))
//
// where n = m-1, until convergence.
func gaussLobattoNodes(m int) []float64 {
	n := m - 1
	x := make([]float64, m)
	for i := 0; i < m; i++ {
		x[i] = -math.Cos(math.Pi * float64(i) / float64(n))
	}
	for iter := 0; iter < 100; iter++ {
		maxDelta := 0.0
		for i := 1; i < m-1; i++ {
			pn, _ := legendreAndDeriv(n, x[i])
			pnm1, _ := legendreAndDeriv(n-1, x[i])
			delta := (x[i]*pn - pnm1) / (float64(n+1) * pn)
			x[i] -= delta
			if math.Abs(delta) > maxDelta {
				maxDelta = delta
			}
		}
		if maxDelta < 1e-15 {
			break
		}
	}
	x[0], x[m-1] = -1, 1
	return x
}

// clenshawCurtisNodes returns the m Chebyshev extreme points on
// [-1, 1], including both endpoints, sorted ascending.
func clenshawCurtisNodes(m int) []float64 {
	x := make([]float64, m)
	for k := 0; k < m; k++ {
		x[k] = -math.Cos(math.Pi * float64(k) / float64(m-1))
	}
	return x
}

// uniformNodes returns m equally spaced points on [-1, 1], including
// both endpoints, built from gosl/utl.LinSpace as gofem builds its own
// equally spaced auxiliary grids.
func uniformNodes(m int) []float64 {
	return utl.LinSpace(-1, 1, m)
}

// toUnitInterval rescales nodes on [-1, 1] to [0, 1].
func toUnitInterval(nodes []float64) []float64 {
	out := make([]float64, len(nodes))
	for i, x := range nodes {
		out[i] = (x + 1) / 2
	}
	return out
}
