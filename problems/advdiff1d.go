// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"math"

	"github.com/cpmech/gosl/fun"
	"github.com/dpedroso-labs/pfasst-go/encap"
	"gonum.org/v1/exp/linsolve"
	"gonum.org/v1/gonum/mat"
)

// AdvectionDiffusion1D implements sweeper.ProblemOps for the periodic
// 1D advection-diffusion equation u_t + C*u_x = Nu*u_xx, discretized
// by central differences on N equally spaced points over [0, L). Both
// terms are treated fully implicitly (EvaluateRHSExpl is zero),
// producing a non-symmetric periodic system that BiCGStab solves
// (§8's scenario S3), matching the matrix-free MatVec/LinearSolve
// shape of the pack's iterative-solver example.
type AdvectionDiffusion1D struct {
	N       int
	L, C, Nu float64

	tol     float64
	maxIter int
}

func (p *AdvectionDiffusion1D) Factory() encap.Factory { return encap.Vector1DFactory{N: p.N} }

func (p *AdvectionDiffusion1D) h() float64 { return p.L / float64(p.N) }

func (p *AdvectionDiffusion1D) EvaluateRHSExpl(t float64, u, out encap.Encapsulation) {
	out.(*encap.Vector1D).Zero()
}

func (p *AdvectionDiffusion1D) EvaluateRHSImpl(t float64, u, out encap.Encapsulation) {
	uu := u.(*encap.Vector1D).V
	o := out.(*encap.Vector1D).V
	h := p.h()
	n := p.N
	for i := 0; i < n; i++ {
		ip, im := (i+1)%n, (i-1+n)%n
		dudx := (uu[ip] - uu[im]) / (2 * h)
		d2udx2 := (uu[ip] - 2*uu[i] + uu[im]) / (h * h)
		o[i] = -p.C*dudx + p.Nu*d2udx2
	}
}

// implicitOperator implements linsolve.MulVecToer, computing
// dst = (I - dt*L)*x for the periodic central-difference
// advection-diffusion operator L. BiCGStab (the only method this
// problem drives linsolve with) never requests the transposed
// operator, so trans is not honored here.
type implicitOperator struct {
	n     int
	h, dt float64
	c, nu float64
}

func (op implicitOperator) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	n := op.n
	for i := 0; i < n; i++ {
		ip, im := (i+1)%n, (i-1+n)%n
		xi, xip, xim := x.AtVec(i), x.AtVec(ip), x.AtVec(im)
		dudx := (xip - xim) / (2 * op.h)
		d2udx2 := (xip - 2*xi + xim) / (op.h * op.h)
		lx := -op.c*dudx + op.nu*d2udx2
		dst.SetVec(i, xi-op.dt*lx)
	}
}

// ImplicitSolve solves (I - dt*L) uOut = rhs with BiCGStab, since L
// (advection + diffusion) is non-symmetric once the advection term is
// included.
func (p *AdvectionDiffusion1D) ImplicitSolve(fOut, uOut encap.Encapsulation, t, dt float64, rhs encap.Encapsulation) error {
	r := rhs.(*encap.Vector1D).V

	tol := p.tol
	if tol <= 0 {
		tol = 1e-10
	}
	maxIter := p.maxIter
	if maxIter <= 0 {
		maxIter = 4 * p.N
	}

	a := implicitOperator{n: p.N, h: p.h(), dt: dt, c: p.C, nu: p.Nu}
	b := mat.NewVecDense(p.N, append([]float64(nil), r...))
	res, err := linsolve.LinearSolve(a, b, &linsolve.Settings{
		Tolerance:     tol,
		MaxIterations: maxIter,
	}, &linsolve.BiCGStab{})
	if err != nil {
		return err
	}

	out := uOut.(*encap.Vector1D).V
	for i := range out {
		out[i] = res.X.AtVec(i)
	}
	p.EvaluateRHSImpl(t, uOut, fOut)
	return nil
}

// GetPrms reports AdvectionDiffusion1D's physical parameters as a named
// fun.Prms list, the same GetPrms-style accessor msolid's
// constitutive models expose.
func (p *AdvectionDiffusion1D) GetPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "N", V: float64(p.N)},
		&fun.Prm{N: "L", V: p.L},
		&fun.Prm{N: "C", V: p.C},
		&fun.Prm{N: "Nu", V: p.Nu},
	}
}

func (p *AdvectionDiffusion1D) Exact(t float64, out encap.Encapsulation) {
	p.gaussianPulse(t, out.(*encap.Vector1D).V)
}

func (p *AdvectionDiffusion1D) Initial(t0 float64, out encap.Encapsulation) {
	p.gaussianPulse(t0, out.(*encap.Vector1D).V)
}

// gaussianPulse is a narrow Gaussian advected at speed C and spread by
// diffusion Nu, used as a smooth analytical reference for a periodic
// domain where a closed-form advection-diffusion solution exists only
// approximately (the pulse is narrow relative to L so wrap-around
// error is negligible over the test horizons used).
func (p *AdvectionDiffusion1D) gaussianPulse(t float64, v []float64) {
	h := p.h()
	sigma2 := 0.01 + 2*p.Nu*t
	for i := range v {
		x := float64(i)*h - p.C*t
		for x < 0 {
			x += p.L
		}
		for x >= p.L {
			x -= p.L
		}
		d := x - p.L/2
		v[i] = math.Sqrt(0.01/sigma2) * math.Exp(-d*d/(2*sigma2))
	}
}
