// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/dpedroso-labs/pfasst-go/encap"
	"gonum.org/v1/exp/linsolve"
	"gonum.org/v1/gonum/mat"
)

// Heat2D implements sweeper.ProblemOps for the periodic 2D heat
// equation u_t = Nu*(u_xx+u_yy) on an Nx square grid (§8's scenario
// S4, "2D heat equation, factor-of-2 spatial coarsening"). The
// diffusion term is treated fully implicitly and solved with
// gonum/exp/linsolve's BiCGStab over a matrix-free 5-point periodic
// Laplacian stencil, the same iterative-solve concern
// AdvectionDiffusion1D already drives through linsolve.
type Heat2D struct {
	N     int
	L, Nu float64

	tol     float64
	maxIter int
}

func (p *Heat2D) Factory() encap.Factory { return encap.Grid2DFactory{Nx: p.N, Ny: p.N} }

func (p *Heat2D) h() float64 { return p.L / float64(p.N) }

func (p *Heat2D) EvaluateRHSExpl(t float64, u, out encap.Encapsulation) {
	out.(*encap.Grid2D).Zero()
}

func (p *Heat2D) EvaluateRHSImpl(t float64, u, out encap.Encapsulation) {
	uu := u.(*encap.Grid2D)
	o := out.(*encap.Grid2D)
	h2 := p.h() * p.h()
	n := p.N
	for i := 0; i < n; i++ {
		ip, im := (i+1)%n, (i-1+n)%n
		for j := 0; j < n; j++ {
			jp, jm := (j+1)%n, (j-1+n)%n
			lap := (uu.Data.At(ip, j) + uu.Data.At(im, j) + uu.Data.At(i, jp) + uu.Data.At(i, jm) - 4*uu.Data.At(i, j)) / h2
			o.Data.Set(i, j, p.Nu*lap)
		}
	}
}

// implicitOperator2D implements linsolve.MulVecToer, computing
// dst = (I - dt*Nu*Laplacian)*x over the flattened (row-major) Nx×Ny
// periodic 5-point stencil, the 2D analogue of AdvectionDiffusion1D's
// implicitOperator.
type implicitOperator2D struct {
	n     int
	h, dt float64
	nu    float64
}

func (op implicitOperator2D) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	n := op.n
	h2 := op.h * op.h
	idx := func(i, j int) int { return i*n + j }
	for i := 0; i < n; i++ {
		ip, im := (i+1)%n, (i-1+n)%n
		for j := 0; j < n; j++ {
			jp, jm := (j+1)%n, (j-1+n)%n
			xij := x.AtVec(idx(i, j))
			lap := (x.AtVec(idx(ip, j)) + x.AtVec(idx(im, j)) + x.AtVec(idx(i, jp)) + x.AtVec(idx(i, jm)) - 4*xij) / h2
			dst.SetVec(idx(i, j), xij-op.dt*op.nu*lap)
		}
	}
}

// ImplicitSolve solves (I - dt*Nu*Laplacian) uOut = rhs with BiCGStab
// over the matrix-free implicitOperator2D.
func (p *Heat2D) ImplicitSolve(fOut, uOut encap.Encapsulation, t, dt float64, rhs encap.Encapsulation) error {
	r := rhs.(*encap.Grid2D)
	n := p.N

	tol := p.tol
	if tol <= 0 {
		tol = 1e-10
	}
	maxIter := p.maxIter
	if maxIter <= 0 {
		maxIter = 4 * n * n
	}

	b := mat.NewVecDense(n*n, r.Pack())
	a := implicitOperator2D{n: n, h: p.h(), dt: dt, nu: p.Nu}
	res, err := linsolve.LinearSolve(a, b, &linsolve.Settings{
		Tolerance:     tol,
		MaxIterations: maxIter,
	}, &linsolve.BiCGStab{})
	if err != nil {
		return err
	}

	u := uOut.(*encap.Grid2D)
	out := make([]float64, n*n)
	for i := range out {
		out[i] = res.X.AtVec(i)
	}
	u.Unpack(out)
	p.EvaluateRHSImpl(t, u, fOut)
	return nil
}

func (p *Heat2D) Exact(t float64, out encap.Encapsulation) {
	o := out.(*encap.Grid2D)
	if o.Nx != p.N || o.Ny != p.N {
		chk.Panic("Heat2D.Exact: grid resolution %dx%d does not match problem resolution %d", o.Nx, o.Ny, p.N)
	}
	// u0(x,y) = sin(2πx)+sin(2πy) (§8's S4 initial condition): both
	// terms are eigenfunctions of the Laplacian with eigenvalue -k0^2,
	// so the sum decays at a single common rate.
	k0 := 2 * math.Pi / p.L
	decay := math.Exp(-p.Nu * k0 * k0 * t)
	h := p.h()
	for i := 0; i < p.N; i++ {
		for j := 0; j < p.N; j++ {
			o.Data.Set(i, j, decay*(math.Sin(k0*float64(i)*h)+math.Sin(k0*float64(j)*h)))
		}
	}
}

func (p *Heat2D) Initial(t0 float64, out encap.Encapsulation) {
	p.Exact(t0, out)
}

// GetPrms reports Heat2D's physical parameters as a named fun.Prms list,
// the same GetPrms-style accessor msolid's constitutive models expose.
func (p *Heat2D) GetPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "N", V: float64(p.N)},
		&fun.Prm{N: "L", V: p.L},
		&fun.Prm{N: "Nu", V: p.Nu},
	}
}
