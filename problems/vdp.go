// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package problems holds concrete sweeper.ProblemOps fixtures used by
// the spec's worked scenarios (§8) and the control package's tests.
package problems

import (
	"github.com/cpmech/gosl/fun"
	"github.com/dpedroso-labs/pfasst-go/encap"
)

// VanDerPol implements sweeper.ProblemOps for the Van der Pol
// oscillator x'' - mu(1-x^2)x' + x = 0, written as the first-order
// system y = (x, x'):
//
//	x'  = v
//	v'  = mu(1-x^2)v - x
//
// The nonlinear damping term is treated explicitly and the linear
// restoring term implicitly, an IMEX split grounded on §8's scenario
// S1 ("stiff linear term, nonstiff nonlinear term").
type VanDerPol struct {
	Mu float64
}

func (p *VanDerPol) Factory() encap.Factory { return encap.Vector1DFactory{N: 2} }

func (p *VanDerPol) EvaluateRHSExpl(t float64, u, out encap.Encapsulation) {
	uu := u.(*encap.Vector1D)
	o := out.(*encap.Vector1D)
	x, v := uu.V[0], uu.V[1]
	o.V[0] = v
	o.V[1] = p.Mu * (1 - x*x) * v
}

func (p *VanDerPol) EvaluateRHSImpl(t float64, u, out encap.Encapsulation) {
	uu := u.(*encap.Vector1D)
	o := out.(*encap.Vector1D)
	o.V[0] = 0
	o.V[1] = -uu.V[0]
}

// ImplicitSolve solves the linear block
//
//	x - dt*0   = rhs_x
//	v - dt*(-x) = rhs_v
//
// i.e. x = rhs_x, v = rhs_v - dt*x, since only the restoring term -x
// is implicit and it depends only on x (itself explicit in this
// block), so no iteration is needed.
func (p *VanDerPol) ImplicitSolve(fOut, uOut encap.Encapsulation, t, dt float64, rhs encap.Encapsulation) error {
	r := rhs.(*encap.Vector1D)
	u := uOut.(*encap.Vector1D)
	f := fOut.(*encap.Vector1D)

	x := r.V[0]
	v := r.V[1] - dt*x
	u.V[0] = x
	u.V[1] = v
	f.V[0] = 0
	f.V[1] = -x
	return nil
}

// Exact has no closed form for mu != 0; the package's tests do not
// compare against Exact for mu != 0 (§8's S1 acceptance criterion is
// the quadrature's own asymptotic order, not a reference solution).
func (p *VanDerPol) Exact(t float64, out encap.Encapsulation) {
	p.Initial(t, out)
}

func (p *VanDerPol) Initial(t0 float64, out encap.Encapsulation) {
	o := out.(*encap.Vector1D)
	o.V[0] = 2
	o.V[1] = 0
}

// GetPrms reports VanDerPol's physical parameters as a named fun.Prms
// list, the same GetPrms-style accessor msolid's constitutive models
// expose.
func (p *VanDerPol) GetPrms() fun.Prms {
	return fun.Prms{&fun.Prm{N: "Mu", V: p.Mu}}
}
