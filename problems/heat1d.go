// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"math"

	"github.com/cpmech/gosl/fun"
	"github.com/dpedroso-labs/pfasst-go/encap"
	"gonum.org/v1/gonum/fourier"
)

// Heat1D implements sweeper.ProblemOps for the periodic 1D heat
// equation u_t = Nu*u_xx on [0, L), discretized on N equally spaced
// points and diagonalized in Fourier space exactly as
// transfer.Spectral1D diagonalizes the spatial transfer (§8's
// scenario S2, "heat equation, spectral in space"). The diffusion
// term is treated fully implicitly; EvaluateRHSExpl is identically
// zero.
type Heat1D struct {
	N     int
	L, Nu float64
}

func (p *Heat1D) Factory() encap.Factory { return encap.Vector1DFactory{N: p.N} }

func (p *Heat1D) EvaluateRHSExpl(t float64, u, out encap.Encapsulation) {
	out.(*encap.Vector1D).Zero()
}

func (p *Heat1D) EvaluateRHSImpl(t float64, u, out encap.Encapsulation) {
	uu := u.(*encap.Vector1D)
	o := out.(*encap.Vector1D)
	uHat := p.forward(uu.V)
	for i, k := range p.wavenumbers() {
		uHat[i] *= complex(-p.Nu*k*k, 0)
	}
	copy(o.V, p.backward(uHat))
}

// ImplicitSolve solves (I - dt*Nu*d^2/dx^2) uOut = rhs by dividing the
// unnormalized Fourier coefficients of rhs by (1 + dt*Nu*k^2) mode by
// mode, then transforming back.
func (p *Heat1D) ImplicitSolve(fOut, uOut encap.Encapsulation, t, dt float64, rhs encap.Encapsulation) error {
	r := rhs.(*encap.Vector1D)
	rhsHat := p.forward(r.V)
	uHat := make([]complex128, p.N)
	for i, k := range p.wavenumbers() {
		uHat[i] = rhsHat[i] / complex(1+dt*p.Nu*k*k, 0)
	}
	uPhys := p.backward(uHat)
	copy(uOut.(*encap.Vector1D).V, uPhys)
	p.EvaluateRHSImpl(t, uOut, fOut)
	return nil
}

// Exact returns exp(-Nu*k0^2*t)*sin(2πx/L), the §8 S2 manufactured
// solution for u0(x) = sin(2πx).
func (p *Heat1D) Exact(t float64, out encap.Encapsulation) {
	o := out.(*encap.Vector1D)
	k0 := 2 * math.Pi / p.L
	decay := math.Exp(-p.Nu * k0 * k0 * t)
	h := p.L / float64(p.N)
	for i := 0; i < p.N; i++ {
		o.V[i] = decay * math.Sin(k0*float64(i)*h)
	}
}

func (p *Heat1D) Initial(t0 float64, out encap.Encapsulation) {
	p.Exact(t0, out)
}

// GetPrms reports Heat1D's physical parameters as a named fun.Prms list,
// the same GetPrms-style accessor msolid's constitutive models
// expose.
func (p *Heat1D) GetPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "N", V: float64(p.N)},
		&fun.Prm{N: "L", V: p.L},
		&fun.Prm{N: "Nu", V: p.Nu},
	}
}

// wavenumbers returns the N angular wavenumbers matching gonum
// fourier's standard (0..N/2, -N/2+1..-1) frequency ordering.
func (p *Heat1D) wavenumbers() []float64 {
	k := make([]float64, p.N)
	base := 2 * math.Pi / p.L
	for i := 0; i < p.N; i++ {
		idx := i
		if i > p.N/2 {
			idx = i - p.N
		}
		k[i] = base * float64(idx)
	}
	return k
}

func (p *Heat1D) forward(x []float64) []complex128 {
	seq := make([]complex128, p.N)
	for i, v := range x {
		seq[i] = complex(v, 0)
	}
	return fourier.NewCmplxFFT(p.N).Coefficients(nil, seq)
}

func (p *Heat1D) backward(xHat []complex128) []float64 {
	seq := fourier.NewCmplxFFT(p.N).Sequence(nil, xHat)
	out := make([]float64, p.N)
	scale := 1.0 / float64(p.N)
	for i, v := range seq {
		out[i] = real(v) * scale
	}
	return out
}
