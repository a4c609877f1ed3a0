// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encap

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Vector1D is a dense 1D state container, e.g. nodal values of a
// scalar ODE system or a 1D spectral-space field. It is the analogue
// of gofem's Domain.Sol.Y: a flat []float64 of degrees of freedom with
// la-backed arithmetic.
type Vector1D struct {
	V []float64 // degrees of freedom
}

// NewVector1D allocates a zeroed Vector1D with n degrees of freedom.
func NewVector1D(n int) *Vector1D {
	return &Vector1D{V: make([]float64, n)}
}

func (o *Vector1D) Zero() {
	la.VecFill(o.V, 0)
}

// ScaledAdd performs o.V ← o.V + a·y.V
func (o *Vector1D) ScaledAdd(a float64, y Encapsulation) {
	other, ok := y.(*Vector1D)
	if !ok {
		chk.Panic("Vector1D.ScaledAdd: incompatible encapsulation type %T", y)
	}
	la.VecAdd(o.V, a, other.V)
}

func (o *Vector1D) CopyFrom(y Encapsulation) {
	other, ok := y.(*Vector1D)
	if !ok {
		chk.Panic("Vector1D.CopyFrom: incompatible encapsulation type %T", y)
	}
	la.VecCopy(o.V, 1, other.V)
}

// NormInf returns max_i |V[i]|, matching §3's "residual norms use the
// ∞-norm" contract.
func (o *Vector1D) NormInf() float64 {
	return la.VecLargest(o.V, 1)
}

func (o *Vector1D) Pack() []float64 {
	return o.V
}

func (o *Vector1D) Unpack(buf []float64) {
	if len(buf) != len(o.V) {
		chk.Panic("Vector1D.Unpack: dof count mismatch: have %d, got %d", len(o.V), len(buf))
	}
	la.VecCopy(o.V, 1, buf)
}

func (o *Vector1D) Dofs() int {
	return len(o.V)
}

// Vector1DFactory creates Vector1D containers of a fixed size.
type Vector1DFactory struct {
	N int
}

func (f Vector1DFactory) New() Encapsulation {
	return NewVector1D(f.N)
}
