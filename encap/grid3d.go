// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encap

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Grid3D is a structured Nx×Ny×Nz periodic grid stored as a flat
// row-major slice, the 3D counterpart of Grid2D. gonum/mat has no
// native 3-tensor type, so storage follows the same flat-slice +
// explicit dims pattern gofem uses for its own Vec/Mat helpers
// (la.MatAlloc builds a [][]float64; we flatten one further
// dimension to keep Pack/Unpack a single contiguous copy).
type Grid3D struct {
	Nx, Ny, Nz int
	V          []float64
}

// NewGrid3D allocates a zeroed Nx×Ny×Nz grid.
func NewGrid3D(nx, ny, nz int) *Grid3D {
	return &Grid3D{Nx: nx, Ny: ny, Nz: nz, V: make([]float64, nx*ny*nz)}
}

// Index returns the flat offset of grid point (i,j,k).
func (o *Grid3D) Index(i, j, k int) int {
	return (i*o.Ny+j)*o.Nz + k
}

func (o *Grid3D) At(i, j, k int) float64 {
	return o.V[o.Index(i, j, k)]
}

func (o *Grid3D) Set(i, j, k int, val float64) {
	o.V[o.Index(i, j, k)] = val
}

func (o *Grid3D) Zero() {
	la.VecFill(o.V, 0)
}

func (o *Grid3D) ScaledAdd(a float64, y Encapsulation) {
	other, ok := y.(*Grid3D)
	if !ok {
		chk.Panic("Grid3D.ScaledAdd: incompatible encapsulation type %T", y)
	}
	la.VecAdd(o.V, a, other.V)
}

func (o *Grid3D) CopyFrom(y Encapsulation) {
	other, ok := y.(*Grid3D)
	if !ok {
		chk.Panic("Grid3D.CopyFrom: incompatible encapsulation type %T", y)
	}
	la.VecCopy(o.V, 1, other.V)
}

func (o *Grid3D) NormInf() float64 {
	max := 0.0
	for _, v := range o.V {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}

func (o *Grid3D) Pack() []float64 {
	return o.V
}

func (o *Grid3D) Unpack(buf []float64) {
	if len(buf) != len(o.V) {
		chk.Panic("Grid3D.Unpack: dof count mismatch: have %d, got %d", len(o.V), len(buf))
	}
	la.VecCopy(o.V, 1, buf)
}

func (o *Grid3D) Dofs() int {
	return len(o.V)
}

// Grid3DFactory creates Grid3D containers of a fixed resolution.
type Grid3DFactory struct {
	Nx, Ny, Nz int
}

func (f Grid3DFactory) New() Encapsulation {
	return NewGrid3D(f.Nx, f.Ny, f.Nz)
}
