// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encap

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Grid2D is a structured Nx×Ny periodic grid, backed by gonum's
// mat.Dense the way ExaScience-pargo's heat-distribution example
// stores its field.
type Grid2D struct {
	Nx, Ny int
	Data   *mat.Dense
}

// NewGrid2D allocates a zeroed Nx×Ny grid.
func NewGrid2D(nx, ny int) *Grid2D {
	return &Grid2D{Nx: nx, Ny: ny, Data: mat.NewDense(nx, ny, nil)}
}

func (o *Grid2D) Zero() {
	o.Data.Zero()
}

func (o *Grid2D) ScaledAdd(a float64, y Encapsulation) {
	other, ok := y.(*Grid2D)
	if !ok {
		chk.Panic("Grid2D.ScaledAdd: incompatible encapsulation type %T", y)
	}
	var scaled mat.Dense
	scaled.Scale(a, other.Data)
	o.Data.Add(o.Data, &scaled)
}

func (o *Grid2D) CopyFrom(y Encapsulation) {
	other, ok := y.(*Grid2D)
	if !ok {
		chk.Panic("Grid2D.CopyFrom: incompatible encapsulation type %T", y)
	}
	o.Data.Copy(other.Data)
}

func (o *Grid2D) NormInf() float64 {
	max := 0.0
	for i := 0; i < o.Nx; i++ {
		for j := 0; j < o.Ny; j++ {
			v := math.Abs(o.Data.At(i, j))
			if v > max {
				max = v
			}
		}
	}
	return max
}

func (o *Grid2D) Pack() []float64 {
	buf := make([]float64, o.Nx*o.Ny)
	for i := 0; i < o.Nx; i++ {
		copy(buf[i*o.Ny:(i+1)*o.Ny], o.Data.RawRowView(i))
	}
	return buf
}

func (o *Grid2D) Unpack(buf []float64) {
	if len(buf) != o.Nx*o.Ny {
		chk.Panic("Grid2D.Unpack: dof count mismatch: have %d, got %d", o.Nx*o.Ny, len(buf))
	}
	for i := 0; i < o.Nx; i++ {
		copy(o.Data.RawRowView(i), buf[i*o.Ny:(i+1)*o.Ny])
	}
}

func (o *Grid2D) Dofs() int {
	return o.Nx * o.Ny
}

// Grid2DFactory creates Grid2D containers of a fixed resolution.
type Grid2DFactory struct {
	Nx, Ny int
}

func (f Grid2DFactory) New() Encapsulation {
	return NewGrid2D(f.Nx, f.Ny)
}
