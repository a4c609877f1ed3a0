// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso-labs/pfasst-go/encap"
)

// Spectral2D implements SpaceTransfer over encap.Grid2D, the 2D
// analogue of Spectral1D, following the "plus" zero-insertion pattern
// of original_source's 3D contrib transfer (§4.3) restricted to a
// square grid and a coarsening factor of exactly 2 per axis.
type Spectral2D struct{}

func (Spectral2D) InterpolateData(coarse, fine encap.Encapsulation) {
	c, ok := coarse.(*encap.Grid2D)
	if !ok {
		chk.Panic("Spectral2D.InterpolateData: coarse is %T, want *encap.Grid2D", coarse)
	}
	f, ok := fine.(*encap.Grid2D)
	if !ok {
		chk.Panic("Spectral2D.InterpolateData: fine is %T, want *encap.Grid2D", fine)
	}
	requireSquare2D(c, "coarse")
	requireSquare2D(f, "fine")

	if f.Nx == c.Nx {
		f.CopyFrom(c)
		return
	}
	if f.Nx != 2*c.Nx {
		chk.Panic("Spectral2D.InterpolateData: unsupported coarsening factor: fine=%d coarse=%d (only factor 2 is supported)", f.Nx, c.Nx)
	}

	nc, nf := c.Nx, f.Nx
	coarseBuf := make([]complex128, nc*nc)
	for i := 0; i < nc; i++ {
		for j := 0; j < nc; j++ {
			coarseBuf[i*nc+j] = complex(c.Data.At(i, j), 0)
		}
	}
	fftNDForward([]int{nc, nc}, coarseBuf)

	fineBuf := make([]complex128, nf*nf)
	scale := complex(1.0/float64(nc*nc), 0)
	for i := 0; i < nc; i++ {
		fi := freqIndex(i, nc, nf)
		for j := 0; j < nc; j++ {
			fj := freqIndex(j, nc, nf)
			fineBuf[fi*nf+fj] = scale * coarseBuf[i*nc+j]
		}
	}
	fftNDBackward([]int{nf, nf}, fineBuf)

	for i := 0; i < nf; i++ {
		for j := 0; j < nf; j++ {
			f.Data.Set(i, j, real(fineBuf[i*nf+j]))
		}
	}
}

func (Spectral2D) RestrictData(fine, coarse encap.Encapsulation) {
	f, ok := fine.(*encap.Grid2D)
	if !ok {
		chk.Panic("Spectral2D.RestrictData: fine is %T, want *encap.Grid2D", fine)
	}
	c, ok := coarse.(*encap.Grid2D)
	if !ok {
		chk.Panic("Spectral2D.RestrictData: coarse is %T, want *encap.Grid2D", coarse)
	}
	requireSquare2D(c, "coarse")
	requireSquare2D(f, "fine")

	if f.Nx == c.Nx {
		c.CopyFrom(f)
		return
	}
	if f.Nx != 2*c.Nx {
		chk.Panic("Spectral2D.RestrictData: fine resolution %d is not twice coarse resolution %d", f.Nx, c.Nx)
	}
	factor := f.Nx / c.Nx
	for i := 0; i < c.Nx; i++ {
		for j := 0; j < c.Nx; j++ {
			c.Data.Set(i, j, f.Data.At(factor*i, factor*j))
		}
	}
}

func requireSquare2D(g *encap.Grid2D, which string) {
	if g.Nx != g.Ny {
		chk.Panic("Spectral2D: %s grid is not square: %d x %d", which, g.Nx, g.Ny)
	}
}
