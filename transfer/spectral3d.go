// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso-labs/pfasst-go/encap"
)

// Spectral3D implements SpaceTransfer over encap.Grid3D, a direct
// translation of original_source's SpectralTransfer<..., dim=3>
// interpolate_data/restrict_data (§4.3), requiring a cubic grid and a
// coarsening factor of exactly 2 per axis.
type Spectral3D struct{}

func (Spectral3D) InterpolateData(coarse, fine encap.Encapsulation) {
	c, ok := coarse.(*encap.Grid3D)
	if !ok {
		chk.Panic("Spectral3D.InterpolateData: coarse is %T, want *encap.Grid3D", coarse)
	}
	f, ok := fine.(*encap.Grid3D)
	if !ok {
		chk.Panic("Spectral3D.InterpolateData: fine is %T, want *encap.Grid3D", fine)
	}
	requireCube3D(c, "coarse")
	requireCube3D(f, "fine")

	if f.Nx == c.Nx {
		f.CopyFrom(c)
		return
	}
	if f.Nx != 2*c.Nx {
		chk.Panic("Spectral3D.InterpolateData: unsupported coarsening factor: fine=%d coarse=%d (only factor 2 is supported)", f.Nx, c.Nx)
	}

	nc, nf := c.Nx, f.Nx
	coarseBuf := make([]complex128, nc*nc*nc)
	for i := 0; i < nc; i++ {
		for j := 0; j < nc; j++ {
			for k := 0; k < nc; k++ {
				coarseBuf[c.Index(i, j, k)] = complex(c.At(i, j, k), 0)
			}
		}
	}
	fftNDForward([]int{nc, nc, nc}, coarseBuf)

	fineBuf := make([]complex128, nf*nf*nf)
	scale := complex(1.0/float64(nc*nc*nc), 0)
	for i := 0; i < nc; i++ {
		fi := freqIndex(i, nc, nf)
		for j := 0; j < nc; j++ {
			fj := freqIndex(j, nc, nf)
			for k := 0; k < nc; k++ {
				fk := freqIndex(k, nc, nf)
				fineBuf[f.Index(fi, fj, fk)] = scale * coarseBuf[c.Index(i, j, k)]
			}
		}
	}
	fftNDBackward([]int{nf, nf, nf}, fineBuf)

	for i := 0; i < nf; i++ {
		for j := 0; j < nf; j++ {
			for k := 0; k < nf; k++ {
				f.Set(i, j, k, real(fineBuf[f.Index(i, j, k)]))
			}
		}
	}
}

func (Spectral3D) RestrictData(fine, coarse encap.Encapsulation) {
	f, ok := fine.(*encap.Grid3D)
	if !ok {
		chk.Panic("Spectral3D.RestrictData: fine is %T, want *encap.Grid3D", fine)
	}
	c, ok := coarse.(*encap.Grid3D)
	if !ok {
		chk.Panic("Spectral3D.RestrictData: coarse is %T, want *encap.Grid3D", coarse)
	}
	requireCube3D(c, "coarse")
	requireCube3D(f, "fine")

	if f.Nx == c.Nx {
		c.CopyFrom(f)
		return
	}
	if f.Nx != 2*c.Nx {
		chk.Panic("Spectral3D.RestrictData: fine resolution %d is not twice coarse resolution %d", f.Nx, c.Nx)
	}
	factor := f.Nx / c.Nx
	for i := 0; i < c.Nx; i++ {
		for j := 0; j < c.Nx; j++ {
			for k := 0; k < c.Nx; k++ {
				c.Set(i, j, k, f.At(factor*i, factor*j, factor*k))
			}
		}
	}
}

func requireCube3D(g *encap.Grid3D, which string) {
	if g.Nx != g.Ny || g.Ny != g.Nz {
		chk.Panic("Spectral3D: %s grid is not a cube: %d x %d x %d", which, g.Nx, g.Ny, g.Nz)
	}
}
