// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"math"
	"testing"

	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/stretchr/testify/require"
)

func TestSpectral3DRoundTripIdentityOnCoarseData(t *testing.T) {
	nc, nf := 4, 8
	coarse := encap.NewGrid3D(nc, nc, nc)
	for i := 0; i < nc; i++ {
		for j := 0; j < nc; j++ {
			for k := 0; k < nc; k++ {
				coarse.Set(i, j, k, math.Sin(2*math.Pi*float64(i+j+k)/float64(nc)))
			}
		}
	}

	var sp Spectral3D
	fine := encap.NewGrid3D(nf, nf, nf)
	sp.InterpolateData(coarse, fine)

	back := encap.NewGrid3D(nc, nc, nc)
	sp.RestrictData(fine, back)

	for i := 0; i < nc; i++ {
		for j := 0; j < nc; j++ {
			for k := 0; k < nc; k++ {
				require.InDelta(t, coarse.At(i, j, k), back.At(i, j, k), 1e-7)
			}
		}
	}
}

func TestSpectral3DRejectsUnsupportedFactor(t *testing.T) {
	coarse := encap.NewGrid3D(4, 4, 4)
	fine := encap.NewGrid3D(16, 16, 16) // factor 4, unsupported
	var sp Spectral3D
	require.Panics(t, func() { sp.InterpolateData(coarse, fine) })
}
