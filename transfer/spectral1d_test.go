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

func TestSpectral1DRoundTripIdentityOnCoarseData(t *testing.T) {
	nc, nf := 8, 16
	coarse := encap.NewVector1D(nc)
	for i := range coarse.V {
		coarse.V[i] = math.Sin(2 * math.Pi * float64(i) / float64(nc))
	}

	var sp Spectral1D
	fine := encap.NewVector1D(nf)
	sp.InterpolateData(coarse, fine)

	back := encap.NewVector1D(nc)
	sp.RestrictData(fine, back)

	for i := range coarse.V {
		require.InDelta(t, coarse.V[i], back.V[i], 1e-9)
	}
}

func TestSpectral1DInterpolateReproducesSamples(t *testing.T) {
	// a signal band-limited well within the coarse Nyquist frequency
	// should be exactly reproduced at the coarse sample points after
	// interpolation to a finer grid.
	nc, nf := 8, 32
	coarse := encap.NewVector1D(nc)
	for i := range coarse.V {
		coarse.V[i] = math.Cos(2*math.Pi*float64(i)/float64(nc)) + 0.3
	}

	var sp Spectral1D
	fine := encap.NewVector1D(nf)
	sp.InterpolateData(coarse, fine)

	factor := nf / nc
	for i := 0; i < nc; i++ {
		require.InDelta(t, coarse.V[i], fine.V[factor*i], 1e-9)
	}
}

func TestSpectral1DIdentityShortcutWhenSameResolution(t *testing.T) {
	n := 6
	coarse := encap.NewVector1D(n)
	for i := range coarse.V {
		coarse.V[i] = float64(i) * 1.5
	}
	fine := encap.NewVector1D(n)

	var sp Spectral1D
	sp.InterpolateData(coarse, fine)
	require.Equal(t, coarse.V, fine.V)
}
