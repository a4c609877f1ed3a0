// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"testing"

	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/stretchr/testify/require"
)

func TestVanDerPolImplicitSolveSatisfiesLinearBlock(t *testing.T) {
	p := &VanDerPol{Mu: 2}
	dt := 0.01

	rhs := encap.NewVector1D(2)
	p.Initial(0, rhs)

	uOut := encap.NewVector1D(2)
	fOut := encap.NewVector1D(2)
	require.NoError(t, p.ImplicitSolve(fOut, uOut, 0, dt, rhs))

	recon := encap.NewVector1D(2)
	p.EvaluateRHSImpl(0, uOut, recon)
	require.InDelta(t, rhs.V[0], uOut.V[0]-dt*recon.V[0], 1e-12)
	require.InDelta(t, rhs.V[1], uOut.V[1]-dt*recon.V[1], 1e-12)
}

func TestVanDerPolExplicitRHSAtRest(t *testing.T) {
	p := &VanDerPol{Mu: 1}
	u0 := encap.NewVector1D(2)
	p.Initial(0, u0)

	out := encap.NewVector1D(2)
	p.EvaluateRHSExpl(0, u0, out)
	// x'=v at the initial condition (v=0), so the explicit part's
	// first component is zero.
	require.Equal(t, 0.0, out.V[0])
}
