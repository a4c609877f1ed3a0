// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"testing"

	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/stretchr/testify/require"
)

func TestHeat1DImplicitSolveSatisfiesLinearSystem(t *testing.T) {
	p := &Heat1D{N: 16, L: 2 * 3.141592653589793, Nu: 0.5}
	dt := 0.01

	rhs := encap.NewVector1D(p.N)
	p.Initial(0, rhs)

	uOut := encap.NewVector1D(p.N)
	fOut := encap.NewVector1D(p.N)
	require.NoError(t, p.ImplicitSolve(fOut, uOut, 0, dt, rhs))

	// (I - dt*Nu*d2/dx2) uOut should reproduce rhs.
	lhs := encap.NewVector1D(p.N)
	p.EvaluateRHSImpl(0, uOut, lhs)
	for i := range lhs.V {
		reconstructed := uOut.V[i] - dt*lhs.V[i]
		require.InDelta(t, rhs.V[i], reconstructed, 1e-9)
	}
}

func TestHeat1DExactDecaysOverTime(t *testing.T) {
	p := &Heat1D{N: 16, L: 2 * 3.141592653589793, Nu: 0.5}
	early := encap.NewVector1D(p.N)
	late := encap.NewVector1D(p.N)
	p.Exact(0.01, early)
	p.Exact(1.0, late)
	require.Less(t, late.NormInf(), early.NormInf())
}
