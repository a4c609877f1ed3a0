// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"testing"

	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/stretchr/testify/require"
)

func TestSDCRunMatchesExactSolution(t *testing.T) {
	sw, _ := newIMEXLevel(t, 4)
	sw.SetTolerances(1e-10, 0)

	var c SDC
	require.NoError(t, c.AddLevel(sw))
	c.SetDuration(0, 0.2, 0.02, 30)

	prob := &scalarDecay{lamExpl: -1.0, lamImpl: -2.0}
	u0 := encap.NewVector1D(1)
	prob.Initial(0, u0)

	require.NoError(t, c.Run(u0))

	exact := encap.NewVector1D(1)
	prob.Exact(0.2, exact)

	got := sw.EndState().(*encap.Vector1D).V[0]
	require.InDelta(t, exact.V[0], got, 1e-6)
}

func TestSDCRunErrorsWithoutLevel(t *testing.T) {
	var c SDC
	c.SetDuration(0, 0.1, 0.1, 10)
	err := c.Run(encap.NewVector1D(1))
	require.Error(t, err)
}
