// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"sync"
	"testing"

	"github.com/dpedroso-labs/pfasst-go/comm"
	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/sweeper"
	"github.com/stretchr/testify/require"
)

// TestPFASSTPipelineConvergesAcrossRanks builds a 3-rank PFASST
// pipeline over scalarDecay, each rank owning one step of size dt, and
// checks that every rank's finest-level end state converges near the
// exact solution at its step's end time (§8's concrete scenario S6).
func TestPFASSTPipelineConvergesAcrossRanks(t *testing.T) {
	const nranks = 3
	const dt = 0.05
	const t0 = 0.0
	const maxIter = 20

	hub := comm.NewHub(nranks)
	prob := &scalarDecay{lamExpl: -1.0, lamImpl: -2.0}

	controllers := make([]*PFASST, nranks)
	fineSweepers := make([]*sweeper.IMEX, nranks)

	for r := 0; r < nranks; r++ {
		coarseSw, coarseQ := newIMEXLevel(t, 2)
		fineSw, fineQ := newIMEXLevel(t, 4)
		fineSw.SetTolerances(1e-9, 0)
		tr := newScalarTransfer(coarseQ, fineQ)

		c := &PFASST{Comm: hub.Rank(r)}
		require.NoError(t, c.AddLevel(coarseSw, nil))
		require.NoError(t, c.AddLevel(fineSw, tr))
		c.SetDuration(t0, dt, maxIter)

		controllers[r] = c
		fineSweepers[r] = fineSw
	}

	u0 := encap.NewVector1D(1)
	prob.Initial(t0, u0)

	var wg sync.WaitGroup
	errs := make([]error, nranks)
	for r := 0; r < nranks; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			errs[r] = controllers[r].Run(u0)
		}(r)
	}
	wg.Wait()

	for r := 0; r < nranks; r++ {
		require.NoError(t, errs[r])
	}

	for r := 0; r < nranks; r++ {
		myT0 := t0 + float64(r)*dt
		exact := encap.NewVector1D(1)
		prob.Exact(myT0+dt, exact)

		got := fineSweepers[r].EndState().(*encap.Vector1D).V[0]
		require.InDelta(t, exact.V[0], got, 1e-4)
	}
}
