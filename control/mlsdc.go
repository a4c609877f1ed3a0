// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/pferr"
	"github.com/dpedroso-labs/pfasst-go/status"
	"github.com/dpedroso-labs/pfasst-go/sweeper"
	"github.com/dpedroso-labs/pfasst-go/transfer"
)

// MLSDC drives a hierarchy of Sweepers, coarsest first, through one
// V-cycle per iteration (§4.4): restrict and FAS-correct on the way
// down, sweep each level, interpolate and sweep again on the way up.
// This generalizes SDC's single-level loop the way gofem's Richardson
// extrapolation generalizes a single implicit solve into a two-order
// comparison, but recursively over an arbitrary number of levels.
type MLSDC struct {
	levels   []Level
	statuses []*status.Status

	t0, tEnd, dt float64
	maxIter      int
}

// AddLevel appends a level to the hierarchy, coarsest first. tr is nil
// for the first (coarsest) level and must be non-nil (the Transfer
// connecting it to the previously added, next-coarser level)
// otherwise.
func (c *MLSDC) AddLevel(sw sweeper.Sweeper, tr *transfer.Transfer) error {
	if len(c.levels) == 0 && tr != nil {
		return pferr.New(pferr.SetupIncomplete, "control.MLSDC: the coarsest level must be added with a nil Transfer")
	}
	if len(c.levels) > 0 && tr == nil {
		return pferr.New(pferr.SetupIncomplete, "control.MLSDC: level %d needs a Transfer to the next coarser level", len(c.levels))
	}
	c.levels = append(c.levels, Level{Sweeper: sw, ToCoarser: tr})
	return nil
}

// SetDuration configures the time domain walked by the finest level.
func (c *MLSDC) SetDuration(t0, tEnd, dt float64, maxIter int) {
	c.t0, c.tEnd, c.dt, c.maxIter = t0, tEnd, dt, maxIter
}

func (c *MLSDC) finest() sweeper.Sweeper { return c.levels[len(c.levels)-1].Sweeper }

// Run executes the V-cycle step loop of §4.4, starting from u0 at the
// finest level.
func (c *MLSDC) Run(u0 encap.Encapsulation) error {
	if len(c.levels) < 2 {
		return pferr.New(pferr.SetupIncomplete, "control.MLSDC: at least two levels are required")
	}

	c.statuses = make([]*status.Status, len(c.levels))
	for i, lv := range c.levels {
		st := status.New(c.t0, c.dt, c.maxIter)
		c.statuses[i] = st
		lv.Sweeper.AttachStatus(st)
		if err := lv.Sweeper.Setup(); err != nil {
			return err
		}
	}

	top := len(c.levels) - 1
	nsteps := int((c.tEnd-c.t0)/c.dt + 0.5)

	for n := 0; n < nsteps; n++ {
		t := c.t0 + float64(n)*c.dt
		for _, st := range c.statuses {
			st.Reset(t)
		}

		if n == 0 {
			c.finest().Spread(u0)
		} else {
			c.finest().Advance()
		}
		if err := c.finest().Predict(); err != nil {
			return err
		}
		c.finest().IntegrateEndState()
		c.finest().ComputeResiduals()

		fineSt := c.statuses[top]
		for !c.finest().Converged(false) && !fineSt.AtMaxIter() {
			for _, st := range c.statuses {
				st.Iter++
			}
			if err := c.vCycle(); err != nil {
				return err
			}
		}
	}
	return nil
}

// vCycle performs one restrict-FAS-sweep-down, interpolate-sweep-up
// pass across the full level hierarchy (§4.4, §4.3).
func (c *MLSDC) vCycle() error {
	top := len(c.levels) - 1

	for L := top; L > 0; L-- {
		fine := c.levels[L].Sweeper
		coarse := c.levels[L-1].Sweeper
		tr := c.levels[L].ToCoarser

		tr.RestrictInitial(fine, coarse)
		tr.Restrict(fine, coarse, false)
		coarse.Reevaluate(false)
		tr.FAS(c.dt, fine, coarse)
		if err := coarse.Sweep(); err != nil {
			return err
		}
		coarse.IntegrateEndState()
		coarse.ComputeResiduals()
	}

	for L := 1; L <= top; L++ {
		coarse := c.levels[L-1].Sweeper
		fine := c.levels[L].Sweeper
		tr := c.levels[L].ToCoarser

		tr.Interpolate(coarse, fine, false)
		if err := fine.Sweep(); err != nil {
			return err
		}
		fine.IntegrateEndState()
		fine.ComputeResiduals()
	}
	return nil
}

// Status returns the finest level's bookkeeping record.
func (c *MLSDC) Status() *status.Status { return c.statuses[len(c.statuses)-1] }
