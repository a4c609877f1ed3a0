// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/pferr"
	"github.com/dpedroso-labs/pfasst-go/status"
	"github.com/dpedroso-labs/pfasst-go/sweeper"
)

// SDC drives a single Sweeper through a sequence of steps (§4.4's
// single-level case), the time-serial baseline the MLSDC and PFASST
// controllers generalize. Mirrors the single-FEsolver loop of
// gofem/fem/s_implicit.go's step-and-converge-then-advance shape.
type SDC struct {
	level sweeper.Sweeper
	st    *status.Status

	t0, tEnd, dt float64
	maxIter      int
}

// AddLevel attaches the sweeper this controller drives. SDC accepts
// exactly one level; a second call replaces the first.
func (c *SDC) AddLevel(sw sweeper.Sweeper) error {
	c.level = sw
	return nil
}

// SetDuration configures the time domain [t0, tEnd) walked in steps of
// dt, each allowed up to maxIter sweeps.
func (c *SDC) SetDuration(t0, tEnd, dt float64, maxIter int) {
	c.t0, c.tEnd, c.dt, c.maxIter = t0, tEnd, dt, maxIter
}

// Run executes the §4.4 step loop starting from u0 and returns only an
// error; the result is the level's EndState after the last step.
func (c *SDC) Run(u0 encap.Encapsulation) error {
	if c.level == nil {
		return pferr.New(pferr.SetupIncomplete, "control.SDC: no level attached")
	}

	c.st = status.New(c.t0, c.dt, c.maxIter)
	c.level.AttachStatus(c.st)
	if err := c.level.Setup(); err != nil {
		return err
	}

	c.level.Spread(u0)

	nsteps := int((c.tEnd-c.t0)/c.dt + 0.5)
	for n := 0; n < nsteps; n++ {
		c.st.Reset(c.t0 + float64(n)*c.dt)

		if err := c.level.Predict(); err != nil {
			return err
		}
		c.level.IntegrateEndState()
		c.level.ComputeResiduals()

		for !c.level.Converged(false) && !c.st.AtMaxIter() {
			c.st.Iter++
			if err := c.level.Sweep(); err != nil {
				return err
			}
			c.level.IntegrateEndState()
			c.level.ComputeResiduals()
		}

		if !c.level.Converged(false) {
			c.st.Converged = false
		}

		c.level.Advance()
	}
	return nil
}

// Status returns the most recent step's bookkeeping record.
func (c *SDC) Status() *status.Status { return c.st }
