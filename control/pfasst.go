// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"github.com/dpedroso-labs/pfasst-go/comm"
	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/pferr"
	"github.com/dpedroso-labs/pfasst-go/status"
	"github.com/dpedroso-labs/pfasst-go/sweeper"
	"github.com/dpedroso-labs/pfasst-go/transfer"
)

// PFASST drives a level hierarchy across a rank chain: every rank owns
// exactly one time step and runs an MLSDC V-cycle per iteration, with
// the coarsest level's state pipelined left-to-right between
// iterations (§4.4, §4.6). This plays the role gofem's distributed
// solver allocation would play if fem.FEsolver were generalized across
// MPI ranks; no such solver exists in the teacher repo, so the pipeline
// itself is grounded on §4.4's textual description and the in-pack
// comm.Chan transport.
type PFASST struct {
	Comm comm.Communicator

	levels   []Level
	statuses []*status.Status

	t0, dt  float64
	maxIter int
}

// AddLevel appends a level to the hierarchy, coarsest first, exactly
// as MLSDC.AddLevel.
func (c *PFASST) AddLevel(sw sweeper.Sweeper, tr *transfer.Transfer) error {
	if len(c.levels) == 0 && tr != nil {
		return pferr.New(pferr.SetupIncomplete, "control.PFASST: the coarsest level must be added with a nil Transfer")
	}
	if len(c.levels) > 0 && tr == nil {
		return pferr.New(pferr.SetupIncomplete, "control.PFASST: level %d needs a Transfer to the next coarser level", len(c.levels))
	}
	c.levels = append(c.levels, Level{Sweeper: sw, ToCoarser: tr})
	return nil
}

// SetDuration sets the step size dt shared by every rank's single step
// and the per-rank iteration budget. t0 is the start of rank 0's step;
// rank r owns [t0+r·dt, t0+(r+1)·dt).
func (c *PFASST) SetDuration(t0, dt float64, maxIter int) {
	c.t0, c.dt, c.maxIter = t0, dt, maxIter
}

func (c *PFASST) finest() sweeper.Sweeper { return c.levels[len(c.levels)-1].Sweeper }
func (c *PFASST) coarsest() sweeper.Sweeper { return c.levels[0].Sweeper }

// Run executes the pipelined V-cycle iteration of §4.4/§4.6. u0 is the
// global initial condition at t0; every rank seeds its own guess from
// it and corrects it via the coarse-level pipeline exchange.
func (c *PFASST) Run(u0 encap.Encapsulation) error {
	if len(c.levels) < 2 {
		return pferr.New(pferr.SetupIncomplete, "control.PFASST: at least two levels are required")
	}
	if c.Comm == nil {
		return pferr.New(pferr.SetupIncomplete, "control.PFASST: no Communicator attached")
	}

	rank := c.Comm.Rank()
	size := c.Comm.Size()
	myT0 := c.t0 + float64(rank)*c.dt

	c.statuses = make([]*status.Status, len(c.levels))
	for i, lv := range c.levels {
		st := status.New(myT0, c.dt, c.maxIter)
		c.statuses[i] = st
		lv.Sweeper.AttachStatus(st)
		if err := lv.Sweeper.Setup(); err != nil {
			return err
		}
	}

	c.finest().Spread(u0)
	if err := c.finest().Predict(); err != nil {
		return err
	}
	c.finest().IntegrateEndState()
	c.finest().ComputeResiduals()

	var pending []comm.Request
	leftConverged := rank == 0
	converged := false

	// Every rank walks the full maxIter budget and keeps exchanging a
	// message each iteration even after it converges, echoing its last
	// state/status forward rather than dropping out of the pipeline:
	// a rank that stopped messaging could leave a not-yet-converged
	// downstream neighbor blocked on a tag nobody will ever send
	// (§4.6's "Cleanup must leave no outstanding request" rules out a
	// silent early exit). Once converged, the expensive sweep/restrict
	// work is skipped and only the final state/status is forwarded.
	for iter := 0; iter < c.maxIter; iter++ {
		if !converged {
			if err := c.restrictDownToCoarsest(); err != nil {
				return err
			}
		}

		// iter 0 has no predecessor message: every rank bootstraps its
		// first coarse sweep from its own local Predict guess, and the
		// pipeline only carries real corrections from iter 1 onward
		// (rank r's send at iteration i is tagged i+1, consumed by
		// rank r+1 at its own iteration i+1).
		if rank > 0 && iter > 0 {
			recvBuf := make([]float64, len(c.coarsest().State(0).Pack()))
			if err := c.Comm.Recv(recvBuf, rank-1, comm.DataTag(iter, 0)); err != nil {
				return pferr.Wrap(pferr.TransportFailure, err, "control.PFASST: coarse recv failed at iter %d", iter)
			}
			if !converged {
				c.coarsest().State(0).Unpack(recvBuf)
				c.coarsest().Reevaluate(true)
			}
		}

		if !converged {
			if err := c.coarsest().Sweep(); err != nil {
				return err
			}
			c.coarsest().IntegrateEndState()
			c.coarsest().ComputeResiduals()
		}

		if rank < size-1 {
			sendBuf := append([]float64(nil), c.coarsest().EndState().Pack()...)
			req, err := c.Comm.ISend(sendBuf, rank+1, comm.DataTag(iter+1, 0))
			if err != nil {
				return pferr.Wrap(pferr.TransportFailure, err, "control.PFASST: coarse isend failed at iter %d", iter)
			}
			pending = append(pending, req)
		}

		if !converged {
			if err := c.interpolateUpToFinest(); err != nil {
				return err
			}
		}

		if rank > 0 {
			w, err := c.Comm.RecvStatus(rank-1, comm.StatusTag(iter, 0))
			if err != nil {
				return pferr.Wrap(pferr.TransportFailure, err, "control.PFASST: status recv failed at iter %d", iter)
			}
			var left status.Status
			left.Unpack(w)
			leftConverged = left.Converged
		}

		localOK := converged || c.finest().Converged(false)
		converged = localOK && leftConverged
		c.statuses[len(c.statuses)-1].Converged = converged

		if rank < size-1 {
			wire := c.statuses[len(c.statuses)-1].Pack()
			req, err := c.Comm.ISendStatus(wire, rank+1, comm.StatusTag(iter, 0))
			if err != nil {
				return pferr.Wrap(pferr.TransportFailure, err, "control.PFASST: status isend failed at iter %d", iter)
			}
			pending = append(pending, req)
		}

		for _, st := range c.statuses {
			st.Iter++
		}
	}

	for _, req := range pending {
		if err := req.Wait(); err != nil {
			return pferr.Wrap(pferr.TransportFailure, err, "control.PFASST: pending request failed")
		}
	}
	return c.Comm.Cleanup()
}

// restrictDownToCoarsest restricts and FAS-corrects from the finest
// level down to, but not including, the coarsest level's own sweep
// (the caller performs the coarsest sweep after the pipeline
// exchange, per §4.4/§4.6).
func (c *PFASST) restrictDownToCoarsest() error {
	top := len(c.levels) - 1
	for L := top; L > 0; L-- {
		fine := c.levels[L].Sweeper
		coarse := c.levels[L-1].Sweeper
		tr := c.levels[L].ToCoarser
		tr.RestrictInitial(fine, coarse)
		tr.Restrict(fine, coarse, false)
		coarse.Reevaluate(false)
		tr.FAS(c.dt, fine, coarse)
		if L > 1 {
			if err := coarse.Sweep(); err != nil {
				return err
			}
			coarse.IntegrateEndState()
			coarse.ComputeResiduals()
		}
	}
	return nil
}

func (c *PFASST) interpolateUpToFinest() error {
	top := len(c.levels) - 1
	for L := 1; L <= top; L++ {
		coarse := c.levels[L-1].Sweeper
		fine := c.levels[L].Sweeper
		tr := c.levels[L].ToCoarser
		// past rank 0, node 0 holds the initial value received through
		// the coarse pipeline; it is carried up before the nodal correction
		if c.Comm.Rank() > 0 {
			tr.InterpolateInitial(coarse, fine)
			fine.Reevaluate(true)
		}
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
func (c *PFASST) Status() *status.Status { return c.statuses[len(c.statuses)-1] }
