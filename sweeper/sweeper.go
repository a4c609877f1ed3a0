// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweeper implements the per-level, per-step iterative
// corrector of §4.2: the IMEX-SDC sweep, predictor, residuals and
// convergence check. This mirrors, at the level of one time step,
// what gofem's FEsolver implementations (RichardsonExtrap,
// SolverLinearImplicit) do for one stage: own the per-node state,
// advance it, and report convergence to the controller.
package sweeper

import (
	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/quadrature"
	"github.com/dpedroso-labs/pfasst-go/status"
)

// Sweeper is the abstract capability set a Controller drives (§4.2,
// §9's "(a) an abstract Sweeper capability set").
type Sweeper interface {
	// AttachQuadrature binds the node set this sweeper integrates
	// against. Must be called before Setup.
	AttachQuadrature(q *quadrature.Quadrature)

	// AttachStatus binds the per-step bookkeeping record.
	AttachStatus(st *status.Status)

	// Setup allocates per-node containers (§3's lifecycle). Returns
	// SetupIncomplete (§7) if no quadrature/status is attached.
	Setup() error

	// Spread initializes all nodes, including node 0, to u0.
	Spread(u0 encap.Encapsulation)

	// InitialState returns states[0], immutable during a sweep.
	InitialState() encap.Encapsulation

	// SetInitialState overwrites states[0] only (used at step start
	// or after an inter-process receive).
	SetInitialState(u encap.Encapsulation)

	// Predict produces an initial guess at all nodes from states[0].
	Predict() error

	// Sweep performs one SDC correction pass.
	Sweep() error

	// IntegrateEndState computes end_state from the current nodal
	// values (§4.2).
	IntegrateEndState()

	// ComputeResiduals computes residuals[m] for all nodes and caches
	// their ∞-norm on the attached Status.
	ComputeResiduals()

	// Converged applies the §4.2 convergence test. preCheck=true
	// restricts the test to the most recently computed residual (the
	// end-state residual), for cheap screening before a sweep.
	Converged(preCheck bool) bool

	// Advance shifts end_state into states[0] for the next step and
	// re-evaluates RHS samples at the new step start.
	Advance()

	// Reevaluate resamples f_expl/f_impl at node values. If
	// initialOnly, only node 0 is resampled (used after an
	// inter-process receive of a new initial value).
	Reevaluate(initialOnly bool)

	// NumNodes returns M (the quadrature node count).
	NumNodes() int

	// State returns states[m], m in [0, M].
	State(m int) encap.Encapsulation

	// PrevState returns prev_states[m], m in [0, M].
	PrevState(m int) encap.Encapsulation

	// FExpl/FImpl return the cached RHS samples at node m.
	FExpl(m int) encap.Encapsulation
	FImpl(m int) encap.Encapsulation

	// Tau returns the FAS correction at node m (non-zero only on
	// coarse levels in MLSDC/PFASST); SetTau lets Transfer write it.
	Tau(m int) encap.Encapsulation
	SetTau(m int, tau encap.Encapsulation)

	// EndState returns the value at the right endpoint of the step.
	EndState() encap.Encapsulation

	// Factory returns the Encapsulation factory backing this sweeper,
	// so Transfers and Communicators can allocate compatible buffers.
	Factory() encap.Factory

	// SetTolerances sets the absolute/relative convergence tolerances
	// used by Converged. Values <= 0 disable that check (§7).
	SetTolerances(abs, rel float64)
}
