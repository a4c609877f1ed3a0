// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeper

import (
	"github.com/cpmech/gosl/io"
	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/pferr"
	"github.com/dpedroso-labs/pfasst-go/quadrature"
	"github.com/dpedroso-labs/pfasst-go/status"
)

// IMEX is the concrete engine of §9's "(b) concrete generic IMEX
// engine parameterized over a ProblemOps capability set". It owns all
// per-node containers described in §3 and implements the delta-form
// sweep formula of §4.2.
type IMEX struct {
	Problem ProblemOps

	q  *quadrature.Quadrature
	st *status.Status

	absTol, relTol float64

	states     []encap.Encapsulation // [0..M]
	prevStates []encap.Encapsulation // [0..M]
	fExpl      []encap.Encapsulation // [0..M]
	fImpl      []encap.Encapsulation // [0..M]
	tau        []encap.Encapsulation // [0..M], zero on non-coarse levels
	residuals  []encap.Encapsulation // [0..M]
	endState   encap.Encapsulation

	lastResidualNorm float64 // cached ∞-norm of residuals[M], for preCheck

	// scratch buffers reused across sweep/predict to avoid allocating
	// an Encapsulation per RHS evaluation.
	scratchExpl encap.Encapsulation
	scratchRHS  encap.Encapsulation
}

// NewIMEX builds an IMEX sweeper for the given problem. AttachQuadrature,
// AttachStatus and Setup must still be called before use.
func NewIMEX(problem ProblemOps) *IMEX {
	return &IMEX{Problem: problem}
}

func (o *IMEX) AttachQuadrature(q *quadrature.Quadrature) { o.q = q }
func (o *IMEX) AttachStatus(st *status.Status)            { o.st = st }

func (o *IMEX) SetTolerances(abs, rel float64) {
	o.absTol, o.relTol = abs, rel
}

func (o *IMEX) Factory() encap.Factory { return o.Problem.Factory() }

// Setup allocates the per-node containers of §3.
func (o *IMEX) Setup() error {
	if o.q == nil || o.st == nil {
		return pferr.New(pferr.SetupIncomplete, "IMEX.Setup: quadrature and status must be attached first")
	}
	m := o.q.NumNodes()
	n := m + 1
	f := o.Problem.Factory()

	alloc := func() []encap.Encapsulation {
		v := make([]encap.Encapsulation, n)
		for i := range v {
			v[i] = f.New()
		}
		return v
	}

	o.states = alloc()
	o.prevStates = alloc()
	o.fExpl = alloc()
	o.fImpl = alloc()
	o.tau = alloc()
	o.residuals = alloc()
	o.endState = f.New()
	o.scratchExpl = f.New()
	o.scratchRHS = f.New()
	return nil
}

func (o *IMEX) Spread(u0 encap.Encapsulation) {
	for _, s := range o.states {
		s.CopyFrom(u0)
	}
}

func (o *IMEX) InitialState() encap.Encapsulation { return o.states[0] }

func (o *IMEX) SetInitialState(u encap.Encapsulation) {
	o.states[0].CopyFrom(u)
}

func (o *IMEX) NumNodes() int { return o.q.NumNodes() }

func (o *IMEX) State(m int) encap.Encapsulation     { return o.states[m] }
func (o *IMEX) PrevState(m int) encap.Encapsulation { return o.prevStates[m] }
func (o *IMEX) FExpl(m int) encap.Encapsulation     { return o.fExpl[m] }
func (o *IMEX) FImpl(m int) encap.Encapsulation     { return o.fImpl[m] }
func (o *IMEX) Tau(m int) encap.Encapsulation       { return o.tau[m] }
func (o *IMEX) EndState() encap.Encapsulation       { return o.endState }

func (o *IMEX) SetTau(m int, tau encap.Encapsulation) {
	o.tau[m].CopyFrom(tau)
}

// augNode returns the augmented node time-fraction at index i: 0 for
// i==0, else the (i-1)-th quadrature node.
func (o *IMEX) augNode(i int) float64 {
	if i == 0 {
		return 0
	}
	return o.q.Nodes()[i-1]
}

// Predict implements §4.2's predictor: the same chain as Sweep but
// with prev_states treated as zero (a fresh factory-allocated zero
// container, not a stale buffer), so the first iterate is a forward
// IMEX-Euler chain from states[0]; any τ correction already stored on
// the level is added just as in Sweep.
func (o *IMEX) Predict() error {
	zero := o.Problem.Factory().New()
	zero.Zero()

	zeroExpl := make([]encap.Encapsulation, len(o.states))
	zeroImpl := make([]encap.Encapsulation, len(o.states))
	for i := range o.states {
		zeroExpl[i] = o.Problem.Factory().New()
		zeroImpl[i] = o.Problem.Factory().New()
		o.Problem.EvaluateRHSExpl(o.st.Time+o.st.Dt*o.augNode(i), zero, zeroExpl[i])
		o.Problem.EvaluateRHSImpl(o.st.Time+o.st.Dt*o.augNode(i), zero, zeroImpl[i])
	}
	for i := range o.states {
		o.prevStates[i].Zero()
	}
	return o.sweepCore(zeroExpl, zeroImpl)
}

// Sweep implements §4.2's IMEX delta-form SDC correction.
func (o *IMEX) Sweep() error {
	for i := range o.states {
		o.prevStates[i].CopyFrom(o.states[i])
	}
	oldExpl := o.fExpl
	oldImpl := o.fImpl
	// snapshot the old RHS samples (evaluations at prevStates) before
	// fExpl/fImpl are overwritten in place by sweepCore.
	snapExpl := make([]encap.Encapsulation, len(oldExpl))
	snapImpl := make([]encap.Encapsulation, len(oldImpl))
	f := o.Problem.Factory()
	for i := range oldExpl {
		snapExpl[i] = f.New()
		snapExpl[i].CopyFrom(oldExpl[i])
		snapImpl[i] = f.New()
		snapImpl[i].CopyFrom(oldImpl[i])
	}
	return o.sweepCore(snapExpl, snapImpl)
}

// sweepCore runs the strict m=1..M node loop of §4.2 against the
// supplied "old" (prev-states) RHS samples, and caches the freshly
// evaluated RHS samples into o.fExpl/o.fImpl as it goes.
func (o *IMEX) sweepCore(oldExpl, oldImpl []encap.Encapsulation) error {
	m := o.q.NumNodes()
	dt := o.st.Dt
	t0 := o.st.Time
	sMat := o.q.SMat()

	for mi := 1; mi <= m; mi++ {
		tPrev := t0 + dt*o.augNode(mi-1)
		tCur := t0 + dt*o.augNode(mi)
		dtm := dt * (o.augNode(mi) - o.augNode(mi-1))

		// rhs = states[m-1]
		rhs := o.scratchRHS
		rhs.CopyFrom(o.states[mi-1])

		// + Δt_m · (f_expl(t_{m-1}, states[m-1]) − f_expl(t_{m-1}, prev_states[m-1]))
		o.Problem.EvaluateRHSExpl(tPrev, o.states[mi-1], o.scratchExpl)
		rhs.ScaledAdd(dtm, o.scratchExpl)
		rhs.ScaledAdd(-dtm, oldExpl[mi-1])

		// cache the fresh explicit RHS at the (now final) states[mi-1]
		o.fExpl[mi-1].CopyFrom(o.scratchExpl)

		// − Δt_m · f_impl(t_m, prev_states[m]) (the +f_impl(t_m,states[m])
		// half of this term is realized implicitly by ImplicitSolve)
		rhs.ScaledAdd(-dtm, oldImpl[mi])

		// + dt · Σ_j s_mat[m][j] · (f_expl(prev_states[j]) + f_impl(prev_states[j]))
		row := sMat[mi-1]
		for j := 0; j <= m; j++ {
			if row[j] == 0 {
				continue
			}
			rhs.ScaledAdd(dt*row[j], oldExpl[j])
			rhs.ScaledAdd(dt*row[j], oldImpl[j])
		}

		// + tau[m] - tau[m-1]
		rhs.ScaledAdd(1, o.tau[mi])
		rhs.ScaledAdd(-1, o.tau[mi-1])

		err := o.Problem.ImplicitSolve(o.fImpl[mi], o.states[mi], tCur, dtm, rhs)
		if err != nil {
			return pferr.Wrap(pferr.ImplicitSolveFailure, err, "IMEX.sweepCore: implicit solve failed at node %d", mi)
		}
	}

	// The node loop only ever writes fExpl[0..M-1] and fImpl[1..M]:
	// node M's explicit sample and node 0's implicit sample are never
	// touched by ImplicitSolve above, since states[M] appears in the
	// loop only as an ImplicitSolve output and states[0] only as an
	// explicit-RHS input. Both feed IntegrateEndState, ComputeResiduals
	// and Transfer.FAS, so they must be resampled here rather than left
	// at their stale (or, on the first predict, zero) value.
	tEnd := t0 + dt*o.augNode(m)
	o.Problem.EvaluateRHSExpl(tEnd, o.states[m], o.fExpl[m])
	o.Problem.EvaluateRHSImpl(t0, o.states[0], o.fImpl[0])
	return nil
}

// IntegrateEndState implements §4.2.
func (o *IMEX) IntegrateEndState() {
	m := o.q.NumNodes()
	if o.q.RightIsNode() {
		o.endState.CopyFrom(o.states[m])
		return
	}
	o.endState.CopyFrom(o.states[0])
	b := o.q.BVec()
	dt := o.st.Dt
	for j := 0; j <= m; j++ {
		if b[j] == 0 {
			continue
		}
		o.endState.ScaledAdd(dt*b[j], o.fExpl[j])
		o.endState.ScaledAdd(dt*b[j], o.fImpl[j])
	}
}

// ComputeResiduals implements §4.2:
//
//	residuals[m] = states[0] + dt·Σ_j q_mat[m][j]·(f_expl[j]+f_impl[j]) + tau[m] − states[m]
func (o *IMEX) ComputeResiduals() {
	m := o.q.NumNodes()
	dt := o.st.Dt
	qMat := o.q.QMat()
	maxNorm := 0.0
	for mi := 1; mi <= m; mi++ {
		r := o.residuals[mi]
		r.CopyFrom(o.states[0])
		row := qMat[mi-1]
		for j := 0; j <= m; j++ {
			if row[j] == 0 {
				continue
			}
			r.ScaledAdd(dt*row[j], o.fExpl[j])
			r.ScaledAdd(dt*row[j], o.fImpl[j])
		}
		r.ScaledAdd(1, o.tau[mi])
		r.ScaledAdd(-1, o.states[mi])
		if n := r.NormInf(); n > maxNorm {
			maxNorm = n
		}
	}
	o.lastResidualNorm = o.residuals[m].NormInf()

	statesNorm := o.states[m].NormInf()
	relNorm := 0.0
	if statesNorm > 0 {
		relNorm = maxNorm / statesNorm
	}
	o.st.RecordResidual(maxNorm, relNorm)
}

// Converged implements §4.2's convergence test.
func (o *IMEX) Converged(preCheck bool) bool {
	if o.absTol <= 0 && o.relTol <= 0 {
		io.Pfyel("IMEX.Converged: no tolerances set; convergence check disabled\n")
		return false
	}
	absNorm := o.st.AbsResNorm
	relNorm := o.st.RelResNorm
	if preCheck {
		m := o.q.NumNodes()
		absNorm = o.lastResidualNorm
		sn := o.states[m].NormInf()
		relNorm = 0
		if sn > 0 {
			relNorm = absNorm / sn
		}
	}
	if o.absTol > 0 && absNorm < o.absTol {
		o.st.Converged = true
		return true
	}
	if o.relTol > 0 && relNorm < o.relTol {
		o.st.Converged = true
		return true
	}
	return false
}

// Advance implements §4.2: states[0] <- end_state, then node-0 RHS
// samples are resampled at the new step start.
func (o *IMEX) Advance() {
	o.states[0].CopyFrom(o.endState)
	o.Reevaluate(true)
}

// Reevaluate resamples f_expl/f_impl. If initialOnly, only node 0 is
// resampled (§4.2, used after an inter-process receive).
func (o *IMEX) Reevaluate(initialOnly bool) {
	n := 1
	if !initialOnly {
		n = len(o.states)
	}
	for i := 0; i < n; i++ {
		t := o.st.Time + o.st.Dt*o.augNode(i)
		o.Problem.EvaluateRHSExpl(t, o.states[i], o.fExpl[i])
		o.Problem.EvaluateRHSImpl(t, o.states[i], o.fImpl[i])
	}
}
