// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeper

import (
	"math"
	"testing"

	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/quadrature"
	"github.com/dpedroso-labs/pfasst-go/status"
	"github.com/stretchr/testify/require"
)

// scalarDecay implements ProblemOps for u' = lamExpl*u + lamImpl*u,
// u(0) = 1, split arbitrarily between the explicit and implicit parts.
// Exact(t) = exp((lamExpl+lamImpl)*t).
type scalarDecay struct {
	lamExpl, lamImpl float64
}

func (p *scalarDecay) Factory() encap.Factory { return encap.Vector1DFactory{N: 1} }

func (p *scalarDecay) EvaluateRHSExpl(t float64, u, out encap.Encapsulation) {
	uu := u.(*encap.Vector1D)
	o := out.(*encap.Vector1D)
	o.V[0] = p.lamExpl * uu.V[0]
}

func (p *scalarDecay) EvaluateRHSImpl(t float64, u, out encap.Encapsulation) {
	uu := u.(*encap.Vector1D)
	o := out.(*encap.Vector1D)
	o.V[0] = p.lamImpl * uu.V[0]
}

// ImplicitSolve solves uOut - dt*lamImpl*uOut = rhs for a scalar
// linear implicit term, i.e. uOut = rhs / (1 - dt*lamImpl).
func (p *scalarDecay) ImplicitSolve(fOut, uOut encap.Encapsulation, t, dt float64, rhs encap.Encapsulation) error {
	r := rhs.(*encap.Vector1D)
	u := uOut.(*encap.Vector1D)
	f := fOut.(*encap.Vector1D)
	u.V[0] = r.V[0] / (1 - dt*p.lamImpl)
	f.V[0] = p.lamImpl * u.V[0]
	return nil
}

func (p *scalarDecay) Exact(t float64, out encap.Encapsulation) {
	o := out.(*encap.Vector1D)
	o.V[0] = math.Exp((p.lamExpl + p.lamImpl) * t)
}

func (p *scalarDecay) Initial(t0 float64, out encap.Encapsulation) {
	o := out.(*encap.Vector1D)
	o.V[0] = math.Exp((p.lamExpl + p.lamImpl) * t0)
}

func newTestIMEX(t *testing.T, m int, dt float64) (*IMEX, *scalarDecay) {
	t.Helper()
	prob := &scalarDecay{lamExpl: -1.0, lamImpl: -2.0}
	q, err := quadrature.New(quadrature.GaussLobatto, m)
	require.NoError(t, err)
	st := status.New(0, dt, 50)

	sw := NewIMEX(prob)
	sw.AttachQuadrature(q)
	sw.AttachStatus(st)
	require.NoError(t, sw.Setup())
	return sw, prob
}

func TestIMEXSweepReducesResidual(t *testing.T) {
	sw, prob := newTestIMEX(t, 3, 0.1)

	u0 := encap.NewVector1D(1)
	prob.Initial(0, u0)
	sw.Spread(u0)

	require.NoError(t, sw.Predict())
	sw.ComputeResiduals()
	firstResidual := sw.lastResidualNorm

	for i := 0; i < 5; i++ {
		require.NoError(t, sw.Sweep())
		sw.ComputeResiduals()
	}
	lastResidual := sw.lastResidualNorm

	require.Less(t, lastResidual, firstResidual)
	require.Less(t, lastResidual, 1e-8)
}

func TestIMEXEndStateMatchesLastNodeWhenRightIsNode(t *testing.T) {
	sw, prob := newTestIMEX(t, 3, 0.05)
	require.True(t, sw.q.RightIsNode())

	u0 := encap.NewVector1D(1)
	prob.Initial(0, u0)
	sw.Spread(u0)
	require.NoError(t, sw.Predict())
	for i := 0; i < 6; i++ {
		require.NoError(t, sw.Sweep())
	}
	sw.IntegrateEndState()

	m := sw.NumNodes()
	require.Equal(t, sw.State(m).(*encap.Vector1D).V[0], sw.EndState().(*encap.Vector1D).V[0])
}

func TestIMEXConvergesNearExactSolution(t *testing.T) {
	sw, prob := newTestIMEX(t, 4, 0.02)
	sw.SetTolerances(1e-10, 0)

	u0 := encap.NewVector1D(1)
	prob.Initial(0, u0)
	sw.Spread(u0)
	require.NoError(t, sw.Predict())

	converged := false
	for i := 0; i < 20 && !converged; i++ {
		require.NoError(t, sw.Sweep())
		sw.ComputeResiduals()
		converged = sw.Converged(false)
	}
	require.True(t, converged)

	sw.IntegrateEndState()
	exact := encap.NewVector1D(1)
	prob.Exact(0.02, exact)

	got := sw.EndState().(*encap.Vector1D).V[0]
	require.InDelta(t, exact.V[0], got, 1e-6)
}

func TestIMEXAdvanceCarriesEndStateForward(t *testing.T) {
	sw, prob := newTestIMEX(t, 3, 0.1)
	u0 := encap.NewVector1D(1)
	prob.Initial(0, u0)
	sw.Spread(u0)
	require.NoError(t, sw.Predict())
	for i := 0; i < 4; i++ {
		require.NoError(t, sw.Sweep())
	}
	sw.IntegrateEndState()
	endVal := sw.EndState().(*encap.Vector1D).V[0]

	sw.Advance()
	require.Equal(t, endVal, sw.State(0).(*encap.Vector1D).V[0])
}

func TestIMEXSetupReturnsErrorWithoutQuadrature(t *testing.T) {
	prob := &scalarDecay{lamExpl: -1, lamImpl: -1}
	sw := NewIMEX(prob)
	err := sw.Setup()
	require.Error(t, err)
}
