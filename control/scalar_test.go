// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"math"
	"testing"

	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/quadrature"
	"github.com/dpedroso-labs/pfasst-go/sweeper"
	"github.com/dpedroso-labs/pfasst-go/transfer"
	"github.com/stretchr/testify/require"
)

// scalarDecay implements sweeper.ProblemOps for u' = lam*u, u(0) = 1,
// the same linear-oscillator-style fixture used across the spec's
// scalar test scenarios (§8 S1), split arbitrarily between the
// explicit and implicit parts.
type scalarDecay struct {
	lamExpl, lamImpl float64
}

func (p *scalarDecay) Factory() encap.Factory { return encap.Vector1DFactory{N: 1} }

func (p *scalarDecay) EvaluateRHSExpl(t float64, u, out encap.Encapsulation) {
	out.(*encap.Vector1D).V[0] = p.lamExpl * u.(*encap.Vector1D).V[0]
}

func (p *scalarDecay) EvaluateRHSImpl(t float64, u, out encap.Encapsulation) {
	out.(*encap.Vector1D).V[0] = p.lamImpl * u.(*encap.Vector1D).V[0]
}

func (p *scalarDecay) ImplicitSolve(fOut, uOut encap.Encapsulation, t, dt float64, rhs encap.Encapsulation) error {
	r := rhs.(*encap.Vector1D).V[0]
	u := r / (1 - dt*p.lamImpl)
	uOut.(*encap.Vector1D).V[0] = u
	fOut.(*encap.Vector1D).V[0] = p.lamImpl * u
	return nil
}

func (p *scalarDecay) Exact(t float64, out encap.Encapsulation) {
	out.(*encap.Vector1D).V[0] = math.Exp((p.lamExpl + p.lamImpl) * t)
}

func (p *scalarDecay) Initial(t0 float64, out encap.Encapsulation) {
	out.(*encap.Vector1D).V[0] = math.Exp((p.lamExpl + p.lamImpl) * t0)
}

// newIMEXLevel builds an IMEX sweeper over scalarDecay with m Gauss-Lobatto
// nodes, ready for AttachStatus/Setup by a controller.
func newIMEXLevel(t *testing.T, m int) (*sweeper.IMEX, *quadrature.Quadrature) {
	t.Helper()
	prob := &scalarDecay{lamExpl: -1.0, lamImpl: -2.0}
	q, err := quadrature.New(quadrature.GaussLobatto, m)
	require.NoError(t, err)
	sw := sweeper.NewIMEX(prob)
	sw.AttachQuadrature(q)
	return sw, q
}

func newScalarTransfer(coarseQ, fineQ *quadrature.Quadrature) *transfer.Transfer {
	return transfer.New(transfer.Spectral1D{}, coarseQ, fineQ)
}
