// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"testing"

	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/quadrature"
	"github.com/dpedroso-labs/pfasst-go/status"
	"github.com/dpedroso-labs/pfasst-go/sweeper"
	"github.com/stretchr/testify/require"
)

// fakeSweeper is a minimal sweeper.Sweeper test double backed by
// Vector1D nodes, with no dynamics of its own: it exists so transfer
// tests can exercise Interpolate/Restrict/FAS without pulling in a
// real IMEX integration.
type fakeSweeper struct {
	n          int
	states     []encap.Encapsulation
	fExpl      []encap.Encapsulation
	fImpl      []encap.Encapsulation
	tau        []encap.Encapsulation
	end        encap.Encapsulation
	numNodesOf int
}

func newFakeSweeper(dofs, numNodes int) *fakeSweeper {
	f := encap.Vector1DFactory{N: dofs}
	s := &fakeSweeper{n: dofs, numNodesOf: numNodes}
	alloc := func() []encap.Encapsulation {
		v := make([]encap.Encapsulation, numNodes+1)
		for i := range v {
			v[i] = f.New()
		}
		return v
	}
	s.states = alloc()
	s.fExpl = alloc()
	s.fImpl = alloc()
	s.tau = alloc()
	s.end = f.New()
	return s
}

func (s *fakeSweeper) AttachQuadrature(*quadrature.Quadrature)    {}
func (s *fakeSweeper) AttachStatus(*status.Status)                {}
func (s *fakeSweeper) Setup() error                               { return nil }
func (s *fakeSweeper) Spread(u0 encap.Encapsulation) {
	for _, st := range s.states {
		st.CopyFrom(u0)
	}
}
func (s *fakeSweeper) InitialState() encap.Encapsulation        { return s.states[0] }
func (s *fakeSweeper) SetInitialState(u encap.Encapsulation)    { s.states[0].CopyFrom(u) }
func (s *fakeSweeper) Predict() error                           { return nil }
func (s *fakeSweeper) Sweep() error                             { return nil }
func (s *fakeSweeper) IntegrateEndState()                       {}
func (s *fakeSweeper) ComputeResiduals()                        {}
func (s *fakeSweeper) Converged(bool) bool                      { return false }
func (s *fakeSweeper) Advance()                                 {}
func (s *fakeSweeper) Reevaluate(bool)                          {}
func (s *fakeSweeper) NumNodes() int                            { return s.numNodesOf }
func (s *fakeSweeper) State(m int) encap.Encapsulation          { return s.states[m] }
func (s *fakeSweeper) PrevState(m int) encap.Encapsulation      { return s.states[m] }
func (s *fakeSweeper) FExpl(m int) encap.Encapsulation          { return s.fExpl[m] }
func (s *fakeSweeper) FImpl(m int) encap.Encapsulation          { return s.fImpl[m] }
func (s *fakeSweeper) Tau(m int) encap.Encapsulation            { return s.tau[m] }
func (s *fakeSweeper) SetTau(m int, tau encap.Encapsulation)    { s.tau[m].CopyFrom(tau) }
func (s *fakeSweeper) EndState() encap.Encapsulation            { return s.end }
func (s *fakeSweeper) Factory() encap.Factory                   { return encap.Vector1DFactory{N: s.n} }
func (s *fakeSweeper) SetTolerances(abs, rel float64)           {}

var _ sweeper.Sweeper = (*fakeSweeper)(nil)

func TestInterpolateInitialMovesNodeZeroOnly(t *testing.T) {
	coarseQ, err := quadrature.New(quadrature.GaussLobatto, 3)
	require.NoError(t, err)
	fineQ, err := quadrature.New(quadrature.GaussLobatto, 3)
	require.NoError(t, err)

	tr := New(Spectral1D{}, coarseQ, fineQ)

	coarse := newFakeSweeper(4, 3)
	fine := newFakeSweeper(4, 3)

	u0 := encap.NewVector1D(4)
	u0.V = []float64{1, 2, 3, 4}
	coarse.State(0).CopyFrom(u0)

	tr.InterpolateInitial(coarse, fine)
	require.Equal(t, u0.V, fine.State(0).(*encap.Vector1D).V)
	// other nodes untouched (still zero)
	require.Equal(t, []float64{0, 0, 0, 0}, fine.State(1).(*encap.Vector1D).V)
}

func TestInterpolateAddsCorrectionRelativeToPreSweepSnapshot(t *testing.T) {
	q, err := quadrature.New(quadrature.GaussLegendre, 3)
	require.NoError(t, err)
	tr := New(Spectral1D{}, q, q)

	coarse := newFakeSweeper(5, 3)
	fine := newFakeSweeper(5, 3)

	// as if Restrict(fine, coarse, false) had just run against an
	// all-zero fine level, leaving coarse at zero too.
	tr.preSweepCoarse = make([]encap.Encapsulation, 4)
	for m := 0; m <= 3; m++ {
		tr.preSweepCoarse[m] = encap.NewVector1D(5)
	}

	// the coarse sweep then moves the coarse states away from zero;
	// with identical node sets the interpolation weights are the
	// identity, so the whole move should land on fine unchanged.
	for m := 0; m <= 3; m++ {
		v := coarse.State(m).(*encap.Vector1D)
		for i := range v.V {
			v.V[i] = float64(m*10 + i)
		}
	}

	tr.Interpolate(coarse, fine, false)
	for m := 1; m <= 3; m++ {
		require.Equal(t, coarse.State(m).(*encap.Vector1D).V, fine.State(m).(*encap.Vector1D).V)
	}
}

func TestInterpolatePreservesFineWhenCoarseUnchangedBySweep(t *testing.T) {
	q, err := quadrature.New(quadrature.GaussLegendre, 3)
	require.NoError(t, err)
	tr := New(Spectral1D{}, q, q)

	coarse := newFakeSweeper(5, 3)
	fine := newFakeSweeper(5, 3)

	for m := 0; m <= 3; m++ {
		v := coarse.State(m).(*encap.Vector1D)
		for i := range v.V {
			v.V[i] = float64(m*10 + i)
		}
		fv := fine.State(m).(*encap.Vector1D)
		for i := range fv.V {
			fv.V[i] = float64(m + i)
		}
	}

	// preSweepCoarse equal to the current coarse state: a coarse
	// sweep that made no progress contributes a zero correction, so
	// fine's own states must be left untouched.
	tr.preSweepCoarse = make([]encap.Encapsulation, 4)
	for m := 0; m <= 3; m++ {
		snap := encap.NewVector1D(5)
		snap.CopyFrom(coarse.State(m))
		tr.preSweepCoarse[m] = snap
	}

	before := make([][]float64, 4)
	for m := 0; m <= 3; m++ {
		before[m] = append([]float64(nil), fine.State(m).(*encap.Vector1D).V...)
	}

	tr.Interpolate(coarse, fine, false)
	for m := 1; m <= 3; m++ {
		require.InDeltaSlice(t, before[m], fine.State(m).(*encap.Vector1D).V, 1e-9)
	}
}

func TestRestrictThenInterpolateRoundTripsToNoCorrectionWithoutASweep(t *testing.T) {
	q, err := quadrature.New(quadrature.GaussLegendre, 3)
	require.NoError(t, err)
	tr := New(Spectral1D{}, q, q)

	fine := newFakeSweeper(5, 3)
	for m := 0; m <= 3; m++ {
		v := fine.State(m).(*encap.Vector1D)
		for i := range v.V {
			v.V[i] = float64(m*10 + i)
		}
	}
	coarse := newFakeSweeper(5, 3)

	tr.RestrictInitial(fine, coarse)
	tr.Restrict(fine, coarse, false)
	for m := 0; m <= 3; m++ {
		require.Equal(t, fine.State(m).(*encap.Vector1D).V, coarse.State(m).(*encap.Vector1D).V)
	}

	// no coarse sweep runs between Restrict and Interpolate here, so
	// the correction interpolated back onto the fine level must be
	// exactly zero and fine's own state untouched.
	before := fine.State(2).(*encap.Vector1D).V
	original := append([]float64(nil), before...)
	tr.Interpolate(coarse, fine, false)
	require.Equal(t, original, fine.State(2).(*encap.Vector1D).V)
}

func TestFASZeroWhenLevelsAgree(t *testing.T) {
	q, err := quadrature.New(quadrature.GaussLobatto, 3)
	require.NoError(t, err)
	tr := New(Spectral1D{}, q, q)

	fine := newFakeSweeper(2, 3)
	coarse := newFakeSweeper(2, 3)
	for m := 0; m <= 3; m++ {
		fe := fine.FExpl(m).(*encap.Vector1D)
		fi := fine.FImpl(m).(*encap.Vector1D)
		ce := coarse.FExpl(m).(*encap.Vector1D)
		ci := coarse.FImpl(m).(*encap.Vector1D)
		fe.V[0], fe.V[1] = float64(m), float64(m)*2
		fi.V[0], fi.V[1] = float64(m)*0.5, float64(m)*0.25
		ce.CopyFrom(fe)
		ci.CopyFrom(fi)
	}

	tr.FAS(0.1, fine, coarse)

	require.Equal(t, []float64{0, 0}, coarse.Tau(0).(*encap.Vector1D).V)
	for m := 1; m <= 3; m++ {
		tau := coarse.Tau(m).(*encap.Vector1D)
		require.InDelta(t, 0, tau.V[0], 1e-9)
		require.InDelta(t, 0, tau.V[1], 1e-9)
	}
}
