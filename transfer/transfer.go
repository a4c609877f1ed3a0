// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transfer moves data between a fine and a coarse level: the
// polynomial time transfer across differing quadrature node sets,
// composed with a spatial SpaceTransfer, plus the FAS τ-correction
// that ties an MLSDC/PFASST V-cycle together (§4.3). This mirrors, at
// the level-pair scale, what fem's Prj0simple/extrapolator helpers do
// between a coarse and fine FE mesh, generalized to spectral time and
// space.
package transfer

import (
	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/quadrature"
	"github.com/dpedroso-labs/pfasst-go/sweeper"
)

// SpaceTransfer moves one node's worth of data between spatial grids
// of differing resolution (§4.3's "restrict_data/interpolate_data").
// Implementations type-assert to their concrete Encapsulation kind.
type SpaceTransfer interface {
	// InterpolateData reads coarse and writes into fine.
	InterpolateData(coarse, fine encap.Encapsulation)

	// RestrictData reads fine and writes into coarse.
	RestrictData(fine, coarse encap.Encapsulation)
}

// Transfer couples a SpaceTransfer with the polynomial time transfer
// derived from a pair of quadrature node sets (§4.3). Transfers never
// own sweepers; they operate on the Sweeper handed in by a Controller.
type Transfer struct {
	Space SpaceTransfer

	coarseQ *quadrature.Quadrature
	fineQ   *quadrature.Quadrature

	// interpMat[i][j], i=1..Mf, j=0..Mc: Lagrange weight of coarse
	// augmented node j at fine node time i. identity when node sets
	// match (§4.3 "identity when both levels use the same nodes").
	interpMat [][]float64

	// restrictMat[i][j], i=0..Mc, j=0..Mf: Lagrange weight of fine
	// augmented node j at coarse augmented node time i.
	restrictMat [][]float64

	// preSweepCoarse[0..Mc] caches the coarse states produced by the
	// last Restrict(..., initial=false) call, before the coarse
	// level's own Sweep perturbs them. Interpolate's correction pass
	// needs this basis (coarse_new - coarse_restricted) to implement
	// FAS's "interpolate the correction, not the solution" rule
	// (§4.3); set by Restrict, consumed by Interpolate.
	preSweepCoarse []encap.Encapsulation
}

// New builds a Transfer for the given space transfer and the fine and
// coarse level's quadratures.
func New(space SpaceTransfer, coarseQ, fineQ *quadrature.Quadrature) *Transfer {
	t := &Transfer{Space: space, coarseQ: coarseQ, fineQ: fineQ}

	coarseAug := augmentedNodes(coarseQ)
	fineAug := augmentedNodes(fineQ)

	mf := fineQ.NumNodes()
	t.interpMat = make([][]float64, mf+1)
	for i := 1; i <= mf; i++ {
		t.interpMat[i] = lagrangeWeights(coarseAug, fineAug[i])
	}

	mc := coarseQ.NumNodes()
	t.restrictMat = make([][]float64, mc+1)
	for i := 0; i <= mc; i++ {
		t.restrictMat[i] = lagrangeWeights(fineAug, coarseAug[i])
	}

	return t
}

func augmentedNodes(q *quadrature.Quadrature) []float64 {
	nodes := q.Nodes()
	aug := make([]float64, len(nodes)+1)
	copy(aug[1:], nodes)
	return aug
}

// InterpolateInitial moves node 0 only, coarse to fine (§4.3).
func (t *Transfer) InterpolateInitial(coarse, fine sweeper.Sweeper) {
	t.Space.InterpolateData(coarse.State(0), fine.State(0))
}

// RestrictInitial moves node 0 only, fine to coarse (§4.3).
func (t *Transfer) RestrictInitial(fine, coarse sweeper.Sweeper) {
	t.Space.RestrictData(fine.State(0), coarse.State(0))
}

// Interpolate adds, to fine nodes 1..Mf, the interpolated FAS
// correction coarse_new − coarse_restricted (§4.3): the coarse state
// at the time Restrict(..., false) last ran is subtracted out node by
// node before the Lagrange combination, so a coarse sweep that leaves
// a node unchanged contributes nothing and the fine solution is
// corrected rather than overwritten. When initial is true this reduces
// to InterpolateInitial (node 0 is shared directly, never corrected:
// the coarse sweep never touches it). Must be preceded, earlier in the
// same V-cycle step, by a Restrict(fine, coarse, false) call on this
// same Transfer.
func (t *Transfer) Interpolate(coarse, fine sweeper.Sweeper, initial bool) {
	if initial {
		t.InterpolateInitial(coarse, fine)
		return
	}
	if t.preSweepCoarse == nil {
		chk.Panic("Transfer.Interpolate: no preceding Restrict(fine, coarse, false) to correct against")
	}
	coarseFactory := coarse.Factory()
	fineFactory := fine.Factory()
	mc := coarse.NumNodes()
	mf := fine.NumNodes()
	for i := 1; i <= mf; i++ {
		delta := coarseFactory.New()
		delta.Zero()
		row := t.interpMat[i]
		for j := 0; j <= mc; j++ {
			if row[j] == 0 {
				continue
			}
			d := coarseFactory.New()
			d.CopyFrom(coarse.State(j))
			d.ScaledAdd(-1, t.preSweepCoarse[j])
			delta.ScaledAdd(row[j], d)
		}
		correction := fineFactory.New()
		t.Space.InterpolateData(delta, correction)
		fine.State(i).ScaledAdd(1, correction)
	}
}

// Restrict moves all nodes 1..Mc from the fine level to the coarse
// level and snapshots the result as the correction basis the later
// Interpolate(..., false) call on this same Transfer will subtract
// against. When initial is true this reduces to RestrictInitial and no
// snapshot is taken (node 0 is never FAS-corrected — see Interpolate).
func (t *Transfer) Restrict(fine, coarse sweeper.Sweeper, initial bool) {
	if initial {
		t.RestrictInitial(fine, coarse)
		return
	}
	fineFactory := fine.Factory()
	coarseFactory := coarse.Factory()
	mf := fine.NumNodes()
	mc := coarse.NumNodes()

	t.preSweepCoarse = make([]encap.Encapsulation, mc+1)
	snap0 := coarseFactory.New()
	snap0.CopyFrom(coarse.State(0))
	t.preSweepCoarse[0] = snap0

	for i := 1; i <= mc; i++ {
		combo := fineFactory.New()
		combo.Zero()
		row := t.restrictMat[i]
		for j := 0; j <= mf; j++ {
			if row[j] == 0 {
				continue
			}
			combo.ScaledAdd(row[j], fine.State(j))
		}
		t.Space.RestrictData(combo, coarse.State(i))

		snap := coarseFactory.New()
		snap.CopyFrom(coarse.State(i))
		t.preSweepCoarse[i] = snap
	}
}

// FAS computes the τ-correction of §4.3: τ = R(I_F) − I_C, restricting
// the fine level's node-integrals of the RHS (in both time and space)
// and subtracting the coarse level's own node-integrals. Stores
// tau[0]=0 and tau[m] for m=1..Mc on the coarse sweeper.
func (t *Transfer) FAS(dt float64, fine, coarse sweeper.Sweeper) {
	mf := fine.NumNodes()
	mc := coarse.NumNodes()
	fineFactory := fine.Factory()
	coarseFactory := coarse.Factory()

	if mf != t.fineQ.NumNodes() || mc != t.coarseQ.NumNodes() {
		chk.Panic("Transfer.FAS: sweeper node counts do not match the attached quadratures")
	}

	iF := make([]encap.Encapsulation, mf+1)
	iF[0] = fineFactory.New()
	iF[0].Zero()
	qf := t.fineQ.QMat()
	for m := 1; m <= mf; m++ {
		v := fineFactory.New()
		v.Zero()
		row := qf[m-1]
		for j := 0; j <= mf; j++ {
			if row[j] == 0 {
				continue
			}
			v.ScaledAdd(dt*row[j], fine.FExpl(j))
			v.ScaledAdd(dt*row[j], fine.FImpl(j))
		}
		iF[m] = v
	}

	qc := t.coarseQ.QMat()
	iC := make([]encap.Encapsulation, mc+1)
	for m := 1; m <= mc; m++ {
		v := coarseFactory.New()
		v.Zero()
		row := qc[m-1]
		for j := 0; j <= mc; j++ {
			if row[j] == 0 {
				continue
			}
			v.ScaledAdd(dt*row[j], coarse.FExpl(j))
			v.ScaledAdd(dt*row[j], coarse.FImpl(j))
		}
		iC[m] = v
	}

	tau0 := coarseFactory.New()
	tau0.Zero()
	coarse.SetTau(0, tau0)

	for m := 1; m <= mc; m++ {
		combo := fineFactory.New()
		combo.Zero()
		row := t.restrictMat[m]
		for j := 0; j <= mf; j++ {
			if row[j] == 0 {
				continue
			}
			combo.ScaledAdd(row[j], iF[j])
		}
		restricted := coarseFactory.New()
		t.Space.RestrictData(combo, restricted)
		restricted.ScaledAdd(-1, iC[m])
		coarse.SetTau(m, restricted)
	}
}
