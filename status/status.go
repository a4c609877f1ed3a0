// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package status implements the per-step scalar bookkeeping record
// shared by sweepers and controllers (§3, §4.5).
package status

// Residual is one entry of a Status' iteration history, the analogue
// of a row in gofem's Summary.Resids (utl.DblSlist) — kept here as a
// plain slice since DblSlist's ragged-append bookkeeping is specific
// to gofem's multi-stage output format, which this module has no use
// for (see DESIGN.md).
type Residual struct {
	Iter    int
	AbsNorm float64
	RelNorm float64
}

// Status is the plain per-step record described in §3/§4.5. Aggregation
// across ranks (e.g. for PFASST's left-to-right convergence token) is
// the Controller's responsibility, not Status's.
type Status struct {
	Time             float64 // t
	Dt               float64 // dt
	Iter             int     // k
	MaxIter          int
	AbsResNorm       float64
	RelResNorm       float64
	Converged        bool
	PreviousConverged bool

	// DivergingFor counts consecutive sweeps in which AbsResNorm grew
	// relative to the previous sweep (§4.2 "Failure semantics");
	// reported, never auto-recovered.
	DivergingFor int

	// History records one Residual per sweep for diagnostics, the
	// analogue of Summary.Resids in gofem/fem/summary.go.
	History []Residual
}

// New returns a zeroed Status for a step starting at t0 with step size
// dt and iteration budget maxIter.
func New(t0, dt float64, maxIter int) *Status {
	return &Status{Time: t0, Dt: dt, MaxIter: maxIter}
}

// Reset prepares the status for a new step at time t, carrying forward
// PreviousConverged from the current Converged flag. The SDC and MLSDC
// controllers call it; PFASST does not.
func (s *Status) Reset(t float64) {
	s.PreviousConverged = s.Converged
	s.Time = t
	s.Iter = 0
	s.AbsResNorm = 0
	s.RelResNorm = 0
	s.Converged = false
	s.DivergingFor = 0
	s.History = nil
}

// RecordResidual appends one history entry and updates the diverging
// counter, mirroring RichardsonExtrap's ndiverg/prevdiv bookkeeping in
// gofem/fem/richardson.go.
func (s *Status) RecordResidual(absNorm, relNorm float64) {
	prev := s.AbsResNorm
	s.AbsResNorm = absNorm
	s.RelResNorm = relNorm
	if absNorm > prev && s.Iter > 0 {
		s.DivergingFor++
	} else {
		s.DivergingFor = 0
	}
	s.History = append(s.History, Residual{Iter: s.Iter, AbsNorm: absNorm, RelNorm: relNorm})
}

// AtMaxIter reports whether the iteration budget has been exhausted.
func (s *Status) AtMaxIter() bool {
	return s.Iter >= s.MaxIter
}

// Wire is the packed wire-format record of §6: a fixed-width struct of
// (time, dt, abs_res_norm, rel_res_norm, iter, flags), transported as
// the packed status datatype by Communicator.*Status methods.
type Wire struct {
	Time       float64
	Dt         float64
	AbsResNorm float64
	RelResNorm float64
	Iter       uint32
	Flags      uint32
}

const (
	flagConverged         uint32 = 1 << 0
	flagPreviousConverged uint32 = 1 << 1
)

// Pack serializes the Status to its wire form.
func (s *Status) Pack() Wire {
	var flags uint32
	if s.Converged {
		flags |= flagConverged
	}
	if s.PreviousConverged {
		flags |= flagPreviousConverged
	}
	return Wire{
		Time:       s.Time,
		Dt:         s.Dt,
		AbsResNorm: s.AbsResNorm,
		RelResNorm: s.RelResNorm,
		Iter:       uint32(s.Iter),
		Flags:      flags,
	}
}

// Unpack restores scalar fields from a wire record. Time/Dt/iteration
// counters are overwritten; DivergingFor/History are local-only and
// untouched.
func (s *Status) Unpack(w Wire) {
	s.Time = w.Time
	s.Dt = w.Dt
	s.AbsResNorm = w.AbsResNorm
	s.RelResNorm = w.RelResNorm
	s.Iter = int(w.Iter)
	s.Converged = w.Flags&flagConverged != 0
	s.PreviousConverged = w.Flags&flagPreviousConverged != 0
}
