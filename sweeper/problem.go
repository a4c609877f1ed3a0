// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeper

import "github.com/dpedroso-labs/pfasst-go/encap"

// ProblemOps is the capability set a concrete PDE/ODE module must
// provide for the IMEX engine to drive it (§6 "Problem interface",
// §9's "ProblemOps capability set"). Implementations write results
// into caller-owned buffers rather than allocating, matching the
// Sweeper's exclusive-ownership-of-state rule in §3/§9 and the
// in-place style of gosl/la (la.VecFill(v, val), la.VecAdd(v, a, y)).
type ProblemOps interface {
	// EvaluateRHSExpl writes f_E(t, u) into out.
	EvaluateRHSExpl(t float64, u encap.Encapsulation, out encap.Encapsulation)

	// EvaluateRHSImpl writes f_I(t, u) into out.
	EvaluateRHSImpl(t float64, u encap.Encapsulation, out encap.Encapsulation)

	// ImplicitSolve writes into uOut a value satisfying
	// uOut - dt·f_I(t, uOut) = rhs, and writes f_I(t, uOut) into fOut.
	// A non-nil error is fatal to the current step (§7 ImplicitSolveFailure).
	ImplicitSolve(fOut, uOut encap.Encapsulation, t, dt float64, rhs encap.Encapsulation) error

	// Exact writes the analytical solution at time t into out, for
	// testing only (§6).
	Exact(t float64, out encap.Encapsulation)

	// Initial writes the initial condition at t0 into out.
	Initial(t0 float64, out encap.Encapsulation)

	// Factory returns the Encapsulation factory for this problem's
	// spatial representation.
	Factory() encap.Factory
}
