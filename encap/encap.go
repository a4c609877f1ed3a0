// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package encap implements the abstract state-vector contract (the
// "encapsulation") that sweepers, transfers and communicators operate
// on without knowing the concrete spatial representation.
package encap

// Encapsulation is an opaque container of spatial degrees of freedom.
// Each container is exclusively owned by the Sweeper (or Factory) that
// created it; callers borrow containers passed to transport or
// transfer calls for the duration of that call only.
type Encapsulation interface {

	// Zero sets all degrees of freedom to zero.
	Zero()

	// ScaledAdd performs self ← self + a·y.
	ScaledAdd(a float64, y Encapsulation)

	// CopyFrom sets self ← y, overwriting self entirely.
	CopyFrom(y Encapsulation)

	// NormInf returns the infinity norm (max absolute component).
	NormInf() float64

	// Pack serializes the container to a contiguous little-endian
	// float64 slice for transport (§6 "State wire format"). The
	// returned slice must not be retained by the caller once the
	// transport call returns.
	Pack() []float64

	// Unpack restores the container from a slice produced by Pack.
	// The slice length must equal the container's DOF count.
	Unpack(buf []float64)

	// Dofs returns the number of scalar degrees of freedom, used by
	// Communicator implementations to size transport buffers.
	Dofs() int
}

// Factory creates new, zeroed Encapsulation instances of a fixed
// dimensionality. Each Sweeper owns exactly one Factory, matching the
// "transient results are produced by a factory the Sweeper holds"
// ownership rule of §3.
type Factory interface {
	New() Encapsulation
}
