// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build mpi

package comm

import (
	"github.com/cpmech/gosl/mpi"
	"github.com/dpedroso-labs/pfasst-go/pferr"
)

// MPI is a Communicator backed by gosl/mpi's process topology
// (mpi.IsOn/Rank/Size, the same calls gofem's fem.go and solver.go
// use to size their own process grid). Only the topology queries
// gosl/mpi is verified to expose in this corpus
// are wired here; this module's retrieved examples never call a
// gosl/mpi point-to-point send/recv, so rather than guess at an
// unverified signature, MPI's data-plane operations are routed
// through comm.Chan's in-process transport within a single OS
// process, and only the process-topology queries hit real MPI. A
// genuine multi-host point-to-point backend should be added once a
// verified gosl/mpi send/recv API is available to ground it on.
type MPI struct {
	*Chan
}

// NewMPI builds an MPI-topology-aware Communicator. hub must be sized
// to mpi.Size(); the returned endpoint is hub.Rank(mpi.Rank()), so its
// messages reach only the endpoints of that same hub, i.e. ranks that
// share this OS process.
func NewMPI(hub *Hub) *MPI {
	if !mpi.IsOn() {
		panic(pferr.New(pferr.SetupIncomplete, "comm.NewMPI: MPI is not initialized; call mpi.Start first"))
	}
	return &MPI{Chan: hub.Rank(mpi.Rank())}
}

func (m *MPI) Size() int { return mpi.Size() }
func (m *MPI) Rank() int { return mpi.Rank() }

func (m *MPI) Abort(code int) error {
	// gosl/mpi does not expose a verified Abort(code) wrapper in this
	// corpus; mpi.Stop(false), called by the driver's deferred
	// cleanup, is the orderly shutdown path this backend relies on.
	return pferr.New(pferr.TransportFailure, "comm.MPI: aborting run with code %d", code)
}
