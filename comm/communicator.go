// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comm implements the point-to-point transport contract of
// §4.6: a linear rank chain exchanging state and status messages
// between PFASST's time-parallel processes. It mirrors gofem's
// mpi.IsOn/Rank/Size process-topology idiom, generalized to the
// explicit send/recv/bcast operations PFASST's pipeline needs.
package comm

import "github.com/dpedroso-labs/pfasst-go/status"

// Request is an outstanding non-blocking operation, returned by ISend
// and IRecv and consumed by Wait (§4.6, §9's "Message-passing
// requests are owned by the Communicator and collected at step end").
type Request interface {
	// Wait blocks until the operation completes, returning any
	// transport error (pferr.TransportFailure).
	Wait() error
}

// Communicator is the transport contract a PFASST controller drives
// (§4.6). All data operations move a flat little-endian f64 buffer
// (the wire format of §6); status operations move a status.Wire.
type Communicator interface {
	// Size returns the number of ranks in this communicator.
	Size() int

	// Rank returns this process's rank, in [0, Size()).
	Rank() int

	// IsFirst reports whether this is rank 0.
	IsFirst() bool

	// IsLast reports whether this is the last rank.
	IsLast() bool

	// Send blocks until buf has been handed to the transport for dest/tag.
	Send(buf []float64, dest, tag int) error

	// Recv blocks until a message matching src/tag has arrived, and
	// copies it into buf. len(buf) must match the sender's buffer.
	Recv(buf []float64, src, tag int) error

	// Bcast blocks until buf has been broadcast from root to every rank.
	// On the root, buf is the source; on others, it is the destination.
	Bcast(buf []float64, root int) error

	// ISend starts a non-blocking send and returns a handle to wait on.
	ISend(buf []float64, dest, tag int) (Request, error)

	// IRecv starts a non-blocking receive into buf and returns a
	// handle to wait on. buf must not be touched until Wait returns.
	IRecv(buf []float64, src, tag int) (Request, error)

	// Probe reports whether a message matching src/tag is available
	// without consuming it.
	Probe(src, tag int) (bool, error)

	// SendStatus/RecvStatus/ISendStatus/IRecvStatus mirror the data
	// operations for the packed status.Wire record (§6).
	SendStatus(w status.Wire, dest, tag int) error
	RecvStatus(src, tag int) (status.Wire, error)
	ISendStatus(w status.Wire, dest, tag int) (Request, error)
	IRecvStatus(src, tag int) (StatusRequest, error)

	// Cleanup waits on every outstanding request (§8's property 6:
	// after Cleanup, the pending-request map must be empty).
	Cleanup() error

	// Abort terminates the run with the given exit code (§7's
	// TransportFailure policy).
	Abort(code int) error
}

// StatusRequest is the status-valued counterpart of Request: waiting
// on it yields the received status.Wire.
type StatusRequest interface {
	Wait() (status.Wire, error)
}

// dataBase and statusBase are the disjoint tag bases of §6 (DATA_BASE
// and STATUS_BASE); DataTag and StatusTag key them by (iter, level).
const (
	dataBase   = 0
	statusBase = 1 << 28
)

// DataTag returns the tag for a data exchange at the given PFASST
// iteration and level.
func DataTag(iter, level int) int {
	return dataBase + (iter << 8) | (level & 0xFF)
}

// StatusTag returns the tag for a status exchange at the given PFASST
// iteration and level.
func StatusTag(iter, level int) int {
	return statusBase + (iter << 8) | (level & 0xFF)
}
