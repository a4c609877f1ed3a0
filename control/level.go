// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package control implements the three controllers of §4.4 — SDC,
// MLSDC and PFASST — driving one or more Sweepers through a time
// domain via the shared add_level/set_duration/run contract. This
// plays the role gofem's fem.FEsolver / solverallocators registry
// plays for its own time loop (s_implicit.go, richardson.go,
// s_linimp.go), generalized to a level hierarchy.
package control

import (
	"github.com/dpedroso-labs/pfasst-go/sweeper"
	"github.com/dpedroso-labs/pfasst-go/transfer"
)

// Level pairs a Sweeper with the Transfer connecting it to the next
// coarser level (nil on the coarsest level). Levels never own one
// another; a Controller holds them by back-index in a slice, coarsest
// first, per §9's "use back-indices into a level array rather than
// bidirectional owning links".
type Level struct {
	Sweeper sweeper.Sweeper

	// ToCoarser is nil for the coarsest level and non-nil otherwise,
	// shared with the adjacent coarser level (§4.1 "each adjacent pair
	// has one Transfer").
	ToCoarser *transfer.Transfer
}
