// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"strings"
	"testing"
)

func TestOptionsTableGroupsInDeclarationOrder(t *testing.T) {
	var o Options
	o.Declare("time", "dt", "time step size", 0.05)
	o.Declare("time", "nsteps", "number of steps", 10)
	o.Declare("convergence", "max-iter", "max iterations", 20)

	table := o.Table()
	timeIdx := strings.Index(table, "time")
	convIdx := strings.Index(table, "convergence")
	if timeIdx < 0 || convIdx < 0 || convIdx < timeIdx {
		t.Fatalf("expected \"time\" group before \"convergence\" group, got:\n%s", table)
	}
	if !strings.Contains(table, "dt") || !strings.Contains(table, "max-iter") {
		t.Fatalf("expected declared option names in table, got:\n%s", table)
	}
}
