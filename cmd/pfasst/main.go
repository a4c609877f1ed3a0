// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
	"github.com/dpedroso-labs/pfasst-go/comm"
	"github.com/dpedroso-labs/pfasst-go/control"
	"github.com/dpedroso-labs/pfasst-go/encap"
	"github.com/dpedroso-labs/pfasst-go/problems"
	"github.com/dpedroso-labs/pfasst-go/quadrature"
	"github.com/dpedroso-labs/pfasst-go/sweeper"
	"github.com/dpedroso-labs/pfasst-go/transfer"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// command-line oracle: controller kind, problem, quadrature setup,
	// time stepping, and convergence parameters
	kind := flag.String("controller", "sdc", "controller: sdc, mlsdc or pfasst")
	problemName := flag.String("problem", "vdp", "problem: vdp, heat1d, heat2d or advdiff1d")
	variantName := flag.String("variant", "gauss-lobatto", "quadrature variant: gauss-lobatto, gauss-legendre, gauss-radau-right, clenshaw-curtis, uniform")
	numNodes := flag.Int("nodes", 4, "number of collocation nodes on the finest level")
	coarseNodes := flag.Int("coarse-nodes", 2, "number of collocation nodes on the coarsest level (mlsdc/pfasst only)")
	dt := flag.Float64("dt", 0.05, "time step size")
	nsteps := flag.Int("nsteps", 10, "number of time steps (sdc/mlsdc only; pfasst always advances one step per rank)")
	maxIter := flag.Int("max-iter", 20, "maximum sweeps/iterations per step")
	absTol := flag.Float64("abs-tol", 1e-10, "absolute residual tolerance")
	relTol := flag.Float64("rel-tol", 0, "relative residual tolerance")
	verbose := flag.Bool("verbose", true, "show messages")
	plotResiduals := flag.String("plot-residuals", "", "if non-empty, write a PNG of the residual history to this path")
	flag.Parse()

	variant, err := parseVariant(*variantName)
	if err != nil {
		chk.Panic("%v", err)
	}

	var opts control.Options
	opts.Declare("problem", "problem", "problem fixture", *problemName)
	opts.Declare("problem", "controller", "controller kind", *kind)
	opts.Declare("quadrature", "variant", "quadrature variant", *variantName)
	opts.Declare("quadrature", "nodes", "fine-level node count", *numNodes)
	opts.Declare("quadrature", "coarse-nodes", "coarse-level node count", *coarseNodes)
	opts.Declare("time", "dt", "time step size", *dt)
	opts.Declare("time", "nsteps", "number of steps", *nsteps)
	opts.Declare("convergence", "max-iter", "max iterations", *maxIter)
	opts.Declare("convergence", "abs-tol", "absolute tolerance", *absTol)
	opts.Declare("convergence", "rel-tol", "relative tolerance", *relTol)

	if mpi.Rank() == 0 && *verbose {
		io.PfWhite("\npfasst-go -- Parallel Full Approximation Scheme in Space and Time\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
		io.Pf("%v\n", opts.Table())
	}

	prob, err := newProblem(*problemName)
	if err != nil {
		chk.Panic("%v", err)
	}

	if mpi.Rank() == 0 && *verbose {
		if withPrms, ok := prob.(interface{ GetPrms() fun.Prms }); ok {
			io.Pf("problem parameters:\n")
			for _, p := range withPrms.GetPrms() {
				io.Pf("  %-8s = %v\n", p.N, p.V)
			}
			io.Pf("\n")
		}
	}

	// profiling?
	defer utl.DoProf(false)()

	var statusHistory []float64
	switch *kind {
	case "sdc":
		err = runSDC(prob, variant, *numNodes, *dt, *nsteps, *maxIter, *absTol, *relTol, &statusHistory)
	case "mlsdc":
		err = runMLSDC(prob, variant, *coarseNodes, *numNodes, *dt, *nsteps, *maxIter, *absTol, *relTol, &statusHistory)
	case "pfasst":
		err = runPFASST(prob, variant, *coarseNodes, *numNodes, *dt, *maxIter, *absTol, *relTol, &statusHistory)
	default:
		chk.Panic("unknown controller kind %q", *kind)
	}
	if err != nil {
		chk.Panic("run failed:\n%v", err)
	}

	if *plotResiduals != "" && mpi.Rank() == 0 {
		if err := plotResidualHistory(*plotResiduals, statusHistory); err != nil {
			io.PfRed("plot-residuals failed: %v\n", err)
		}
	}
}

func parseVariant(name string) (quadrature.Variant, error) {
	switch name {
	case "gauss-lobatto":
		return quadrature.GaussLobatto, nil
	case "gauss-legendre":
		return quadrature.GaussLegendre, nil
	case "gauss-radau-right":
		return quadrature.GaussRadauRight, nil
	case "clenshaw-curtis":
		return quadrature.ClenshawCurtis, nil
	case "uniform":
		return quadrature.Uniform, nil
	default:
		return 0, chk.Err("unknown quadrature variant %q", name)
	}
}

func newProblem(name string) (sweeper.ProblemOps, error) {
	switch name {
	case "vdp":
		return &problems.VanDerPol{Mu: 1}, nil
	case "heat1d":
		return &problems.Heat1D{N: 32, L: 2 * 3.141592653589793, Nu: 0.5}, nil
	case "heat2d":
		return &problems.Heat2D{N: 16, L: 2 * 3.141592653589793, Nu: 0.3}, nil
	case "advdiff1d":
		return &problems.AdvectionDiffusion1D{N: 64, L: 4, C: 1.0, Nu: 0.02}, nil
	default:
		return nil, chk.Err("unknown problem %q", name)
	}
}

func buildSweeper(prob sweeper.ProblemOps, variant quadrature.Variant, m int, absTol, relTol float64) (*sweeper.IMEX, *quadrature.Quadrature, error) {
	q, err := quadrature.New(variant, m)
	if err != nil {
		return nil, nil, err
	}
	sw := sweeper.NewIMEX(prob)
	sw.SetTolerances(absTol, relTol)
	return sw, q, nil
}

func initialState(prob sweeper.ProblemOps) encap.Encapsulation {
	u0 := prob.Factory().New()
	prob.Initial(0, u0)
	return u0
}

func runSDC(prob sweeper.ProblemOps, variant quadrature.Variant, m int, dt float64, nsteps, maxIter int, absTol, relTol float64, history *[]float64) error {
	sw, q, err := buildSweeper(prob, variant, m, absTol, relTol)
	if err != nil {
		return err
	}
	sw.AttachQuadrature(q)

	var c control.SDC
	if err := c.AddLevel(sw); err != nil {
		return err
	}
	c.SetDuration(0, float64(nsteps)*dt, dt, maxIter)
	if err := c.Run(initialState(prob)); err != nil {
		return err
	}
	for _, r := range c.Status().History {
		*history = append(*history, r.AbsNorm)
	}
	io.Pf("sdc: final time=%v iter=%v converged=%v\n", c.Status().Time, c.Status().Iter, c.Status().Converged)
	return nil
}

func runMLSDC(prob sweeper.ProblemOps, variant quadrature.Variant, coarseM, fineM int, dt float64, nsteps, maxIter int, absTol, relTol float64, history *[]float64) error {
	coarseSw, coarseQ, err := buildSweeper(prob, variant, coarseM, absTol, relTol)
	if err != nil {
		return err
	}
	fineSw, fineQ, err := buildSweeper(prob, variant, fineM, absTol, relTol)
	if err != nil {
		return err
	}
	coarseSw.AttachQuadrature(coarseQ)
	fineSw.AttachQuadrature(fineQ)

	space := spaceTransferFor(prob)
	tr := transfer.New(space, coarseQ, fineQ)

	var c control.MLSDC
	if err := c.AddLevel(coarseSw, nil); err != nil {
		return err
	}
	if err := c.AddLevel(fineSw, tr); err != nil {
		return err
	}
	c.SetDuration(0, float64(nsteps)*dt, dt, maxIter)
	if err := c.Run(initialState(prob)); err != nil {
		return err
	}
	for _, r := range c.Status().History {
		*history = append(*history, r.AbsNorm)
	}
	io.Pf("mlsdc: final time=%v iter=%v converged=%v\n", c.Status().Time, c.Status().Iter, c.Status().Converged)
	return nil
}

func runPFASST(prob sweeper.ProblemOps, variant quadrature.Variant, coarseM, fineM int, dt float64, maxIter int, absTol, relTol float64, history *[]float64) error {
	coarseSw, coarseQ, err := buildSweeper(prob, variant, coarseM, absTol, relTol)
	if err != nil {
		return err
	}
	fineSw, fineQ, err := buildSweeper(prob, variant, fineM, absTol, relTol)
	if err != nil {
		return err
	}
	coarseSw.AttachQuadrature(coarseQ)
	fineSw.AttachQuadrature(fineQ)

	space := spaceTransferFor(prob)
	tr := transfer.New(space, coarseQ, fineQ)

	hub := comm.NewHub(mpi.Size())

	var c control.PFASST
	c.Comm = hub.Rank(mpi.Rank())
	if err := c.AddLevel(coarseSw, nil); err != nil {
		return err
	}
	if err := c.AddLevel(fineSw, tr); err != nil {
		return err
	}
	c.SetDuration(0, dt, maxIter)
	if err := c.Run(initialState(prob)); err != nil {
		return err
	}
	for _, r := range c.Status().History {
		*history = append(*history, r.AbsNorm)
	}
	io.Pf("pfasst[rank %d]: final time=%v iter=%v converged=%v\n", mpi.Rank(), c.Status().Time, c.Status().Iter, c.Status().Converged)
	return nil
}

func spaceTransferFor(prob sweeper.ProblemOps) transfer.SpaceTransfer {
	switch prob.(type) {
	case *problems.Heat2D:
		return transfer.Spectral2D{}
	default:
		return transfer.Spectral1D{}
	}
}
