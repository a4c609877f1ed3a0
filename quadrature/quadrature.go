// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quadrature builds collocation nodes on [0,1] and the
// node-to-node integration matrices (Q, S, b) that the sweeper
// integrates the right-hand side against (§3, §4.1).
package quadrature

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Variant selects the family of collocation nodes.
type Variant int

const (
	GaussLobatto Variant = iota
	GaussLegendre
	GaussRadauRight
	ClenshawCurtis
	Uniform
)

func (v Variant) String() string {
	switch v {
	case GaussLobatto:
		return "gauss-lobatto"
	case GaussLegendre:
		return "gauss-legendre"
	case GaussRadauRight:
		return "gauss-radau-right"
	case ClenshawCurtis:
		return "clenshaw-curtis"
	case Uniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Quadrature holds the M collocation nodes on [0,1] and the
// node-to-node integration matrices described in §3.
type Quadrature struct {
	variant Variant
	m       int
	nodes   []float64   // [M]
	qMat    [][]float64 // [M][M+1]
	sMat    [][]float64 // [M][M+1]
	bVec    []float64   // [M+1]
	left    bool
	right   bool
}

// New builds a Quadrature with m nodes of the given variant.
func New(variant Variant, m int) (*Quadrature, error) {
	if m < 1 {
		return nil, chk.Err("quadrature: num_nodes must be >= 1, got %d", m)
	}

	var raw []float64
	left, right := false, false
	switch variant {
	case GaussLobatto:
		if m < 2 {
			return nil, chk.Err("quadrature: gauss-lobatto requires at least 2 nodes, got %d", m)
		}
		raw = gaussLobattoNodes(m)
		left, right = true, true
	case GaussLegendre:
		raw = gaussLegendreNodes(m)
	case GaussRadauRight:
		raw = gaussRadauRightNodes(m)
		right = true
	case ClenshawCurtis:
		if m < 2 {
			return nil, chk.Err("quadrature: clenshaw-curtis requires at least 2 nodes, got %d", m)
		}
		raw = clenshawCurtisNodes(m)
		left, right = true, true
	case Uniform:
		if m < 2 {
			return nil, chk.Err("quadrature: uniform requires at least 2 nodes, got %d", m)
		}
		raw = uniformNodes(m)
		left, right = true, true
	default:
		return nil, chk.Err("quadrature: unknown variant %v", variant)
	}

	nodes := toUnitInterval(raw)
	q := &Quadrature{variant: variant, m: m, nodes: nodes, left: left, right: right}
	q.qMat, q.sMat, q.bVec = buildMatrices(nodes)
	return q, nil
}

// Nodes returns the M collocation nodes on [0,1], ascending.
func (q *Quadrature) Nodes() []float64 { return q.nodes }

// NumNodes returns M.
func (q *Quadrature) NumNodes() int { return q.m }

// LeftIsNode reports whether 0 is a node.
func (q *Quadrature) LeftIsNode() bool { return q.left }

// RightIsNode reports whether 1 is a node.
func (q *Quadrature) RightIsNode() bool { return q.right }

// QMat returns the M×(M+1) node-to-node integration matrix.
func (q *Quadrature) QMat() [][]float64 { return q.qMat }

// SMat returns the M×(M+1) sub-interval integration matrix.
func (q *Quadrature) SMat() [][]float64 { return q.sMat }

// BVec returns the (M+1)-length end-interval weight vector.
func (q *Quadrature) BVec() []float64 { return q.bVec }

// Variant returns the node family.
func (q *Quadrature) Variant() Variant { return q.variant }

// ExpectedError reports the asymptotic convergence order contracted
// in §4.1 / §8, for diagnostics and tests only.
func (q *Quadrature) ExpectedError() float64 {
	m := float64(q.m)
	switch q.variant {
	case GaussLobatto:
		return 2*m - 2
	case GaussLegendre:
		return 2 * m
	case GaussRadauRight:
		return 2*m - 1
	case ClenshawCurtis, Uniform:
		return m
	default:
		return 0
	}
}

// buildMatrices computes q_mat, s_mat and b_vec for the given nodes
// following §3: q_mat[m][j] is the integral from 0 to nodes[m] of the
// j-th Lagrange basis function built over the augmented node set
// [0, nodes...]. When 0 is itself a node (Lobatto, Clenshaw-Curtis,
// uniform) the augmented 0 repeats nodes[0]; the basis is then built
// over the nodes alone and column 0 gets zero weight. The Lagrange
// basis is obtained by inverting the monomial Vandermonde matrix of the
// basis points (mirroring how
// Notargets-gocfd's JacobiBasis builds Dr = Vr·Vinv: a Vandermonde
// inverse converts pointwise data into a matrix that can be applied to
// derivatives/integrals of the basis alike).
func buildMatrices(nodes []float64) (qMat, sMat [][]float64, bVec []float64) {
	m := len(nodes)
	aug := make([]float64, m+1)
	aug[0] = 0
	copy(aug[1:], nodes)
	n := m + 1
	off := 0
	if nodes[0] == 0 {
		aug, off = aug[1:], 1
	}
	np := len(aug)

	// Vandermonde: V[i][j] = aug[j]^i, i,j = 0..np-1
	vData := make([]float64, np*np)
	for j := 0; j < np; j++ {
		p := 1.0
		for i := 0; i < np; i++ {
			vData[i*np+j] = p
			p *= aug[j]
		}
	}
	V := mat.NewDense(np, np, vData)
	var Vinv mat.Dense
	if err := Vinv.Inverse(V); err != nil {
		chk.Panic("quadrature: singular Vandermonde matrix while building integration weights: %v", err)
	}

	// column j of Vinv holds the monomial coefficients of L_j(x).
	// Its antiderivative (zero at x=0) has coefficient c_i/(i+1) for
	// x^{i+1}; evaluating at x gives q_mat[*][j].
	evalAntideriv := func(j int, x float64) float64 {
		sum, p := 0.0, x
		for i := 0; i < np; i++ {
			c := Vinv.At(i, j)
			sum += c / float64(i+1) * p
			p *= x
		}
		return sum
	}

	qMat = make([][]float64, m)
	for row := 0; row < m; row++ {
		qMat[row] = make([]float64, n)
		for j := 0; j < np; j++ {
			qMat[row][j+off] = evalAntideriv(j, nodes[row])
		}
	}

	sMat = make([][]float64, m)
	sMat[0] = append([]float64(nil), qMat[0]...)
	for row := 1; row < m; row++ {
		sMat[row] = make([]float64, n)
		for j := 0; j < n; j++ {
			sMat[row][j] = qMat[row][j] - qMat[row-1][j]
		}
	}

	bVec = make([]float64, n)
	for j := 0; j < np; j++ {
		bVec[j+off] = evalAntideriv(j, 1.0)
	}

	return
}
