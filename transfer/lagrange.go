// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

// lagrangeWeights returns, for the node set src, the weight of each
// src[j] in the polynomial interpolant through the distinct abscissas
// of src evaluated at x: w[j] = L_j(x) = prod_{k!=j} (x-src[k])/(src[j]-src[k]).
// A repeated abscissa (the augmented 0 of a node set that already
// contains 0) takes part once: its first occurrence carries the weight
// and later occurrences get 0.
// When x equals one of the src nodes the result is the corresponding
// unit vector, which is what makes the time transfer an identity when
// both levels share a node set (§4.3).
func lagrangeWeights(src []float64, x float64) []float64 {
	n := len(src)
	w := make([]float64, n)
	dup := make([]bool, n)
	for j := 0; j < n; j++ {
		for k := 0; k < j; k++ {
			if src[k] == src[j] {
				dup[j] = true
			}
		}
	}
	for j := 0; j < n; j++ {
		if dup[j] {
			continue
		}
		num := 1.0
		for k := 0; k < n; k++ {
			if k == j || dup[k] {
				continue
			}
			num *= (x - src[k]) / (src[j] - src[k])
		}
		w[j] = num
	}
	return w
}
