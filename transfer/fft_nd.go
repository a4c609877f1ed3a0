// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import "gonum.org/v1/gonum/fourier"

// fftAxis applies a 1D complex FFT (forward if forward, else the raw,
// unnormalized inverse) to every line of buf along the given axis of
// a row-major array whose dimension sizes are dims, in place. This is
// the standard separable decomposition of a multi-dimensional DFT
// into per-axis 1D transforms.
func fftAxis(dims []int, buf []complex128, axis int, forward bool) {
	n := dims[axis]
	t := fourier.NewCmplxFFT(n)

	stride := 1
	for d := axis + 1; d < len(dims); d++ {
		stride *= dims[d]
	}
	outerBefore := 1
	for d := 0; d < axis; d++ {
		outerBefore *= dims[d]
	}
	blockSize := dims[axis] * stride

	line := make([]complex128, n)
	for ob := 0; ob < outerBefore; ob++ {
		base := ob * blockSize
		for s := 0; s < stride; s++ {
			for i := 0; i < n; i++ {
				line[i] = buf[base+i*stride+s]
			}
			var res []complex128
			if forward {
				res = t.Coefficients(nil, line)
			} else {
				res = t.Sequence(nil, line)
			}
			for i := 0; i < n; i++ {
				buf[base+i*stride+s] = res[i]
			}
		}
	}
}

// fftNDForward applies the raw (unnormalized) forward DFT across all
// axes of a row-major array of the given dims.
func fftNDForward(dims []int, buf []complex128) {
	for axis := range dims {
		fftAxis(dims, buf, axis, true)
	}
}

// fftNDBackward applies the raw (unnormalized) inverse DFT across all
// axes of a row-major array of the given dims.
func fftNDBackward(dims []int, buf []complex128) {
	for axis := range dims {
		fftAxis(dims, buf, axis, false)
	}
}

// freqIndex maps a frequency index ci (0..coarseDim-1) along one axis
// of the coarse spectrum into its corresponding index in the zero-
// padded fine spectrum of size fineDim, preserving the low-half
// (positive-frequency) block at the front and the high-half
// (negative-frequency) block at the back — the "plus/cross" zero
// insertion of original_source's 3D spectral transfer.
func freqIndex(ci, coarseDim, fineDim int) int {
	if ci < coarseDim/2 {
		return ci
	}
	return fineDim - fineDim/4 + ci - coarseDim/2
}
