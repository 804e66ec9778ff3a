// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package colorimetry

// Measurement is a single chromaticity and luminance reading, the shared
// input type the gamut solver and gamma builder both consume.
//
// Cx, Cy are the CIE xy chromaticity coordinates; Y is luminance. The
// chromaticity fields are named Cx/Cy rather than X/Y to leave Y
// unambiguous as luminance, matching how the rest of this package refers
// to "Y" throughout the §4.2/§4.3 formulas.
type Measurement struct {
	Cx, Cy float64
	Y      float64
}

// Matrix3 is a 3x3 real-valued matrix, applied to a column vector as a
// left-multiply.
type Matrix3 [3][3]float64

// Identity3 is the 3x3 identity matrix: "no correction" for a gamut
// correction matrix.
var Identity3 = Matrix3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// GammaTable is a 256-entry tone-mapping table: index is the input code
// value, value is the corrected code value, each clamped to [0, 255].
type GammaTable [256]int
