// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package colorimetry

import "math"

// bt709 is the canonical BT.709 RGB -> XYZ matrix, the gamut solver's
// correction target.
var bt709 = Matrix3{
	{0.4124, 0.3576, 0.1805},
	{0.2126, 0.7152, 0.0722},
	{0.0193, 0.1192, 0.9505},
}

// singularThreshold is the |det| below which a 3x3 matrix is treated as
// non-invertible.
const singularThreshold = 1e-12

// SolveGamut computes the 3x3 matrix that corrects a panel's native
// primaries onto BT.709, from four measurements: the red, green and blue
// primaries and the white point.
//
// It returns the zero Matrix3 if either the primary-direction matrix or the
// current-panel matrix it derives from the primaries is singular (§4.2
// step 3 and step 6).
func SolveGamut(r, g, b, w Measurement) Matrix3 {
	primaries := [3]Measurement{r, g, b}
	var p Matrix3
	for j, m := range primaries {
		p[0][j] = m.Cx / m.Cy
		p[1][j] = 1
		p[2][j] = (1 - m.Cx - m.Cy) / m.Cy
	}

	wXYZ := [3]float64{
		w.Cx * w.Y / w.Cy,
		w.Y,
		(1 - w.Cx - w.Cy) * w.Y / w.Cy,
	}

	pInv, ok := invert3(p)
	if !ok {
		return Matrix3{}
	}
	var s [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s[i] += pInv[i][j] * wXYZ[j]
		}
	}

	var curr Matrix3
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			curr[i][j] = p[i][j] * s[j]
		}
	}

	currInv, ok := invert3(curr)
	if !ok {
		return Matrix3{}
	}
	return mul3(bt709, currInv)
}

// det3 returns the determinant of a 3x3 matrix.
func det3(m Matrix3) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// invert3 computes the inverse of a 3x3 matrix via Cramer's rule, reporting
// false if the matrix is singular per singularThreshold.
func invert3(m Matrix3) (Matrix3, bool) {
	det := det3(m)
	if math.Abs(det) < singularThreshold {
		return Matrix3{}, false
	}
	invDet := 1 / det
	var inv Matrix3
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	inv[1][2] = (m[1][0]*m[0][2] - m[0][0]*m[1][2]) * invDet
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	inv[2][1] = (m[2][0]*m[0][1] - m[0][0]*m[2][1]) * invDet
	inv[2][2] = (m[0][0]*m[1][1] - m[1][0]*m[0][1]) * invDet
	return inv, true
}

// mul3 returns a * b.
func mul3(a, b Matrix3) Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}
