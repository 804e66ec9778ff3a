// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package colorimetry

import "math"

// targetGamma is the ideal transfer function BuildGamma corrects toward.
const targetGamma = 2.2

// flatYThreshold is the |y1 - y0| below which a gamma segment is treated as
// flat, falling back to its left endpoint rather than dividing by ~zero.
const flatYThreshold = 1e-9

// BuildGamma derives a 256-entry gamma correction table from 11 luminance
// samples taken at equally spaced input code values {0, 25.5, 51, ..., 255}.
//
// samples[10] is the white point (code value 255); its Y sets the scale for
// the ideal gamma-2.2 target at every other index.
//
// The segment search preserves the reference implementation's behavior:
// when target luminance falls outside every [samples[s].Y, samples[s+1].Y]
// bracket, the search silently falls back to segment 0 instead of clamping
// to the nearest endpoint segment (see design notes). This is deliberate,
// not a bug left in by oversight.
func BuildGamma(samples [11]Measurement) GammaTable {
	lMax := samples[10].Y
	var table GammaTable
	for i := 0; i < 256; i++ {
		targetY := math.Pow(float64(i)/255, targetGamma) * lMax

		seg := 0
		for s := 0; s < 10; s++ {
			if targetY >= samples[s].Y && targetY <= samples[s+1].Y {
				seg = s
				break
			}
		}

		x0 := float64(seg) * 25.5
		x1 := float64(seg+1) * 25.5
		y0 := samples[seg].Y
		y1 := samples[seg+1].Y

		var v float64
		if math.Abs(y1-y0) < flatYThreshold {
			v = x0
		} else {
			v = x0 + (targetY-y0)*(x1-x0)/(y1-y0)
		}

		table[i] = clamp255(int(v)) // int() truncates toward zero, per §4.3 step 4.
	}
	return table
}

func clamp255(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
