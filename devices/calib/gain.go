// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package calib

// maxGain is the upper bound of a TV gain register, per §4.4.
const maxGain = 192

// Gain is an RGB gain triple, each channel clamped to [0, maxGain].
type Gain [3]int

// clampGain returns v clamped to [0, maxGain].
func clampGain(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxGain {
		return maxGain
	}
	return v
}

// Clamp returns g with every channel clamped to [0, maxGain].
func (g Gain) Clamp() Gain {
	return Gain{clampGain(g[0]), clampGain(g[1]), clampGain(g[2])}
}
