// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package colorimetry

import (
	"math"
	"testing"
)

func idealGamma22Samples(lMax float64) [11]Measurement {
	var samples [11]Measurement
	for i := 0; i < 11; i++ {
		frac := float64(i) / 10
		samples[i] = Measurement{Y: math.Pow(frac, targetGamma) * lMax}
	}
	return samples
}

func TestBuildGamma_ideal22PanelIsNearIdentity(t *testing.T) {
	samples := idealGamma22Samples(100)
	table := BuildGamma(samples)

	if table[0] != 0 {
		t.Fatalf("table[0] = %d, want 0", table[0])
	}
	if table[255] != 255 {
		t.Fatalf("table[255] = %d, want 255", table[255])
	}
	for i := 1; i < 256; i++ {
		if table[i] < table[i-1] {
			t.Fatalf("table not monotonic at %d: table[%d]=%d < table[%d]=%d", i, i, table[i], i-1, table[i-1])
		}
	}
	const maxDrift = 10
	for i := 0; i < 256; i++ {
		d := table[i] - i
		if d < 0 {
			d = -d
		}
		if d > maxDrift {
			t.Fatalf("table[%d] = %d, drifts %d from identity, want <= %d", i, table[i], d, maxDrift)
		}
	}
}

func TestBuildGamma_flatPanelProducesAllZero(t *testing.T) {
	var samples [11]Measurement
	for i := range samples {
		samples[i] = Measurement{Y: 50}
	}
	table := BuildGamma(samples)
	for i, v := range table {
		if v != 0 {
			t.Fatalf("table[%d] = %d, want 0 for a flat panel (segment 0 is used and is flat, so v = x0 = 0)", i, v)
		}
	}
}

func TestBuildGamma_clampsToByteRange(t *testing.T) {
	samples := idealGamma22Samples(100)
	table := BuildGamma(samples)
	for i, v := range table {
		if v < 0 || v > 255 {
			t.Fatalf("table[%d] = %d out of [0,255]", i, v)
		}
	}
}
