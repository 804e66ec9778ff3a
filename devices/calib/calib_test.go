// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package calib

import (
	"context"
	"testing"
	"time"

	"periph.io/x/colorcal/devices/i1d3"
)

func init() {
	doSleep = func(d time.Duration) {}
}

// linearSensor models a panel whose chromaticity varies linearly with gain,
// the same model the reference implementation's test harness simulates.
type linearSensor struct {
	sink *recordingSink
}

func (s *linearSensor) Measure() (i1d3.ColorResult, error) {
	g := s.sink.last
	x := 0.25 + 4e-4*float64(g[0]) + 1e-4*float64(g[1]) + 5e-5*float64(g[2])
	y := 0.23 + 1e-4*float64(g[0]) + 5e-4*float64(g[1]) + 1e-4*float64(g[2])
	return i1d3.ColorResult{X: x, Y: y, Z: 1 - x - y}, nil
}

// recordingSink is a Sink that remembers the last gain it was asked to
// apply, so linearSensor can read back the panel's current state, and
// counts how many times it was called.
type recordingSink struct {
	last  Gain
	calls int
}

func (s *recordingSink) SetGain(g Gain) error {
	s.last = g
	s.calls++
	return nil
}

func TestSessionRun_convergesOnLinearPanel(t *testing.T) {
	sink := &recordingSink{last: Gain{maxGain, maxGain, maxGain}}
	sensor := &linearSensor{sink: sink}
	s := NewState(0.3127, 0.3290)
	sess := NewSession(s, sensor, sink)

	if err := sess.Run(context.Background(), 20); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Dmin >= 1e-3 {
		t.Fatalf("Dmin = %v, want < 1e-3 after 20 steps", s.Dmin)
	}
}

func TestSessionRun_convergeThresholdExitsEarly(t *testing.T) {
	sink := &recordingSink{last: Gain{maxGain, maxGain, maxGain}}
	sensor := &linearSensor{sink: sink}
	s := NewState(0.3127, 0.3290)
	sess := NewSession(s, sensor, sink)
	sess.ConvergeThreshold = 0.005 // the panel model crosses this by step 2

	if err := sess.Run(context.Background(), 20); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 4 SetGain calls for the sensitivity probe (base, R probe, G probe,
	// restore), plus 2 per step actually run.
	const probeCalls = 4
	gotSteps := (sink.calls - probeCalls) / 2
	if gotSteps >= 20 {
		t.Fatalf("ConvergeThreshold did not stop the loop early: ran all 20 steps")
	}
	if s.Dmin >= sess.ConvergeThreshold {
		t.Fatalf("Dmin = %v, want < ConvergeThreshold %v", s.Dmin, sess.ConvergeThreshold)
	}
}

func TestStep_gainStaysClamped(t *testing.T) {
	sink := &recordingSink{last: Gain{maxGain, maxGain, maxGain}}
	sensor := &linearSensor{sink: sink}
	s := NewState(0.9, 0.9) // unreachable target, forces large corrections
	s.Rs, s.Gs = defaultRSens, defaultGSens

	for i := 1; i <= 20; i++ {
		if _, err := Step(context.Background(), s, sensor, sink, i); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		for ch, v := range s.G {
			if v < 0 || v > maxGain {
				t.Fatalf("step %d: gain[%d] = %d out of [0,%d]", i, ch, v, maxGain)
			}
		}
	}
}

func TestStep_dminIsMonotonicNonIncreasing(t *testing.T) {
	sink := &recordingSink{last: Gain{maxGain, maxGain, maxGain}}
	sensor := &linearSensor{sink: sink}
	s := NewState(0.3127, 0.3290)
	s.Rs, s.Gs = defaultRSens, defaultGSens

	prev := s.Dmin
	for i := 1; i <= 20; i++ {
		if _, err := Step(context.Background(), s, sensor, sink, i); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		if s.Dmin > prev {
			t.Fatalf("step %d: Dmin increased from %v to %v", i, prev, s.Dmin)
		}
		prev = s.Dmin
	}
}

func TestCheckSensitivity_fallsBackToDefaultsOnFlatPanel(t *testing.T) {
	sink := &recordingSink{last: Gain{maxGain, maxGain, maxGain}}
	flat := flatSensor{}
	s := NewState(0.3127, 0.3290)

	if err := CheckSensitivity(context.Background(), s, flat, sink); err != nil {
		t.Fatalf("CheckSensitivity: %v", err)
	}
	if s.Rs != defaultRSens || s.Gs != defaultGSens {
		t.Fatalf("Rs=%v Gs=%v, want defaults %v/%v", s.Rs, s.Gs, defaultRSens, defaultGSens)
	}
}

// flatSensor never varies with gain, exercising the §4.4 step 5 fallback.
type flatSensor struct{}

func (flatSensor) Measure() (i1d3.ColorResult, error) {
	return i1d3.ColorResult{X: 0.31, Y: 0.33, Z: 0.36}, nil
}

func TestGain_clamp(t *testing.T) {
	cases := []struct {
		in, want Gain
	}{
		{Gain{-5, 200, 96}, Gain{0, 192, 96}},
		{Gain{192, 192, 192}, Gain{192, 192, 192}},
		{Gain{0, 0, 0}, Gain{0, 0, 0}},
	}
	for _, c := range cases {
		if got := c.in.Clamp(); got != c.want {
			t.Errorf("Gain(%v).Clamp() = %v, want %v", c.in, got, c.want)
		}
	}
}
