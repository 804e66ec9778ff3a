// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package calib

import (
	"context"
	"log"
	"math"
	"time"

	"periph.io/x/colorcal/devices/i1d3"
)

// Sensor is the measurement side the controller drives, satisfied by
// *i1d3.Dev.
type Sensor interface {
	Measure() (i1d3.ColorResult, error)
}

// settleDelay is the pause after applying a new gain before the panel's
// output is considered stable enough to measure again.
var settleDelay = 100 * time.Millisecond

var doSleep = time.Sleep

// sensitivityStep is the gain delta check_sensitivity probes with, per §4.4.
const sensitivityStep = 15

// minSensitivity is the floor check_sensitivity and step both substitute a
// default for, to avoid dividing by (near) zero on a panel that doesn't
// respond to a probe.
const minSensitivity = 1e-7

// defaultRSens and defaultGSens are the fallback sensitivities §4.4 names.
const (
	defaultRSens = 6e-4
	defaultGSens = 5e-4
)

// defaultSteps is the session length a caller gets if it doesn't choose one.
const defaultSteps = 20

// State is a calibration session's mutable record: target chromaticity,
// current and best-seen gain, the minimum distance observed so far, and the
// per-channel sensitivity estimates the step algorithm scales its
// corrections by.
//
// dmin is the smallest Euclidean distance in xy between the target and any
// measurement taken so far; b is the gain that produced it. Both are updated
// only by Step.
type State struct {
	TargetX, TargetY float64
	G                Gain
	B                Gain
	Dmin             float64
	Rs, Gs           float64
}

// NewState returns a session targeting (targetX, targetY), starting from the
// maximum gain on every channel, with no measurement taken yet.
func NewState(targetX, targetY float64) *State {
	return &State{
		TargetX: targetX,
		TargetY: targetY,
		G:       Gain{maxGain, maxGain, maxGain},
		B:       Gain{maxGain, maxGain, maxGain},
		Dmin:    math.Inf(1),
	}
}

// CheckSensitivity measures the panel's gain->chromaticity slope on the red
// and green channels, probing a -15 gain nudge on each in turn and restoring
// the original gain afterward. Panels that don't respond measurably (either
// sensitivity below minSensitivity) fall back to the reference
// implementation's defaults and log a warning.
func CheckSensitivity(ctx context.Context, s *State, sensor Sensor, sink Sink) error {
	if err := sink.SetGain(s.G); err != nil {
		return err
	}
	base, err := sensor.Measure()
	if err != nil {
		return err
	}
	baseX, baseY := base.Chromaticity()

	rProbe := s.G
	rProbe[0] = clampGain(rProbe[0] - sensitivityStep)
	if err := sink.SetGain(rProbe); err != nil {
		return err
	}
	rTest, err := sensor.Measure()
	if err != nil {
		return err
	}
	rTestX, _ := rTest.Chromaticity()
	s.Rs = math.Abs(rTestX-baseX) / sensitivityStep

	gProbe := s.G
	gProbe[1] = clampGain(gProbe[1] - sensitivityStep)
	if err := sink.SetGain(gProbe); err != nil {
		return err
	}
	gTest, err := sensor.Measure()
	if err != nil {
		return err
	}
	_, gTestY := gTest.Chromaticity()
	s.Gs = math.Abs(gTestY-baseY) / sensitivityStep

	if err := sink.SetGain(s.G); err != nil {
		return err
	}
	sleep(ctx, settleDelay)

	if s.Rs < minSensitivity || s.Gs < minSensitivity {
		log.Printf("calib: panel sensitivity too low to measure (rs=%.6g gs=%.6g), using defaults", s.Rs, s.Gs)
		s.Rs, s.Gs = defaultRSens, defaultGSens
	}
	return nil
}

// Step applies the current gain, measures the result, updates the
// best-seen record, and computes the next gain via a proportional
// correction scaled by the sensitivities CheckSensitivity established. It
// returns the measured distance to target, which Run uses to evaluate
// ConvergeThreshold.
func Step(ctx context.Context, s *State, sensor Sensor, sink Sink, stepNo int) (float64, error) {
	if err := sink.SetGain(s.G); err != nil {
		return 0, err
	}
	m, err := sensor.Measure()
	if err != nil {
		return 0, err
	}
	mx, my := m.Chromaticity()

	dx := s.TargetX - mx
	dy := s.TargetY - my
	d := math.Hypot(dx, dy)

	if d < s.Dmin {
		s.Dmin = d
		s.B = s.G
	}

	alpha := 0.4
	if d > 0.005 {
		alpha = 0.8
	}

	rs := s.Rs
	if rs < minSensitivity {
		rs = minSensitivity
	}
	gs := s.Gs
	if gs < minSensitivity {
		gs = minSensitivity
	}
	dr := alpha * dx / rs
	dg := alpha * dy / gs

	next := s.G
	next[0] = clampGain(next[0] + round(dr))
	next[1] = clampGain(next[1] + round(dg))
	if d > 0.01 {
		next[2] = clampGain(next[2] + round((dx+dy)*40))
	}
	s.G = next

	log.Printf("calib: step %d R:%d G:%d B:%d | x:%.4f y:%.4f | dist:%.5f", stepNo, s.G[0], s.G[1], s.G[2], mx, my, d)

	if err := sink.SetGain(s.G); err != nil {
		return d, err
	}
	sleep(ctx, settleDelay)
	return d, nil
}

// Session drives a *State through a full calibration run against a Sensor
// and a Sink.
type Session struct {
	State  *State
	Sensor Sensor
	Sink   Sink

	// ConvergeThreshold, when non-zero, makes Run exit once a step measures
	// a distance below it instead of spending the full step budget. The
	// zero value disables early exit, matching §4.4's "no automatic
	// convergence criterion" default: this is an opt-in the reference
	// behavior doesn't have.
	ConvergeThreshold float64
}

// NewSession returns a Session ready to Run against state, sensor and sink.
func NewSession(state *State, sensor Sensor, sink Sink) *Session {
	return &Session{State: state, Sensor: sensor, Sink: sink}
}

// Run performs one sensitivity probe followed by up to steps sequential
// Step calls. steps <= 0 defaults to defaultSteps.
//
// By default there is no convergence criterion (§4.4): Run spends the full
// budget, relying on the [0,192] gain clamp to contain divergence. Setting
// ConvergeThreshold opts into exiting as soon as a step's measured distance
// drops below it.
func (sess *Session) Run(ctx context.Context, steps int) error {
	if steps <= 0 {
		steps = defaultSteps
	}
	if err := CheckSensitivity(ctx, sess.State, sess.Sensor, sess.Sink); err != nil {
		return err
	}
	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		d, err := Step(ctx, sess.State, sess.Sensor, sess.Sink, i)
		if err != nil {
			return err
		}
		if sess.ConvergeThreshold > 0 && d < sess.ConvergeThreshold {
			return nil
		}
	}
	return nil
}

// round rounds v to the nearest integer, with halves rounded away from zero.
func round(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return int(v - 0.5)
}

// sleep waits for d unless ctx is already done.
func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	default:
		doSleep(d)
	}
}
