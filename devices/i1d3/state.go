// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i1d3

// DeviceState is the position of a Dev in its connection lifecycle.
//
// States only move forward: Disconnected -> Connected -> Initialized ->
// Unlocked. Close() returns to Disconnected from any state.
type DeviceState int

const (
	// Disconnected is the state before Open() and after Close().
	Disconnected DeviceState = iota
	// Connected is the state after Open() succeeds.
	Connected
	// Initialized is the state after InitSequence() succeeds.
	Initialized
	// Unlocked is the terminal operational state, reached after Unlock() or
	// AutoUnlock() succeeds. Measure() requires this state.
	Unlocked
)

const stateName = "DisconnectedConnectedInitializedUnlocked"

var stateIndex = [...]uint8{0, 12, 21, 32, 40}

// String implements fmt.Stringer.
func (s DeviceState) String() string {
	if s < 0 || int(s) >= len(stateIndex)-1 {
		return "DeviceState(invalid)"
	}
	return stateName[stateIndex[s]:stateIndex[s+1]]
}
