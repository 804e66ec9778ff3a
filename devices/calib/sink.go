// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package calib

import "log"

// Sink applies a gain triple to the panel under calibration. The TV side of
// this is external to this module (§2 of the design notes): a Sink
// implementation owns whatever transport (serial, network, IR) a given TV
// model speaks.
type Sink interface {
	SetGain(g Gain) error
}

// LogSink is a Sink that only narrates the gain it would have applied. It is
// the default for callers that have not wired a real TV transport, useful
// for dry runs and for exercising the controller loop in isolation.
type LogSink struct{}

// SetGain implements Sink.
func (LogSink) SetGain(g Gain) error {
	log.Printf("calib: set gain R=%d G=%d B=%d", g[0], g[1], g[2])
	return nil
}
