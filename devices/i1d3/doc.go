// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i1d3 controls an i1Display3-family colorimeter over a raw HID
// channel.
//
// The device is a USB HID sensor that reports the light it sees as three
// frequency-counter channels (one per filtered photodiode). Before it will
// answer measurement requests it must be walked through a fixed
// initialization handshake and a cryptographic challenge-response unlock
// using one of a small set of vendor keys.
//
// https://www.x-rite.com/categories/calibration-profiling/i1display-pro
package i1d3
