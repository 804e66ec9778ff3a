// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package colorimetry holds the two open-loop display calibration
// transforms: a 3x3 gamut correction matrix solver and a 256-entry gamma
// look-up-table builder. Both are pure functions of pre-collected
// measurement arrays; neither touches a sensor or a display.
package colorimetry
