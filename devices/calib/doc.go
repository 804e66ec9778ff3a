// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package calib implements the closed-loop CCT calibration controller: it
// drives a colorimeter and a TV's gain registers toward a target
// chromaticity, one measure-adjust-apply step at a time.
package calib
