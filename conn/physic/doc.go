// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package physic declares a fixed-point unit type for carrying correlated
// color temperature.
//
// This is a narrowed copy of the teacher's physic package: it keeps only
// Temperature (stored as integer nanokelvin) and the S.I. prefix formatting
// it needs, dropping the dozen other physical quantities the teacher
// package carries (pressure, humidity, distance, ...) that this driver has
// no use for.
package physic
