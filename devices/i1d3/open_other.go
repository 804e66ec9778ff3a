// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// +build !linux

package i1d3

import "errors"

// Open is not supported outside Linux: the i1Display3 is only exposed here
// as a hidraw character device. Use New with a Conn obtained some other way
// (a fake for tests, or a platform-specific transport of the caller's own).
func Open(path string, opts *Opts) (*Dev, error) {
	return nil, newErr("open", OpenFailed, errors.New("i1d3: Open is only supported on linux"))
}
