// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i1d3

import "errors"

// Kind classifies the failure behind an Error.
type Kind int

// The kinds of failure a i1d3 operation can report, mapped to the numeric
// taxonomy user-facing layers (CLI exit codes, etc.) expect.
const (
	// Success is never returned as an error; it exists so Code(nil) == 0.
	Success Kind = iota
	// OpenFailed covers open() failures not otherwise classified.
	OpenFailed
	// PermissionDenied means the transport path exists but access was refused.
	PermissionDenied
	// DeviceNotFound means the transport path does not exist.
	DeviceNotFound
	// InvalidResponse means the device replied with a short read or an
	// unexpected opcode.
	InvalidResponse
	// Timeout means the transport reported a read timeout.
	Timeout
	// UnlockFailed means the device rejected the unlock response (for
	// AutoUnlock: every key in the catalog was rejected).
	UnlockFailed
	// MeasurementFailed means a measurement request could not be completed.
	MeasurementFailed
	// InvalidParameter means a caller passed a nil or out-of-range argument.
	InvalidParameter
	// NotInitialized means the operation was invoked while the device was in
	// the wrong state (see DeviceState).
	NotInitialized
)

var kindMessage = [...]string{
	Success:          "success",
	OpenFailed:       "failed to open device",
	PermissionDenied: "permission denied",
	DeviceNotFound:   "device not found",
	InvalidResponse:  "invalid response from device",
	Timeout:          "operation timeout",
	UnlockFailed:     "unlock failed",
	MeasurementFailed: "measurement failed",
	InvalidParameter: "invalid parameter",
	NotInitialized:   "device not initialized",
}

// kindCode mirrors the §6 numeric taxonomy: 0 is success, everything else is a
// negative code a CLI layer can exit() with.
var kindCode = [...]int{
	Success:            0,
	OpenFailed:         -1,
	PermissionDenied:   -2,
	DeviceNotFound:     -3,
	InvalidResponse:    -4,
	Timeout:            -5,
	UnlockFailed:       -6,
	MeasurementFailed:  -7,
	InvalidParameter:   -8,
	NotInitialized:     -9,
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindMessage) {
		return "unknown error"
	}
	return kindMessage[k]
}

// Error is the error type returned by every i1d3 operation that can fail.
//
// It carries a Kind so callers can branch on the failure category (per §7's
// "every operation returns a success/error discriminant" policy) without
// parsing the message string.
type Error struct {
	Op    string
	Kind  Kind
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return "i1d3: " + e.Op + ": " + e.Kind.String() + ": " + e.Cause.Error()
	}
	return "i1d3: " + e.Op + ": " + e.Kind.String()
}

// Unwrap allows errors.Is/errors.As to see through to the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newErr(op string, kind Kind, cause error) *Error {
	return &Error{Op: op, Kind: kind, Cause: cause}
}

// Code maps err to the §6 numeric error taxonomy. It returns 0 for a nil
// err, and OpenFailed's code (-1) for an error that isn't a *i1d3.Error, the
// same fallback the reference implementation's i1d3_open() used for
// unclassified errno values.
func Code(err error) int {
	if err == nil {
		return kindCode[Success]
	}
	var e *Error
	if errors.As(err, &e) {
		return kindCode[e.Kind]
	}
	return kindCode[OpenFailed]
}
