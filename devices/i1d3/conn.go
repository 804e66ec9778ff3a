// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i1d3

// Conn is the lowest common denominator for the opaque 64-byte HID packet
// channel a Dev is built on.
//
// Unlike conn.Conn's Tx(w, r []byte), which models a single-length
// simultaneous transaction the way SPI/I²C do, the i1Display3 protocol is a
// half-duplex command/response exchange over fixed 64-byte packets with an
// inter-packet delay the caller (not the transport) is responsible for
// observing (see Dev.InitSequence, Dev.Unlock, Dev.Measure). Send and Recv
// are kept as two separate methods so a fake transport can assert on the
// exact bytes written before producing a canned reply, the same role
// i2ctest.Playback plays for conn/i2c.
type Conn interface {
	// Send writes a single 64-byte packet. It must return once the packet has
	// been accepted by the transport, not necessarily once the device has
	// acted on it.
	Send(packet [64]byte) error

	// Recv reads a single 64-byte packet. Implementations that can only
	// return a short read (fewer than 64 bytes) must still return the bytes
	// they have; InvalidResponse is the caller's job to raise.
	Recv() ([64]byte, error)
}
