// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i1d3

// scramble recovers the 8-byte scrambled challenge from a captured
// challenge-response packet: sc[i] = c3 XOR buf[35+i].
func scramble(c3 byte, buf [64]byte) [8]byte {
	var sc [8]byte
	for i := range sc {
		sc[i] = c3 ^ buf[35+i]
	}
	return sc
}

// challengeWords packs the scrambled challenge bytes into two 32-bit words
// by the device's fixed permutation.
func challengeWords(sc [8]byte) (ci0, ci1 uint32) {
	ci0 = uint32(sc[3])<<24 | uint32(sc[0])<<16 | uint32(sc[4])<<8 | uint32(sc[6])
	ci1 = uint32(sc[1])<<24 | uint32(sc[7])<<16 | uint32(sc[2])<<8 | uint32(sc[5])
	return ci0, ci1
}

// byteSum sums the four little-endian bytes of a 32-bit word modulo 256.
//
// Go's uint8 arithmetic wraps on overflow the same way the reference
// implementation's uint8_t-returning keySum() does.
func byteSum(v uint32) uint8 {
	return uint8(v) + uint8(v>>8) + uint8(v>>16) + uint8(v>>24)
}

// byteAt extracts the byte at the given bit offset of a 32-bit word.
func byteAt(v uint32, shift uint) uint8 {
	return uint8(v >> shift)
}

// unlockResponse computes the 16-byte crypto response for a scrambled
// challenge and key, per the §4.1 handshake. All arithmetic is intentionally
// unsigned 32-bit or 8-bit so it wraps (two's-complement negation, modular
// add/sub/mul) the way the original C implementation's uint32_t/uint8_t
// arithmetic does.
func unlockResponse(sc [8]byte, key UnlockKey) [16]byte {
	ci0, ci1 := challengeWords(sc)

	nK0 := ^key.K0 + 1
	nK1 := ^key.K1 + 1

	co := [4]uint32{
		nK0 - ci1,
		nK1 - ci0,
		ci1 * nK0,
		ci0 * nK1,
	}

	var sum uint32
	for _, b := range sc {
		sum += uint32(b)
	}
	sum += uint32(byteSum(nK0)) + uint32(byteSum(nK1))
	s0 := uint8(sum)
	s1 := uint8(sum >> 8)

	var sr [16]byte
	sr[0] = byteAt(co[0], 16) + s0
	sr[1] = byteAt(co[2], 8) - s1
	sr[2] = byteAt(co[3], 0) + s1
	sr[3] = byteAt(co[1], 16) + s0
	sr[4] = byteAt(co[2], 16) - s1
	sr[5] = byteAt(co[3], 16) - s0
	sr[6] = byteAt(co[1], 24) - s0
	sr[7] = byteAt(co[0], 0) - s1
	sr[8] = byteAt(co[3], 8) + s0
	sr[9] = byteAt(co[2], 24) - s1
	sr[10] = byteAt(co[0], 8) + s0
	sr[11] = byteAt(co[1], 8) - s1
	sr[12] = byteAt(co[1], 0) + s1
	sr[13] = byteAt(co[3], 24) + s1
	sr[14] = byteAt(co[2], 0) + s0
	sr[15] = byteAt(co[0], 24) - s0
	return sr
}
