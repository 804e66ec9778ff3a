// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i1d3

import "testing"

func TestUnlockResponse_referenceVector(t *testing.T) {
	// Scenario 1 from the design spec: K = Retail key, sc = 0x01..0x08.
	key := UnlockKey{Name: "test", K0: 0xe9622e9f, K1: 0x8d63e133}
	sc := [8]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	want := [16]byte{
		0x97, 0x09, 0x9d, 0x9d, 0x2d, 0xa9, 0x6c, 0x59,
		0xda, 0xac, 0xd0, 0x17, 0xc8, 0x83, 0x48, 0x12,
	}
	got := unlockResponse(sc, key)
	if got != want {
		t.Fatalf("unlockResponse(%v, %v) = %#v, want %#v", sc, key, got, want)
	}
}

func TestUnlockResponse_deterministic(t *testing.T) {
	key := Catalog[0]
	sc := [8]byte{9, 8, 7, 6, 5, 4, 3, 2}
	a := unlockResponse(sc, key)
	b := unlockResponse(sc, key)
	if a != b {
		t.Fatalf("unlockResponse is not deterministic: %#v != %#v", a, b)
	}
}

func TestScramble(t *testing.T) {
	var buf [64]byte
	c3 := byte(0x42)
	for i := 0; i < 8; i++ {
		buf[35+i] = byte(i)
	}
	sc := scramble(c3, buf)
	for i := 0; i < 8; i++ {
		want := c3 ^ byte(i)
		if sc[i] != want {
			t.Errorf("sc[%d] = %#x, want %#x", i, sc[i], want)
		}
	}
}

func TestByteSum_wraps(t *testing.T) {
	// 0xFFFFFFFF -> four bytes of 0xFF, sum = 0x3FC, truncated to uint8 = 0xFC.
	if got := byteSum(0xFFFFFFFF); got != 0xFC {
		t.Fatalf("byteSum(0xFFFFFFFF) = %#x, want 0xfc", got)
	}
}
