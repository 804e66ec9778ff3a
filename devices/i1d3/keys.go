// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i1d3

// UnlockKey is the ordered pair of 32-bit words the device's
// challenge-response handshake is keyed on.
type UnlockKey struct {
	Name   string
	K0, K1 uint32
}

// Catalog is the set of eleven vendor keys known to unlock an i1Display3,
// tried in this order by AutoUnlock. The device rate-limits failed attempts,
// so order only affects how quickly the common case (Retail) succeeds.
//
// These are the same eleven keys Argyll CMS's i1d3 driver carries; they are
// vendor-branding keys, not secrets tied to an individual unit.
var Catalog = []UnlockKey{
	{"Retail", 0xe9622e9f, 0x8d63e133},
	{"Munki", 0xe01e6e0a, 0x257462de},
	{"OEM", 0xcaa62b2c, 0x30815b61},
	{"NEC", 0xa9119479, 0x5b168761},
	{"Quato", 0x160eb6ae, 0x14440e70},
	{"HP", 0x291e41d7, 0x51937bdd},
	{"Wacom", 0x1abfae03, 0xf25ac8e8},
	{"TPA", 0x828c43e9, 0xcbb8a8ed},
	{"Barco", 0xe8d1a980, 0xd146f7ad},
	{"Crysta", 0x171ae295, 0x2e5c7664},
	{"Viewsonic", 0x64d8c546, 0x4b24b4a7},
}
