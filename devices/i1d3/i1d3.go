// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i1d3

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"periph.io/x/colorcal/conn/physic"
)

// Opts configures a Dev.
//
// The zero value is not a valid Opts; use DefaultOpts and override the
// fields that need to differ, the same convention bmxx80.Opts uses.
type Opts struct {
	// RelaxPermissions, if true, makes Open() attempt to chmod the device
	// path world-readable/writable via a privileged shell escalation before
	// opening it. OFF by default: see §9 of the design notes. Callers that
	// already guarantee access (udev rule, correct group membership) should
	// leave this false.
	RelaxPermissions bool

	// CalibrationMatrix is the 3x3 emissive calibration matrix applied to
	// the raw (R, G, B) frequencies to yield (X, Y, Z). It is specific to
	// the physical sensor unit in principle; DefaultOpts carries the
	// reference implementation's matrix.
	CalibrationMatrix [3][3]float64
}

// DefaultOpts is the recommended default options, matching the reference
// implementation's compiled-in calibration matrix and its permission policy
// left off.
var DefaultOpts = Opts{
	RelaxPermissions: false,
	CalibrationMatrix: [3][3]float64{
		{0.035814, -0.021980, 0.016668},
		{0.014015, 0.016946, 0.000451},
		{-0.000407, 0.000830, 0.078830},
	},
}

// Timing constants from §4.1 and §4.4. Exposed as variables, not constants,
// so tests can shrink them to keep the suite fast, the same trick
// bmxx80_test.go plays with doSleep.
var (
	initDelay     = 150 * time.Millisecond
	unlockBackoff = 400 * time.Millisecond
	measureDelay  = 500 * time.Millisecond
)

var doSleep = time.Sleep

// ColorResult is a single measurement, converted from raw sensor counts into
// CIE XYZ, chromaticity, correlated color temperature and CIE Lab (D50).
type ColorResult struct {
	X, Y, Z float64
	CCT     physic.Temperature
	L, A, B float64
}

// Chromaticity returns the normalized (x, y) projection of X, Y, Z.
//
// Per the data model invariant: if X+Y+Z > 0, x = X/(X+Y+Z) and
// y = Y/(X+Y+Z); otherwise both are 0.
func (c ColorResult) Chromaticity() (x, y float64) {
	sum := c.X + c.Y + c.Z
	if sum <= 0 {
		return 0, 0
	}
	return c.X / sum, c.Y / sum
}

// Dev is a handle to an i1Display3 colorimeter.
//
// A Dev owns both its transport and its DeviceState; unlike the reference
// implementation's process-wide file-descriptor-indexed state table, the
// state lives on the value itself (see design notes §9), so a caller cannot
// confuse two handles' states.
//
// A Dev is not safe for concurrent use: the protocol is strictly
// request/response over a single channel, so methods take an internal mutex
// only to prevent a caller from racing two goroutines into the same handle,
// not to allow concurrent measurement (see §5).
type Dev struct {
	mu    sync.Mutex
	conn  Conn
	state DeviceState
	opts  Opts
	path  string
}

// String implements fmt.Stringer.
func (d *Dev) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fmt.Sprintf("i1d3{%s, %s}", d.path, d.state)
}

// State returns the device's current position in its connection lifecycle.
func (d *Dev) State() DeviceState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// New wraps an already-open Conn as a Dev in the Connected state.
//
// This is the entry point tests and non-Linux callers use; Open is the
// entry point that also owns acquiring the transport from a filesystem
// path.
func New(path string, conn Conn, opts *Opts) *Dev {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	return &Dev{conn: conn, state: Connected, opts: o, path: path}
}

// InitSequence sends the eight fixed init packets and waits for their
// acknowledgement. It requires the device to be Connected and transitions it
// to Initialized on success.
func (d *Dev) InitSequence() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Connected {
		return newErr("init_sequence", NotInitialized, nil)
	}

	opcodes := [8][2]byte{
		{0x00, 0x01}, {0x00, 0x10}, {0x00, 0x11}, {0x00, 0x12},
		{0x10, 0x00}, {0x00, 0x31}, {0x00, 0x13}, {0x00, 0x20},
	}
	for _, op := range opcodes {
		var pkt [64]byte
		pkt[0], pkt[1] = op[0], op[1]
		if err := d.conn.Send(pkt); err != nil {
			return newErr("init_sequence", OpenFailed, err)
		}
		doSleep(initDelay)
		if _, err := d.conn.Recv(); err != nil {
			return newErr("init_sequence", InvalidResponse, err)
		}
	}
	d.state = Initialized
	return nil
}

// Unlock performs the two-round challenge-response handshake with a single
// key. It requires the device to be Initialized and transitions it to
// Unlocked on success.
func (d *Dev) Unlock(key UnlockKey) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unlockLocked(key)
}

func (d *Dev) unlockLocked(key UnlockKey) error {
	if d.state != Initialized {
		return newErr("unlock", NotInitialized, nil)
	}

	var challenge [64]byte
	challenge[0] = 0x99
	if err := d.conn.Send(challenge); err != nil {
		return newErr("unlock", OpenFailed, err)
	}
	resp, err := d.conn.Recv()
	if err != nil {
		return newErr("unlock", InvalidResponse, err)
	}
	if resp[1] != 0x99 {
		return newErr("unlock", InvalidResponse, nil)
	}

	c2, c3 := resp[2], resp[3]
	sc := scramble(c3, resp)
	sr := unlockResponse(sc, key)

	var pkt [64]byte
	pkt[0] = 0x9A
	for i := 0; i < 16; i++ {
		pkt[24+i] = c2 ^ sr[i]
	}
	if err := d.conn.Send(pkt); err != nil {
		return newErr("unlock", OpenFailed, err)
	}
	resp, err = d.conn.Recv()
	if err != nil {
		return newErr("unlock", InvalidResponse, err)
	}
	if resp[2] != 0x77 {
		return newErr("unlock", UnlockFailed, nil)
	}
	d.state = Unlocked
	return nil
}

// AutoUnlock tries every key in Catalog in order, backing off unlockBackoff
// between failed attempts since the device rate-limits them. It returns on
// the first success and fails with UnlockFailed if every key is rejected.
func (d *Dev) AutoUnlock() error {
	var lastErr error
	for i, key := range Catalog {
		log.Printf("i1d3: unlock attempt %d/%d: trying %s", i+1, len(Catalog), key.Name)
		func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			lastErr = d.unlockLocked(key)
		}()
		if lastErr == nil {
			log.Printf("i1d3: unlocked using %s keys", key.Name)
			return nil
		}
		if i < len(Catalog)-1 {
			doSleep(unlockBackoff)
		}
	}
	log.Printf("i1d3: all %d unlock keys failed", len(Catalog))
	return newErr("auto_unlock", UnlockFailed, lastErr)
}

// Measure requests a single reading, blocking for the sensor's integration
// period, and returns it converted to XYZ/xy/CCT/Lab. It requires the device
// to be Unlocked; a measurement never changes the device's state.
func (d *Dev) Measure() (ColorResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Unlocked {
		return ColorResult{}, newErr("measure", NotInitialized, nil)
	}

	pkt := [64]byte{0x04, 0x00, 0x9F, 0x24, 0x00, 0x00, 0x07, 0xE8, 0x03}
	if err := d.conn.Send(pkt); err != nil {
		return ColorResult{}, newErr("measure", OpenFailed, err)
	}
	doSleep(measureDelay)
	resp, err := d.conn.Recv()
	if err != nil {
		return ColorResult{}, newErr("measure", InvalidResponse, err)
	}
	if resp[1] != 0x04 {
		return ColorResult{}, newErr("measure", InvalidResponse, nil)
	}

	rCnt := binary.LittleEndian.Uint32(resp[2:6])
	gCnt := binary.LittleEndian.Uint32(resp[6:10])
	bCnt := binary.LittleEndian.Uint32(resp[10:14])
	rClk := binary.LittleEndian.Uint32(resp[14:18])
	gClk := binary.LittleEndian.Uint32(resp[18:22])
	bClk := binary.LittleEndian.Uint32(resp[22:26])

	r := toHz(rCnt, rClk)
	g := toHz(gCnt, gClk)
	b := toHz(bCnt, bClk)

	m := d.opts.CalibrationMatrix
	res := ColorResult{
		X: m[0][0]*r + m[0][1]*g + m[0][2]*b,
		Y: m[1][0]*r + m[1][1]*g + m[1][2]*b,
		Z: m[2][0]*r + m[2][1]*g + m[2][2]*b,
	}

	x, y := res.Chromaticity()
	res.CCT = cct(x, y)
	res.L, res.A, res.B = lab(res.X, res.Y, res.Z)
	return res, nil
}

// Close releases the transport and returns the device to Disconnected, from
// any prior state.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = Disconnected
	if c, ok := d.conn.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// toHz converts a raw (count, clock) pair into a channel frequency in Hz.
func toHz(cnt, clk uint32) float64 {
	if cnt <= 1 || clk == 0 {
		return 0
	}
	return float64(cnt-1) * 0.25 / (float64(clk) / 48_000_000)
}

// cct approximates correlated color temperature from chromaticity using
// McCamy's formula.
func cct(x, y float64) physic.Temperature {
	n := (x - 0.3320) / (0.1858 - y)
	k := 449*n*n*n + 3525*n*n + 6823.3*n + 5520.33
	return physic.Temperature(k * float64(physic.Kelvin))
}

// labFunction is the CIE Lab nonlinearity used to derive L*, a*, b* from
// XYZ relative to a reference white.
func labFunction(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// D50 reference white, used because display calibration targets are
// conventionally reported relative to it.
const (
	d50X = 96.42
	d50Y = 100.0
	d50Z = 82.49
)

// lab converts XYZ to CIE L*a*b* relative to the D50 reference white.
func lab(x, y, z float64) (l, a, b float64) {
	fx := labFunction(x / d50X)
	fy := labFunction(y / d50Y)
	fz := labFunction(z / d50Z)
	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return l, a, b
}
