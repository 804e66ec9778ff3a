// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i1d3test is meant to be used to test code built on i1d3.Dev
// without a real colorimeter attached.
package i1d3test

import (
	"errors"
	"fmt"
	"sync"
)

// IO registers a single Send/Recv pair that happened, or is expected to
// happen, on a i1d3.Conn.
type IO struct {
	Send [64]byte
	Recv [64]byte
}

// Record implements i1d3.Conn and records every packet exchanged with it.
//
// This can then be used to seed a Playback for a "replay" based unit test,
// the same way i2ctest.Record feeds i2ctest.Playback.
type Record struct {
	sync.Mutex
	Ops []IO
}

// Send implements i1d3.Conn.
func (r *Record) Send(packet [64]byte) error {
	r.Lock()
	defer r.Unlock()
	r.Ops = append(r.Ops, IO{Send: packet})
	return nil
}

// Recv implements i1d3.Conn. It always returns the zero packet; Record is
// meant for capturing what a caller sends, not for producing replies.
func (r *Record) Recv() ([64]byte, error) {
	r.Lock()
	defer r.Unlock()
	if len(r.Ops) == 0 {
		return [64]byte{}, errors.New("i1d3test: Recv() with no matching Send()")
	}
	return r.Ops[len(r.Ops)-1].Recv, nil
}

// Playback implements i1d3.Conn and plays back a scripted sequence of
// packet exchanges, failing the test-under-load on any mismatch.
//
// This is the i1d3 analogue of conn/i2c/i2ctest.Playback: an ordered list of
// expected writes with their corresponding canned reads.
type Playback struct {
	sync.Mutex
	Ops []IO
	// DontPanic has no effect: Send and Recv never panic and always return
	// an error on a script mismatch. It is kept for parity with
	// i2ctest.Playback's field of the same name.
	DontPanic bool

	pending bool
}

// Send implements i1d3.Conn.
func (p *Playback) Send(packet [64]byte) error {
	p.Lock()
	defer p.Unlock()
	if len(p.Ops) == 0 {
		return errors.New("i1d3test: unexpected Send()")
	}
	if p.pending {
		return errors.New("i1d3test: Send() called twice without an intervening Recv()")
	}
	if p.Ops[0].Send != packet {
		return fmt.Errorf("i1d3test: unexpected packet %#v != %#v", packet, p.Ops[0].Send)
	}
	p.pending = true
	return nil
}

// Recv implements i1d3.Conn.
func (p *Playback) Recv() ([64]byte, error) {
	p.Lock()
	defer p.Unlock()
	if len(p.Ops) == 0 || !p.pending {
		return [64]byte{}, errors.New("i1d3test: unexpected Recv()")
	}
	r := p.Ops[0].Recv
	p.Ops = p.Ops[1:]
	p.pending = false
	return r, nil
}

// Close reports whether every scripted operation was consumed. Call it at
// the end of a test the way i2ctest.Playback.Close() is called.
func (p *Playback) Close() error {
	p.Lock()
	defer p.Unlock()
	if len(p.Ops) != 0 {
		return fmt.Errorf("i1d3test: expected playback to be empty:\n%#v", p.Ops)
	}
	return nil
}
