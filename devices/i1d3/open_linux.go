// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i1d3

import (
	"errors"
	"os"
	"os/exec"
)

// Open acquires the hidraw device node at path and returns a Dev in the
// Connected state.
//
// If opts.RelaxPermissions is set, Open first shells out to relax the node's
// permissions (sudo chmod 666 path) before opening it, the same
// fire-and-forget privileged-command pattern host/sysfs's onewire driver
// uses to modprobe a kernel module before touching its sysfs tree. This is
// OFF by default; see Opts.RelaxPermissions.
func Open(path string, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}

	if o.RelaxPermissions {
		// Best effort: a failure here is not fatal, the subsequent OpenFile
		// will surface the real permission error if relaxing didn't help.
		_ = exec.Command("sudo", "chmod", "666", path).Run()
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, newErr("open", DeviceNotFound, err)
		case os.IsPermission(err):
			return nil, newErr("open", PermissionDenied, err)
		default:
			return nil, newErr("open", OpenFailed, err)
		}
	}
	return New(path, &fileConn{f: f}, &o), nil
}

// fileConn adapts an *os.File opened on a hidraw node to the Conn
// interface: fixed 64-byte reads and writes, errno mapped by the caller.
type fileConn struct {
	f *os.File
}

func (c *fileConn) Send(packet [64]byte) error {
	n, err := c.f.Write(packet[:])
	if err != nil {
		return err
	}
	if n != len(packet) {
		return errors.New("short write")
	}
	return nil
}

func (c *fileConn) Recv() ([64]byte, error) {
	var buf [64]byte
	n, err := c.f.Read(buf[:])
	if err != nil {
		return buf, err
	}
	if n < len(buf) {
		return buf, errors.New("short read")
	}
	return buf, nil
}

func (c *fileConn) Close() error {
	return c.f.Close()
}
