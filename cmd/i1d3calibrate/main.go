// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// i1d3calibrate drives an i1Display3 colorimeter through the unlock
// handshake and runs a CCT calibration session against a TV sink.
//
// It has no real TV transport of its own (the TV sink is external to this
// module): it narrates the gains it would have applied via calib.LogSink
// rather than sending them anywhere. Wire in a real calib.Sink to drive an
// actual panel.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"periph.io/x/colorcal/devices/calib"
	"periph.io/x/colorcal/devices/i1d3"
)

func mainImpl() error {
	path := flag.String("dev", "/dev/hidraw0", "i1Display3 HID device path")
	relax := flag.Bool("relax-permissions", false, "chmod the device world-accessible before opening it")
	steps := flag.Int("steps", 20, "number of calibration steps to run")
	targetX := flag.Float64("target-x", 0.3127, "target chromaticity x (D65 default)")
	targetY := flag.Float64("target-y", 0.3290, "target chromaticity y (D65 default)")
	converge := flag.Float64("converge", 0, "exit early once distance to target drops below this (0 disables, runs the full step budget)")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unsupported arguments")
	}

	opts := i1d3.DefaultOpts
	opts.RelaxPermissions = *relax
	dev, err := i1d3.Open(*path, &opts)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := dev.InitSequence(); err != nil {
		return fmt.Errorf("init sequence: %w", err)
	}
	if err := dev.AutoUnlock(); err != nil {
		return fmt.Errorf("unlock: %w", err)
	}

	s := calib.NewState(*targetX, *targetY)
	sess := calib.NewSession(s, dev, calib.LogSink{})
	sess.ConvergeThreshold = *converge
	if err := sess.Run(context.Background(), *steps); err != nil {
		return fmt.Errorf("calibration session: %w", err)
	}

	fmt.Printf("best gain: R=%d G=%d B=%d\n", s.B[0], s.B[1], s.B[2])
	fmt.Printf("minimum distance: %.6f\n", s.Dmin)
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\ni1d3calibrate: %s.\n", err)
		os.Exit(1)
	}
}
