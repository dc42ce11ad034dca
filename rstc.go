// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package rstc drives the reset controller of the BST A1000B SoC.
//
// The controller is a set of 32-bit registers spread over five blocks;
// every reset line is one bit of one of those registers.  The rstmap
// package turns a numeric line ID into the (register, bit, polarity,
// hold class) tuple and this package performs the four reset-controller
// operations against it: assert, deassert, status, and a full reset
// pulse.
//
// Operations on the same line are not serialized here.  A register
// update is a read-modify-write, two bus accesses, so callers that may
// operate concurrently on lines of the same register must provide their
// own exclusion.  The rstcd daemon does this with a mutex around its
// redis surface.
package rstc

import (
	"errors"
	"fmt"
	"time"

	"github.com/platinasystems/rstc/rstmap"
)

// HoldTime is how long a line is held on either side of a reset pulse.
// LongHold lines double it.
const HoldTime = 10 * time.Millisecond

var ErrInvalidId = errors.New("invalid reset line")

// Io reads and writes the controller's 32-bit registers.  Accesses are
// assumed to complete without fault; address validity is guaranteed by
// the line map.
type Io interface {
	Read32(addr uintptr) uint32
	Write32(addr uintptr, v uint32)
}

// Rstc operates the reset lines of one controller instance.  The map
// and accessor are fixed at attach and shared read-only by every
// operation.
type Rstc struct {
	Map rstmap.Map
	Io  Io

	// Sleep, if non-nil, replaces time.Sleep for hold waits.
	Sleep func(time.Duration)
}

func New(m rstmap.Map, io Io) *Rstc { return &Rstc{Map: m, Io: io} }

// Assert drives a line into reset.  Which raw bit value that takes
// depends on the line's polarity.
func (r *Rstc) Assert(id rstmap.LineId) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	r.apply(e, true)
	return nil
}

// Deassert releases a line from reset.
func (r *Rstc) Deassert(id rstmap.LineId) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	r.apply(e, false)
	return nil
}

// Status reports whether the line is currently held in reset.  The
// register is the only state; nothing is cached.
func (r *Rstc) Status(id rstmap.LineId) (bool, error) {
	e, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	set := r.Io.Read32(e.Addr)&(1<<e.Bit) != 0
	return set != e.ZeroAssert, nil
}

// Reset pulses the line: assert, hold, deassert, hold.  The entry is
// resolved once so both halves of the pulse see the same polarity and
// hold class, and an invalid ID fails before the first register access
// or sleep.  Reset blocks the caller for the full hold duration.
func (r *Rstc) Reset(id rstmap.LineId) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	r.apply(e, true)
	r.hold(e)
	r.apply(e, false)
	r.hold(e)
	return nil
}

func (r *Rstc) lookup(id rstmap.LineId) (*rstmap.Entry, error) {
	e := r.Map.Lookup(id)
	if e == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidId, id)
	}
	return e, nil
}

// apply sets or clears the line's control bit with a read-modify-write.
// assert XOR ZeroAssert is the raw bit value to write.
func (r *Rstc) apply(e *rstmap.Entry, assert bool) {
	v := r.Io.Read32(e.Addr)
	if assert != e.ZeroAssert {
		v |= 1 << e.Bit
	} else {
		v &^= 1 << e.Bit
	}
	r.Io.Write32(e.Addr, v)
}

func (r *Rstc) hold(e *rstmap.Entry) {
	r.sleep(HoldTime)
	if e.LongHold {
		r.sleep(HoldTime)
	}
}

func (r *Rstc) sleep(d time.Duration) {
	if r.Sleep != nil {
		r.Sleep(d)
		return
	}
	time.Sleep(d)
}
