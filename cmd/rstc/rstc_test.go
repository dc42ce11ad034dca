// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package rstc

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/platinasystems/rstc"
	"github.com/platinasystems/rstc/rstmap"
)

var testBase = [rstmap.NBlocks]uintptr{
	0x33100000,
	0x33101000,
	0x70035000,
	0x20020000,
	0x20021000,
}

type testIo struct {
	sync.Mutex
	regs map[uintptr]uint32
}

func (s *testIo) Read32(addr uintptr) uint32 {
	s.Lock()
	defer s.Unlock()
	return s.regs[addr]
}

func (s *testIo) Write32(addr uintptr, v uint32) {
	s.Lock()
	defer s.Unlock()
	s.regs[addr] = v
}

func testCommand() (*Command, *testIo) {
	io := &testIo{regs: make(map[uintptr]uint32)}
	return &Command{Rstc: rstc.New(rstmap.New(testBase), io)}, io
}

func TestAssertByName(t *testing.T) {
	c, io := testCommand()
	addr := c.Rstc.Map.Lookup(rstmap.Uart0).Addr
	io.regs[addr] = 0xFFFFFFFF
	if err := c.Main("assert", "uart0"); err != nil {
		t.Fatal(err)
	}
	if got := io.regs[addr]; got != 0xFFFFFFFE {
		t.Errorf("got %#08x, want 0xFFFFFFFE", got)
	}
}

func TestResetByName(t *testing.T) {
	c, io := testCommand()
	slept := 0
	c.Rstc.Sleep = func(time.Duration) { slept++ }
	addr := c.Rstc.Map.Lookup(rstmap.Gmac0).Addr
	io.regs[addr] = 0xFFFFFFFF
	if err := c.Main("reset", "gmac0"); err != nil {
		t.Fatal(err)
	}
	if slept != 4 {
		t.Error("gmac0 is a long-hold line; slept", slept)
	}
	if got := io.regs[addr]; got != 0xFFFFFFFF {
		t.Errorf("got %#08x after pulse, want 0xFFFFFFFF", got)
	}
}

func TestOpsByRawId(t *testing.T) {
	c, io := testCommand()
	addr := c.Rstc.Map.Lookup(rstmap.CpuSys).Addr
	io.regs[addr] = 0xFFFFFFFF
	// cpu-sys is line 0
	if err := c.Main("assert", "0"); err != nil {
		t.Fatal(err)
	}
	if got := io.regs[addr]; got != 0xFFFFFFFE {
		t.Errorf("got %#08x, want 0xFFFFFFFE", got)
	}
	if err := c.Main("deassert", "0"); err != nil {
		t.Fatal(err)
	}
	if got := io.regs[addr]; got != 0xFFFFFFFF {
		t.Errorf("got %#08x, want 0xFFFFFFFF", got)
	}
}

func TestBadArgs(t *testing.T) {
	c, _ := testCommand()
	for _, args := range [][]string{
		{"toggle", "uart0"},
		{"assert"},
		{"assert", "nosuchline"},
		{"assert", "uart0", "extra"},
	} {
		if err := c.Main(args...); err == nil {
			t.Error(strings.Join(args, " "), "should fail")
		}
	}
}

func TestInvalidRawId(t *testing.T) {
	c, _ := testCommand()
	if err := c.Main("assert", "999"); err == nil {
		t.Error("assert 999 should fail")
	}
}
