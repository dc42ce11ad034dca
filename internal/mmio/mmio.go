// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package mmio maps device register windows from /dev/mem and provides
// 32-bit access to them by physical address.
package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"syscall"
	"unsafe"
)

const devMem = "/dev/mem"

type window struct {
	base uintptr
	mem  []byte
}

// Mem is a set of mapped register windows addressed by physical
// address.  The windows are fixed once mapped; only the device
// registers behind them change.
type Mem struct {
	windows []window
}

// Map maps size bytes of physical address space at base.  base must be
// page aligned, which the A1000B's register blocks are.
func (m *Mem) Map(base uintptr, size int) error {
	f, err := os.OpenFile(devMem, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := syscall.Mmap(int(f.Fd()), int64(base), size,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap %s @ %#x: %w", devMem, base, err)
	}
	m.windows = append(m.windows, window{base: base, mem: b})
	return nil
}

// Close unmaps every window.
func (m *Mem) Close() error {
	var err error
	for _, w := range m.windows {
		if e := syscall.Munmap(w.mem); e != nil && err == nil {
			err = e
		}
	}
	m.windows = nil
	return err
}

// Read32 and Write32 go through sync/atomic so the compiler emits
// exactly one aligned load or store per register access.

func (m *Mem) Read32(addr uintptr) uint32 {
	return atomic.LoadUint32(m.at(addr))
}

func (m *Mem) Write32(addr uintptr, v uint32) {
	atomic.StoreUint32(m.at(addr), v)
}

// at returns the mapped word for physical address addr.  Addresses come
// from the line map, which only hands out addresses inside mapped
// blocks, so a miss is a programming error.
func (m *Mem) at(addr uintptr) *uint32 {
	for i := range m.windows {
		w := &m.windows[i]
		if addr >= w.base && addr+4 <= w.base+uintptr(len(w.mem)) {
			return (*uint32)(unsafe.Pointer(&w.mem[addr-w.base]))
		}
	}
	panic(fmt.Sprintf("mmio: %#x: not mapped", addr))
}
