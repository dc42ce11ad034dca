// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package rstmap resolves BST A1000B reset lines to their control registers.
//
// The A1000B scatters its reset controls across five register blocks: the
// two TOP_CRM software reset registers, the SEC_SAFE system control
// register, and one reset control block per low-speed peripheral group.
// Each controllable line is one bit of one 32-bit register in one of those
// blocks.  The map is built once per device from the mapped block base
// addresses and is read-only thereafter.
package rstmap

type LineId uint

// Register block indices, in the reg order of the bst,a1000b-rstc
// device-tree node.
const (
	TopCrmRst0 = iota
	TopCrmRst1
	SecSafe
	Lsp0
	Lsp1
	NBlocks
)

// BlockName is indexed by register block.
var BlockName = [NBlocks]string{
	"top-crm-sw-rst0",
	"top-crm-sw-rst1",
	"sec-safe-sys-ctrl",
	"lsp0-rst-ctrl",
	"lsp1-rst-ctrl",
}

// Line IDs, one per controllable reset bit.  The numbering is dense and
// matches the controller's cells binding, so IDs arriving from device
// trees and from raw CLI input index this package's map directly.
// Reserved bits keep their slot in the numbering but have no entry.
const (
	// TOP_CRM software reset 0, one bit per major subsystem.
	CpuSys LineId = iota
	CpuCore0
	CpuCore1
	CpuCore2
	CpuCore3
	SafetySys
	Ddr
	Gpu
	Isp
	Vsp
	Net
	Cv
	Codec
	_ // SW_RST0 bit 13, reserved
	Vout
	Pcie
	Usb2
	Usb3
	Gmac0
	Gmac1
	Sdemmc0
	Sdemmc1

	// TOP_CRM software reset 1, camera pipes and compute cores.
	Mipi0
	Mipi1
	Mipi2
	Mipi3
	Vdsp
	IspCore
	_ // SW_RST1 bit 6, reserved
	CvCore0
	CvCore1
	CvCore2
	CvCore3
	DspCore

	// SEC_SAFE system control.  These bits read back set while the
	// safety island peripheral is held in reset.
	SafetyCpu
	SafetyTimer
	SafetyWdt
	SafetyCan0
	SafetyCan1
	SafetySpi
	SafetyUart
	SafetyGpio

	// LSP0 reset control, registers 0x0 and 0x4.
	Uart0
	Uart1
	I2c0
	I2c1
	I2c2
	Spi0
	Spi1
	Timer0
	Timer1
	Gpio0
	Can0
	Wdt0

	// LSP1 reset control, registers 0x0 and 0x4.
	Uart2
	Uart3
	I2c3
	I2c4
	I2c5
	Spi2
	Spi3
	Timer2
	Timer3
	Gpio1
	Can1
	Wdt1

	NLines
)

// Per-block sentinels.
const (
	TopCrmRst0First, TopCrmRst0Last = CpuSys, Sdemmc1
	TopCrmRst1First, TopCrmRst1Last = Mipi0, DspCore
	SecSafeFirst, SecSafeLast       = SafetyCpu, SafetyGpio
	Lsp0First, Lsp0Last             = Uart0, Wdt0
	Lsp1First, Lsp1Last             = Uart2, Wdt1
)

// Entry locates and describes one reset line's control bit.
type Entry struct {
	Addr uintptr // register holding the line's control bit
	Bit  uint    // bit position within that register

	// ZeroAssert lines hold their block in reset while the bit is
	// clear; the rest assert on set.
	ZeroAssert bool

	// LongHold lines need the hold time doubled on both sides of a
	// reset pulse.
	LongHold bool
}

// Map is indexed by LineId.  Reserved IDs have nil entries.
type Map [NLines]*Entry

// The static register layout: block, register offset within the block,
// bit position, polarity, and hold class for every line.  The TOP_CRM
// and LSP registers release their subsystem while the bit is set; the
// SEC_SAFE bits are the other way around.
var lines = [...]struct {
	id    LineId
	name  string
	block int
	off   uintptr
	bit   uint
	zero  bool // zero asserts, one deasserts
	long  bool // doubled hold through a reset pulse
}{
	{CpuSys, "cpu-sys", TopCrmRst0, 0x0, 0, true, false},
	{CpuCore0, "cpu-core0", TopCrmRst0, 0x0, 1, true, false},
	{CpuCore1, "cpu-core1", TopCrmRst0, 0x0, 2, true, false},
	{CpuCore2, "cpu-core2", TopCrmRst0, 0x0, 3, true, false},
	{CpuCore3, "cpu-core3", TopCrmRst0, 0x0, 4, true, false},
	{SafetySys, "safety-sys", TopCrmRst0, 0x0, 5, true, false},
	{Ddr, "ddr", TopCrmRst0, 0x0, 6, true, true},
	{Gpu, "gpu", TopCrmRst0, 0x0, 7, true, false},
	{Isp, "isp", TopCrmRst0, 0x0, 8, true, false},
	{Vsp, "vsp", TopCrmRst0, 0x0, 9, true, false},
	{Net, "net", TopCrmRst0, 0x0, 10, true, false},
	{Cv, "cv", TopCrmRst0, 0x0, 11, true, false},
	{Codec, "codec", TopCrmRst0, 0x0, 12, true, false},
	{Vout, "vout", TopCrmRst0, 0x0, 14, true, false},
	{Pcie, "pcie", TopCrmRst0, 0x0, 15, true, true},
	{Usb2, "usb2", TopCrmRst0, 0x0, 16, true, false},
	{Usb3, "usb3", TopCrmRst0, 0x0, 17, true, false},
	{Gmac0, "gmac0", TopCrmRst0, 0x0, 18, true, true},
	{Gmac1, "gmac1", TopCrmRst0, 0x0, 19, true, true},
	{Sdemmc0, "sdemmc0", TopCrmRst0, 0x0, 20, true, false},
	{Sdemmc1, "sdemmc1", TopCrmRst0, 0x0, 21, true, false},

	{Mipi0, "mipi0", TopCrmRst1, 0x0, 0, true, false},
	{Mipi1, "mipi1", TopCrmRst1, 0x0, 1, true, false},
	{Mipi2, "mipi2", TopCrmRst1, 0x0, 2, true, false},
	{Mipi3, "mipi3", TopCrmRst1, 0x0, 3, true, false},
	{Vdsp, "vdsp", TopCrmRst1, 0x0, 4, true, false},
	{IspCore, "isp-core", TopCrmRst1, 0x0, 5, true, false},
	{CvCore0, "cv-core0", TopCrmRst1, 0x0, 7, true, false},
	{CvCore1, "cv-core1", TopCrmRst1, 0x0, 8, true, false},
	{CvCore2, "cv-core2", TopCrmRst1, 0x0, 9, true, false},
	{CvCore3, "cv-core3", TopCrmRst1, 0x0, 10, true, false},
	{DspCore, "dsp-core", TopCrmRst1, 0x0, 11, true, false},

	{SafetyCpu, "safety-cpu", SecSafe, 0x0, 0, false, true},
	{SafetyTimer, "safety-timer", SecSafe, 0x0, 1, false, false},
	{SafetyWdt, "safety-wdt", SecSafe, 0x0, 2, false, false},
	{SafetyCan0, "safety-can0", SecSafe, 0x0, 3, false, false},
	{SafetyCan1, "safety-can1", SecSafe, 0x0, 4, false, false},
	{SafetySpi, "safety-spi", SecSafe, 0x0, 5, false, false},
	{SafetyUart, "safety-uart", SecSafe, 0x0, 6, false, false},
	{SafetyGpio, "safety-gpio", SecSafe, 0x0, 7, false, false},

	{Uart0, "uart0", Lsp0, 0x0, 0, true, false},
	{Uart1, "uart1", Lsp0, 0x0, 1, true, false},
	{I2c0, "i2c0", Lsp0, 0x0, 2, true, false},
	{I2c1, "i2c1", Lsp0, 0x0, 3, true, false},
	{I2c2, "i2c2", Lsp0, 0x0, 4, true, false},
	{Spi0, "spi0", Lsp0, 0x0, 5, true, false},
	{Spi1, "spi1", Lsp0, 0x0, 6, true, false},
	{Timer0, "timer0", Lsp0, 0x0, 7, true, false},
	{Timer1, "timer1", Lsp0, 0x0, 8, true, false},
	{Gpio0, "gpio0", Lsp0, 0x4, 0, true, false},
	{Can0, "can0", Lsp0, 0x4, 1, true, false},
	{Wdt0, "wdt0", Lsp0, 0x4, 2, true, false},

	{Uart2, "uart2", Lsp1, 0x0, 0, true, false},
	{Uart3, "uart3", Lsp1, 0x0, 1, true, false},
	{I2c3, "i2c3", Lsp1, 0x0, 2, true, false},
	{I2c4, "i2c4", Lsp1, 0x0, 3, true, false},
	{I2c5, "i2c5", Lsp1, 0x0, 4, true, false},
	{Spi2, "spi2", Lsp1, 0x0, 5, true, false},
	{Spi3, "spi3", Lsp1, 0x0, 6, true, false},
	{Timer2, "timer2", Lsp1, 0x0, 7, true, false},
	{Timer3, "timer3", Lsp1, 0x0, 8, true, false},
	{Gpio1, "gpio1", Lsp1, 0x4, 0, true, false},
	{Can1, "can1", Lsp1, 0x4, 1, true, false},
	{Wdt1, "wdt1", Lsp1, 0x4, 2, true, false},
}

var names [NLines]string

// ByName maps line names to their IDs.
var ByName = make(map[string]LineId)

func init() {
	for _, l := range lines {
		names[l.id] = l.name
		ByName[l.name] = l.id
	}
}

// New builds the line map from the five mapped block base addresses.
// Construction is pure; nothing here touches the hardware.
func New(base [NBlocks]uintptr) Map {
	var m Map
	for _, l := range lines {
		m[l.id] = &Entry{
			Addr:       base[l.block] + l.off,
			Bit:        l.bit,
			ZeroAssert: l.zero,
			LongHold:   l.long,
		}
	}
	return m
}

// Lookup returns the entry for id, or nil if id is out of range or
// reserved.  Raw IDs arrive from external callers, so an unknown ID is a
// normal condition, never a panic.
func (m *Map) Lookup(id LineId) *Entry {
	if id >= NLines {
		return nil
	}
	return m[id]
}

// Name returns the line's name, or "" for reserved and out-of-range IDs.
func Name(id LineId) string {
	if id >= NLines {
		return ""
	}
	return names[id]
}
