// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package fdtrst locates the A1000B reset controller in a flattened
// device tree and extracts its register ranges.
package fdtrst

import (
	"fmt"
	"io/ioutil"

	"github.com/platinasystems/fdt"

	"github.com/platinasystems/rstc/rstmap"
)

// Compatible matches the controller's device-tree node.
const Compatible = "bst,a1000b-rstc"

// DefaultTree is where recent kernels expose the running system's
// flattened device tree.
const DefaultTree = "/sys/firmware/fdt"

// Range is one register block's physical address range.
type Range struct {
	Base uintptr
	Size int
}

// Load parses the flattened tree at path.
func Load(path string) (*fdt.Tree, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := &fdt.Tree{}
	if err = t.Parse(b); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return t, nil
}

// Ranges returns the controller's register block ranges in reg order.
func Ranges(t *fdt.Tree) (r [rstmap.NBlocks]Range, err error) {
	var node *fdt.Node
	t.EachProperty("compatible", Compatible,
		func(n *fdt.Node, name, value string) {
			if node == nil {
				node = n
			}
		})
	if node == nil {
		return r, fmt.Errorf("%s: no such node", Compatible)
	}
	cells := t.PropUint32Slice(node.Properties["reg"])
	ac, sc, err := regCells(len(cells))
	if err != nil {
		return r, fmt.Errorf("%s: %v", node.Name, err)
	}
	for i := 0; i < rstmap.NBlocks; i++ {
		r[i].Base = uintptr(cellVal(cells[:ac]))
		r[i].Size = int(cellVal(cells[ac : ac+sc]))
		cells = cells[ac+sc:]
	}
	return r, nil
}

// regCells infers the address and size cell counts from the reg length.
// The A1000B tree uses 2/2 cells; 1/1 and 2/1 forms show up on 32-bit
// builds and older bindings.
func regCells(n int) (ac, sc int, err error) {
	if n != 0 && n%rstmap.NBlocks == 0 {
		switch n / rstmap.NBlocks {
		case 2:
			return 1, 1, nil
		case 3:
			return 2, 1, nil
		case 4:
			return 2, 2, nil
		}
	}
	return 0, 0, fmt.Errorf("reg: %d cells for %d blocks",
		n, rstmap.NBlocks)
}

func cellVal(cells []uint32) (v uint64) {
	for _, c := range cells {
		v = v<<32 | uint64(c)
	}
	return
}
