// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package fdtrst

import (
	"encoding/binary"
	"testing"

	"github.com/platinasystems/fdt"

	"github.com/platinasystems/rstc/rstmap"
)

var testBase = [rstmap.NBlocks]uint64{
	0x33100000,
	0x33101000,
	0x70035000,
	0x20020000,
	0x20021000,
}

func cells(v ...uint32) []byte {
	b := make([]byte, 4*len(v))
	for i, c := range v {
		binary.BigEndian.PutUint32(b[4*i:], c)
	}
	return b
}

func tree(props map[string][]byte) *fdt.Tree {
	return &fdt.Tree{
		RootNode: &fdt.Node{
			Name:       "/",
			Properties: map[string][]byte{},
			Children: map[string]*fdt.Node{
				"rstc@33100000": {
					Name:       "rstc@33100000",
					Depth:      1,
					Properties: props,
					Children:   map[string]*fdt.Node{},
				},
			},
		},
	}
}

func TestRangesTwoCell(t *testing.T) {
	var reg []uint32
	for _, b := range testBase {
		reg = append(reg, uint32(b>>32), uint32(b), 0, 0x1000)
	}
	ft := tree(map[string][]byte{
		"compatible": []byte(Compatible + "\x00"),
		"reg":        cells(reg...),
	})
	r, err := Ranges(ft)
	if err != nil {
		t.Fatal(err)
	}
	for i := range r {
		if r[i].Base != uintptr(testBase[i]) || r[i].Size != 0x1000 {
			t.Errorf("block %d: got %#x/%#x, want %#x/0x1000",
				i, r[i].Base, r[i].Size, testBase[i])
		}
	}
}

func TestRangesOneCell(t *testing.T) {
	var reg []uint32
	for _, b := range testBase {
		reg = append(reg, uint32(b), 0x1000)
	}
	ft := tree(map[string][]byte{
		// compatible lists often carry a fallback
		"compatible": []byte(Compatible + "\x00syscon\x00"),
		"reg":        cells(reg...),
	})
	r, err := Ranges(ft)
	if err != nil {
		t.Fatal(err)
	}
	for i := range r {
		if r[i].Base != uintptr(testBase[i]) || r[i].Size != 0x1000 {
			t.Errorf("block %d: got %#x/%#x, want %#x/0x1000",
				i, r[i].Base, r[i].Size, testBase[i])
		}
	}
}

func TestRangesNoNode(t *testing.T) {
	ft := tree(map[string][]byte{
		"compatible": []byte("bst,a1000b-gpio\x00"),
	})
	if _, err := Ranges(ft); err == nil {
		t.Error("expected error for missing node")
	}
}

func TestRangesBadRegLength(t *testing.T) {
	ft := tree(map[string][]byte{
		"compatible": []byte(Compatible + "\x00"),
		"reg":        cells(1, 2, 3, 4, 5, 6, 7),
	})
	if _, err := Ranges(ft); err == nil {
		t.Error("expected error for short reg")
	}
}

func TestRegCells(t *testing.T) {
	for _, x := range []struct {
		n      int
		ac, sc int
		ok     bool
	}{
		{2 * rstmap.NBlocks, 1, 1, true},
		{3 * rstmap.NBlocks, 2, 1, true},
		{4 * rstmap.NBlocks, 2, 2, true},
		{0, 0, 0, false},
		{7, 0, 0, false},
		{5 * rstmap.NBlocks, 0, 0, false},
	} {
		ac, sc, err := regCells(x.n)
		if x.ok && err != nil {
			t.Error(x.n, "cells:", err)
		}
		if !x.ok && err == nil {
			t.Error(x.n, "cells: expected error")
		}
		if ac != x.ac || sc != x.sc {
			t.Error(x.n, "cells: got", ac, sc,
				"want", x.ac, x.sc)
		}
	}
}
