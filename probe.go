// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package rstc

import (
	"fmt"
	"io"

	"github.com/platinasystems/rstc/internal/fdtrst"
	"github.com/platinasystems/rstc/internal/mmio"
	"github.com/platinasystems/rstc/rstmap"
)

// Probe locates the controller in the flattened device tree at path,
// maps its five register blocks, and returns a ready Rstc.  A block
// that fails to map aborts the probe; the core is never usable with a
// partial map.
func Probe(path string) (*Rstc, error) {
	t, err := fdtrst.Load(path)
	if err != nil {
		return nil, err
	}
	ranges, err := fdtrst.Ranges(t)
	if err != nil {
		return nil, err
	}
	mem := new(mmio.Mem)
	var base [rstmap.NBlocks]uintptr
	for i, rg := range ranges {
		if err = mem.Map(rg.Base, rg.Size); err != nil {
			mem.Close()
			return nil, fmt.Errorf("%s: %w", rstmap.BlockName[i],
				err)
		}
		base[i] = rg.Base
	}
	return New(rstmap.New(base), mem), nil
}

// Close releases the register windows of a probed instance.
func (r *Rstc) Close() error {
	if c, ok := r.Io.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
