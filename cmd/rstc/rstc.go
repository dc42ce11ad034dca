// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package rstc provides a cli command to operate the A1000B reset lines.
// It is distinct from the driver package of the same name one level up.
package rstc

import (
	"fmt"
	"strconv"

	"github.com/platinasystems/goes/external/parms"
	"github.com/platinasystems/goes/lang"

	"github.com/platinasystems/rstc"
	"github.com/platinasystems/rstc/internal/fdtrst"
	"github.com/platinasystems/rstc/rstmap"
)

type Command struct {
	// Rstc, if set, is used instead of probing the device tree.
	Rstc *rstc.Rstc
}

func (*Command) String() string { return "rstc" }

func (*Command) Usage() string {
	return "rstc [-f DTB] [assert | deassert | status | reset LINE]"
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "operate the A1000B reset lines",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	With no arguments, print every reset line and its current state.

	assert LINE	drive the line into reset
	deassert LINE	release the line from reset
	status LINE	print asserted or deasserted
	reset LINE	pulse the line through a full reset cycle

	LINE is a line name (see the bare listing) or its raw numeric ID.

	-f DTB	flattened device tree describing the controller,
		default ` + fdtrst.DefaultTree,
	}
}

func (c *Command) Main(args ...string) error {
	parm, args := parms.New(args, "-f")

	d := c.Rstc
	if d == nil {
		path := parm.ByName["-f"]
		if path == "" {
			path = fdtrst.DefaultTree
		}
		var err error
		if d, err = rstc.Probe(path); err != nil {
			return err
		}
		defer d.Close()
	}

	if len(args) == 0 {
		return list(d)
	}
	if len(args) < 2 {
		return fmt.Errorf("LINE: missing")
	}
	if len(args) > 2 {
		return fmt.Errorf("%v: unexpected", args[2:])
	}

	id, err := line(args[1])
	if err != nil {
		return err
	}

	switch args[0] {
	case "assert":
		return d.Assert(id)
	case "deassert":
		return d.Deassert(id)
	case "status":
		asserted, err := d.Status(id)
		if err != nil {
			return err
		}
		fmt.Println(state(asserted))
	case "reset":
		return d.Reset(id)
	default:
		return fmt.Errorf("%s: unknown", args[0])
	}
	return nil
}

func line(s string) (rstmap.LineId, error) {
	if id, found := rstmap.ByName[s]; found {
		return id, nil
	}
	u, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: not found", s)
	}
	return rstmap.LineId(u), nil
}

func state(asserted bool) string {
	if asserted {
		return "asserted"
	}
	return "deasserted"
}

func list(d *rstc.Rstc) error {
	for id := rstmap.LineId(0); id < rstmap.NLines; id++ {
		name := rstmap.Name(id)
		if name == "" {
			continue
		}
		asserted, err := d.Status(id)
		if err != nil {
			return err
		}
		fmt.Printf("%2d %-12s %s\n", id, name, state(asserted))
	}
	return nil
}
