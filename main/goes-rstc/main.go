// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Goes machine for the BST A1000B reset controller.
package main

import (
	"fmt"
	"os"

	"github.com/platinasystems/goes"
	"github.com/platinasystems/goes/cmd"
	"github.com/platinasystems/goes/cmd/cli"
	"github.com/platinasystems/goes/external/redis"
	"github.com/platinasystems/goes/lang"

	rstccmd "github.com/platinasystems/rstc/cmd/rstc"
	"github.com/platinasystems/rstc/cmd/rstcd"
)

var Goes = &goes.Goes{
	NAME: "goes-rstc",
	APROPOS: lang.Alt{
		lang.EnUS: "reset controller utilities for the BST A1000B",
	},
	ByName: map[string]cmd.Cmd{
		"cli":   &cli.Command{},
		"rstc":  &rstccmd.Command{},
		"rstcd": &rstcd.Command{},
	},
}

func main() {
	redis.DefaultHash = "bsta1000b"
	if err := Goes.Main(os.Args...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
