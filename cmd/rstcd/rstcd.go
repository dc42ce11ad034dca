// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package rstcd provides a daemon that publishes A1000B reset line
// status to redis and accepts line control through the machine hash.
package rstcd

import (
	"fmt"
	"net/rpc"
	"strings"
	"sync"
	"time"

	"github.com/platinasystems/goes/cmd"
	"github.com/platinasystems/goes/external/atsock"
	"github.com/platinasystems/goes/external/log"
	"github.com/platinasystems/goes/external/redis"
	"github.com/platinasystems/goes/external/redis/publisher"
	"github.com/platinasystems/goes/external/redis/rpc/args"
	"github.com/platinasystems/goes/external/redis/rpc/reply"
	"github.com/platinasystems/goes/lang"

	"github.com/platinasystems/rstc"
	"github.com/platinasystems/rstc/internal/fdtrst"
	"github.com/platinasystems/rstc/rstmap"
)

var (
	// Tree may be set before start to read another device tree.
	Tree = fdtrst.DefaultTree

	pollInterval = 5 * time.Second
)

type Command struct {
	Info
	Init func()
	init sync.Once
}

type Info struct {
	mutex sync.Mutex
	dev   *rstc.Rstc
	rpc   *atsock.RpcServer
	pub   *publisher.Publisher
	stop  chan struct{}
	lasts map[string]string
}

func (*Command) String() string { return "rstcd" }

func (*Command) Usage() string { return "rstcd" }

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "reset line status daemon, publishes to redis",
	}
}

func (*Command) Kind() cmd.Kind { return cmd.Daemon }

func (c *Command) Main(...string) error {
	if c.Init != nil {
		c.init.Do(c.Init)
	}

	err := redis.IsReady()
	if err != nil {
		return err
	}

	c.stop = make(chan struct{})
	c.lasts = make(map[string]string)

	if c.dev == nil {
		if c.dev, err = rstc.Probe(Tree); err != nil {
			return err
		}
		defer c.dev.Close()
	}

	if c.pub, err = publisher.New(); err != nil {
		return err
	}

	if c.rpc, err = atsock.NewRpcServer("rstcd"); err != nil {
		return err
	}

	rpc.Register(&c.Info)
	err = redis.Assign(redis.DefaultHash+":rstc.", "rstcd", "Info")
	if err != nil {
		return err
	}

	log.Print("notice: rstc attached")

	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return nil
		case <-t.C:
			c.update()
		}
	}
}

func (c *Command) Close() error {
	close(c.stop)
	return nil
}

func (c *Command) update() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for id := rstmap.LineId(0); id < rstmap.NLines; id++ {
		name := rstmap.Name(id)
		if name == "" {
			continue
		}
		asserted, err := c.dev.Status(id)
		if err != nil {
			continue
		}
		v := "deasserted"
		if asserted {
			v = "asserted"
		}
		k := "rstc." + name
		if v != c.lasts[k] {
			c.pub.Print(k, ": ", v)
			c.lasts[k] = v
		}
	}
}

// Hset accepts "rstc.LINE" with assert, deassert, or reset.
func (i *Info) Hset(a args.Hset, r *reply.Hset) error {
	name := strings.TrimPrefix(a.Field, "rstc.")
	id, found := rstmap.ByName[name]
	if !found {
		return fmt.Errorf("cannot hset: %s", a.Field)
	}
	i.mutex.Lock()
	defer i.mutex.Unlock()
	var err error
	switch string(a.Value) {
	case "assert":
		err = i.dev.Assert(id)
	case "deassert":
		err = i.dev.Deassert(id)
	case "reset":
		err = i.dev.Reset(id)
	default:
		return fmt.Errorf("%s: invalid, must be assert|deassert|reset",
			a.Value)
	}
	if err == nil {
		*r = 1
	}
	return err
}
