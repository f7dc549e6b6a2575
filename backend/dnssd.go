// /home/dbeesley/go/src/github.com/davidbeesley/runst/backend/dnssd.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 19:24:33 dbeesley>

package backend

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/davidbeesley/runst/common"
	"github.com/grandcat/zeroconf"
)

const (
	srvService = "_http._tcp"
	srvDomain  = "local."
)

var addrPat = regexp.MustCompile(`:(\d+)$`)

// initDNSSd announces the control surface on the local network via
// DNS-SD, so other machines of the same user can find it.
func (d *Daemon) initDNSSd() error {
	var (
		err   error
		match []string
		port  int64
		srv   *zeroconf.Server
	)

	if match = addrPat.FindStringSubmatch(d.web.Addr); match == nil {
		return fmt.Errorf("Cannot extract HTTP port from server address %q",
			d.web.Addr)
	}

	if port, err = strconv.ParseInt(match[1], 10, 16); err != nil {
		d.log.Printf("[ERROR] Cannot parse HTTP port from server address %q: %s\n",
			d.web.Addr,
			err.Error())
		return err
	}

	var (
		txt          = []string{"txtv=0", fmt.Sprintf("app=%s", common.AppName)}
		instanceName = fmt.Sprintf("%s@%s",
			common.AppName,
			d.hostname)
	)

	if srv, err = zeroconf.Register(instanceName, srvService, srvDomain, int(port), txt, nil); err != nil {
		d.log.Printf("[ERROR] Cannot register service with DNS-SD: %s\n",
			err.Error())
		return err
	}

	d.dnssd = srv
	return nil
} // func (d *Daemon) initDNSSd() error
