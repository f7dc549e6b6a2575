// /home/dbeesley/go/src/github.com/davidbeesley/runst/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 18:40:26 dbeesley>

package backend

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	sysd "github.com/coreos/go-systemd/v22/daemon"
	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/config"
	"github.com/davidbeesley/runst/database"
	"github.com/davidbeesley/runst/logdomain"
	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
)

const poolSize = 4

// Daemon is the centerpiece of the application, tying the dispatch
// core to the session bus, the renderer, the history database and the
// HTTP control surface.
type Daemon struct {
	log      *log.Logger
	cfg      *config.Config
	bus      *dbus.Conn
	srv      *Server
	pool     *database.Pool
	web      http.Server
	router   *mux.Router
	dnssd    *zeroconf.Server
	hostname string
	lock     sync.RWMutex
	active   bool
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is
// required. If rend is nil, notifications go to the log. If addr is
// non-empty it overrides the configured listen address of the control
// surface.
func Summon(addr string, rend Renderer) (*Daemon, error) {
	var (
		err  error
		emit *busEmitter
		d    = &Daemon{
			active: true,
			router: mux.NewRouter(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		return nil, err
	} else if d.cfg, err = config.Load(); err != nil {
		d.log.Printf("[ERROR] Cannot load configuration: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(poolSize); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.bus, err = dbus.ConnectSessionBus(); err != nil {
		d.log.Printf("[ERROR] Failed to connect to DBus session bus: %s\n",
			err.Error())
		return nil, err
	}

	if addr != "" {
		d.cfg.ListenAddr = addr
	}

	if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot determine hostname: %s\n",
			err.Error())
		d.hostname = "localhost"
	}

	if rend == nil {
		if rend, err = NewLogRenderer(); err != nil {
			return nil, err
		}
	}

	if emit, err = newBusEmitter(d.bus); err != nil {
		return nil, err
	} else if d.srv, err = NewServer(d.cfg, rend, emit, d.pool); err != nil {
		return nil, err
	} else if err = exportBus(d.bus, d.srv, d.log); err != nil {
		d.log.Printf("[ERROR] Cannot export %s on the session bus: %s\n",
			busName,
			err.Error())
		return nil, err
	}

	d.web.Addr = d.cfg.ListenAddr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	go d.eventLoop()
	go d.serveHTTP()

	if err = d.initDNSSd(); err != nil {
		// mDNS is a convenience, not a requirement.
		d.log.Printf("[ERROR] Continuing without DNS-SD: %s\n",
			err.Error())
	}

	if _, err = sysd.SdNotify(false, sysd.SdNotifyReady); err != nil {
		d.log.Printf("[DEBUG] Not running under systemd: %s\n",
			err.Error())
	}

	if d.cfg.StartupNotification {
		d.srv.NotifyStartup()
	}

	d.log.Printf("[INFO] %s %s is up, owning %s\n",
		common.AppName,
		common.Version,
		busName)

	return d, nil
} // func Summon(addr string, rend Renderer) (*Daemon, error)

// Server exposes the dispatch core, mainly so clients living in the
// same process (tests, a future frontend) can drive it directly.
func (d *Daemon) Server() *Server {
	return d.srv
} // func (d *Daemon) Server() *Server

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish tells the Daemon to shut down and releases its resources.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	sysd.SdNotify(false, sysd.SdNotifyStopping) // nolint: errcheck

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shut down web server: %s\n",
			err.Error())
		d.web.Close() // nolint: errcheck
	}

	if d.dnssd != nil {
		d.dnssd.Shutdown()
	}

	d.srv.Shutdown()
	d.srv.render.Close() // nolint: errcheck

	if err = d.bus.Close(); err != nil {
		d.log.Printf("[ERROR] Failed to close bus connection: %s\n",
			err.Error())
	}

	d.pool.Close() // nolint: errcheck

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()

	return err
} // func (d *Daemon) Banish() error

// eventLoop feeds user interactions from the renderer to the dispatch
// core. It ends when the renderer closes its event channel.
func (d *Daemon) eventLoop() {
	defer d.log.Println("[TRACE] Quitting eventLoop")

	for ev := range d.srv.render.Events() {
		d.srv.HandleUserEvent(ev)
	}
} // func (d *Daemon) eventLoop()
