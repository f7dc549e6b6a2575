// /home/dbeesley/go/src/github.com/davidbeesley/runst/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 21:02:44 dbeesley>

// Package clientlib provides the basic framework for building
// clients that talk to a notification server over the session bus.
package clientlib

import (
	"fmt"
	"log"
	"os"

	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/logdomain"
	"github.com/davidbeesley/runst/objects"
	"github.com/davidbeesley/runst/objects/reason"
	"github.com/godbus/dbus/v5"
)

const (
	busName      = "org.freedesktop.Notifications"
	objectPath   = "/org/freedesktop/Notifications"
	busInterface = "org.freedesktop.Notifications"
)

// ServerInformation is the answer to a GetServerInformation call.
type ServerInformation struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// ClosedEvent is delivered when the server emits NotificationClosed.
type ClosedEvent struct {
	ID     uint32
	Reason reason.Reason
}

// ActionEvent is delivered when the server emits ActionInvoked.
type ActionEvent struct {
	ID  uint32
	Key string
}

// Client wraps a session bus connection to the notification server.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
	log  *log.Logger
}

// NewClient connects to the session bus and creates a new Client.
func NewClient() (*Client, error) {
	var (
		err error
		c   = new(Client)
	)

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.conn, err = dbus.ConnectSessionBus(); err != nil {
		c.log.Printf("[ERROR] Cannot connect to session bus: %s\n",
			err.Error())
		return nil, err
	}

	c.obj = c.conn.Object(busName, objectPath)

	return c, nil
} // func NewClient() (*Client, error)

func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

// Close shuts down the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
} // func (c *Client) Close() error

// SendNotification posts a notification and returns the ID the
// server assigned to it. actions are flat key/label pairs, the way
// the wire wants them; nil is fine for both actions and hints.
func (c *Client) SendNotification(appName string, replacesID uint32, appIcon, summary, body string, actions []string, hints map[string]dbus.Variant, timeout int32) (uint32, error) {
	var (
		err error
		id  uint32
	)

	if actions == nil {
		actions = []string{}
	}

	if hints == nil {
		hints = map[string]dbus.Variant{}
	}

	var call = c.obj.Call(
		busInterface+".Notify",
		0,
		appName,
		replacesID,
		appIcon,
		summary,
		body,
		actions,
		hints,
		timeout)

	if err = call.Store(&id); err != nil {
		c.log.Printf("[ERROR] Notify call failed: %s\n",
			err.Error())
		return 0, err
	}

	c.log.Printf("[DEBUG] Server assigned ID %d to %q\n",
		id,
		summary)

	return id, nil
} // func (c *Client) SendNotification(...) (uint32, error)

// CloseNotification asks the server to close the given notification.
func (c *Client) CloseNotification(id uint32) error {
	var call = c.obj.Call(busInterface+".CloseNotification", 0, id)

	if call.Err != nil {
		c.log.Printf("[ERROR] CloseNotification(%d) failed: %s\n",
			id,
			call.Err.Error())
		return call.Err
	}

	return nil
} // func (c *Client) CloseNotification(id uint32) error

// GetCapabilities asks the server what it can do.
func (c *Client) GetCapabilities() ([]string, error) {
	var (
		err  error
		caps []string
	)

	if err = c.obj.Call(busInterface+".GetCapabilities", 0).Store(&caps); err != nil {
		c.log.Printf("[ERROR] GetCapabilities call failed: %s\n",
			err.Error())
		return nil, err
	}

	return caps, nil
} // func (c *Client) GetCapabilities() ([]string, error)

// GetServerInformation fetches the server's identity.
func (c *Client) GetServerInformation() (ServerInformation, error) {
	var (
		err  error
		info ServerInformation
	)

	err = c.obj.Call(busInterface+".GetServerInformation", 0).Store(
		&info.Name,
		&info.Vendor,
		&info.Version,
		&info.SpecVersion)

	if err != nil {
		c.log.Printf("[ERROR] GetServerInformation call failed: %s\n",
			err.Error())
		return info, err
	}

	return info, nil
} // func (c *Client) GetServerInformation() (ServerInformation, error)

// WatchSignals subscribes to the server's NotificationClosed and
// ActionInvoked signals and fans them out to the returned channels.
// Both channels are closed when the bus connection goes away.
func (c *Client) WatchSignals() (<-chan ClosedEvent, <-chan ActionEvent, error) {
	var err = c.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(objectPath),
		dbus.WithMatchInterface(busInterface))

	if err != nil {
		c.log.Printf("[ERROR] Cannot add signal match: %s\n",
			err.Error())
		return nil, nil, err
	}

	var (
		raw     = make(chan *dbus.Signal, 16)
		closed  = make(chan ClosedEvent, 16)
		actions = make(chan ActionEvent, 16)
	)

	c.conn.Signal(raw)

	go func() {
		defer close(closed)
		defer close(actions)

		for sig := range raw {
			switch sig.Name {
			case busInterface + ".NotificationClosed":
				var ev ClosedEvent
				if len(sig.Body) != 2 {
					continue
				} else if id, ok := sig.Body[0].(uint32); ok {
					ev.ID = id
				} else {
					continue
				}

				if r, ok := sig.Body[1].(uint32); ok {
					ev.Reason = reason.Reason(r)
				}

				closed <- ev
			case busInterface + ".ActionInvoked":
				var ev ActionEvent
				if len(sig.Body) != 2 {
					continue
				} else if id, ok := sig.Body[0].(uint32); ok {
					ev.ID = id
				} else {
					continue
				}

				if key, ok := sig.Body[1].(string); ok {
					ev.Key = key
				}

				actions <- ev
			}
		}
	}()

	return closed, actions, nil
} // func (c *Client) WatchSignals() (<-chan ClosedEvent, <-chan ActionEvent, error)

// FlattenActions turns Action pairs back into the flat list the wire
// format uses.
func FlattenActions(actions []objects.Action) []string {
	var flat = make([]string, 0, len(actions)*2)

	for _, a := range actions {
		flat = append(flat, a.Key, a.Label)
	}

	return flat
} // func FlattenActions(actions []objects.Action) []string
