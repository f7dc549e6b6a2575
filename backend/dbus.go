// /home/dbeesley/go/src/github.com/davidbeesley/runst/backend/dbus.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 18:03:12 dbeesley>

package backend

import (
	"fmt"
	"log"

	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/logdomain"
	"github.com/davidbeesley/runst/objects/reason"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	busName      = "org.freedesktop.Notifications"
	busInterface = "org.freedesktop.Notifications"
	objectPath   = dbus.ObjectPath("/org/freedesktop/Notifications")

	signalClosed  = busInterface + ".NotificationClosed"
	signalInvoked = busInterface + ".ActionInvoked"
)

// busHandler adapts the dispatch core to the session bus. Its exported
// methods carry the exact signatures of org.freedesktop.Notifications;
// godbus rejects calls with a mismatched shape before they get here,
// which is all the protocol-level validation there is to do.
type busHandler struct {
	srv *Server
	log *log.Logger
}

func (h *busHandler) Notify(appName string, replacesID uint32, appIcon, summary, body string, actions []string, hints map[string]dbus.Variant, expireTimeout int32) (uint32, *dbus.Error) {
	var id, err = h.srv.Notify(
		appName,
		replacesID,
		appIcon,
		summary,
		body,
		actions,
		hints,
		expireTimeout)

	if err != nil {
		h.log.Printf("[ERROR] Notify failed: %s\n",
			err.Error())
		return 0, dbus.MakeFailedError(err)
	}

	return id, nil
} // func (h *busHandler) Notify(...) (uint32, *dbus.Error)

func (h *busHandler) CloseNotification(id uint32) *dbus.Error {
	h.srv.CloseNotification(id)
	return nil
} // func (h *busHandler) CloseNotification(id uint32) *dbus.Error

func (h *busHandler) GetCapabilities() ([]string, *dbus.Error) {
	return h.srv.GetCapabilities(), nil
} // func (h *busHandler) GetCapabilities() ([]string, *dbus.Error)

func (h *busHandler) GetServerInformation() (string, string, string, string, *dbus.Error) {
	var name, vendor, version, specVersion = h.srv.GetServerInformation()
	return name, vendor, version, specVersion, nil
} // func (h *busHandler) GetServerInformation() (string, string, string, string, *dbus.Error)

var introNode = introspect.Node{
	Name: string(objectPath),
	Interfaces: []introspect.Interface{
		introspect.IntrospectData,
		{
			Name: busInterface,
			Methods: []introspect.Method{
				{
					Name: "Notify",
					Args: []introspect.Arg{
						{Name: "app_name", Type: "s", Direction: "in"},
						{Name: "replaces_id", Type: "u", Direction: "in"},
						{Name: "app_icon", Type: "s", Direction: "in"},
						{Name: "summary", Type: "s", Direction: "in"},
						{Name: "body", Type: "s", Direction: "in"},
						{Name: "actions", Type: "as", Direction: "in"},
						{Name: "hints", Type: "a{sv}", Direction: "in"},
						{Name: "expire_timeout", Type: "i", Direction: "in"},
						{Name: "id", Type: "u", Direction: "out"},
					},
				},
				{
					Name: "CloseNotification",
					Args: []introspect.Arg{
						{Name: "id", Type: "u", Direction: "in"},
					},
				},
				{
					Name: "GetCapabilities",
					Args: []introspect.Arg{
						{Name: "capabilities", Type: "as", Direction: "out"},
					},
				},
				{
					Name: "GetServerInformation",
					Args: []introspect.Arg{
						{Name: "name", Type: "s", Direction: "out"},
						{Name: "vendor", Type: "s", Direction: "out"},
						{Name: "version", Type: "s", Direction: "out"},
						{Name: "spec_version", Type: "s", Direction: "out"},
					},
				},
			},
			Signals: []introspect.Signal{
				{
					Name: "NotificationClosed",
					Args: []introspect.Arg{
						{Name: "id", Type: "u"},
						{Name: "reason", Type: "u"},
					},
				},
				{
					Name: "ActionInvoked",
					Args: []introspect.Arg{
						{Name: "id", Type: "u"},
						{Name: "action_key", Type: "s"},
					},
				},
			},
		},
	},
}

// exportBus claims the well-known name and exports the notification
// interface plus introspection data.
func exportBus(conn *dbus.Conn, srv *Server, logger *log.Logger) error {
	var (
		err   error
		h     = &busHandler{srv: srv, log: logger}
		reply dbus.RequestNameReply
	)

	if err = conn.Export(h, objectPath, busInterface); err != nil {
		return err
	} else if err = conn.Export(introspect.NewIntrospectable(&introNode), objectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return err
	} else if reply, err = conn.RequestName(busName, dbus.NameFlagDoNotQueue); err != nil {
		return err
	} else if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("Bus name %s is already taken, is another notification daemon running?",
			busName)
	}

	return nil
} // func exportBus(conn *dbus.Conn, srv *Server, logger *log.Logger) error

// busEmitter sends the core's signals out on the session bus.
type busEmitter struct {
	conn *dbus.Conn
	log  *log.Logger
}

func newBusEmitter(conn *dbus.Conn) (*busEmitter, error) {
	var (
		err error
		e   = &busEmitter{conn: conn}
	)

	if e.log, err = common.GetLogger(logdomain.DBus); err != nil {
		return nil, err
	}

	return e, nil
} // func newBusEmitter(conn *dbus.Conn) (*busEmitter, error)

func (e *busEmitter) NotificationClosed(id uint32, r reason.Reason) {
	if err := e.conn.Emit(objectPath, signalClosed, id, uint32(r)); err != nil {
		e.log.Printf("[ERROR] Cannot emit NotificationClosed(%d, %s): %s\n",
			id,
			r,
			err.Error())
	}
} // func (e *busEmitter) NotificationClosed(id uint32, r reason.Reason)

func (e *busEmitter) ActionInvoked(id uint32, key string) {
	if err := e.conn.Emit(objectPath, signalInvoked, id, key); err != nil {
		e.log.Printf("[ERROR] Cannot emit ActionInvoked(%d, %q): %s\n",
			id,
			key,
			err.Error())
	}
} // func (e *busEmitter) ActionInvoked(id uint32, key string)
