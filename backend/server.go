// /home/dbeesley/go/src/github.com/davidbeesley/runst/backend/server.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 17:21:40 dbeesley>

// Package backend implements the notification service core: the
// request dispatcher speaking org.freedesktop.Notifications, the
// lifecycle bookkeeping around the registry and the expiry scheduler,
// and the plumbing that connects them to the session bus, the
// rendering side, and the HTTP control surface.
package backend

import (
	"fmt"
	"log"
	"time"

	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/config"
	"github.com/davidbeesley/runst/database"
	"github.com/davidbeesley/runst/logdomain"
	"github.com/davidbeesley/runst/objects"
	"github.com/davidbeesley/runst/objects/reason"
	"github.com/davidbeesley/runst/objects/urgency"
	"github.com/davidbeesley/runst/registry"
	"github.com/davidbeesley/runst/sanitizer"
	"github.com/davidbeesley/runst/scheduler"
	"github.com/godbus/dbus/v5"
)

// The capabilities we advertise. Bodies are kept verbatim including
// the markup subset, actions are routed, and the history database
// provides persistence. Nothing gets advertised that the display
// contract does not cover.
var serverCapabilities = []string{
	"actions",
	"body",
	"body-hyperlinks",
	"body-markup",
	"persistence",
}

// SignalEmitter is where the core's outbound signals go. On a live
// daemon this is the session bus; tests plug in a recorder.
type SignalEmitter interface {
	NotificationClosed(id uint32, r reason.Reason)
	ActionInvoked(id uint32, key string)
}

// Server is the dispatch core. It owns no transport; the D-Bus
// adapter, the HTTP handlers and the tests all drive the same methods.
type Server struct {
	log    *log.Logger
	cfg    *config.Config
	san    *sanitizer.Sanitizer
	reg    *registry.Registry
	sched  *scheduler.Scheduler
	render Renderer
	emit   SignalEmitter
	pool   *database.Pool
}

// NewServer wires up a dispatch core from its collaborators.
func NewServer(cfg *config.Config, rend Renderer, emit SignalEmitter, pool *database.Pool) (*Server, error) {
	var (
		err error
		s   = &Server{
			cfg:    cfg,
			san:    sanitizer.NewWithLimits(cfg.MaxSummaryLength, cfg.MaxBodyLength),
			render: rend,
			emit:   emit,
			pool:   pool,
		}
	)

	if s.log, err = common.GetLogger(logdomain.Backend); err != nil {
		return nil, err
	} else if s.reg, err = registry.New(); err != nil {
		return nil, err
	} else if s.sched, err = scheduler.New(s.handleExpiry); err != nil {
		return nil, err
	}

	return s, nil
} // func NewServer(...) (*Server, error)

// Notify creates a notification, or replaces one in place if
// replacesID names an active record. Content-level oddities - broken
// encoding, an odd-length action list, hints we do not know or cannot
// type - get repaired or dropped; the call itself only fails on ID
// exhaustion.
func (s *Server) Notify(appName string, replacesID uint32, appIcon, summary, body string, actions []string, hints map[string]dbus.Variant, expireTimeout int32) (uint32, error) {
	var (
		err error
		ok  bool
		n   = &objects.Notification{
			AppName:   s.san.Summary(appName),
			AppIcon:   appIcon,
			Summary:   s.san.Summary(summary),
			Body:      s.san.Body(body),
			Hints:     s.parseHints(hints),
			CreatedAt: time.Now(),
			UUID:      common.GetUUID(),
		}
	)

	if n.Actions, ok = objects.ParseActions(actions); !ok {
		s.log.Printf("[DEBUG] Dropping trailing action key from odd-length list sent by %q\n",
			n.AppName)
	}

	switch {
	case expireTimeout > 0:
		n.Timeout = time.Duration(expireTimeout) * time.Millisecond
	case expireTimeout == 0:
		n.Timeout = 0
	default:
		n.Timeout = s.cfg.DefaultTimeout(n.Hints.Urgency)
	}

	if n.Timeout > 0 {
		n.Deadline = n.CreatedAt.Add(n.Timeout)
	}

	var replaced bool

	if replacesID != 0 {
		n.ID = replacesID
		replaced = s.reg.Replace(n)

		if !replaced {
			// The record to replace is gone (or never was);
			// file the notification as a fresh one instead.
			s.log.Printf("[DEBUG] Replace of unknown notification %d from %q, allocating a fresh ID\n",
				replacesID,
				n.AppName)
		}
	}

	if !replaced {
		if _, err = s.reg.Insert(n); err != nil {
			return 0, err
		}
	}

	s.sched.Arm(n.ID, n.Rev, n.Timeout)
	s.recordHistory(n)
	s.enforceDisplayLimit(n.ID)

	if err = s.render.Show(*n); err != nil {
		// Display trouble must not take the daemon down. Retract
		// the notification and keep serving.
		s.log.Printf("[ERROR] Renderer failed to show notification %d: %s\n",
			n.ID,
			err.Error())
		s.closeNotification(n.ID, reason.Undefined)
	}

	s.log.Printf("[DEBUG] Notification %d from %q: %q (timeout %s, replace=%t)\n",
		n.ID,
		n.AppName,
		n.Summary,
		n.Timeout,
		replaced)

	return n.ID, nil
} // func (s *Server) Notify(...) (uint32, error)

// CloseNotification closes a notification on a client's request.
// An unknown ID is a silent no-op; arbitrary callers racing against
// expiry is normal operation, not an error.
func (s *Server) CloseNotification(id uint32) {
	if !s.closeNotification(id, reason.CallerClosed) {
		s.log.Printf("[TRACE] CloseNotification for unknown ID %d\n", id)
	}
} // func (s *Server) CloseNotification(id uint32)

// GetCapabilities returns the capability strings the server advertises.
func (s *Server) GetCapabilities() []string {
	var caps = make([]string, len(serverCapabilities))
	copy(caps, serverCapabilities)
	return caps
} // func (s *Server) GetCapabilities() []string

// GetServerInformation returns the static server metadata.
func (s *Server) GetServerInformation() (name, vendor, version, specVersion string) {
	return common.AppName, common.Vendor, common.Version, common.SpecVersion
} // func (s *Server) GetServerInformation() (name, vendor, version, specVersion string)

// HandleUserEvent processes an interaction the renderer reported. An
// event for an ID that is no longer active is dropped; the user racing
// against a timeout is expected.
func (s *Server) HandleUserEvent(ev objects.UserEvent) {
	var n, ok = s.reg.Get(ev.ID)

	if !ok {
		s.log.Printf("[TRACE] Dropping user event for stale notification %d\n",
			ev.ID)
		return
	}

	switch ev.Kind {
	case objects.ActionActivated:
		if !n.HasAction(ev.ActionKey) {
			s.log.Printf("[DEBUG] Renderer reported unknown action %q on notification %d\n",
				ev.ActionKey,
				ev.ID)
			return
		}

		s.emit.ActionInvoked(ev.ID, ev.ActionKey)

		if !n.Hints.Resident {
			s.closeNotification(ev.ID, reason.Dismissed)
		}
	case objects.Dismissed:
		s.closeNotification(ev.ID, reason.Dismissed)
	default:
		s.log.Printf("[ERROR] Unknown user event kind %d for notification %d\n",
			ev.Kind,
			ev.ID)
	}
} // func (s *Server) HandleUserEvent(ev objects.UserEvent)

// Active returns the active notifications, ordered by creation time.
func (s *Server) Active() []objects.Notification {
	return s.reg.Snapshot()
} // func (s *Server) Active() []objects.Notification

// ForceClose closes a notification from the control surface.
func (s *Server) ForceClose(id uint32) bool {
	return s.closeNotification(id, reason.CallerClosed)
} // func (s *Server) ForceClose(id uint32) bool

// NotifyStartup posts the daemon's own hello notification.
func (s *Server) NotifyStartup() {
	var hints = map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(urgency.Low)),
	}

	if _, err := s.Notify(
		common.AppName,
		0,
		"",
		fmt.Sprintf("%s %s", common.AppName, common.Version),
		"Notification daemon is up.",
		nil,
		hints,
		-1); err != nil {
		s.log.Printf("[ERROR] Cannot post startup notification: %s\n",
			err.Error())
	}
} // func (s *Server) NotifyStartup()

// Shutdown cancels all pending expiry timers.
func (s *Server) Shutdown() {
	s.sched.Stop()
} // func (s *Server) Shutdown()

// closeNotification is the one place a notification actually dies:
// removal from the registry decides the race, everything after - the
// timer, the display, the signal - follows from having won it.
func (s *Server) closeNotification(id uint32, r reason.Reason) bool {
	var _, ok = s.reg.Remove(id)

	if !ok {
		return false
	}

	s.sched.Cancel(id)

	if err := s.render.Hide(id); err != nil {
		s.log.Printf("[ERROR] Renderer failed to hide notification %d: %s\n",
			id,
			err.Error())
	}

	s.emit.NotificationClosed(id, r)
	s.log.Printf("[DEBUG] Notification %d closed (%s)\n",
		id,
		r)

	return true
} // func (s *Server) closeNotification(id uint32, r reason.Reason) bool

// handleExpiry runs on the scheduler's timer goroutine. The revision
// check in the registry makes a stale timer lose cleanly against a
// concurrent replace or close.
func (s *Server) handleExpiry(id uint32, rev uint64) {
	var _, ok = s.reg.RemoveIfRev(id, rev)

	if !ok {
		s.log.Printf("[TRACE] Expiry timer for notification %d (rev %d) was superseded\n",
			id,
			rev)
		return
	}

	if err := s.render.Hide(id); err != nil {
		s.log.Printf("[ERROR] Renderer failed to hide notification %d: %s\n",
			id,
			err.Error())
	}

	s.emit.NotificationClosed(id, reason.Expired)
	s.log.Printf("[DEBUG] Notification %d closed (%s)\n",
		id,
		reason.Expired)
} // func (s *Server) handleExpiry(id uint32, rev uint64)

func (s *Server) enforceDisplayLimit(newID uint32) {
	if s.cfg.DisplayLimit <= 0 {
		return
	}

	for s.reg.Size() > s.cfg.DisplayLimit {
		var oldest, ok = s.reg.Oldest()

		if !ok || oldest.ID == newID {
			return
		}

		s.log.Printf("[DEBUG] Display limit %d exceeded, evicting notification %d\n",
			s.cfg.DisplayLimit,
			oldest.ID)
		s.closeNotification(oldest.ID, reason.Undefined)
	}
} // func (s *Server) enforceDisplayLimit(newID uint32)

func (s *Server) recordHistory(n *objects.Notification) {
	if s.pool == nil {
		return
	}

	var db = s.pool.Get()
	defer s.pool.Put(db)

	if err := db.HistoryAdd(objects.HistoryEntryFromNotification(n)); err != nil {
		s.log.Printf("[ERROR] Cannot record notification %d in history: %s\n",
			n.ID,
			err.Error())
		return
	}

	if _, err := db.HistoryPrune(s.cfg.HistoryLimit); err != nil {
		s.log.Printf("[ERROR] Cannot prune history: %s\n",
			err.Error())
	}
} // func (s *Server) recordHistory(n *objects.Notification)

// parseHints extracts the hints the core understands. Unknown names
// are ignored, values of the wrong type are dropped one by one.
func (s *Server) parseHints(raw map[string]dbus.Variant) objects.Hints {
	var h = objects.Hints{Urgency: urgency.Normal}

	for name, v := range raw {
		switch name {
		case "urgency":
			switch val := v.Value().(type) {
			case byte:
				h.Urgency = urgency.FromByte(val)
			case uint32:
				h.Urgency = urgency.FromByte(byte(val))
			case int32:
				h.Urgency = urgency.FromByte(byte(val))
			default:
				s.log.Printf("[DEBUG] Dropping ill-typed urgency hint (%T)\n",
					v.Value())
			}
		case "resident":
			if b, ok := v.Value().(bool); ok {
				h.Resident = b
			} else {
				s.log.Printf("[DEBUG] Dropping ill-typed resident hint (%T)\n",
					v.Value())
			}
		case "transient":
			if b, ok := v.Value().(bool); ok {
				h.Transient = b
			} else {
				s.log.Printf("[DEBUG] Dropping ill-typed transient hint (%T)\n",
					v.Value())
			}
		case "category":
			if c, ok := v.Value().(string); ok {
				h.Category = c
			} else {
				s.log.Printf("[DEBUG] Dropping ill-typed category hint (%T)\n",
					v.Value())
			}
		default:
			// Hints we do not consume are fine, clients may send
			// whatever they like.
		}
	}

	return h
} // func (s *Server) parseHints(raw map[string]dbus.Variant) objects.Hints
