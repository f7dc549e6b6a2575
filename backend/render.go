// /home/dbeesley/go/src/github.com/davidbeesley/runst/backend/render.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 16:08:27 dbeesley>

package backend

import (
	"log"

	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/logdomain"
	"github.com/davidbeesley/runst/objects"
	"github.com/davidbeesley/runst/sanitizer"
)

// Renderer is the rendering side of the daemon. The core never touches
// windowing internals; it hands display requests to the Renderer and
// receives user events back on the Events channel. Anything that can
// show a notification and report clicks qualifies - an X11 window, a
// terminal, a test double.
type Renderer interface {
	// Show displays a notification. For an ID already on display
	// this is an in-place update, not a second window.
	Show(n objects.Notification) error
	// Hide takes a notification off the display. Hiding an unknown
	// ID is a no-op.
	Hide(id uint32) error
	// Events delivers user interactions. The channel is closed when
	// the Renderer shuts down.
	Events() <-chan objects.UserEvent
	Close() error
}

// LogRenderer is a Renderer that writes notifications to the log and
// never reports any user interaction. It is what the daemon runs with
// when no real rendering frontend is attached.
type LogRenderer struct {
	log    *log.Logger
	events chan objects.UserEvent
}

// NewLogRenderer creates a LogRenderer.
func NewLogRenderer() (*LogRenderer, error) {
	var (
		err error
		r   = &LogRenderer{
			events: make(chan objects.UserEvent),
		}
	)

	if r.log, err = common.GetLogger(logdomain.Backend); err != nil {
		return nil, err
	}

	return r, nil
} // func NewLogRenderer() (*LogRenderer, error)

// Show logs the notification.
func (r *LogRenderer) Show(n objects.Notification) error {
	r.log.Printf("[INFO] [%s] %s (%d): %s\n",
		n.Hints.Urgency,
		n.AppName,
		n.ID,
		n.Summary)

	if n.Body != "" {
		r.log.Printf("[INFO]   %s\n",
			sanitizer.StripMarkup(n.Body))
	}

	return nil
} // func (r *LogRenderer) Show(n objects.Notification) error

// Hide does nothing; there is no display to take anything off of.
func (r *LogRenderer) Hide(id uint32) error {
	r.log.Printf("[TRACE] Hide notification %d\n", id)
	return nil
} // func (r *LogRenderer) Hide(id uint32) error

// Events returns the (forever silent) event channel.
func (r *LogRenderer) Events() <-chan objects.UserEvent {
	return r.events
} // func (r *LogRenderer) Events() <-chan objects.UserEvent

// Close shuts down the event channel.
func (r *LogRenderer) Close() error {
	close(r.events)
	return nil
} // func (r *LogRenderer) Close() error
