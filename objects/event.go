// /home/dbeesley/go/src/github.com/davidbeesley/runst/objects/event.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-28 20:02:17 dbeesley>

package objects

// EventKind says what the user did to a displayed notification.
type EventKind uint8

// ActionActivated means the user triggered one of the notification's
// actions, Dismissed means the user got rid of the notification itself.
const (
	ActionActivated EventKind = iota
	Dismissed
)

// UserEvent is what the rendering side reports back to the core when
// the user interacts with a displayed notification.
type UserEvent struct {
	ID        uint32
	Kind      EventKind
	ActionKey string
}
