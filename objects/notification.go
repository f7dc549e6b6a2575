// /home/dbeesley/go/src/github.com/davidbeesley/runst/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-30 22:14:55 dbeesley>

// Package objects provides the data types used by the application.
package objects

import (
	"time"

	"github.com/davidbeesley/runst/objects/urgency"
)

//go:generate ffjson notification.go

// Action is one user-invokable choice attached to a Notification,
// an identifier plus the label the renderer displays for it.
type Action struct {
	Key   string
	Label string
}

// Hints holds the hint values the core itself understands.
// Unknown hints are discarded on the way in, ill-typed ones are
// dropped individually.
type Hints struct {
	Urgency   urgency.Level
	Resident  bool
	Transient bool
	Category  string
}

// Notification is the central entity, one notification as received
// from a client, in the form the core keeps it while it is active.
type Notification struct {
	ID        uint32
	Rev       uint64
	AppName   string
	AppIcon   string
	Summary   string
	Body      string
	Actions   []Action
	Hints     Hints
	Timeout   time.Duration
	CreatedAt time.Time
	Deadline  time.Time
	UUID      string
}

// Payload returns the Notification's Summary and Body.
func (n *Notification) Payload() (string, string) {
	return n.Summary, n.Body
} // func (n *Notification) Payload() (string, string)

// Expires returns true if the Notification is subject to automatic
// expiry. A zero Timeout means it stays up until somebody closes it.
func (n *Notification) Expires() bool {
	return n.Timeout > 0
} // func (n *Notification) Expires() bool

// HasAction returns true if the Notification carries an Action with
// the given key.
func (n *Notification) HasAction(key string) bool {
	for _, a := range n.Actions {
		if a.Key == key {
			return true
		}
	}

	return false
} // func (n *Notification) HasAction(key string) bool

// ParseActions pairs up the flat key/label list the wire format uses.
// The second return value is false if the list had an odd length and
// the trailing key was dropped.
func ParseActions(raw []string) ([]Action, bool) {
	var (
		even    = len(raw) &^ 1
		actions = make([]Action, 0, even/2)
	)

	for i := 0; i+1 < len(raw); i += 2 {
		actions = append(actions, Action{
			Key:   raw[i],
			Label: raw[i+1],
		})
	}

	return actions, even == len(raw)
} // func ParseActions(raw []string) ([]Action, bool)
