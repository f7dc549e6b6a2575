// /home/dbeesley/go/src/github.com/davidbeesley/runst/objects/reason/reason.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-28 19:33:40 dbeesley>

//go:generate stringer -type=Reason

// Package reason contains the symbolic constants for the reason codes
// the NotificationClosed signal carries.
package reason

// Reason says why a notification was closed.
// The numeric values are fixed by the notification spec and go out
// on the wire as-is.
type Reason uint32

// Expired means the notification's timeout ran out.
// Dismissed means the user got rid of it.
// CallerClosed means a client called CloseNotification.
// Undefined covers everything else.
const (
	Expired Reason = iota + 1
	Dismissed
	CallerClosed
	Undefined
)
