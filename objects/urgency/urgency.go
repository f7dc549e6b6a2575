// /home/dbeesley/go/src/github.com/davidbeesley/runst/objects/urgency/urgency.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-28 19:31:02 dbeesley>

//go:generate stringer -type=Level

// Package urgency contains symbolic constants for the urgency levels
// a notification can carry in its hints.
package urgency

// Level is the urgency of a notification.
// The wire encoding is a single byte: 0 = low, 1 = normal, 2 = critical.
type Level uint8

// The urgency levels defined by the notification spec.
const (
	Low Level = iota
	Normal
	Critical
)

// FromByte converts the wire encoding to a Level.
// Out-of-range values are treated as Normal.
func FromByte(b byte) Level {
	if b > byte(Critical) {
		return Normal
	}

	return Level(b)
} // func FromByte(b byte) Level
