// /home/dbeesley/go/src/github.com/davidbeesley/runst/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-29 18:04:11 dbeesley>

// Package logdomain provides symbolic constants to identify the
// various pieces of the application that need to do logging.
package logdomain

//go:generate stringer -type=ID

// ID represents a log source.
type ID uint8

// These constants identify the various log sources.
const (
	Common ID = iota
	Backend
	DBus
	Registry
	Scheduler
	Database
	Web
	Client
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		DBus,
		Registry,
		Scheduler,
		Database,
		Web,
		Client,
	}
} // func AllDomains() []ID
