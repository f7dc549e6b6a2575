// /home/dbeesley/go/src/github.com/davidbeesley/runst/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-28 20:05:33 dbeesley>

package objects

//go:generate ffjson response.go

// Response is what the control interface sends back after processing
// a request.
type Response struct {
	ID      uint32
	Status  bool
	Message string
}
