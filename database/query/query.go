// /home/dbeesley/go/src/github.com/davidbeesley/runst/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-29 14:12:48 dbeesley>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

type ID uint8

const (
	HistoryAdd ID = iota
	HistoryGetRecent
	HistoryGetAll
	HistorySearch
	HistoryCount
	HistoryClear
	HistoryPrune
)
