// /home/dbeesley/go/src/github.com/davidbeesley/runst/objects/history.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-30 22:41:09 dbeesley>

package objects

import (
	"time"

	"github.com/davidbeesley/runst/objects/urgency"
)

//go:generate ffjson history.go

// HistoryEntry is one received notification as kept in the history
// database. Unlike live notifications, history survives a restart.
type HistoryEntry struct {
	ID             int64
	NotificationID uint32
	AppName        string
	Summary        string
	Body           string
	Urgency        urgency.Level
	UUID           string
	Timestamp      time.Time
}

// HistoryEntryFromNotification records the parts of a Notification
// that go into the history.
func HistoryEntryFromNotification(n *Notification) *HistoryEntry {
	return &HistoryEntry{
		NotificationID: n.ID,
		AppName:        n.AppName,
		Summary:        n.Summary,
		Body:           n.Body,
		Urgency:        n.Hints.Urgency,
		UUID:           n.UUID,
		Timestamp:      n.CreatedAt,
	}
} // func HistoryEntryFromNotification(n *Notification) *HistoryEntry
