// /home/dbeesley/go/src/github.com/davidbeesley/runst/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-29 14:20:31 dbeesley>

package database

var initQueries = []string{
	`
CREATE TABLE history (
    id              INTEGER PRIMARY KEY,
    notification_id INTEGER NOT NULL,
    app_name        TEXT NOT NULL DEFAULT '',
    summary         TEXT NOT NULL,
    body            TEXT NOT NULL DEFAULT '',
    urgency         INTEGER NOT NULL DEFAULT 1,
    uuid            TEXT UNIQUE NOT NULL,
    timestamp       INTEGER NOT NULL,
    CHECK (urgency BETWEEN 0 AND 2)
)
`,
	"CREATE INDEX history_time_idx ON history (timestamp)",
	"CREATE INDEX history_app_idx ON history (app_name)",
}
