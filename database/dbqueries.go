// /home/dbeesley/go/src/github.com/davidbeesley/runst/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 13:02:57 dbeesley>

package database

import "github.com/davidbeesley/runst/database/query"

var dbQueries = map[query.ID]string{
	query.HistoryAdd: `
INSERT INTO history (notification_id, app_name, summary, body, urgency, uuid, timestamp)
VALUES              (              ?,        ?,       ?,    ?,       ?,    ?,         ?)
`,
	query.HistoryGetRecent: `
SELECT
    id,
    notification_id,
    app_name,
    summary,
    body,
    urgency,
    uuid,
    timestamp
FROM history
ORDER BY id DESC
LIMIT ?
`,
	query.HistoryGetAll: `
SELECT
    id,
    notification_id,
    app_name,
    summary,
    body,
    urgency,
    uuid,
    timestamp
FROM history
ORDER BY id
`,
	query.HistorySearch: `
SELECT
    id,
    notification_id,
    app_name,
    summary,
    body,
    urgency,
    uuid,
    timestamp
FROM history
WHERE lower(app_name) LIKE ?
   OR lower(summary) LIKE ?
   OR lower(body) LIKE ?
ORDER BY id
`,
	query.HistoryCount: "SELECT COUNT(id) FROM history",
	query.HistoryClear: "DELETE FROM history",
	query.HistoryPrune: `
DELETE FROM history
WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)
`,
}
