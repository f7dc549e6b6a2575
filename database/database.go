// /home/dbeesley/go/src/github.com/davidbeesley/runst/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 14:26:33 dbeesley>

// Package database keeps the notification history. Live notification
// state never touches the disk, but the history of everything the
// daemon has accepted is persistent, so it can be searched after the
// notifications themselves are long gone.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/database/query"
	"github.com/davidbeesley/runst/logdomain"
	"github.com/davidbeesley/runst/objects"
	"github.com/davidbeesley/runst/objects/urgency"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

var (
	openLock sync.Mutex
	idCnt    int64
)

const retryDelay = time.Millisecond * 25

func worthARetry(e error) bool {
	var msg = e.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
} // func worthARetry(e error) bool

// Database is a connection to the history database, including its
// prepared statements.
type Database struct {
	id      int64
	db      *sql.DB
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens the database at the given path, creating and
// initializing it if it does not exist yet.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	var connstr = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Cannot check if %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstr); err != nil {
		db.log.Printf("[ERROR] Cannot open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			db.db.Close() // nolint: errcheck
			return nil, err
		}
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var (
		err error
		tx  *sql.Tx
	)

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query:\n%s\n%s\n",
				q,
				err.Error())
			tx.Rollback() // nolint: errcheck
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[ERROR] Cannot commit initialization: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database connection.
func (db *Database) Close() error {
	for id, stmt := range db.queries {
		stmt.Close() // nolint: errcheck
		delete(db.queries, id)
	}

	return db.db.Close()
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		err  error
		stmt *sql.Stmt
		ok   bool
	)

	if stmt, ok = db.queries[id]; ok {
		return stmt, nil
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			time.Sleep(retryDelay)
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			id,
			err.Error())
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(id query.ID) (*sql.Stmt, error)

// HistoryAdd records a notification in the history.
func (db *Database) HistoryAdd(entry *objects.HistoryEntry) error {
	var (
		err  error
		stmt *sql.Stmt
		res  sql.Result
	)

	if stmt, err = db.getQuery(query.HistoryAdd); err != nil {
		return err
	}

EXEC_QUERY:
	if res, err = stmt.Exec(
		entry.NotificationID,
		entry.AppName,
		entry.Summary,
		entry.Body,
		entry.Urgency,
		entry.UUID,
		entry.Timestamp.Unix()); err != nil {
		if worthARetry(err) {
			time.Sleep(retryDelay)
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add history entry for %q: %s\n",
			entry.Summary,
			err.Error())
		return err
	}

	if entry.ID, err = res.LastInsertId(); err != nil {
		db.log.Printf("[ERROR] Cannot get ID of new history entry: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) HistoryAdd(entry *objects.HistoryEntry) error

func (db *Database) historyQuery(id query.ID, args ...interface{}) ([]objects.HistoryEntry, error) {
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(id); err != nil {
		return nil, err
	} else if rows, err = stmt.Query(args...); err != nil {
		db.log.Printf("[ERROR] Cannot run query %s: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var entries = make([]objects.HistoryEntry, 0, 64)

	for rows.Next() {
		var (
			e     objects.HistoryEntry
			lvl   uint8
			stamp int64
		)

		if err = rows.Scan(
			&e.ID,
			&e.NotificationID,
			&e.AppName,
			&e.Summary,
			&e.Body,
			&lvl,
			&e.UUID,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan history row: %s\n",
				err.Error())
			return nil, err
		}

		e.Urgency = urgency.FromByte(lvl)
		e.Timestamp = time.Unix(stamp, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
} // func (db *Database) historyQuery(id query.ID, args ...interface{}) ([]objects.HistoryEntry, error)

// HistoryGetRecent returns the max most recent entries, newest first.
func (db *Database) HistoryGetRecent(max int) ([]objects.HistoryEntry, error) {
	return db.historyQuery(query.HistoryGetRecent, max)
} // func (db *Database) HistoryGetRecent(max int) ([]objects.HistoryEntry, error)

// HistoryGetAll returns all history entries, oldest first.
func (db *Database) HistoryGetAll() ([]objects.HistoryEntry, error) {
	return db.historyQuery(query.HistoryGetAll)
} // func (db *Database) HistoryGetAll() ([]objects.HistoryEntry, error)

// HistorySearch returns the entries whose application name, summary,
// or body contain the given string. Matching ignores case.
func (db *Database) HistorySearch(needle string) ([]objects.HistoryEntry, error) {
	var pat = "%" + strings.ToLower(needle) + "%"
	return db.historyQuery(query.HistorySearch, pat, pat, pat)
} // func (db *Database) HistorySearch(needle string) ([]objects.HistoryEntry, error)

// HistoryCount returns the number of entries in the history.
func (db *Database) HistoryCount() (int64, error) {
	var (
		err  error
		stmt *sql.Stmt
		cnt  int64
	)

	if stmt, err = db.getQuery(query.HistoryCount); err != nil {
		return 0, err
	} else if err = stmt.QueryRow().Scan(&cnt); err != nil {
		db.log.Printf("[ERROR] Cannot count history entries: %s\n",
			err.Error())
		return 0, err
	}

	return cnt, nil
} // func (db *Database) HistoryCount() (int64, error)

// HistoryClear removes all entries from the history.
func (db *Database) HistoryClear() error {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(query.HistoryClear); err != nil {
		return err
	}

EXEC_QUERY:
	if _, err = stmt.Exec(); err != nil {
		if worthARetry(err) {
			time.Sleep(retryDelay)
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot clear history: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) HistoryClear() error

// HistoryPrune deletes the oldest entries so that at most limit
// remain. It returns the number of entries it removed.
// A limit of 0 or less means the history is unbounded.
func (db *Database) HistoryPrune(limit int) (int64, error) {
	if limit <= 0 {
		return 0, nil
	}

	var (
		err  error
		stmt *sql.Stmt
		res  sql.Result
		cnt  int64
	)

	if stmt, err = db.getQuery(query.HistoryPrune); err != nil {
		return 0, err
	}

EXEC_QUERY:
	if res, err = stmt.Exec(limit); err != nil {
		if worthARetry(err) {
			time.Sleep(retryDelay)
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot prune history: %s\n",
			err.Error())
		return 0, err
	}

	if cnt, err = res.RowsAffected(); err != nil {
		return 0, err
	}

	return cnt, nil
} // func (db *Database) HistoryPrune(limit int) (int64, error)
