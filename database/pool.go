// /home/dbeesley/go/src/github.com/davidbeesley/runst/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 14:38:09 dbeesley>

package database

import "github.com/davidbeesley/runst/common"

// Pool is a fixed-size pool of database connections, so the history
// can be queried from several goroutines without sharing a connection.
type Pool struct {
	pool chan *Database
}

// NewPool opens cnt connections to the history database and returns
// them as a Pool.
func NewPool(cnt int) (*Pool, error) {
	var p = &Pool{
		pool: make(chan *Database, cnt),
	}

	for i := 0; i < cnt; i++ {
		var db, err = Open(common.DbPath)

		if err != nil {
			p.Close() // nolint: errcheck
			return nil, err
		}

		p.pool <- db
	}

	return p, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a connection from the Pool, blocking until one is
// available.
func (p *Pool) Get() *Database {
	return <-p.pool
} // func (p *Pool) Get() *Database

// Put returns a connection to the Pool.
func (p *Pool) Put(db *Database) {
	p.pool <- db
} // func (p *Pool) Put(db *Database)

// Close closes all connections currently in the Pool.
func (p *Pool) Close() error {
	var err error

	for {
		select {
		case db := <-p.pool:
			if e := db.Close(); e != nil {
				err = e
			}
		default:
			return err
		}
	}
} // func (p *Pool) Close() error
