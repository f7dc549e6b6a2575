// /home/dbeesley/go/src/github.com/davidbeesley/runst/scheduler/scheduler.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 11:17:44 dbeesley>

// Package scheduler arms the expiry timers for notifications that are
// supposed to close on their own. One timer per notification ID; arming
// an ID that already has a timer replaces it, which is what a replace
// via Notify needs.
//
// Timers carry the revision of the record they were armed for. A timer
// that fires after its notification was replaced or closed finds the
// revision gone and goes away quietly; the registry's own revision
// check backs that up for the window where the timer is already
// mid-fire.
package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/logdomain"
)

// FireFunc is called - on the timer's own goroutine - when a deadline
// runs out. rev is the revision the timer was armed for.
type FireFunc func(id uint32, rev uint64)

type entry struct {
	timer *time.Timer
	rev   uint64
}

// Scheduler tracks the expiry deadlines of active notifications.
type Scheduler struct {
	log    *log.Logger
	fire   FireFunc
	lock   sync.Mutex
	timers map[uint32]*entry
}

// New creates a Scheduler that reports expired deadlines to fire.
func New(fire FireFunc) (*Scheduler, error) {
	var (
		err error
		s   = &Scheduler{
			fire:   fire,
			timers: make(map[uint32]*entry),
		}
	)

	if s.log, err = common.GetLogger(logdomain.Scheduler); err != nil {
		return nil, err
	}

	return s, nil
} // func New(fire FireFunc) (*Scheduler, error)

// Arm schedules expiry for the given notification after d. Any timer
// already armed for the ID is cancelled first. A non-positive d arms
// nothing, the notification stays until it is closed explicitly.
func (s *Scheduler) Arm(id uint32, rev uint64, d time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if old, ok := s.timers[id]; ok {
		old.timer.Stop()
		delete(s.timers, id)
	}

	if d <= 0 {
		return
	}

	var e = &entry{rev: rev}
	e.timer = time.AfterFunc(d, func() {
		s.expire(id, rev)
	})
	s.timers[id] = e

	s.log.Printf("[TRACE] Armed expiry for notification %d (rev %d) in %s\n",
		id,
		rev,
		d)
} // func (s *Scheduler) Arm(id uint32, rev uint64, d time.Duration)

// Cancel drops the timer for the given ID, if one is armed.
func (s *Scheduler) Cancel(id uint32) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	var e, ok = s.timers[id]
	if !ok {
		return false
	}

	e.timer.Stop()
	delete(s.timers, id)
	return true
} // func (s *Scheduler) Cancel(id uint32) bool

func (s *Scheduler) expire(id uint32, rev uint64) {
	s.lock.Lock()

	var e, ok = s.timers[id]
	if !ok || e.rev != rev {
		// Superseded while we were waiting to run.
		s.lock.Unlock()
		return
	}

	delete(s.timers, id)
	s.lock.Unlock()

	s.log.Printf("[DEBUG] Notification %d (rev %d) has expired\n",
		id,
		rev)
	s.fire(id, rev)
} // func (s *Scheduler) expire(id uint32, rev uint64)

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.timers)
} // func (s *Scheduler) Pending() int

// Stop cancels all armed timers.
func (s *Scheduler) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()

	for id, e := range s.timers {
		e.timer.Stop()
		delete(s.timers, id)
	}
} // func (s *Scheduler) Stop()
