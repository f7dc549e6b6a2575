// /home/dbeesley/go/src/github.com/davidbeesley/runst/registry/registry.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 09:42:37 dbeesley>

// Package registry keeps the set of active notifications. It is the
// single source of truth for lifecycle state: a notification exists
// exactly as long as the registry holds it, and removing it is what
// closing means.
//
// All operations take the registry's lock, so readers never see a
// half-updated record, and ID allocation happens under the same lock
// as insertion. Records handed out are copies; callers can do with
// them what they want.
package registry

import (
	"errors"
	"log"
	"sort"
	"sync"

	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/idalloc"
	"github.com/davidbeesley/runst/logdomain"
	"github.com/davidbeesley/runst/objects"
)

// ErrExhausted means the entire 32-bit ID space is taken. If this ever
// fires outside of a test, something has gone very wrong upstream.
var ErrExhausted = errors.New("notification ID space is exhausted")

// Registry is the authoritative mapping from ID to active notification.
type Registry struct {
	log    *log.Logger
	lock   sync.RWMutex
	alloc  *idalloc.Allocator
	active map[uint32]*objects.Notification
	revCnt uint64
}

// New creates an empty Registry.
func New() (*Registry, error) {
	var (
		err error
		r   = &Registry{
			alloc:  idalloc.New(),
			active: make(map[uint32]*objects.Notification),
		}
	)

	if r.log, err = common.GetLogger(logdomain.Registry); err != nil {
		return nil, err
	}

	return r, nil
} // func New() (*Registry, error)

// Insert files a fresh notification, assigning it an unused nonzero ID
// and its first revision. The assigned values are set on n and the
// ID is returned.
func (r *Registry) Insert(n *objects.Notification) (uint32, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var id = r.alloc.Next(func(id uint32) bool {
		_, taken := r.active[id]
		return taken
	})

	if id == 0 {
		r.log.Printf("[ERROR] Cannot insert notification from %q: %s\n",
			n.AppName,
			ErrExhausted.Error())
		return 0, ErrExhausted
	}

	r.revCnt++
	n.ID = id
	n.Rev = r.revCnt
	r.active[id] = n

	return id, nil
} // func (r *Registry) Insert(n *objects.Notification) (uint32, error)

// Replace overwrites the active notification with n's ID in place,
// bumping the revision. There is no field-level merging, the old
// record is gone entirely. Returns false if the ID is not active.
func (r *Registry) Replace(n *objects.Notification) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	var old, ok = r.active[n.ID]
	if !ok {
		return false
	}

	r.revCnt++
	n.Rev = r.revCnt
	n.CreatedAt = old.CreatedAt
	r.active[n.ID] = n

	return true
} // func (r *Registry) Replace(n *objects.Notification) bool

// Get returns a copy of the active notification with the given ID.
func (r *Registry) Get(id uint32) (objects.Notification, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var n, ok = r.active[id]
	if !ok {
		return objects.Notification{}, false
	}

	return *n, true
} // func (r *Registry) Get(id uint32) (objects.Notification, bool)

// Remove takes the notification with the given ID out of the registry.
// Removing an ID that is not active is a no-op, not an error.
func (r *Registry) Remove(id uint32) (objects.Notification, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var n, ok = r.active[id]
	if !ok {
		return objects.Notification{}, false
	}

	delete(r.active, id)
	return *n, true
} // func (r *Registry) Remove(id uint32) (objects.Notification, bool)

// RemoveIfRev removes the notification only if it still carries the
// given revision. This is how a stale expiry timer fails benignly: by
// the time it fires, a replace has bumped the revision, and the timer's
// removal attempt simply does not apply.
func (r *Registry) RemoveIfRev(id uint32, rev uint64) (objects.Notification, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var n, ok = r.active[id]
	if !ok || n.Rev != rev {
		return objects.Notification{}, false
	}

	delete(r.active, id)
	return *n, true
} // func (r *Registry) RemoveIfRev(id uint32, rev uint64) (objects.Notification, bool)

// Size returns the number of active notifications.
func (r *Registry) Size() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.active)
} // func (r *Registry) Size() int

// Snapshot returns copies of all active notifications, ordered by
// creation time (ties broken by ID).
func (r *Registry) Snapshot() []objects.Notification {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var list = make([]objects.Notification, 0, len(r.active))

	for _, n := range r.active {
		list = append(list, *n)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	return list
} // func (r *Registry) Snapshot() []objects.Notification

// Oldest returns a copy of the oldest active notification, if any.
func (r *Registry) Oldest() (objects.Notification, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var (
		oldest *objects.Notification
	)

	for _, n := range r.active {
		if oldest == nil ||
			n.CreatedAt.Before(oldest.CreatedAt) ||
			(n.CreatedAt.Equal(oldest.CreatedAt) && n.ID < oldest.ID) {
			oldest = n
		}
	}

	if oldest == nil {
		return objects.Notification{}, false
	}

	return *oldest, true
} // func (r *Registry) Oldest() (objects.Notification, bool)
