// /home/dbeesley/go/src/github.com/davidbeesley/runst/idalloc/idalloc.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-30 17:52:08 dbeesley>

// Package idalloc issues notification IDs. IDs are 32 bit, never zero,
// and increase monotonically until the counter wraps around, at which
// point IDs still in use get skipped.
//
// The Allocator has no lock of its own. The registry calls it while
// holding its write lock, which makes handing out an ID and inserting
// the record one atomic step.
package idalloc

import "math"

// Allocator hands out notification IDs.
type Allocator struct {
	next uint32
}

// New creates an Allocator that starts counting at 1.
func New() *Allocator {
	return &Allocator{next: 1}
} // func New() *Allocator

// Next returns the next free ID. inUse reports whether an ID is
// currently taken; such IDs are skipped, as is 0.
//
// The caller keeps the set of live IDs bounded, so the scan always
// terminates in practice. Should every single ID be taken, Next gives
// up after a full cycle and returns 0 - the caller treats that as
// exhaustion, not as a valid ID.
func (a *Allocator) Next(inUse func(id uint32) bool) uint32 {
	for i := uint64(0); i <= math.MaxUint32; i++ {
		var id = a.next

		a.next++
		if a.next == 0 {
			a.next = 1
		}

		if id != 0 && !inUse(id) {
			return id
		}
	}

	return 0
} // func (a *Allocator) Next(inUse func(id uint32) bool) uint32

// Peek returns the ID the Allocator will try first on the next call
// to Next. Only used for inspection.
func (a *Allocator) Peek() uint32 {
	return a.next
} // func (a *Allocator) Peek() uint32
