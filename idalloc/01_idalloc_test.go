// /home/dbeesley/go/src/github.com/davidbeesley/runst/idalloc/01_idalloc_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-30 17:58:21 dbeesley>

package idalloc

import (
	"math"
	"testing"
)

func nothingInUse(uint32) bool { return false }

func TestSequence(t *testing.T) {
	var a = New()

	for want := uint32(1); want <= 100; want++ {
		var id = a.Next(nothingInUse)

		if id != want {
			t.Fatalf("Expected ID %d, got %d", want, id)
		} else if id == 0 {
			t.Fatal("Allocator handed out ID 0")
		}
	}
} // func TestSequence(t *testing.T)

func TestSkipLive(t *testing.T) {
	var (
		a    = New()
		live = map[uint32]bool{1: true, 2: true, 4: true}
	)

	var inUse = func(id uint32) bool { return live[id] }

	if id := a.Next(inUse); id != 3 {
		t.Errorf("Expected ID 3, got %d", id)
	} else if id = a.Next(inUse); id != 5 {
		t.Errorf("Expected ID 5, got %d", id)
	}
} // func TestSkipLive(t *testing.T)

func TestWraparound(t *testing.T) {
	var a = &Allocator{next: math.MaxUint32}

	if id := a.Next(nothingInUse); id != math.MaxUint32 {
		t.Errorf("Expected ID %d, got %d", uint32(math.MaxUint32), id)
	}

	// The counter must skip 0 on the way around.
	if id := a.Next(nothingInUse); id != 1 {
		t.Errorf("Expected ID 1 after wraparound, got %d", id)
	}
} // func TestWraparound(t *testing.T)

func TestWraparoundSkipsLive(t *testing.T) {
	var (
		a    = &Allocator{next: math.MaxUint32 - 1}
		live = map[uint32]bool{
			math.MaxUint32 - 1: true,
			math.MaxUint32:     true,
			1:                  true,
		}
	)

	if id := a.Next(func(id uint32) bool { return live[id] }); id != 2 {
		t.Errorf("Expected ID 2, got %d", id)
	}
} // func TestWraparoundSkipsLive(t *testing.T)
