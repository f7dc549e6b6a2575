// /home/dbeesley/go/src/github.com/davidbeesley/runst/objects/01_notification_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 21:52:10 dbeesley>

package objects

import (
	"testing"
	"time"
)

func TestParseActions(t *testing.T) {
	type testCase struct {
		raw      []string
		expected []Action
		clean    bool
	}

	var cases = []testCase{
		{
			raw:      nil,
			expected: nil,
			clean:    true,
		},
		{
			raw:      []string{"default", "Open"},
			expected: []Action{{Key: "default", Label: "Open"}},
			clean:    true,
		},
		{
			raw: []string{"default", "Open", "dismiss", "Go away"},
			expected: []Action{
				{Key: "default", Label: "Open"},
				{Key: "dismiss", Label: "Go away"},
			},
			clean: true,
		},
		{
			raw:      []string{"default", "Open", "dangling"},
			expected: []Action{{Key: "default", Label: "Open"}},
			clean:    false,
		},
		{
			raw:      []string{"dangling"},
			expected: nil,
			clean:    false,
		},
	}

	for i, c := range cases {
		var actions, clean = ParseActions(c.raw)

		if clean != c.clean {
			t.Errorf("Case %d: clean = %t, expected %t",
				i,
				clean,
				c.clean)
		}

		if len(actions) != len(c.expected) {
			t.Errorf("Case %d: got %d actions, expected %d",
				i,
				len(actions),
				len(c.expected))
			continue
		}

		for j, a := range actions {
			if a != c.expected[j] {
				t.Errorf("Case %d: action %d is %+v, expected %+v",
					i,
					j,
					a,
					c.expected[j])
			}
		}
	}
} // func TestParseActions(t *testing.T)

func TestHasAction(t *testing.T) {
	var n = Notification{
		Actions: []Action{
			{Key: "default", Label: "Open"},
			{Key: "dismiss", Label: "Go away"},
		},
	}

	if !n.HasAction("default") {
		t.Error("HasAction misses the default action")
	} else if !n.HasAction("dismiss") {
		t.Error("HasAction misses the dismiss action")
	} else if n.HasAction("Open") {
		t.Error("HasAction matched a label instead of a key")
	} else if n.HasAction("") {
		t.Error("HasAction matched the empty key")
	}
} // func TestHasAction(t *testing.T)

func TestExpires(t *testing.T) {
	var sticky = Notification{Timeout: 0}

	if sticky.Expires() {
		t.Error("A notification with timeout 0 claims to expire")
	}

	var fleeting = Notification{
		Timeout:  time.Second * 5,
		Deadline: time.Now().Add(time.Second * 5),
	}

	if !fleeting.Expires() {
		t.Error("A notification with a timeout claims not to expire")
	}
} // func TestExpires(t *testing.T)
