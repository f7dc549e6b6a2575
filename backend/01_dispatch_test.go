// /home/dbeesley/go/src/github.com/davidbeesley/runst/backend/01_dispatch_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 20:31:18 dbeesley>

// The dispatch core is driven without a session bus here: a recording
// emitter stands in for the bus, a scripted renderer for the display.

package backend

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/config"
	"github.com/davidbeesley/runst/objects"
	"github.com/davidbeesley/runst/objects/reason"
	"github.com/davidbeesley/runst/objects/urgency"
	"github.com/godbus/dbus/v5"
)

type closedSig struct {
	id uint32
	r  reason.Reason
}

type invokedSig struct {
	id  uint32
	key string
}

type sigRecorder struct {
	lock    sync.Mutex
	closed  []closedSig
	invoked []invokedSig
}

func (rec *sigRecorder) NotificationClosed(id uint32, r reason.Reason) {
	rec.lock.Lock()
	rec.closed = append(rec.closed, closedSig{id: id, r: r})
	rec.lock.Unlock()
} // func (rec *sigRecorder) NotificationClosed(id uint32, r reason.Reason)

func (rec *sigRecorder) ActionInvoked(id uint32, key string) {
	rec.lock.Lock()
	rec.invoked = append(rec.invoked, invokedSig{id: id, key: key})
	rec.lock.Unlock()
} // func (rec *sigRecorder) ActionInvoked(id uint32, key string)

func (rec *sigRecorder) closedFor(id uint32) []closedSig {
	rec.lock.Lock()
	defer rec.lock.Unlock()

	var sigs []closedSig
	for _, s := range rec.closed {
		if s.id == id {
			sigs = append(sigs, s)
		}
	}

	return sigs
} // func (rec *sigRecorder) closedFor(id uint32) []closedSig

func (rec *sigRecorder) invokedFor(id uint32) []invokedSig {
	rec.lock.Lock()
	defer rec.lock.Unlock()

	var sigs []invokedSig
	for _, s := range rec.invoked {
		if s.id == id {
			sigs = append(sigs, s)
		}
	}

	return sigs
} // func (rec *sigRecorder) invokedFor(id uint32) []invokedSig

type fakeRenderer struct {
	lock   sync.Mutex
	events chan objects.UserEvent
	shown  map[uint32]int
	hidden map[uint32]int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		events: make(chan objects.UserEvent),
		shown:  make(map[uint32]int),
		hidden: make(map[uint32]int),
	}
} // func newFakeRenderer() *fakeRenderer

func (r *fakeRenderer) Show(n objects.Notification) error {
	r.lock.Lock()
	r.shown[n.ID]++
	r.lock.Unlock()
	return nil
} // func (r *fakeRenderer) Show(n objects.Notification) error

func (r *fakeRenderer) Hide(id uint32) error {
	r.lock.Lock()
	r.hidden[id]++
	r.lock.Unlock()
	return nil
} // func (r *fakeRenderer) Hide(id uint32) error

func (r *fakeRenderer) Events() <-chan objects.UserEvent { return r.events }
func (r *fakeRenderer) Close() error                     { close(r.events); return nil }

var (
	srv  *Server
	rec  = &sigRecorder{}
	rend = newFakeRenderer()
)

func TestMain(m *testing.M) {
	var (
		err error
		dir string
	)

	if dir, err = os.MkdirTemp("", "runst_backend_test"); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot create test directory: %s\n", err.Error())
		os.Exit(1)
	} else if err = common.SetBaseDir(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot set base directory: %s\n", err.Error())
		os.Exit(1)
	}

	var result = m.Run()
	os.RemoveAll(dir) // nolint: errcheck
	os.Exit(result)
} // func TestMain(m *testing.M)

func TestCreateServer(t *testing.T) {
	var err error

	if srv, err = NewServer(config.Default(), rend, rec, nil); err != nil {
		srv = nil
		t.Fatalf("Cannot create Server: %s", err.Error())
	}
} // func TestCreateServer(t *testing.T)

func TestNotifyFresh(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var (
		err    error
		first  uint32
		second uint32
	)

	if first, err = srv.Notify("test", 0, "", "Hello", "World", nil, nil, 0); err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	} else if first == 0 {
		t.Fatal("Notify returned ID 0")
	}

	if second, err = srv.Notify("test", 0, "", "Hello again", "", nil, nil, 0); err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	} else if second == first {
		t.Fatalf("Notify handed out the ID %d twice", first)
	}

	rend.lock.Lock()
	var cnt = rend.shown[first]
	rend.lock.Unlock()

	if cnt != 1 {
		t.Errorf("Notification %d was shown %d times", first, cnt)
	}
} // func TestNotifyFresh(t *testing.T)

func TestBodyRoundTrip(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var bodies = []string{
		"Line one\nLine two\nLine three",
		"Stars: ★★★ Arrows: → ← ↑ ↓",
		`<b>bold</b>, "quotes", 'apostrophes' & <angle brackets>`,
	}

	for _, body := range bodies {
		var id, err = srv.Notify("test", 0, "", "round trip", body, nil, nil, 0)

		if err != nil {
			t.Fatalf("Notify failed: %s", err.Error())
		}

		var n, ok = srv.reg.Get(id)

		if !ok {
			t.Fatalf("Notification %d is not active", id)
		} else if n.Body != body {
			t.Errorf("Body was mangled:\nsent:   %q\nstored: %q",
				body,
				n.Body)
		}

		srv.CloseNotification(id)
	}
} // func TestBodyRoundTrip(t *testing.T)

func TestReplace(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var (
		err error
		id  uint32
		rid uint32
	)

	if id, err = srv.Notify("test", 0, "", "Original", "before", nil, nil, 0); err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	if rid, err = srv.Notify("test", id, "", "Replacement", "after", nil, nil, 0); err != nil {
		t.Fatalf("Replacing Notify failed: %s", err.Error())
	} else if rid != id {
		t.Fatalf("Replace changed the ID: %d -> %d", id, rid)
	}

	var n, ok = srv.reg.Get(id)

	if !ok {
		t.Fatalf("Notification %d is not active after replace", id)
	} else if n.Summary != "Replacement" || n.Body != "after" {
		t.Errorf("Replace did not overwrite the content: %q / %q",
			n.Summary,
			n.Body)
	}

	// Replacing must not have emitted any close signal.
	if sigs := rec.closedFor(id); len(sigs) != 0 {
		t.Errorf("Replace emitted %d NotificationClosed signals", len(sigs))
	}

	srv.CloseNotification(id)
} // func TestReplace(t *testing.T)

func TestReplaceUnknown(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	// A replaces_id that is not active gets a fresh ID instead.
	var id, err = srv.Notify("test", 999999, "", "Ghost", "", nil, nil, 0)

	if err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	} else if id == 999999 || id == 0 {
		t.Errorf("Replace of unknown ID returned %d", id)
	}

	srv.CloseNotification(id)
} // func TestReplaceUnknown(t *testing.T)

func TestCloseIsIdempotent(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var id, err = srv.Notify("test", 0, "", "Doomed", "", nil, nil, 0)

	if err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	srv.CloseNotification(id)
	srv.CloseNotification(id)

	var sigs = rec.closedFor(id)

	if len(sigs) != 1 {
		t.Fatalf("Closing twice emitted %d signals, expected exactly 1",
			len(sigs))
	} else if sigs[0].r != reason.CallerClosed {
		t.Errorf("Close emitted reason %s, expected %s",
			sigs[0].r,
			reason.CallerClosed)
	}

	if _, ok := srv.reg.Get(id); ok {
		t.Errorf("Notification %d is still active after closing", id)
	}
} // func TestCloseIsIdempotent(t *testing.T)

func TestCloseUnknown(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	const ghost = 123456

	srv.CloseNotification(ghost)

	if sigs := rec.closedFor(ghost); len(sigs) != 0 {
		t.Errorf("Closing an unknown ID emitted %d signals", len(sigs))
	}
} // func TestCloseUnknown(t *testing.T)

func TestExpiry(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var id, err = srv.Notify("test", 0, "", "Fleeting", "", nil, nil, 50)

	if err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	var deadline = time.Now().Add(time.Second * 2)

	for time.Now().Before(deadline) {
		if _, ok := srv.reg.Get(id); !ok {
			break
		}
		time.Sleep(time.Millisecond * 10)
	}

	if _, ok := srv.reg.Get(id); ok {
		t.Fatalf("Notification %d did not expire", id)
	}

	var sigs = rec.closedFor(id)

	if len(sigs) != 1 {
		t.Fatalf("Expiry emitted %d signals, expected 1", len(sigs))
	} else if sigs[0].r != reason.Expired {
		t.Errorf("Expiry emitted reason %s, expected %s",
			sigs[0].r,
			reason.Expired)
	}
} // func TestExpiry(t *testing.T)

func TestZeroTimeoutSticks(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var id, err = srv.Notify("test", 0, "", "Sticky", "", nil, nil, 0)

	if err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	time.Sleep(time.Millisecond * 150)

	if _, ok := srv.reg.Get(id); !ok {
		t.Fatal("Notification with timeout 0 went away on its own")
	}

	srv.CloseNotification(id)
} // func TestZeroTimeoutSticks(t *testing.T)

func TestDefaultTimeout(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var id, err = srv.Notify("test", 0, "", "Default timeout", "", nil, nil, -1)

	if err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	var n, ok = srv.reg.Get(id)

	if !ok {
		t.Fatalf("Notification %d is not active", id)
	} else if n.Timeout != srv.cfg.TimeoutNormal {
		t.Errorf("Timeout -1 resolved to %s, expected %s",
			n.Timeout,
			srv.cfg.TimeoutNormal)
	} else if n.Deadline.IsZero() {
		t.Error("No deadline was derived from the default timeout")
	}

	srv.CloseNotification(id)

	// A critical notification defaults to no expiry at all.
	var hints = map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(urgency.Critical)),
	}

	if id, err = srv.Notify("test", 0, "", "Critical", "", nil, hints, -1); err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	if n, ok = srv.reg.Get(id); !ok {
		t.Fatalf("Notification %d is not active", id)
	} else if n.Timeout != 0 {
		t.Errorf("Critical default timeout is %s, expected 0", n.Timeout)
	}

	srv.CloseNotification(id)
} // func TestDefaultTimeout(t *testing.T)

func TestReplaceRearmsTimer(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var id, err = srv.Notify("test", 0, "", "Short-lived", "", nil, nil, 60)

	if err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	// Replace with a sticky notification before the timer fires.
	if _, err = srv.Notify("test", id, "", "Now sticky", "", nil, nil, 0); err != nil {
		t.Fatalf("Replacing Notify failed: %s", err.Error())
	}

	time.Sleep(time.Millisecond * 200)

	if _, ok := srv.reg.Get(id); !ok {
		t.Fatal("The replaced notification was closed by the old timer")
	}

	if sigs := rec.closedFor(id); len(sigs) != 0 {
		t.Errorf("The superseded timer emitted %d signals", len(sigs))
	}

	srv.CloseNotification(id)
} // func TestReplaceRearmsTimer(t *testing.T)

func TestActionInvoked(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var actions = []string{"default", "Open Red"}
	var id, err = srv.Notify("test", 0, "", "Act on me", "", actions, nil, 0)

	if err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	srv.HandleUserEvent(objects.UserEvent{
		ID:        id,
		Kind:      objects.ActionActivated,
		ActionKey: "default",
	})

	var invoked = rec.invokedFor(id)

	if len(invoked) != 1 {
		t.Fatalf("Expected 1 ActionInvoked signal, got %d", len(invoked))
	} else if invoked[0].key != "default" {
		t.Errorf("ActionInvoked carries key %q", invoked[0].key)
	}

	// Non-resident, so the action also dismisses it.
	var sigs = rec.closedFor(id)

	if len(sigs) != 1 {
		t.Fatalf("Expected 1 NotificationClosed signal, got %d", len(sigs))
	} else if sigs[0].r != reason.Dismissed {
		t.Errorf("Close after action carries reason %s, expected %s",
			sigs[0].r,
			reason.Dismissed)
	}

	if _, ok := srv.reg.Get(id); ok {
		t.Error("Non-resident notification is still active after its action fired")
	}
} // func TestActionInvoked(t *testing.T)

func TestResidentSurvivesAction(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var (
		actions = []string{"default", "Keep me"}
		hints   = map[string]dbus.Variant{
			"resident": dbus.MakeVariant(true),
		}
	)

	var id, err = srv.Notify("test", 0, "", "Resident", "", actions, hints, 0)

	if err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	srv.HandleUserEvent(objects.UserEvent{
		ID:        id,
		Kind:      objects.ActionActivated,
		ActionKey: "default",
	})

	if len(rec.invokedFor(id)) != 1 {
		t.Error("Resident notification did not get its ActionInvoked signal")
	}

	if _, ok := srv.reg.Get(id); !ok {
		t.Fatal("Resident notification was closed by its action")
	}

	srv.CloseNotification(id)
} // func TestResidentSurvivesAction(t *testing.T)

func TestDismiss(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var id, err = srv.Notify("test", 0, "", "Swipe me away", "", nil, nil, 0)

	if err != nil {
		t.Fatalf("Notify failed: %s", err.Error())
	}

	srv.HandleUserEvent(objects.UserEvent{ID: id, Kind: objects.Dismissed})

	var sigs = rec.closedFor(id)

	if len(sigs) != 1 {
		t.Fatalf("Expected 1 NotificationClosed signal, got %d", len(sigs))
	} else if sigs[0].r != reason.Dismissed {
		t.Errorf("Dismiss carries reason %s, expected %s",
			sigs[0].r,
			reason.Dismissed)
	}
} // func TestDismiss(t *testing.T)

func TestStaleEventDropped(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	const ghost = 654321

	srv.HandleUserEvent(objects.UserEvent{ID: ghost, Kind: objects.Dismissed})
	srv.HandleUserEvent(objects.UserEvent{
		ID:        ghost,
		Kind:      objects.ActionActivated,
		ActionKey: "default",
	})

	if len(rec.closedFor(ghost)) != 0 || len(rec.invokedFor(ghost)) != 0 {
		t.Error("Events for a stale ID produced signals")
	}
} // func TestStaleEventDropped(t *testing.T)

func TestOddActionList(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var actions = []string{"default", "Open", "dangling-key"}
	var id, err = srv.Notify("test", 0, "", "Odd", "", actions, nil, 0)

	if err != nil {
		t.Fatalf("Notify with an odd action list failed: %s", err.Error())
	}

	var n, ok = srv.reg.Get(id)

	if !ok {
		t.Fatalf("Notification %d is not active", id)
	} else if len(n.Actions) != 1 {
		t.Errorf("Expected 1 action pair, got %d", len(n.Actions))
	} else if n.Actions[0].Key != "default" || n.Actions[0].Label != "Open" {
		t.Errorf("Action pair is %+v", n.Actions[0])
	}

	srv.CloseNotification(id)
} // func TestOddActionList(t *testing.T)

func TestIllTypedHints(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var hints = map[string]dbus.Variant{
		"urgency":     dbus.MakeVariant("very urgent indeed"), // wrong type
		"resident":    dbus.MakeVariant(int32(1)),             // wrong type
		"category":    dbus.MakeVariant("email.arrived"),
		"x-vendor-ex": dbus.MakeVariant([]string{"ignored"}),
	}

	var id, err = srv.Notify("test", 0, "", "Hints", "", nil, hints, 0)

	if err != nil {
		t.Fatalf("Notify with broken hints failed: %s", err.Error())
	}

	var n, ok = srv.reg.Get(id)

	if !ok {
		t.Fatalf("Notification %d is not active", id)
	} else if n.Hints.Urgency != urgency.Normal {
		t.Errorf("Ill-typed urgency was not dropped: %s", n.Hints.Urgency)
	} else if n.Hints.Resident {
		t.Error("Ill-typed resident hint was not dropped")
	} else if n.Hints.Category != "email.arrived" {
		t.Errorf("Well-formed category hint was lost: %q", n.Hints.Category)
	}

	srv.CloseNotification(id)
} // func TestIllTypedHints(t *testing.T)

func TestGetCapabilities(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var caps = srv.GetCapabilities()
	var want = map[string]bool{
		"body":    false,
		"actions": false,
	}

	for _, c := range caps {
		if _, ok := want[c]; ok {
			want[c] = true
		}
	}

	for c, found := range want {
		if !found {
			t.Errorf("Capability %q is not advertised", c)
		}
	}
} // func TestGetCapabilities(t *testing.T)

func TestGetServerInformation(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var name, vendor, version, specVersion = srv.GetServerInformation()

	if name != common.AppName {
		t.Errorf("Unexpected server name %q", name)
	} else if vendor != common.Vendor {
		t.Errorf("Unexpected vendor %q", vendor)
	} else if version != common.Version {
		t.Errorf("Unexpected version %q", version)
	} else if specVersion != common.SpecVersion {
		t.Errorf("Unexpected spec version %q", specVersion)
	}
} // func TestGetServerInformation(t *testing.T)

func TestDisplayLimit(t *testing.T) {
	var (
		err     error
		limited *Server
		cfg     = config.Default()
		lrec    = &sigRecorder{}
	)

	cfg.DisplayLimit = 2

	if limited, err = NewServer(cfg, newFakeRenderer(), lrec, nil); err != nil {
		t.Fatalf("Cannot create Server: %s", err.Error())
	}

	var ids [3]uint32

	for i := range ids {
		if ids[i], err = limited.Notify("test", 0, "",
			fmt.Sprintf("number %d", i), "", nil, nil, 0); err != nil {
			t.Fatalf("Notify failed: %s", err.Error())
		}

		time.Sleep(time.Millisecond * 5)
	}

	if limited.reg.Size() != 2 {
		t.Fatalf("Display limit 2 left %d active notifications",
			limited.reg.Size())
	}

	var sigs = lrec.closedFor(ids[0])

	if len(sigs) != 1 {
		t.Fatalf("Eviction emitted %d signals for the oldest ID", len(sigs))
	} else if sigs[0].r != reason.Undefined {
		t.Errorf("Eviction carries reason %s, expected %s",
			sigs[0].r,
			reason.Undefined)
	}
} // func TestDisplayLimit(t *testing.T)

func TestConcurrentNotify(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	const (
		workers   = 16
		perWorker = 32
	)

	var (
		wg  sync.WaitGroup
		ids = make(chan uint32, workers*perWorker)
	)

	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()

			for i := 0; i < perWorker; i++ {
				var id, err = srv.Notify(
					"stress",
					0,
					"",
					fmt.Sprintf("stress %d/%d", w, i),
					"",
					nil,
					nil,
					0)

				if err != nil {
					t.Errorf("Notify failed: %s", err.Error())
					return
				}

				ids <- id
			}
		}(w)
	}

	wg.Wait()
	close(ids)

	var seen = make(map[uint32]bool, workers*perWorker)

	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate ID %d under concurrent Notify", id)
		}

		seen[id] = true
		srv.CloseNotification(id)
	}
} // func TestConcurrentNotify(t *testing.T)
