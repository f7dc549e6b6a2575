// /home/dbeesley/go/src/github.com/davidbeesley/runst/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 19:12:50 dbeesley>

package backend

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/davidbeesley/runst/objects"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

// The control surface is for the local operator: peeking at what is
// currently displayed, digging through the history, force-closing a
// notification that a client forgot about.
func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/notification/active", d.handleActiveList)
	d.router.HandleFunc("/notification/{id:(?:\\d+)}/close", d.handleForceClose)
	d.router.HandleFunc("/history/recent/{count:(?:\\d+)}", d.handleHistoryRecent)
	d.router.HandleFunc("/history/all", d.handleHistoryAll)
	d.router.HandleFunc("/history/search", d.handleHistorySearch)
	d.router.HandleFunc("/history/clear", d.handleHistoryClear)
	d.router.HandleFunc("/info", d.handleInfo)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Control surface is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) handleActiveList(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	d.sendListJSON(w, d.srv.Active())
} // func (d *Daemon) handleActiveList(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleForceClose(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		id       uint64
		idstr    = mux.Vars(r)["id"]
		response objects.Response
	)

	if id, err = strconv.ParseUint(idstr, 10, 32); err != nil {
		response.Message = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", response.Message)
		goto SEND_RESPONSE
	}

	response.ID = uint32(id)

	if d.srv.ForceClose(uint32(id)) {
		response.Status = true
		response.Message = "OK"
	} else {
		// Closing an unknown ID is not an error, just not news.
		response.Status = true
		response.Message = fmt.Sprintf("Notification %d was not active", id)
	}

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleForceClose(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHistoryRecent(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		cnt     int64
		entries []objects.HistoryEntry
		cstr    = mux.Vars(r)["count"]
	)

	if cnt, err = strconv.ParseInt(cstr, 10, 32); err != nil {
		d.log.Printf("[ERROR] Cannot parse count %q: %s\n",
			cstr,
			err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var db = d.pool.Get()
	defer d.pool.Put(db)

	if entries, err = db.HistoryGetRecent(int(cnt)); err != nil {
		d.log.Printf("[ERROR] Cannot load recent history: %s\n",
			err.Error())
	}

	d.sendListJSON(w, entries)
} // func (d *Daemon) handleHistoryRecent(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHistoryAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		entries []objects.HistoryEntry
	)

	var db = d.pool.Get()
	defer d.pool.Put(db)

	if entries, err = db.HistoryGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load history: %s\n",
			err.Error())
	}

	d.sendListJSON(w, entries)
} // func (d *Daemon) handleHistoryAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHistorySearch(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		entries []objects.HistoryEntry
		needle  = r.FormValue("q")
	)

	var db = d.pool.Get()
	defer d.pool.Put(db)

	if entries, err = db.HistorySearch(needle); err != nil {
		d.log.Printf("[ERROR] Cannot search history for %q: %s\n",
			needle,
			err.Error())
	}

	d.sendListJSON(w, entries)
} // func (d *Daemon) handleHistorySearch(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		response objects.Response
	)

	var db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.HistoryClear(); err != nil {
		response.Message = err.Error()
	} else {
		response.Status = true
		response.Message = "History cleared"
	}

	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleHistoryClear(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleInfo(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var name, vendor, version, specVersion = d.srv.GetServerInformation()

	var info = map[string]interface{}{
		"Name":         name,
		"Vendor":       vendor,
		"Version":      version,
		"SpecVersion":  specVersion,
		"Capabilities": d.srv.GetCapabilities(),
		"Active":       len(d.srv.Active()),
	}

	d.sendListJSON(w, info)
} // func (d *Daemon) handleInfo(w http.ResponseWriter, r *http.Request)

func (d *Daemon) sendListJSON(w http.ResponseWriter, payload interface{}) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(payload); err != nil {
		d.log.Printf("[ERROR] Cannot serialize payload: %s\n",
			err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendListJSON(w http.ResponseWriter, payload interface{})

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response: %s\n",
			err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)
