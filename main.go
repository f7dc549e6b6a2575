// /home/dbeesley/go/src/github.com/davidbeesley/runst/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 21:41:02 dbeesley>

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/davidbeesley/runst/backend"
	"github.com/davidbeesley/runst/clients/clientlib"
	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/database"
	"github.com/davidbeesley/runst/objects"
	"github.com/pquerna/ffjson/ffjson"
)

func main() {
	fmt.Printf("%s %s (built %s)\n",
		common.AppName,
		common.Version,
		common.BuildStamp.Format(common.TimestampFormat))

	var (
		err                error
		appDir, mode, addr string
	)

	flag.StringVar(
		&appDir,
		"appdir",
		common.BaseDir,
		"The directory where application-specific files live")

	flag.StringVar(
		&mode,
		"mode",
		"daemon",
		"What to run: *daemon*, *history*, or *send*",
	)

	flag.StringVar(
		&addr,
		"address",
		"",
		"Address for the control interface to listen on (daemon mode)",
	)

	// history mode
	var (
		histCount  int
		histSearch string
		histAll    bool
		histJSON   bool
		histClear  bool
		histPath   string
	)

	flag.IntVar(&histCount, "count", 20, "How many history entries to show")
	flag.StringVar(&histSearch, "search", "", "Show history entries matching this string")
	flag.BoolVar(&histAll, "all", false, "Show the entire history")
	flag.BoolVar(&histJSON, "json", false, "Emit history entries as JSON")
	flag.BoolVar(&histClear, "clear", false, "Delete the entire history")
	flag.StringVar(&histPath, "path", "", "Path of the history database")

	// send mode
	var (
		sendSummary string
		sendBody    string
		sendTimeout int
	)

	flag.StringVar(&sendSummary, "summary", "", "Summary of the notification to send")
	flag.StringVar(&sendBody, "body", "", "Body of the notification to send")
	flag.IntVar(&sendTimeout, "timeout", -1, "Expiry timeout in ms (-1 default, 0 never)")

	flag.Parse()

	if appDir != common.BaseDir {
		if err = common.SetBaseDir(appDir); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot use application directory %s: %s\n",
				appDir,
				err.Error())
			os.Exit(1)
		}
	}

	switch mode {
	case "daemon":
		runDaemon(addr)
	case "history":
		runHistory(histPath, histCount, histSearch, histAll, histJSON, histClear)
	case "send":
		runSend(sendSummary, sendBody, sendTimeout)
	default:
		fmt.Fprintf(
			os.Stderr,
			"Unknown mode %q\n",
			mode,
		)

		os.Exit(1)
	}
} // func main()

func runDaemon(addr string) {
	var (
		err    error
		daemon *backend.Daemon
	)

	if daemon, err = backend.Summon(addr, nil); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to initialize backend: %s\n",
			err.Error())
		os.Exit(1)
	}

	var sigQ = make(chan os.Signal, 1)
	var ticker = time.NewTicker(time.Second * 2)

	signal.Notify(sigQ, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	for daemon.IsAlive() {
		select {
		case sig := <-sigQ:
			fmt.Printf("Quitting on signal %s\n", sig)
			daemon.Banish() // nolint: errcheck
			os.Exit(0)
		case <-ticker.C:
			continue
		}
	}
} // func runDaemon(addr string)

func runHistory(path string, count int, search string, all, asJSON, clear bool) {
	var (
		err     error
		db      *database.Database
		entries []objects.HistoryEntry
	)

	if path == "" {
		path = common.DbPath
	}

	if db, err = database.Open(path); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot open history database %s: %s\n",
			path,
			err.Error())
		os.Exit(1)
	}

	defer db.Close() // nolint: errcheck

	if clear {
		if err = db.HistoryClear(); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot clear history: %s\n",
				err.Error())
			os.Exit(1)
		}

		fmt.Println("History cleared.")
		return
	}

	if search != "" {
		entries, err = db.HistorySearch(search)
	} else if all {
		entries, err = db.HistoryGetAll()
	} else {
		entries, err = db.HistoryGetRecent(count)
	}

	if err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot read history: %s\n",
			err.Error())
		os.Exit(1)
	}

	if asJSON {
		var buf []byte

		if buf, err = ffjson.Marshal(entries); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot serialize history: %s\n",
				err.Error())
			os.Exit(1)
		}

		defer ffjson.Pool(buf)
		fmt.Println(string(buf))
		return
	}

	for _, e := range entries {
		var body = e.Body

		if idx := strings.IndexByte(body, '\n'); idx >= 0 {
			body = body[:idx] + " [...]"
		}

		fmt.Printf("%s  %-10s  [%s] %s",
			e.Timestamp.Format(common.TimestampFormat),
			e.AppName,
			e.Urgency,
			e.Summary)

		if body != "" {
			fmt.Printf(" - %s", body)
		}

		fmt.Println()
	}
} // func runHistory(...)

func runSend(summary, body string, timeout int) {
	var (
		err error
		c   *clientlib.Client
		id  uint32
	)

	if summary == "" && body == "" {
		fmt.Fprintln(os.Stderr, "send mode needs -summary and/or -body")
		os.Exit(1)
	}

	if c, err = clientlib.NewClient(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot connect to the session bus: %s\n",
			err.Error())
		os.Exit(1)
	}

	defer c.Close() // nolint: errcheck

	id, err = c.SendNotification(
		common.AppName,
		0,
		"",
		summary,
		body,
		nil,
		nil,
		int32(timeout))

	if err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot send notification: %s\n",
			err.Error())
		os.Exit(1)
	}

	fmt.Printf("Notification posted, ID is %d\n", id)
} // func runSend(summary, body string, timeout int)
