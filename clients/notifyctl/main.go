// /home/dbeesley/go/src/github.com/davidbeesley/runst/clients/notifyctl/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 21:14:37 dbeesley>

// notifyctl is a small client for poking at the notification server
// from the command line. It can post notifications, close them,
// query the server and sit on the bus watching signals.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davidbeesley/runst/clients/clientlib"
	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/objects/urgency"
	"github.com/godbus/dbus/v5"
)

func main() {
	var (
		err        error
		c          *clientlib.Client
		summary    string
		body       string
		appName    string
		icon       string
		actionSpec string
		urgName    string
		replaceID  uint
		timeout    int
		doClose    uint
		doCaps     bool
		doInfo     bool
		doWatch    bool
	)

	flag.StringVar(&summary, "summary", "", "Summary of the notification to post")
	flag.StringVar(&body, "body", "", "Body of the notification")
	flag.StringVar(&appName, "app", "notifyctl", "Application name to report")
	flag.StringVar(&icon, "icon", "", "Icon name or path")
	flag.StringVar(&actionSpec, "actions", "", "Comma-separated key=label action pairs")
	flag.StringVar(&urgName, "urgency", "", "Urgency (low, normal, critical)")
	flag.UintVar(&replaceID, "replace", 0, "ID of a notification to replace")
	flag.IntVar(&timeout, "timeout", -1, "Expiry timeout in ms (-1 default, 0 never)")
	flag.UintVar(&doClose, "close", 0, "Close the notification with the given ID")
	flag.BoolVar(&doCaps, "caps", false, "Print the server's capabilities")
	flag.BoolVar(&doInfo, "info", false, "Print the server's identity")
	flag.BoolVar(&doWatch, "watch", false, "Watch for signals until interrupted")

	flag.Parse()

	fmt.Printf("%s %s clientlib, built on %s\n",
		common.AppName,
		common.Version,
		common.BuildStamp.Format(common.TimestampFormat))

	if err = common.InitApp(); err != nil {
		fmt.Fprintf(os.Stderr,
			"Cannot initialize directory %s: %s\n",
			common.BaseDir,
			err.Error())
		os.Exit(1)
	} else if c, err = clientlib.NewClient(); err != nil {
		fmt.Fprintf(os.Stderr,
			"Cannot connect to the session bus: %s\n",
			err.Error())
		os.Exit(1)
	}

	defer c.Close() // nolint: errcheck

	if doInfo {
		var info clientlib.ServerInformation

		if info, err = c.GetServerInformation(); err != nil {
			fmt.Fprintf(os.Stderr, "GetServerInformation failed: %s\n",
				err.Error())
			os.Exit(1)
		}

		fmt.Printf("Server:       %s\nVendor:       %s\nVersion:      %s\nSpec version: %s\n",
			info.Name,
			info.Vendor,
			info.Version,
			info.SpecVersion)
	}

	if doCaps {
		var caps []string

		if caps, err = c.GetCapabilities(); err != nil {
			fmt.Fprintf(os.Stderr, "GetCapabilities failed: %s\n",
				err.Error())
			os.Exit(1)
		}

		fmt.Printf("Capabilities: %s\n",
			strings.Join(caps, ", "))
	}

	if doClose != 0 {
		if err = c.CloseNotification(uint32(doClose)); err != nil {
			fmt.Fprintf(os.Stderr, "CloseNotification failed: %s\n",
				err.Error())
			os.Exit(1)
		}

		fmt.Printf("Asked the server to close notification %d\n", doClose)
	}

	if summary != "" || body != "" {
		var (
			id      uint32
			actions = parseActionSpec(actionSpec)
			hints   = map[string]dbus.Variant{}
		)

		switch strings.ToLower(urgName) {
		case "":
			// no hint
		case "low":
			hints["urgency"] = dbus.MakeVariant(byte(urgency.Low))
		case "normal":
			hints["urgency"] = dbus.MakeVariant(byte(urgency.Normal))
		case "critical":
			hints["urgency"] = dbus.MakeVariant(byte(urgency.Critical))
		default:
			fmt.Fprintf(os.Stderr, "Unknown urgency %q\n", urgName)
			os.Exit(1)
		}

		id, err = c.SendNotification(
			appName,
			uint32(replaceID),
			icon,
			summary,
			body,
			actions,
			hints,
			int32(timeout))

		if err != nil {
			fmt.Fprintf(os.Stderr, "Notify failed: %s\n",
				err.Error())
			os.Exit(1)
		}

		fmt.Printf("Notification posted, ID is %d\n", id)
	}

	if doWatch {
		var (
			closed  <-chan clientlib.ClosedEvent
			invoked <-chan clientlib.ActionEvent
		)

		if closed, invoked, err = c.WatchSignals(); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot watch signals: %s\n",
				err.Error())
			os.Exit(1)
		}

		fmt.Println("Watching for signals, interrupt to quit.")

		for {
			select {
			case ev, ok := <-closed:
				if !ok {
					return
				}
				fmt.Printf("NotificationClosed: ID %d, reason %s\n",
					ev.ID,
					ev.Reason)
			case ev, ok := <-invoked:
				if !ok {
					return
				}
				fmt.Printf("ActionInvoked: ID %d, key %q\n",
					ev.ID,
					ev.Key)
			}
		}
	}
} // func main()

// parseActionSpec turns "default=Open,ignore=Dismiss" into the flat
// key/label list the wire format uses.
func parseActionSpec(spec string) []string {
	if spec == "" {
		return nil
	}

	var flat []string

	for _, pair := range strings.Split(spec, ",") {
		var key, label, found = strings.Cut(pair, "=")

		if !found || key == "" {
			fmt.Fprintf(os.Stderr,
				"Skipping malformed action %q\n",
				pair)
			continue
		}

		flat = append(flat, key, label)
	}

	return flat
} // func parseActionSpec(spec string) []string
