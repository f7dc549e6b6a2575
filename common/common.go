// /home/dbeesley/go/src/github.com/davidbeesley/runst/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-30 21:48:36 dbeesley>

// Package common provides constants and helpers used throughout
// the application: names and version info, the filesystem locations
// where the application keeps its files, and the Logger.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/blicero/krylib"
	"github.com/davidbeesley/runst/logdomain"
	"github.com/hashicorp/logutils"
	uuid "github.com/odeke-em/go-uuid"
)

// Application-level constants.
const (
	AppName     = "runst"
	Vendor      = "davidbeesley"
	Version     = "0.3.1"
	SpecVersion = "1.2"
	Debug       = true

	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000"
	TimestampFormatTime      = "15:04:05"
)

// BuildStampStr is the timestamp of the build, meant to be set via
// the linker at build time.
var BuildStampStr = "2026-08-28 18:12:33"

// BuildStamp is the timestamp of the build.
var BuildStamp time.Time

// MinLogLevel is the minimum level of log messages that actually get logged.
var MinLogLevel logutils.LogLevel = "TRACE"

var logLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
}

func init() {
	if !Debug {
		MinLogLevel = "INFO"
	}

	var err error

	if BuildStamp, err = time.Parse(TimestampFormat, BuildStampStr); err != nil {
		BuildStamp = time.Unix(0, 0)
	}
} // func init()

// BaseDir is the directory where the application keeps its files.
var BaseDir = filepath.Join(
	os.Getenv("HOME"),
	fmt.Sprintf(".%s.d", AppName))

// LogPath is the path of the log file.
var LogPath = filepath.Join(BaseDir, fmt.Sprintf("%s.log", AppName))

// DbPath is the path of the history database.
var DbPath = filepath.Join(BaseDir, fmt.Sprintf("%s.db", AppName))

// ConfigPath is the default path of the configuration file.
var ConfigPath = filepath.Join(BaseDir, fmt.Sprintf("%s.toml", AppName))

// SetBaseDir sets the directory where the application keeps its files
// and adjusts the paths of the log file, the database, and the
// configuration file accordingly.
// Mainly useful for testing.
func SetBaseDir(path string) error {
	BaseDir = path
	LogPath = filepath.Join(BaseDir, fmt.Sprintf("%s.log", AppName))
	DbPath = filepath.Join(BaseDir, fmt.Sprintf("%s.db", AppName))
	ConfigPath = filepath.Join(BaseDir, fmt.Sprintf("%s.toml", AppName))

	return InitApp()
} // func SetBaseDir(path string) error

// InitApp makes sure the BaseDir exists.
func InitApp() error {
	var (
		err error
		ex  bool
	)

	if ex, err = krylib.Fexists(BaseDir); err != nil {
		return err
	} else if ex {
		return nil
	} else if err = os.MkdirAll(BaseDir, 0755); err != nil {
		return fmt.Errorf("Cannot create BaseDir %s: %s",
			BaseDir,
			err.Error())
	}

	return nil
} // func InitApp() error

// GetLogger returns a Logger for the given log source.
// Log messages are written both to stdout and the log file.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err error
		fh  *os.File
	)

	if err = InitApp(); err != nil {
		return nil, err
	}

	if fh, err = os.OpenFile(LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
		return nil, fmt.Errorf("Cannot open log file %s: %s",
			LogPath,
			err.Error())
	}

	var writer = io.MultiWriter(os.Stdout, fh)
	var filter = &logutils.LevelFilter{
		Levels:   logLevels,
		MinLevel: MinLogLevel,
		Writer:   writer,
	}

	var logName = fmt.Sprintf("%s.%s ", AppName, dom)

	return log.New(filter, logName, log.Ldate|log.Ltime|log.Lshortfile), nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// GetUUID returns a randomized UUID as a string.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string

// Now returns the current time, truncated to second precision.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
} // func Now() time.Time
