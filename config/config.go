// /home/dbeesley/go/src/github.com/davidbeesley/runst/config/config.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-31 12:05:48 dbeesley>

// Package config loads the daemon's settings. The configuration file
// is optional; every setting has a default, so a missing file is not
// an error. The file is looked for at $RUNST_CONFIG, then in the
// application base directory, then in the XDG config directory.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/blicero/krylib"
	"github.com/davidbeesley/runst/common"
	"github.com/davidbeesley/runst/objects/urgency"
	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable naming the configuration file.
const ConfigEnv = "RUNST_CONFIG"

// Config holds the daemon's settings.
type Config struct {
	ListenAddr          string
	StartupNotification bool
	HistoryLimit        int
	DisplayLimit        int
	MaxSummaryLength    int
	MaxBodyLength       int
	TimeoutLow          time.Duration
	TimeoutNormal       time.Duration
	TimeoutCritical     time.Duration
}

// Default returns the built-in configuration.
func Default() *Config {
	var c Config

	fromViper(&c, newViper())

	return &c
} // func Default() *Config

// Load reads the configuration file, if one exists, and fills in
// defaults for everything it does not set.
func Load() (*Config, error) {
	var (
		err  error
		path string
		c    Config
		v    = newViper()
	)

	if path, err = findConfigFile(); err != nil {
		return nil, err
	} else if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")

		if err = v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	fromViper(&c, v)

	return &c, nil
} // func Load() (*Config, error)

func newViper() *viper.Viper {
	var v = viper.New()

	v.SetDefault("global.listen-addr", "localhost:4711")
	v.SetDefault("global.startup-notification", false)
	v.SetDefault("global.history-limit", 10000)
	v.SetDefault("global.display-limit", 0)
	v.SetDefault("global.max-summary-length", 1024)
	v.SetDefault("global.max-body-length", 16384)
	v.SetDefault("urgency.low.timeout", 5000)
	v.SetDefault("urgency.normal.timeout", 5000)
	// Critical notifications stay up until acted upon.
	v.SetDefault("urgency.critical.timeout", 0)

	return v
} // func newViper() *viper.Viper

func fromViper(c *Config, v *viper.Viper) {
	c.ListenAddr = v.GetString("global.listen-addr")
	c.StartupNotification = v.GetBool("global.startup-notification")
	c.HistoryLimit = v.GetInt("global.history-limit")
	c.DisplayLimit = v.GetInt("global.display-limit")
	c.MaxSummaryLength = v.GetInt("global.max-summary-length")
	c.MaxBodyLength = v.GetInt("global.max-body-length")
	c.TimeoutLow = time.Duration(v.GetInt("urgency.low.timeout")) * time.Millisecond
	c.TimeoutNormal = time.Duration(v.GetInt("urgency.normal.timeout")) * time.Millisecond
	c.TimeoutCritical = time.Duration(v.GetInt("urgency.critical.timeout")) * time.Millisecond
} // func fromViper(c *Config, v *viper.Viper)

func findConfigFile() (string, error) {
	var candidates = make([]string, 0, 3)

	if env := os.Getenv(ConfigEnv); env != "" {
		candidates = append(candidates, env)
	}

	candidates = append(candidates, common.ConfigPath)

	if xdg, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(xdg, common.AppName, common.AppName+".toml"))
	}

	for _, path := range candidates {
		var ex, err = krylib.Fexists(path)

		if err != nil {
			return "", err
		} else if ex {
			return path, nil
		}
	}

	return "", nil
} // func findConfigFile() (string, error)

// DefaultTimeout returns the expiry timeout to use for a notification
// of the given urgency when the caller asked for the server default.
func (c *Config) DefaultTimeout(lvl urgency.Level) time.Duration {
	switch lvl {
	case urgency.Low:
		return c.TimeoutLow
	case urgency.Critical:
		return c.TimeoutCritical
	default:
		return c.TimeoutNormal
	}
} // func (c *Config) DefaultTimeout(lvl urgency.Level) time.Duration
