// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

// Command ticketprobe POSTs one DCAF ticket request to a client authorization
// manager and prints the response. With no flags it talks to the CAM on
// 127.0.0.1:8003.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/beduino/dcafprobe/dcaf"
	"github.com/beduino/dcafprobe/probe"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			logrus.WithError(err).Error("ticket request failed")
			os.Exit(1)
		}
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		address  string
		path     string
		timeout  time.Duration
		sam      string
		ts       string
		scopes   scopeList
		cfgFile  string
		logLevel string
	)

	cfg := probe.DefaultConfig()

	flagSet := pflag.NewFlagSet("ticketprobe", pflag.ContinueOnError)
	flagSet.StringVar(&address, "address", cfg.Address, "host:port of the client authorization manager")
	flagSet.StringVar(&path, "path", cfg.Path, "resource path of the ticket request endpoint")
	flagSet.DurationVar(&timeout, "timeout", cfg.Timeout, "how long to wait for the response")
	flagSet.StringVar(&sam, "sam", cfg.Request.SAM, "SAM the resource server uses")
	flagSet.Var(&scopes, "scope", "requested SAI item as uri=METHODS, e.g. coaps://rs/x=GET|PUT (repeatable)")
	flagSet.StringVar(&ts, "ts", "", "optional TS value")
	flagSet.StringVar(&cfgFile, "config", "", "YAML file with probe settings, applied before flags")
	flagSet.StringVar(&logLevel, "log-level", "warning", "log level (debug, info, warning, error)")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfgFile != "" {
		if err := loadConfigFile(&cfg, cfgFile); err != nil {
			return err
		}
	}

	if err := applyFlags(&cfg, flagSet, address, path, timeout, sam, ts, scopes); err != nil {
		return err
	}

	res, err := cfg.Run(context.Background())
	if res != nil {
		if rerr := res.Render(stdout); rerr != nil {
			return rerr
		}
	}

	return err
}

func loadConfigFile(cfg *probe.Config, name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	m := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parsing config %s: %w", name, err)
	}

	if err := cfg.Configure(m); err != nil {
		return fmt.Errorf("config %s: %w", name, err)
	}

	return nil
}

// applyFlags overrides cfg with the flags that were explicitly set
func applyFlags(
	cfg *probe.Config,
	flagSet *pflag.FlagSet,
	address, path string,
	timeout time.Duration,
	sam, ts string,
	scopes scopeList,
) error {
	if flagSet.Changed("address") {
		if err := cfg.SetAddress(address); err != nil {
			return err
		}
	}

	if flagSet.Changed("path") {
		if err := cfg.SetPath(path); err != nil {
			return err
		}
	}

	if flagSet.Changed("timeout") {
		if err := cfg.SetTimeout(timeout); err != nil {
			return err
		}
	}

	req := cfg.Request

	if flagSet.Changed("sam") {
		req.SAM = sam
	}

	if flagSet.Changed("ts") {
		req.TS = ts
	}

	if len(scopes) > 0 {
		req.SAI = append([]dcaf.ScopeItem(nil), scopes...)
	}

	return cfg.SetRequest(req)
}

// parseScope splits "uri=METHODS" at the last '=' so that URIs with query
// strings survive
func parseScope(s string) (dcaf.ScopeItem, error) {
	i := strings.LastIndex(s, "=")
	if i <= 0 {
		return dcaf.ScopeItem{}, fmt.Errorf("malformed scope %q, expected uri=METHODS", s)
	}

	var m dcaf.Method
	if err := m.Set(s[i+1:]); err != nil {
		return dcaf.ScopeItem{}, fmt.Errorf("scope %q: %w", s, err)
	}

	return dcaf.NewScopeItem(s[:i], m), nil
}

// scopeList collects repeated --scope flags. It implements the pflag.Value
// interface.
type scopeList []dcaf.ScopeItem

func (o *scopeList) String() string {
	parts := make([]string, 0, len(*o))
	for _, item := range *o {
		m := item.Methods
		parts = append(parts, item.URI+"="+m.String())
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (o *scopeList) Set(v string) error {
	item, err := parseScope(v)
	if err != nil {
		return err
	}
	*o = append(*o, item)
	return nil
}

// Type returns the string representing the type name (used by pflag).
func (o *scopeList) Type() string {
	return "uri=METHODS"
}
