package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

type config struct {
	logFormat   string
	logLevel    slog.Level
	metricsAddr string
	scenario    string
}

func parseFlags(args []string) (*config, bool) {
	fs := flag.NewFlagSet("mavlink-fixtures", flag.ContinueOnError)
	logFormat := fs.String("log-format", "text", "log output format: text or json")
	logLevelStr := fs.String("log-level", "info", "log level: debug, info, warn, error")
	metricsAddr := fs.String("metrics-addr", "", "address to serve Prometheus metrics on (empty disables)")
	scenario := fs.String("scenario", "all", "fixture scenario to run: junk-v1, v2-unsigned, v2-signed, upgrade, version-reject, sequencer-fork, all")

	if err := fs.Parse(args); err != nil {
		return nil, false
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevelStr)); err != nil {
		fmt.Fprintf(os.Stderr, "mavlink-fixtures: invalid -log-level %q: %v\n", *logLevelStr, err)
		return nil, false
	}

	return &config{
		logFormat:   *logFormat,
		logLevel:    level,
		metricsAddr: *metricsAddr,
		scenario:    *scenario,
	}, true
}
