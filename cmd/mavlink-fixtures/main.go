// Command mavlink-fixtures runs the golden end-to-end scenarios in
// internal/fixtures against the mavlink package and reports pass/fail per
// scenario. It exists to give a human a way to see the codec's documented
// behavior exercised against fixed byte vectors — a conformance check, not
// a transport or dialect example.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kstaniek/go-mavlink/internal/diag"
	"github.com/kstaniek/go-mavlink/internal/logging"
	"github.com/kstaniek/go-mavlink/mavlink"
)

func main() {
	cfg, ok := parseFlags(os.Args[1:])
	if !ok {
		os.Exit(2)
	}

	log := logging.New(cfg.logFormat, cfg.logLevel, os.Stderr)
	logging.Set(log)

	var observer mavlink.Observer
	if cfg.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics := diag.New(reg)
		observer = metrics

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		go func() {
			if err := diag.StartHTTP(ctx, cfg.metricsAddr, reg); err != nil {
				log.Error("metrics server stopped", "error", err)
			}
		}()
	}

	names := []string{"junk-v1", "v2-unsigned", "v2-signed", "upgrade", "version-reject", "sequencer-fork"}
	if cfg.scenario != "all" {
		names = []string{cfg.scenario}
	}

	failed := false
	for _, name := range names {
		run, known := scenarios[name]
		if !known {
			log.Error("unknown scenario", "scenario", name)
			failed = true
			continue
		}
		if err := run(observer); err != nil {
			log.Error("scenario failed", "scenario", name, "error", err)
			failed = true
			continue
		}
		log.Info("scenario passed", "scenario", name)
	}

	if failed {
		os.Exit(1)
	}
}
