// cmd/helios/main.go
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/helios-modbus/internal/config"
	"github.com/tamzrod/helios-modbus/internal/poller"
	"github.com/tamzrod/helios-modbus/internal/status"
)

func main() {
	debug := flag.Bool("debug", false, "log every register exchange")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("usage: helios [-debug] <config.yaml>")
	}

	cfgPath := flag.Arg(0)

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Build poller (connects once, fail fast)
	// --------------------

	p, err := poller.Build(cfg.Helios, logger)
	if err != nil {
		log.Fatalf("poller build failed (endpoint=%s): %v", cfg.Helios.Endpoint, err)
	}
	defer p.Close()

	out := make(chan poller.PollResult)
	go func() {
		p.Run(ctx, out)
		close(out)
	}()

	var tracker status.Tracker
	exitCode := 0

	for res := range out {
		if tracker.Observe(res.Err, time.Now()) {
			snap := tracker.Snapshot()
			logger.Info("device health changed",
				"health", healthName(snap.Health),
				"last_error_code", snap.LastErrorCode,
			)
		}

		if res.Err != nil {
			logger.Error("poll failed", "err", res.Err)
			exitCode = 1
			continue
		}
		exitCode = 0

		for _, r := range res.Results {
			logger.Info("query",
				"name", r.Name,
				"register", int(r.Response.ID),
				"value", r.Response.Value,
			)
		}
	}

	if exitCode != 0 {
		p.Close()
		os.Exit(exitCode)
	}
}

func healthName(h uint16) string {
	switch h {
	case status.HealthOK:
		return "ok"
	case status.HealthError:
		return "error"
	default:
		return "unknown"
	}
}
