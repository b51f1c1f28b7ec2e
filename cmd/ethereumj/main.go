package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/runtofuture/ethereumj/internal/config"
	"github.com/runtofuture/ethereumj/internal/logging"
	"github.com/runtofuture/ethereumj/internal/node"
	"github.com/runtofuture/ethereumj/internal/publish"
	"github.com/runtofuture/ethereumj/internal/publish/event"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (YAML)")

	var (
		logLevel    = flag.String("log-level", "", "Log level override (debug, info, warn, error)")
		dbDir       = flag.String("db", "", "Block store directory override")
		metricsAddr = flag.String("metrics", "", "Metrics listen address (empty to disable)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config file %s: %v", *configFile, err)
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *dbDir != "" {
		cfg.Database.Dir = *dbDir
	}
	if *metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.ListenAddr = *metricsAddr
	}

	n, err := node.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create node: %v", err)
	}
	if err := n.Start(); err != nil {
		log.Fatalf("Failed to start node: %v", err)
	}

	logger := logging.WithComponent("main")
	publish.SubscribeTo(n.Bus(), func(e event.Trace) { logger.Debug(e.Output) })
	publish.SubscribeTo(n.Bus(), func(e event.SyncDone) { logger.Infof("Sync done: %s", e.State) })
	n.Bus().Publish(event.Trace{Output: "node started"})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Infof("Received %s, shutting down", sig)

	if err := n.Stop(); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
}
