package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lmmx/roundel"
	"github.com/lmmx/roundel/config"
	"github.com/lmmx/roundel/formatter"
	"github.com/lmmx/roundel/internal"
	"github.com/lmmx/roundel/resolver"
	"github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "", "config file path (default: search config.yml, ./config/config.yml)")
	mode       = flag.String("mode", "serve", "serve|oneshot")
	source     = flag.String("source", "", "data source [live, static, synthetic] (overrides config)")
	topology   = flag.String("topology", "", "topology source [format: {fspath}, {url} or {db}.{col}] (overrides config)")
	logLevel   = flag.String("log-level", "", "log level [debug, info, warn, error, fatal, panic] (overrides config)")
	pprofAddr  = flag.String("pprof", "", "pprof listening address, empty disables it")

	// oneshot
	format      = flag.String("format", "json", "json|xml")
	ticks       = flag.Int("ticks", 0, "frames to advance before the snapshot")
	lineRef     = flag.String("lineRef", "", "LineRef filter")
	vehicleMode = flag.String("vehicleMode", "", "VehicleMode filter [bus, rail]")
)

func main() {
	flag.Parse()

	if err := config.LoadAppConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Config
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *topology != "" {
		cfg.Sources.Topology = *topology
	}
	if *source != "" {
		cfg.Simulation.Mode = *source
	}
	if err := internal.InitLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	m, err := resolver.ParseMode(cfg.Simulation.Mode)
	if err != nil {
		logrus.Fatalf("invalid source: %v", err)
	}

	sources, err := roundel.OpenSources(cfg)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	defer func() { _ = sources.Close(context.Background()) }()
	sim := roundel.NewSimulator(sources.Resolver, roundel.OptionsFromConfig(cfg))

	if *pprofAddr != "" {
		startHTTPDebugger(*pprofAddr)
	}

	switch *mode {
	case "oneshot":
		// keep stdout for the snapshot
		logrus.SetOutput(os.Stderr)
		buf, err := oneshot(sim, m, *ticks, *format, formatter.Filter{LineRef: *lineRef, VehicleMode: *vehicleMode})
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Println(string(buf))
	case "serve":
		if err := sim.Start(context.Background(), m); err != nil {
			logrus.Fatalf("failed to start simulation: %v", err)
		}
		roundel.StartServer(sim, cfg.Server)
		roundel.HandleGracefulShutdown(sim)
	default:
		logrus.Fatalf("unknown mode %q", *mode)
	}
}
