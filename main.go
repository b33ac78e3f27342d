package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/anbu-05/InnovAct-Hackathon/config"
	"github.com/anbu-05/InnovAct-Hackathon/sim"
	"github.com/anbu-05/InnovAct-Hackathon/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in simulated seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for JSON state snapshots")
	snapshotEvery := flag.Int("snapshot-every", 0, "Write a snapshot every N ticks (0 = disabled)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	s, err := sim.New(cfg.SimOptions(rngSeed))
	if err != nil {
		if errors.Is(err, sim.ErrNoFreeSpace) {
			slog.Error("obstacle layout left no free space, retry with fewer obstacles",
				"obstacles", cfg.Obstacles.Count, "error", err)
		} else {
			slog.Error("failed to create simulation", "error", err)
		}
		os.Exit(1)
	}

	// Use config stats window if not overridden by CLI
	windowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		windowSec = *statsWindow
	}
	collector := telemetry.NewCollector(windowSec, cfg.Physics.DT)

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"policy", cfg.Derived.Policy.String(),
		"grid", cfg.Grid,
		"obstacles", cfg.Obstacles.Count,
		"swarm_size", cfg.Swarm.Size,
		"stats_window", windowSec,
		"max_ticks", *maxTicks,
	)

	for {
		s.Step(cfg.Physics.DT)

		if collector.ShouldFlush(s.Tick()) {
			row := collector.Flush(s)
			row.LogStats()
			if err := om.WriteTelemetry(row); err != nil {
				slog.Warn("failed to write telemetry row", "error", err)
			}
		}

		if *snapshotEvery > 0 && *snapshotDir != "" && s.Tick()%*snapshotEvery == 0 {
			snap := telemetry.Capture(s, rngSeed)
			path, err := telemetry.SaveSnapshot(snap, *snapshotDir)
			if err != nil {
				slog.Warn("failed to save snapshot", "error", err)
			} else {
				slog.Info("snapshot saved", "path", path, "tick", snap.Tick)
			}
		}

		if *maxTicks > 0 && s.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick())
			return
		}
	}
}
