// Command simulation runs a flock without a window and optionally writes its
// final state as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	configFile := flag.String("config", "", "JSON or YAML configuration file")
	ticks := flag.Int("ticks", 1000, "number of ticks to run")
	batch := flag.Int("batch", 100, "ticks run between two progress reports")
	stateFile := flag.String("state", "", "write the final flock state as JSON to this file")
	printConfig := flag.Bool("print-config", false, "print the effective configuration as YAML and exit")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	if *printConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("failed to encode config: %v", err)
		}
		fmt.Print(string(out))
		return
	}

	logger, err := simulation.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger, *ticks, *batch, *stateFile); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *simulation.Config, logger *zap.Logger, ticks, batch int, stateFile string) error {
	engine, err := simulation.NewEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Stop(ctx) }()

	if batch <= 0 {
		batch = ticks
	}

	start := time.Now()
	for done := 0; ; {
		n := min(batch, ticks-done)
		state, err := engine.Step(ctx, n)
		if err != nil {
			return err
		}
		done += n
		logger.Info("progress",
			zap.Int("tick", done),
			zap.Int("boids", len(state.Boids)),
			zap.Duration("elapsed", time.Since(start)))

		if done < ticks {
			continue
		}
		if stateFile != "" {
			data, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode flock state: %w", err)
			}
			if err := os.WriteFile(stateFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write flock state: %w", err)
			}
			logger.Info("state written", zap.String("file", stateFile))
		}
		return nil
	}
}
