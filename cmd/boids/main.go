package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock/pkg/viewer"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "", "JSON or YAML configuration file")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	logger, err := simulation.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	engine, err := simulation.NewEngine(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to start the world", zap.Error(err))
	}
	defer func() { _ = engine.Stop(ctx) }()

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids")
	if err := ebiten.RunGame(viewer.NewGame(ctx, engine, logger)); err != nil {
		logger.Error("viewer stopped", zap.Error(err))
	}
}
