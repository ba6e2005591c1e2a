package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/agent"
	"github.com/muneebk98/Maze-Adventures/internal/config"
	"github.com/muneebk98/Maze-Adventures/internal/engine"
	"github.com/muneebk98/Maze-Adventures/internal/infrastructure/storage"
	"github.com/muneebk98/Maze-Adventures/internal/server"
	"github.com/muneebk98/Maze-Adventures/internal/version"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		logger.Log.WithError(err).Warn("LOG_FILE unavailable, logging to stdout")
	}
}

func main() {
	var (
		seed         int64
		configPath   string
		startLevel   int
		withBot      bool
		snapshotsDir string
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 keeps config value, random if both are 0)")
	flag.StringVar(&configPath, "config", "", "Path to YAML config")
	flag.IntVar(&startLevel, "level", 0, "Level to start from (clamped to configured levels)")
	flag.BoolVar(&withBot, "bot", false, "Run the path-following bot")
	flag.StringVar(&snapshotsDir, "snapshots", "", "Directory for .mzl level snapshots")
	flag.Parse()

	logger.Log.Info("Starting Maze Adventures...")
	logger.Log.Info(version.String())

	if configPath == "" {
		configPath = os.Getenv("MAZE_CONFIG")
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load config")
		}
		cfg = loaded
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	var opts engine.Options
	if snapshotsDir != "" {
		sink, err := storage.NewSnapshotService(snapshotsDir)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to prepare snapshot dir")
		}
		opts.Sink = sink
	}

	game, err := engine.New(cfg, opts)
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid game config")
	}
	logger.Log.WithFields(logrus.Fields{"seed": game.Seed(), "levels": len(cfg.Levels)}).Info("Game created")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if withBot {
		go agent.NewBot("bot", game).Run(ctx)
	}
	if err := game.Start(startLevel); err != nil {
		logger.Log.WithError(err).Error("Initial level generation reported problems")
	}
	go game.Run(ctx)

	srv := server.New(game, cfg.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Fatal("Server error")
	}

	logger.Log.Info("Done.")
}
