// Package main provides the single-player console adventure with background
// audio.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/audio"
	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/frontend/console"
	"github.com/cory-johannsen/adventure/internal/game/hooks"
	"github.com/cory-johannsen/adventure/internal/game/interpreter"
	"github.com/cory-johannsen/adventure/internal/observability"
	"github.com/cory-johannsen/adventure/internal/server"
	"github.com/cory-johannsen/adventure/internal/storage/postgres"
	"github.com/cory-johannsen/adventure/internal/worldsource"
)

// version is replaced at build time with -ldflags "-X main.version=...".
var version = interpreter.DefaultVersion

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "adventure")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store worldsource.Store
	if cfg.Game.WorldSource == config.WorldSourcePostgres {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		store = postgres.NewWorldRepository(pool.DB())
	}

	data, err := worldsource.Load(ctx, cfg.Game, store, logger)
	if err != nil {
		logger.Fatal("loading world", zap.Error(err))
	}
	newWorld := worldsource.Factory(data, cfg.Game.StartRoom)
	w, err := newWorld()
	if err != nil {
		logger.Fatal("building world", zap.Error(err))
	}

	director, err := audio.NewDirector(
		audio.FileLoader{Dir: cfg.Sound.Dir},
		audio.LogBackend{Logger: logger},
		cfg.Sound.CacheSize,
		logger,
	)
	if err != nil {
		logger.Fatal("creating audio director", zap.Error(err))
	}

	opts := []interpreter.Option{
		interpreter.WithSoundSink(director),
		interpreter.WithVersion(version),
		interpreter.WithWorldFactory(newWorld),
		interpreter.WithSound(cfg.Sound.Enabled),
		interpreter.WithVerbose(cfg.Game.Verbose),
	}
	if cfg.Game.ScriptDir != "" {
		scripted, err := hooks.Load(cfg.Game.ScriptDir, cfg.Game.ScriptInstructionLimit, logger)
		if err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		defer scripted.Close()
		opts = append(opts, interpreter.WithHooks(scripted))
	}

	in, err := interpreter.New(w, logger, opts...)
	if err != nil {
		logger.Fatal("starting interpreter", zap.Error(err))
	}

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("audio", server.NewContextService(director.Run))
	lifecycle.Add("console", server.NewContextService(func(c context.Context) error {
		// The game ends the process once the player leaves.
		defer cancel()
		return console.New(in, logger).Run(c, os.Stdin, os.Stdout)
	}))

	logger.Info("adventure initialized", zap.Duration("startup", time.Since(start)))

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("adventure error", zap.Error(err))
	}
}
