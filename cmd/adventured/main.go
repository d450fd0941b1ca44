// Package main provides the Telnet adventure server. Every connection plays
// its own copy of the world.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/frontend/handlers"
	"github.com/cory-johannsen/adventure/internal/frontend/telnet"
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

	logger, err := observability.NewLogger(cfg.Logging, "adventured")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting adventure server",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("metrics_addr", cfg.Metrics.Addr),
		zap.String("world_source", cfg.Game.WorldSource),
	)

	ctx := context.Background()
	lifecycle := server.NewLifecycle(logger)

	var (
		store worldsource.Store
		ready server.ReadyFunc
	)
	if cfg.Game.WorldSource == config.WorldSourcePostgres {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		store = postgres.NewWorldRepository(pool.DB())
		ready = pool.Ready

		lifecycle.Add("postgres", server.NewContextService(func(c context.Context) error {
			defer pool.Close()
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-c.Done():
					return nil
				case <-ticker.C:
					if err := pool.Health(c, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				}
			}
		}))
	}

	data, err := worldsource.Load(ctx, cfg.Game, store, logger)
	if err != nil {
		logger.Fatal("loading world", zap.Error(err))
	}

	opts := []interpreter.Option{
		interpreter.WithVersion(version),
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

	game := handlers.NewGameHandler(worldsource.Factory(data, cfg.Game.StartRoom), logger, opts...)
	acceptor := telnet.NewAcceptor(cfg.Telnet, game, logger)

	if cfg.Metrics.Addr != "" {
		lifecycle.Add("metrics", server.NewMetricsService(cfg.Metrics.Addr, ready, logger))
	}
	lifecycle.Add("telnet", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})

	logger.Info("adventure server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("world", data.Name),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
