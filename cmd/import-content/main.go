// Package main converts legacy world tables into a YAML world file and,
// optionally, stores the result in PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/importer"
	"github.com/cory-johannsen/adventure/internal/importer/legacycsv"
	"github.com/cory-johannsen/adventure/internal/observability"
	"github.com/cory-johannsen/adventure/internal/storage/postgres"
)

func main() {
	format := flag.String("format", "legacycsv", "source format: legacycsv")
	sourceDir := flag.String("source", "", "path to source asset directory")
	output := flag.String("output", "content/world/mansion.yaml", "path of the world YAML file to write")
	name := flag.String("name", "", "optional world name override")
	startRoom := flag.Int("start-room", 0, "optional start room override")
	store := flag.Bool("store", false, "also store the world in the configured database")
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file (used with -store)")
	flag.Parse()

	if *sourceDir == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "usage: import-content -source <dir> [-format legacycsv] [-output <file>] [-name <name>] [-start-room <id>] [-store]")
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, "import-content")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var src importer.Source
	switch *format {
	case "legacycsv":
		src = legacycsv.NewSource()
	default:
		logger.Fatal("unknown format (supported: legacycsv)", zap.String("format", *format))
	}

	start := time.Now()
	data, err := importer.New(src, logger).Run(*sourceDir, *output, importer.Options{Name: *name, StartRoom: *startRoom})
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	if *store {
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		if err := postgres.NewWorldRepository(pool.DB()).ReplaceData(ctx, data); err != nil {
			logger.Fatal("storing world", zap.Error(err))
		}
		logger.Info("world stored", zap.String("world", data.Name), zap.String("database", cfg.Database.Name))
	}

	logger.Info("import complete", zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
}
