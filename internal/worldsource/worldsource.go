// Package worldsource resolves the configured world records from a YAML file
// or the PostgreSQL world store.
package worldsource

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Store reads stored worlds by name. It is satisfied by
// postgres.WorldRepository.
type Store interface {
	LoadData(ctx context.Context, name string) (*world.Data, error)
}

// Load reads the world selected by cfg and checks that it builds.
//
// Precondition: store must be non-nil when cfg.WorldSource is postgres.
// Postcondition: Returns records that build into a World with cfg.StartRoom
// applied, or an error wrapping world.ErrWorldLoad.
func Load(ctx context.Context, cfg config.GameConfig, store Store, logger *zap.Logger) (*world.Data, error) {
	var (
		data *world.Data
		err  error
	)
	switch cfg.WorldSource {
	case config.WorldSourceFile:
		data, err = world.LoadFile(cfg.WorldFile)
	case config.WorldSourcePostgres:
		if store == nil {
			return nil, fmt.Errorf("%w: no world store configured", world.ErrWorldLoad)
		}
		data, err = store.LoadData(ctx, cfg.WorldName)
		if err != nil && !errors.Is(err, world.ErrWorldLoad) {
			err = fmt.Errorf("%w: %v", world.ErrWorldLoad, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown world source %q", world.ErrWorldLoad, cfg.WorldSource)
	}
	if err != nil {
		return nil, err
	}

	w, err := data.Build(cfg.StartRoom)
	if err != nil {
		return nil, err
	}
	logger.Info("world loaded",
		zap.String("source", cfg.WorldSource),
		zap.String("world", w.Name()),
		zap.Int("locations", w.LocationCount()),
		zap.Int("exits", w.ExitCount()),
		zap.Int("items", w.ItemCount()),
		zap.Int("start", w.Start().ID),
	)
	return data, nil
}

// Factory returns a function building a fresh World from data on every call,
// so each player gets independent item placement and visited flags.
func Factory(data *world.Data, startOverride int) func() (*world.World, error) {
	return func() (*world.World, error) {
		return data.Build(startOverride)
	}
}
