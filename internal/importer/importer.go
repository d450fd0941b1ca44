// Package importer converts legacy world content into the YAML world format.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Options override world-level fields of the imported content.
type Options struct {
	// Name replaces the source's world name when non-empty.
	Name string
	// StartRoom replaces the source's start room when non-zero.
	StartRoom int
}

// Importer orchestrates content import from a Source to a world file.
type Importer struct {
	source Source
	logger *zap.Logger
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source and logger must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, logger *zap.Logger) *Importer {
	return &Importer{source: source, logger: logger}
}

// Run loads the world from sourceDir, validates that it builds, and writes it
// as YAML to outputPath.
//
// Precondition: sourceDir must satisfy the source's layout requirements; the
// parent of outputPath must exist or be creatable.
// Postcondition: returns the validated world records and the file is written,
// or an error is returned and nothing is written.
func (imp *Importer) Run(sourceDir, outputPath string, opts Options) (*world.Data, error) {
	overall := time.Now()

	wd, err := imp.source.Load(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}
	if opts.Name != "" {
		wd.World.Name = opts.Name
	}
	if opts.StartRoom != 0 {
		wd.World.StartRoom = opts.StartRoom
	}
	imp.logger.Info("source loaded",
		zap.String("source", sourceDir),
		zap.Int("rooms", len(wd.World.Rooms)),
		zap.Int("items", len(wd.World.Items)),
	)

	out, err := yaml.Marshal(wd)
	if err != nil {
		return nil, fmt.Errorf("serialising world %q: %w", wd.World.Name, err)
	}

	data, err := world.LoadBytes(out)
	if err != nil {
		return nil, fmt.Errorf("world %q failed validation: %w", wd.World.Name, err)
	}
	w, err := data.Build(0)
	if err != nil {
		return nil, fmt.Errorf("world %q failed validation: %w", wd.World.Name, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory for %s: %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing world %q to %s: %w", wd.World.Name, outputPath, err)
	}

	imp.logger.Info("world written",
		zap.String("path", outputPath),
		zap.Int("locations", w.LocationCount()),
		zap.Int("exits", w.ExitCount()),
		zap.Int("items", w.ItemCount()),
		zap.Duration("elapsed", time.Since(overall).Round(time.Millisecond)),
	)
	return data, nil
}
