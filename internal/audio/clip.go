// Package audio plays the ambient background clip for the player's current
// sound zone. Clip loading runs off the command path; a load that finishes
// after the player has already moved to another zone is discarded.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrNoClip is returned by a Loader when a zone has no clip.
var ErrNoClip = errors.New("no clip for zone")

// Clip is a loaded background sound.
type Clip struct {
	// Zone is the sound zone identifier the clip was loaded for.
	Zone string
	// Path is where the clip came from.
	Path string
	// Data holds the raw audio bytes.
	Data []byte
}

// Loader fetches the clip for a zone. Load may be slow and is never called on
// the command path.
type Loader interface {
	Load(ctx context.Context, zone string) (*Clip, error)
}

// FileLoader reads clips from a directory. The zone identifier is used as the
// file name; any directory part is ignored.
type FileLoader struct {
	Dir string
}

// Load reads the clip for zone from l.Dir.
//
// Postcondition: Returns the clip, or an error wrapping ErrNoClip when the
// file does not exist.
func (l FileLoader) Load(ctx context.Context, zone string) (*Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := filepath.Base(strings.TrimSpace(zone))
	if name == "." || name == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: %q", ErrNoClip, zone)
	}
	path := filepath.Join(l.Dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoClip, path)
		}
		return nil, fmt.Errorf("reading clip %s: %w", path, err)
	}
	return &Clip{Zone: zone, Path: path, Data: data}, nil
}

// Backend loops a clip on an output device.
type Backend interface {
	// Loop starts clip playing on repeat, replacing whatever was playing.
	Loop(clip *Clip) error
	// Stop silences playback.
	Stop()
}

// LogBackend is a Backend for hosts without an audio device. It logs what
// would be played.
type LogBackend struct {
	Logger *zap.Logger
}

// Loop logs the clip.
func (b LogBackend) Loop(clip *Clip) error {
	b.Logger.Info("looping background clip",
		zap.String("zone", clip.Zone),
		zap.String("path", clip.Path),
		zap.Int("bytes", len(clip.Data)),
	)
	return nil
}

// Stop logs the stop.
func (b LogBackend) Stop() {
	b.Logger.Info("background clip stopped")
}
