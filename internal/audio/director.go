package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/observability"
)

// DefaultCacheSize is the number of clips kept in memory when none is configured.
const DefaultCacheSize = 8

// Director keeps the background clip in step with the most recently
// requested zone. RequestZone may be called from the command loop while Run
// executes on its own goroutine.
type Director struct {
	loader  Loader
	backend Backend
	cache   *lru.Cache[string, *Clip]
	logger  *zap.Logger

	mu      sync.Mutex
	wanted  string
	playing string

	wake    chan struct{}
	done    chan loadResult
	loading map[string]bool
}

type loadResult struct {
	zone string
	clip *Clip
	err  error
}

// NewDirector creates a Director.
//
// Precondition: loader, backend, and logger must be non-nil.
// Postcondition: Returns a Director, or an error when the cache cannot be created.
func NewDirector(loader Loader, backend Backend, cacheSize int, logger *zap.Logger) (*Director, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *Clip](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating clip cache: %w", err)
	}
	return &Director{
		loader:  loader,
		backend: backend,
		cache:   cache,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		done:    make(chan loadResult),
		loading: make(map[string]bool),
	}, nil
}

// RequestZone records zone as the one that should be playing. It never
// blocks. Requests made in quick succession collapse into the latest one.
// The empty zone stops playback.
func (d *Director) RequestZone(zone string) {
	d.mu.Lock()
	d.wanted = zone
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Wanted returns the most recently requested zone.
func (d *Director) Wanted() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wanted
}

// Current returns the zone whose clip is playing, or "" when silent.
func (d *Director) Current() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.playing
}

// Run processes zone requests and load completions until ctx is cancelled.
//
// Postcondition: Playback is stopped when Run returns.
func (d *Director) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.setPlaying("")
			d.backend.Stop()
			return nil
		case <-d.wake:
			d.apply(ctx)
		case res := <-d.done:
			d.complete(res)
		}
	}
}

func (d *Director) apply(ctx context.Context) {
	zone := d.Wanted()
	if zone == d.Current() {
		return
	}
	if zone == "" {
		d.setPlaying("")
		d.backend.Stop()
		return
	}
	if clip, ok := d.cache.Get(zone); ok {
		observability.AudioCacheHits.Inc()
		d.play(clip)
		return
	}
	if d.loading[zone] {
		return
	}
	d.loading[zone] = true
	go func() {
		clip, err := d.loader.Load(ctx, zone)
		select {
		case d.done <- loadResult{zone: zone, clip: clip, err: err}:
		case <-ctx.Done():
		}
	}()
}

// complete handles a finished load. The clip is cached either way, but it is
// only played when its zone is still the one wanted.
func (d *Director) complete(res loadResult) {
	delete(d.loading, res.zone)
	if res.err != nil {
		observability.AudioLoads.WithLabelValues("error").Inc()
		level := d.logger.Warn
		if errors.Is(res.err, ErrNoClip) {
			level = d.logger.Debug
		}
		level("loading background clip failed",
			zap.String("zone", res.zone),
			zap.Error(res.err),
		)
		return
	}
	d.cache.Add(res.zone, res.clip)

	wanted := d.Wanted()
	if res.zone != wanted {
		observability.AudioLoads.WithLabelValues("stale").Inc()
		d.logger.Debug("discarding stale background clip",
			zap.String("zone", res.zone),
			zap.String("wanted", wanted),
		)
		return
	}
	observability.AudioLoads.WithLabelValues("ok").Inc()
	if d.Current() != res.zone {
		d.play(res.clip)
	}
}

func (d *Director) play(clip *Clip) {
	if err := d.backend.Loop(clip); err != nil {
		d.logger.Warn("playing background clip failed",
			zap.String("zone", clip.Zone),
			zap.Error(err),
		)
		return
	}
	d.setPlaying(clip.Zone)
}

func (d *Director) setPlaying(zone string) {
	d.mu.Lock()
	d.playing = zone
	d.mu.Unlock()
}
