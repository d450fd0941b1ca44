package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Game metrics, registered on the default Prometheus registry.
var (
	// CommandsTotal counts executed commands by canonical verb. Action item
	// verbs are counted as "action" and unrecognised verbs as "unknown".
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adventure_commands_total",
		Help: "Total number of player commands executed, by verb",
	}, []string{"verb"})

	MovesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_moves_total",
		Help: "Total number of location changes",
	})

	SoundZoneChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_sound_zone_changes_total",
		Help: "Total number of sound zone changes signalled",
	})

	// AudioLoads counts clip loads by result: "ok", "error" or "stale".
	AudioLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adventure_audio_loads_total",
		Help: "Total number of background clip loads, by result",
	}, []string{"result"})

	AudioCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_audio_cache_hits_total",
		Help: "Total number of background clips served from cache",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "adventure_active_sessions",
		Help: "Number of connected telnet players",
	})

	SessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_sessions_total",
		Help: "Total number of telnet sessions started",
	})
)
