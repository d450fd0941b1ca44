package interpreter

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/narrator"
	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/observability"
)

// handleGo moves through the matching exit. Every exit is scanned and the last
// match wins. An action item named by the noun is tried before giving up.
func (in *Interpreter) handleGo(t *turn, noun string) {
	if exit, ok := in.player.Location().ExitFor(noun); ok {
		in.moveTo(t, exit.To)
		return
	}
	if in.useActionItem(t, command.VerbGo, noun) {
		return
	}
	t.say(MsgNoExit)
}

func (in *Interpreter) moveTo(t *turn, to *world.Location) {
	from := in.player.Location()
	in.player.MoveTo(to)
	t.res.Moved = true
	observability.MovesTotal.Inc()
	in.logger.Debug("player moved",
		zap.Int("from", from.ID),
		zap.Int("to", to.ID),
	)
}

// showLocation prints the current location. The long description appears on
// the first visit or in verbose mode; the location is then marked visited.
func (in *Interpreter) showLocation(t *turn) {
	loc := in.player.Location()
	full := !loc.Visited || in.verbose
	t.say(narrator.Location(loc, full))
	loc.Visited = true

	if in.hooks != nil {
		t.say(withNewline(in.hooks.OnDescribe(loc)))
	}
	in.signalZone(t, loc)
}

// signalZone notifies the audio collaborator when loc's zone differs from the
// last one signalled. Locations without a zone leave the current sound alone.
func (in *Interpreter) signalZone(t *turn, loc *world.Location) {
	if !in.sound || loc.Sound == "" || loc.Sound == in.zone {
		return
	}
	in.setZone(t, loc.Sound)
}

func (in *Interpreter) setZone(t *turn, zone string) {
	in.zone = zone
	t.res.Zone = zone
	t.res.ZoneChanged = true
	observability.SoundZoneChanges.Inc()
	in.logger.Debug("sound zone changed", zap.String("zone", zone))
	if in.sink != nil {
		in.sink.RequestZone(zone)
	}
}
