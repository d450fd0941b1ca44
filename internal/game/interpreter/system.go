package interpreter

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/player"
)

// toggle applies an ON/OFF noun to a flag. No noun means ON; any other noun
// leaves the flag unchanged.
func toggle(current bool, noun string) bool {
	switch {
	case noun == "" || strings.EqualFold(noun, "ON"):
		return true
	case strings.EqualFold(noun, "OFF"):
		return false
	default:
		return current
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func (in *Interpreter) handleVerbose(t *turn, noun string) {
	in.verbose = toggle(in.verbose, noun)
	t.sayf("Verbose mode is %s.\n", onOff(in.verbose))
}

// handleSound turns zone signalling on or off. Turning it off stops the
// current sound; turning it on signals the current location's zone again.
func (in *Interpreter) handleSound(t *turn, noun string) {
	was := in.sound
	in.sound = toggle(in.sound, noun)
	t.sayf("Sound is %s.\n", onOff(in.sound))

	switch {
	case was && !in.sound:
		if in.zone != "" {
			in.setZone(t, "")
		}
	case !was && in.sound:
		in.signalZone(t, in.player.Location())
	}
}

var categoryOrder = []string{command.CategoryMovement, command.CategoryWorld, command.CategorySystem}

func (in *Interpreter) handleHelp(t *turn) {
	t.say("Available commands:\n")
	byCategory := in.registry.CommandsByCategory()
	for _, cat := range categoryOrder {
		for _, cmd := range byCategory[cat] {
			t.sayf("%-18s - %s", cmd.Usage, cmd.Help)
			if len(cmd.Aliases) > 0 {
				t.sayf(" (also %s)", strings.Join(cmd.Aliases, ", "))
			}
			t.say("\n")
		}
	}
}

// Confirmation prompts and replies.
const (
	MsgConfirmQuit    = "Are you sure you want to quit? (YES/NO)\n"
	MsgConfirmRestart = "Are you sure you want to restart? (YES/NO)\n"
	MsgQuitCancelled  = "Good! Continue your adventure...\n"
	MsgRestartKept    = "Continuing your current adventure...\n"
	MsgYesWhat        = "Yes what? I don't understand.\n"
	MsgNoWhat         = "No what? I don't understand.\n"
	MsgRestarting     = "Restarting...\n\n"
	MsgNoRestart      = "This game cannot be restarted.\n"
	MsgRestartFailed  = "The world could not be rebuilt.\n"
)

func (in *Interpreter) handleVersion(t *turn) {
	t.sayf("%s %s\n", in.world.Name(), in.version)
}

func (in *Interpreter) handleQuit(t *turn) {
	t.say(MsgConfirmQuit)
	in.pending = command.VerbQuit
}

// handleRestart asks for confirmation. RESTART typed in answer to the QUIT
// question restarts at once.
func (in *Interpreter) handleRestart(t *turn) {
	if t.confirm == command.VerbQuit {
		in.restart(t)
		return
	}
	t.say(MsgConfirmRestart)
	in.pending = command.VerbRestart
}

func (in *Interpreter) handleYes(t *turn) {
	switch t.confirm {
	case command.VerbQuit:
		t.say(MsgGoodbye)
		t.res.Quit = true
	case command.VerbRestart:
		in.restart(t)
	default:
		t.say(MsgYesWhat)
	}
}

func (in *Interpreter) handleNo(t *turn) {
	switch t.confirm {
	case command.VerbQuit:
		t.say(MsgQuitCancelled)
	case command.VerbRestart:
		t.say(MsgRestartKept)
	default:
		t.say(MsgNoWhat)
	}
}

// restart replaces the world and player with fresh ones from the world
// factory. Settings such as verbose and sound survive.
func (in *Interpreter) restart(t *turn) {
	if in.newWorld == nil {
		t.say(MsgNoRestart)
		return
	}
	w, err := in.newWorld()
	if err != nil {
		in.logger.Error("rebuilding world for restart", zap.Error(err))
		t.say(MsgRestartFailed)
		return
	}
	in.world = w
	in.player = player.New(w.Start(), w.Carried()...)
	in.logger.Info("game restarted", zap.String("world", w.Name()))
	t.say(MsgRestarting)
	t.res.Moved = true
}
