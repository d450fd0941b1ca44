// Package interpreter dispatches parsed commands against the world and player
// state and returns the resulting narration. It is single-threaded: one command
// is fully processed before the next is accepted.
package interpreter

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/player"
	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/observability"
)

// Narration for commands that could not be carried out.
const (
	MsgUnknownVerb = "I have no idea what you are trying to do.\n"
	MsgNoExit      = "You can't go that way.\n"
	MsgNotHere     = "I don't see that here.\n"
	MsgNotCarried  = "You don't seem to be carrying that.\n"
	MsgNotAround   = "I don't see that around here.\n"
	MsgGoodbye     = "Goodbye.\n"
)

// DefaultVersion is reported by VERSION unless WithVersion overrides it.
const DefaultVersion = "v0.1.0"

// SoundSink receives ambient sound zone requests. RequestZone must not block.
// The empty zone means "stop playing".
type SoundSink interface {
	RequestZone(zone string)
}

// Hooks lets scripted content add narration.
type Hooks interface {
	// OnDescribe returns extra text shown after a location block, or "".
	OnDescribe(loc *world.Location) string
	// OnCommand handles a verb no built-in command or action item claimed.
	// Returns the narration and true when the script handled it.
	OnCommand(verb, noun string, loc *world.Location) (string, bool)
}

// Result is the outcome of one command.
type Result struct {
	// Verb is the canonical verb that handled the command. Empty when the verb
	// was not recognised.
	Verb string
	// Text is the narration for this turn.
	Text string
	// Moved reports whether the player changed location.
	Moved bool
	// ZoneChanged reports whether a new sound zone was signalled; Zone holds it.
	ZoneChanged bool
	Zone        string
	// Quit reports that the player asked to leave.
	Quit bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithSoundSink sets the audio collaborator notified on zone changes.
func WithSoundSink(s SoundSink) Option {
	return func(in *Interpreter) { in.sink = s }
}

// WithHooks sets the scripted content hooks.
func WithHooks(h Hooks) Option {
	return func(in *Interpreter) { in.hooks = h }
}

// WithVerbose sets the initial verbose mode.
func WithVerbose(v bool) Option {
	return func(in *Interpreter) { in.verbose = v }
}

// WithSound sets whether zone changes are signalled initially.
func WithSound(on bool) Option {
	return func(in *Interpreter) { in.sound = on }
}

// WithRegistry replaces the built-in command registry.
func WithRegistry(r *command.Registry) Option {
	return func(in *Interpreter) { in.registry = r }
}

// WithVersion sets the version VERSION reports.
func WithVersion(v string) Option {
	return func(in *Interpreter) { in.version = v }
}

// WithWorldFactory sets how RESTART obtains a fresh world. Without one the
// game cannot be restarted.
func WithWorldFactory(f func() (*world.World, error)) Option {
	return func(in *Interpreter) { in.newWorld = f }
}

// Interpreter is the command state machine for one player in one world.
type Interpreter struct {
	world    *world.World
	player   *player.Player
	registry *command.Registry
	sink     SoundSink
	hooks    Hooks
	logger   *zap.Logger
	version  string
	newWorld func() (*world.World, error)

	verbose bool
	sound   bool
	zone    string
	// pending is the command awaiting YES or NO, if any.
	pending string
}

// turn accumulates the narration and result of a single command.
type turn struct {
	out strings.Builder
	res Result
	// confirm is the command that was awaiting YES or NO when the turn began.
	confirm string
}

func (t *turn) say(s string) {
	t.out.WriteString(s)
}

func (t *turn) sayf(format string, args ...any) {
	fmt.Fprintf(&t.out, format, args...)
}

// New creates an Interpreter with the player at the world's start location
// carrying the world's starting items.
//
// Precondition: w must come from world.Build; logger must be non-nil.
// Postcondition: Returns an Interpreter, or an error wrapping world.ErrWorldLoad
// when no world was loaded.
func New(w *world.World, logger *zap.Logger, opts ...Option) (*Interpreter, error) {
	if w == nil || w.Start() == nil {
		return nil, fmt.Errorf("%w: interpreter requires a loaded world", world.ErrWorldLoad)
	}
	in := &Interpreter{
		world:    w,
		player:   player.New(w.Start(), w.Carried()...),
		registry: command.DefaultRegistry(),
		logger:   logger,
		version:  DefaultVersion,
		sound:    true,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in, nil
}

// Player returns the player.
func (in *Interpreter) Player() *player.Player {
	return in.player
}

// World returns the world.
func (in *Interpreter) World() *world.World {
	return in.world
}

// Verbose reports whether verbose mode is on.
func (in *Interpreter) Verbose() bool {
	return in.verbose
}

// SoundEnabled reports whether zone changes are being signalled.
func (in *Interpreter) SoundEnabled() bool {
	return in.sound
}

// Zone returns the last signalled sound zone.
func (in *Interpreter) Zone() string {
	return in.zone
}

// Start describes the starting location. Call it once before the first Execute.
func (in *Interpreter) Start() Result {
	t := &turn{}
	in.showLocation(t)
	t.res.Text = t.out.String()
	return t.res
}

// Execute runs one line of player input. It never fails: every outcome,
// including unrecognised input, is narration. A pending QUIT or RESTART
// confirmation lasts for exactly one command.
//
// Postcondition: Returns an empty Result for a blank line.
func (in *Interpreter) Execute(line string) Result {
	p := command.Expand(command.Parse(line))
	if p.Empty() {
		return Result{}
	}

	t := &turn{confirm: in.pending}
	in.pending = ""
	label := "unknown"
	if cmd, ok := in.registry.Resolve(p.Verb); ok {
		t.res.Verb = cmd.Name
		label = cmd.Name
		if in.overrideAction(t, cmd, p) {
			label = "action"
		} else {
			in.dispatch(t, cmd.Handler, p)
		}
	} else if in.fallback(t, p) {
		label = "action"
	}

	if t.res.Moved {
		in.showLocation(t)
	}
	t.res.Text = t.out.String()

	observability.CommandsTotal.WithLabelValues(label).Inc()
	in.logger.Debug("command executed",
		zap.String("verb", p.Verb),
		zap.String("noun", p.Noun),
		zap.Int("location", in.player.Location().ID),
		zap.Bool("moved", t.res.Moved),
	)
	return t.res
}

func (in *Interpreter) dispatch(t *turn, handler string, p command.ParseResult) {
	switch handler {
	case command.HandlerGo:
		in.handleGo(t, p.Noun)
	case command.HandlerInventory:
		in.handleInventory(t)
	case command.HandlerGet:
		in.handleGet(t, p.Noun)
	case command.HandlerDrop:
		in.handleDrop(t, p.Noun)
	case command.HandlerLook:
		in.handleLook(t, p.Noun)
	case command.HandlerSearch:
		in.handleSearch(t, p.Noun)
	case command.HandlerVerbose:
		in.handleVerbose(t, p.Noun)
	case command.HandlerSound:
		in.handleSound(t, p.Noun)
	case command.HandlerHelp:
		in.handleHelp(t)
	case command.HandlerQuit:
		in.handleQuit(t)
	case command.HandlerVersion:
		in.handleVersion(t)
	case command.HandlerRestart:
		in.handleRestart(t)
	case command.HandlerYes:
		in.handleYes(t)
	case command.HandlerNo:
		in.handleNo(t)
	default:
		in.logger.Warn("command has no handler",
			zap.String("verb", p.Verb),
			zap.String("handler", handler),
		)
		t.say(MsgUnknownVerb)
	}
}

// fallback handles verbs the registry does not know: action items first, then
// scripted hooks. Reports whether an action item claimed the command.
func (in *Interpreter) fallback(t *turn, p command.ParseResult) bool {
	if p.HasNoun() && in.useActionItem(t, p.Verb, p.Noun) {
		t.res.Verb = p.Verb
		return true
	}
	if in.hooks != nil {
		if text, ok := in.hooks.OnCommand(p.Verb, p.Noun, in.player.Location()); ok {
			t.say(withNewline(text))
			return false
		}
	}
	t.say(MsgUnknownVerb)
	return false
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
