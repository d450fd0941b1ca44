// Package hooks connects Lua content scripts to the interpreter's hook points.
//
// Scripts are loaded by scripting.Manager. A location's scripts live in the
// scope named after its ID; scripts in the global scope apply everywhere.
// Two global functions are recognised:
//
//	on_describe(room_id, room_name)      -> string or nil
//	on_command(verb, noun, room_id)      -> string or nil
//
// A string return is shown to the player. For on_command it also marks the
// command as handled.
package hooks

import (
	"fmt"
	"strconv"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/scripting"
)

// Hook function names looked up in script scopes.
const (
	DescribeHook = "on_describe"
	CommandHook  = "on_command"
)

// Scripted implements interpreter.Hooks on top of a scripting.Manager.
type Scripted struct {
	mgr    *scripting.Manager
	logger *zap.Logger
}

// NewScripted creates a Scripted hook set.
//
// Precondition: mgr and logger must be non-nil.
func NewScripted(mgr *scripting.Manager, logger *zap.Logger) *Scripted {
	return &Scripted{mgr: mgr, logger: logger}
}

// Load reads the script tree under root into a new Manager and wraps it.
//
// Postcondition: Returns a ready Scripted, or an error with no VMs left open.
func Load(root string, instLimit int, logger *zap.Logger) (*Scripted, error) {
	mgr := scripting.NewManager(logger)
	if err := mgr.LoadDir(root, instLimit); err != nil {
		mgr.Close()
		return nil, fmt.Errorf("loading scripts: %w", err)
	}
	logger.Info("scripts loaded", zap.String("root", root), zap.Int("scopes", mgr.ScopeCount()))
	return NewScripted(mgr, logger), nil
}

// Close releases every script VM.
func (s *Scripted) Close() {
	s.mgr.Close()
}

// Scope returns the script scope for a location.
func Scope(loc *world.Location) string {
	return strconv.Itoa(loc.ID)
}

// OnDescribe runs on_describe for loc.
//
// Postcondition: Returns the script's text, or "" when no script answered.
func (s *Scripted) OnDescribe(loc *world.Location) string {
	if !s.mgr.HasHook(Scope(loc), DescribeHook) {
		return ""
	}
	ret, err := s.mgr.CallHook(Scope(loc), DescribeHook,
		lua.LNumber(loc.ID),
		lua.LString(loc.Name),
	)
	if err != nil {
		s.logger.Warn("describe hook failed", zap.Int("location", loc.ID), zap.Error(err))
		return ""
	}
	text, _ := asText(ret)
	return text
}

// OnCommand runs on_command for an otherwise unhandled verb.
//
// Postcondition: Returns (text, true) when the script returned a string.
func (s *Scripted) OnCommand(verb, noun string, loc *world.Location) (string, bool) {
	if !s.mgr.HasHook(Scope(loc), CommandHook) {
		return "", false
	}
	ret, err := s.mgr.CallHook(Scope(loc), CommandHook,
		lua.LString(verb),
		lua.LString(noun),
		lua.LNumber(loc.ID),
	)
	if err != nil {
		s.logger.Warn("command hook failed",
			zap.String("verb", verb),
			zap.Int("location", loc.ID),
			zap.Error(err),
		)
		return "", false
	}
	text, ok := asText(ret)
	if ok {
		s.logger.Debug("command handled by script",
			zap.String("verb", verb),
			zap.String("noun", noun),
			zap.Int("location", loc.ID),
		)
	}
	return text, ok
}

// asText accepts only Lua strings; numbers and tables are ignored.
func asText(v lua.LValue) (string, bool) {
	s, ok := v.(lua.LString)
	if !ok {
		return "", false
	}
	return string(s), true
}
