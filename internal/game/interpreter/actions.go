package interpreter

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/inventory"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Narration for action items.
const (
	MsgAlreadyDone = "You have already done that.\n"
	MsgWrongPlace  = "You can't do that here.\n"
	MsgNeedItem    = "You need a %s to do that.\n"
	MsgRevealed    = "\nYou notice something you hadn't seen before...\n"
)

// actionCandidates lists the items an action can come from: the location's
// first, then the player's.
func (in *Interpreter) actionCandidates() []*inventory.Item {
	return append(in.player.Location().Items.Items(), in.player.Inventory().Items()...)
}

// useActionItem runs the action triggered by "verb noun", if any item offers one.
func (in *Interpreter) useActionItem(t *turn, verb, noun string) bool {
	for _, it := range in.actionCandidates() {
		if a, ok := it.Triggers(verb, noun); ok {
			in.runAction(t, it, a)
			return true
		}
	}
	return false
}

// overrideAction lets an item's own verb replace a built-in command aimed at
// it, so "search desk" runs the desk's search action instead of SEARCH. Both
// the typed verb and the command's canonical name are tried.
func (in *Interpreter) overrideAction(t *turn, cmd *command.Command, p command.ParseResult) bool {
	if cmd.Category == command.CategorySystem || !p.HasNoun() {
		return false
	}
	for _, it := range in.actionCandidates() {
		if !it.Matches(p.Noun) {
			continue
		}
		for _, verb := range []string{p.Verb, cmd.Name} {
			if a, ok := it.ActionFor(verb); ok {
				in.runAction(t, it, a)
				return true
			}
		}
	}
	return false
}

// runAction checks the action's guards and applies its effects. A failed
// guard narrates why and changes nothing.
func (in *Interpreter) runAction(t *turn, it *inventory.Item, a *inventory.Action) {
	here := in.player.Location()
	switch {
	case a.OnceOnly && a.Done():
		t.say(orDefault(a.AlreadyDoneMessage, MsgAlreadyDone))
		return
	case a.UseIn != 0 && a.UseIn != here.ID:
		t.say(MsgWrongPlace)
		return
	case a.RequiresItem != "" && !in.carrying(a.RequiresItem):
		if a.RequiresItemMessage != "" {
			t.say(withNewline(a.RequiresItemMessage))
		} else {
			t.sayf(MsgNeedItem, a.RequiresItem)
		}
		return
	}

	a.MarkDone()
	if a.NewDescription != "" {
		it.Description = a.NewDescription
	}
	if a.NewName != "" {
		it.Name = a.NewName
	}
	t.say(withNewline(a.Message))

	if a.Reveals != "" {
		in.reveal(t, a)
	}
	if a.AddExit != nil {
		in.openExit(here, a.AddExit)
	}
	if a.MoveTo != 0 {
		if dest, ok := in.world.Location(a.MoveTo); ok {
			in.moveTo(t, dest)
		} else {
			in.logger.Error("action destination missing",
				zap.String("item", it.Keyword),
				zap.Int("destination", a.MoveTo),
			)
		}
	}
	in.logger.Debug("action item used",
		zap.String("item", it.Keyword),
		zap.Strings("verbs", a.Verbs),
	)
}

// carrying reports whether the player holds an item whose keyword matches
// word or whose name contains it.
func (in *Interpreter) carrying(word string) bool {
	if _, ok := in.player.Inventory().Find(word); ok {
		return true
	}
	folded := inventory.Fold(word)
	for _, it := range in.player.Inventory().Items() {
		if strings.Contains(inventory.Fold(it.Name), folded) {
			return true
		}
	}
	return false
}

func (in *Interpreter) reveal(t *turn, a *inventory.Action) {
	here := in.player.Location()
	target := here
	if a.RevealIn != 0 {
		loc, ok := in.world.Location(a.RevealIn)
		if !ok {
			in.logger.Error("reveal location missing", zap.Int("location", a.RevealIn))
			return
		}
		target = loc
	}
	if _, ok := in.world.Reveal(a.Reveals, target); ok && target == here {
		t.say(MsgRevealed)
	}
}

func (in *Interpreter) openExit(from *world.Location, grant *inventory.ExitGrant) {
	dir, ok := world.ParseDirection(grant.Direction)
	to, found := in.world.Location(grant.To)
	if !ok || !found {
		in.logger.Error("cannot open exit",
			zap.String("direction", grant.Direction),
			zap.Int("to", grant.To),
		)
		return
	}
	from.SetExit(dir, to)
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return withNewline(msg)
}
