package interpreter

import (
	"strings"

	"github.com/cory-johannsen/adventure/internal/game/inventory"
	"github.com/cory-johannsen/adventure/internal/game/narrator"
)

func (in *Interpreter) handleInventory(t *turn) {
	t.say(narrator.Inventory(in.player.Inventory()))
}

// handleGet picks up every matching item, or everything for ALL. Matches are
// collected first and moved afterwards. A non-portable match is refused
// without stopping the scan.
func (in *Interpreter) handleGet(t *turn, noun string) {
	here := in.player.Location().Items
	candidates := here.Select(noun)
	if len(candidates) == 0 {
		t.say(MsgNotHere)
		return
	}
	for _, it := range candidates {
		if !it.Portable {
			t.sayf("You can't get the %s.\n", it.Keyword)
			continue
		}
		if inventory.Transfer(it, here, in.player.Inventory()) {
			t.sayf("%s taken.\n", it.Keyword)
		}
	}
}

// handleDrop puts down every matching carried item, or everything for ALL.
func (in *Interpreter) handleDrop(t *turn, noun string) {
	carried := in.player.Inventory()
	candidates := carried.Select(noun)
	if len(candidates) == 0 {
		t.say(MsgNotCarried)
		return
	}
	here := in.player.Location().Items
	for _, it := range candidates {
		if inventory.Transfer(it, carried, here) {
			t.sayf("%s dropped.\n", it.Keyword)
		}
	}
}

// handleLook redescribes the location when no noun is given, even if it was
// already visited. Otherwise it describes the first matching item, searching
// the inventory before the location.
func (in *Interpreter) handleLook(t *turn, noun string) {
	if noun == "" {
		in.player.Location().Visited = false
		in.showLocation(t)
		return
	}
	it, ok := in.player.Inventory().Find(noun)
	if !ok {
		it, ok = in.player.Location().Items.Find(noun)
	}
	if !ok {
		t.say(MsgNotAround)
		return
	}
	t.say(strings.TrimSuffix(it.Description, "\n") + "\n")
}

// Narration for SEARCH.
const (
	MsgSearchWhat     = "You need to search something specific.\n"
	MsgSearchAll      = "You need to search something specific, not everything at once.\n"
	MsgSearchNothing  = "You search the %s but find nothing special.\n"
	MsgSearchNotFound = "I don't see that around here to search.\n"
)

// handleSearch searches an item. Items with their own search action never
// get here; everything else yields nothing.
func (in *Interpreter) handleSearch(t *turn, noun string) {
	switch {
	case noun == "":
		t.say(MsgSearchWhat)
		return
	case inventory.Fold(noun) == inventory.Fold(inventory.All), inventory.Fold(noun) == "everything":
		t.say(MsgSearchAll)
		return
	}
	it, ok := in.player.Inventory().Find(noun)
	if !ok {
		it, ok = in.player.Location().Items.Find(noun)
	}
	if !ok {
		t.say(MsgSearchNotFound)
		return
	}
	t.sayf(MsgSearchNothing, it.Keyword)
}
