// Package narrator formats locations, exits and item lists into player-facing text.
// Every function is a pure function of its arguments.
package narrator

import (
	"strings"

	"github.com/cory-johannsen/adventure/internal/game/inventory"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// LocationHeader prefixes the location name line.
const LocationHeader = "LOCATION: "

// JoinList joins labels as "A, B and C.\n": before every label after the first,
// " and " when it is the last label, ", " otherwise.
//
// Postcondition: Returns "" for no labels.
func JoinList(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	var b strings.Builder
	for i, label := range labels {
		if i > 0 {
			if i == len(labels)-1 {
				b.WriteString(" and ")
			} else {
				b.WriteString(", ")
			}
		}
		b.WriteString(label)
	}
	b.WriteString(".\n")
	return b.String()
}

// Exits renders the obvious-exits line for loc.
func Exits(loc *world.Location) string {
	names := loc.ExitNames()
	if len(names) == 0 {
		return "There are no obvious exits.\n"
	}
	return "Obvious exits lead " + JoinList(names)
}

// Items renders the visible-items line for loc.
func Items(loc *world.Location) string {
	names := loc.Items.Names()
	if len(names) == 0 {
		return "You see nothing of interest.\n"
	}
	return "You see " + JoinList(names)
}

// Inventory renders the INVENTORY response for the carried items.
func Inventory(inv *inventory.Inventory) string {
	names := inv.Names()
	if len(names) == 0 {
		return "You are carrying nothing.\n"
	}
	return "You are carrying " + JoinList(names)
}

// SoundNote renders the bracketed ambient sound note.
func SoundNote(zone string) string {
	return "[Background sound: " + zone + "]\n"
}

// Location renders a full location block. The long description is included
// only when full is true. A sound note is appended when the location has a zone.
func Location(loc *world.Location, full bool) string {
	var b strings.Builder
	b.WriteString(LocationHeader)
	b.WriteString(loc.Name)
	b.WriteString("\n")
	if full {
		b.WriteString(loc.Description)
		b.WriteString("\n")
	}
	b.WriteString(Exits(loc))
	b.WriteString(Items(loc))
	if loc.Sound != "" {
		b.WriteString(SoundNote(loc.Sound))
	}
	return b.String()
}
