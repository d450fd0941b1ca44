package importer

import (
	"strings"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

// ExitsFromSlots converts legacy exit slots (North, South, West, East, Up,
// Down; zero means none) into a direction-keyed exit map.
//
// Postcondition: result has one entry per non-zero slot; nil when there are none.
func ExitsFromSlots(slots [6]int) map[string]int {
	var exits map[string]int
	for i, target := range slots {
		if target == 0 {
			continue
		}
		if exits == nil {
			exits = make(map[string]int)
		}
		exits[world.Directions[i].String()] = target
	}
	return exits
}

// ParsePortable applies the legacy rule: only "false" (any case) makes an
// item fixed in place; every other value, including blank, is portable.
func ParsePortable(field string) bool {
	return !strings.EqualFold(strings.TrimSpace(field), "false")
}
