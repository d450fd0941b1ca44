// Package world provides the game world model: locations, exits, and directions.
package world

import (
	"strings"

	"github.com/cory-johannsen/adventure/internal/game/inventory"
)

// Direction is one of the six exit directions.
type Direction int

// Exit directions in legacy slot order.
const (
	North Direction = iota + 1
	South
	West
	East
	Up
	Down
)

// Directions lists all directions in slot order.
var Directions = []Direction{North, South, West, East, Up, Down}

var directionNames = [...]string{"", "North", "South", "West", "East", "Up", "Down"}

var directionAbbrevs = [...]string{"", "N", "S", "W", "E", "U", "D"}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d >= North && d <= Down
}

// String returns the full direction name ("North").
func (d Direction) String() string {
	if !d.Valid() {
		return "Undefined"
	}
	return directionNames[d]
}

// Abbrev returns the one-letter abbreviation ("N").
func (d Direction) Abbrev() string {
	if !d.Valid() {
		return ""
	}
	return directionAbbrevs[d]
}

// Matches reports whether word names d by full name or abbreviation, ignoring case.
func (d Direction) Matches(word string) bool {
	if !d.Valid() {
		return false
	}
	return strings.EqualFold(word, d.String()) || strings.EqualFold(word, d.Abbrev())
}

// ParseDirection resolves a full or abbreviated direction name.
//
// Postcondition: Returns (dir, true) for a known name, or (0, false).
func ParseDirection(word string) (Direction, bool) {
	for _, d := range Directions {
		if d.Matches(word) {
			return d, true
		}
	}
	return 0, false
}

// Exit is a passage from one location to another. The destination is owned by
// the World; an Exit only references it.
type Exit struct {
	Direction Direction
	To        *Location
}

// Location is a room in the game world.
type Location struct {
	// ID uniquely identifies the location within the world.
	ID int
	// Name is the short display name shown in the location header.
	Name string
	// Description is the long-form text shown on first visit or in verbose mode.
	Description string
	// Exits lists passages out of this location in slot order.
	Exits []Exit
	// Items holds the items lying here.
	Items *inventory.Inventory
	// Visited is set once the full description has been shown.
	Visited bool
	// Sound is the ambient sound zone identifier. Empty means none.
	Sound string
}

// NewLocation creates a Location with no exits and no items.
func NewLocation(id int, name, description string) *Location {
	return &Location{
		ID:          id,
		Name:        name,
		Description: description,
		Items:       inventory.New(),
	}
}

// AddExit appends an exit leading to the given location.
//
// Precondition: d is valid and to is non-nil.
func (l *Location) AddExit(d Direction, to *Location) {
	l.Exits = append(l.Exits, Exit{Direction: d, To: to})
}

// SetExit points every exit in direction d at to, or adds one when the
// location has none that way.
func (l *Location) SetExit(d Direction, to *Location) {
	replaced := false
	for i := range l.Exits {
		if l.Exits[i].Direction == d {
			l.Exits[i].To = to
			replaced = true
		}
	}
	if !replaced {
		l.AddExit(d, to)
	}
}

// ExitFor scans every exit and returns the last one whose direction matches
// word by full name or abbreviation.
//
// Postcondition: Returns (exit, true) when any exit matches, or (Exit{}, false).
func (l *Location) ExitFor(word string) (Exit, bool) {
	var found Exit
	matched := false
	for _, e := range l.Exits {
		if e.Direction.Matches(word) {
			found = e
			matched = true
		}
	}
	return found, matched
}

// ExitNames returns the full direction names of all exits, in order.
func (l *Location) ExitNames() []string {
	names := make([]string, 0, len(l.Exits))
	for _, e := range l.Exits {
		names = append(names, e.Direction.String())
	}
	return names
}
