// Package player holds the single player's location and carried items.
package player

import (
	"github.com/cory-johannsen/adventure/internal/game/inventory"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Player is the actor controlled by commands. It lives for the whole session.
type Player struct {
	location  *world.Location
	inventory *inventory.Inventory
}

// New creates a Player standing at start and carrying the given items.
//
// Precondition: start must be non-nil.
// Postcondition: Returns a Player at start holding carried in order.
func New(start *world.Location, carried ...*inventory.Item) *Player {
	return &Player{
		location:  start,
		inventory: inventory.New(carried...),
	}
}

// Location returns the player's current location.
func (p *Player) Location() *world.Location {
	return p.location
}

// MoveTo sets the player's current location.
//
// Precondition: to must be a location owned by the player's world.
func (p *Player) MoveTo(to *world.Location) {
	p.location = to
}

// Inventory returns the player's carried items.
func (p *Player) Inventory() *inventory.Inventory {
	return p.inventory
}
