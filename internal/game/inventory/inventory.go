package inventory

// All is the noun that selects every item in a container.
const All = "ALL"

// Inventory is an ordered collection of items owned by one actor: the player
// or a location.
type Inventory struct {
	items []*Item
}

// New creates an Inventory holding the given items in order.
//
// Postcondition: returned Inventory holds exactly items, in order.
func New(items ...*Item) *Inventory {
	inv := &Inventory{}
	for _, it := range items {
		inv.Add(it)
	}
	return inv
}

// Add appends an item to the end of the collection.
//
// Precondition: it is non-nil and not held by any other container.
func (inv *Inventory) Add(it *Item) {
	inv.items = append(inv.items, it)
}

// Remove removes the given item (by identity). Returns false if it is not held.
//
// Postcondition: on success the remaining items keep their relative order.
func (inv *Inventory) Remove(it *Item) bool {
	for i, held := range inv.items {
		if held == it {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the item (by identity) is held.
func (inv *Inventory) Contains(it *Item) bool {
	for _, held := range inv.items {
		if held == it {
			return true
		}
	}
	return false
}

// Len returns the number of held items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Items returns a snapshot copy of the held items.
//
// Postcondition: mutating the returned slice does not affect the Inventory.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Names returns the display names of the held items, in order.
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.items))
	for _, it := range inv.items {
		names = append(names, it.Name)
	}
	return names
}

// Find returns the first item whose keyword matches word.
//
// Postcondition: Returns (item, true) on a match, or (nil, false).
func (inv *Inventory) Find(word string) (*Item, bool) {
	for _, it := range inv.items {
		if it.Matches(word) {
			return it, true
		}
	}
	return nil, false
}

// Select returns a snapshot of every item matching noun, or every item when
// noun is All (any case). The snapshot is safe to iterate while moving items.
//
// Postcondition: returned slice is a copy in container order.
func (inv *Inventory) Select(noun string) []*Item {
	if Fold(noun) == Fold(All) {
		return inv.Items()
	}
	var out []*Item
	for _, it := range inv.items {
		if it.Matches(noun) {
			out = append(out, it)
		}
	}
	return out
}

// Transfer moves it from one container to another. It is atomic: when it is
// not held by from, neither container changes.
//
// Postcondition: Returns true iff it is now held by to and not by from.
func Transfer(it *Item, from, to *Inventory) bool {
	if !from.Remove(it) {
		return false
	}
	to.Add(it)
	return true
}
