// Package inventory provides game items and the ordered containers that hold them.
package inventory

import (
	"golang.org/x/text/cases"
)

// Kind tags the behaviour of an item.
type Kind int

// Item kinds.
const (
	// KindPlain is an ordinary item that can be looked at and possibly carried.
	KindPlain Kind = iota
	// KindAction is an item with its own verb responses ("climb ladder", "open desk").
	KindAction
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindAction:
		return "action"
	default:
		return "unknown"
	}
}

// Item is a single object in the world. It is held by exactly one container.
type Item struct {
	// ID names the item for reveal actions. Optional for items nothing reveals.
	ID string
	// Keyword is the single word players use to refer to the item.
	Keyword string
	// Name is the display name used in lists ("a small book").
	Name string
	// Description is shown when the item is examined.
	Description string
	// Portable reports whether GET may pick the item up.
	Portable bool
	// Kind selects plain or action behaviour.
	Kind Kind
	// Actions are the item's verb responses, in declaration order. Only set
	// for KindAction.
	Actions []*Action
}

// Fold returns the case-folded form of s used for keyword and verb comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Matches reports whether word refers to this item, ignoring case.
func (it *Item) Matches(word string) bool {
	return word != "" && Fold(it.Keyword) == Fold(word)
}

// IsAction reports whether the item is an action item.
func (it *Item) IsAction() bool {
	return it.Kind == KindAction
}

// ActionFor returns the first action that names verb explicitly.
func (it *Item) ActionFor(verb string) (*Action, bool) {
	if !it.IsAction() {
		return nil, false
	}
	for _, a := range it.Actions {
		if a.Handles(verb) {
			return a, true
		}
	}
	return nil, false
}

// Triggers returns the action that "verb noun" runs on this item. GO also
// runs the first action that moves the player, so "go ladder" works like
// "climb ladder".
//
// Postcondition: Returns (nil, false) for plain items and non-matching nouns.
func (it *Item) Triggers(verb, noun string) (*Action, bool) {
	if !it.IsAction() || !it.Matches(noun) {
		return nil, false
	}
	if a, ok := it.ActionFor(verb); ok {
		return a, true
	}
	if Fold(verb) != Fold("go") {
		return nil, false
	}
	for _, a := range it.Actions {
		if a.MoveTo != 0 {
			return a, true
		}
	}
	return nil, false
}
