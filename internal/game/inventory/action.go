package inventory

// Action is one response of an action item. Every effect is optional; the
// interpreter applies them in field order after the guards pass.
type Action struct {
	// Verbs are the words that fire the action ("open", "unlock").
	Verbs []string
	// Message is narrated when the action fires.
	Message string

	// OnceOnly actions fire once; later attempts narrate AlreadyDoneMessage.
	OnceOnly           bool
	AlreadyDoneMessage string
	// UseIn restricts the action to one location ID. Zero means anywhere.
	UseIn int
	// RequiresItem is the keyword of an item the player must carry.
	RequiresItem        string
	RequiresItemMessage string

	// NewName and NewDescription replace the item's own text.
	NewName        string
	NewDescription string
	// Reveals is the ID of a hidden item to place, in RevealIn or, when zero,
	// in the player's location.
	Reveals  string
	RevealIn int
	// AddExit opens a passage from the location where the action fired.
	AddExit *ExitGrant
	// MoveTo moves the player to this location ID. Zero means stay.
	MoveTo int

	done bool
}

// ExitGrant is an exit opened by an action.
type ExitGrant struct {
	// Direction is a full or abbreviated direction name.
	Direction string
	// To is the destination location ID.
	To int
}

// Handles reports whether verb is one of the action's verbs, ignoring case.
func (a *Action) Handles(verb string) bool {
	if verb == "" {
		return false
	}
	v := Fold(verb)
	for _, candidate := range a.Verbs {
		if Fold(candidate) == v {
			return true
		}
	}
	return false
}

// Done reports whether a once-only action has already fired.
func (a *Action) Done() bool {
	return a.done
}

// MarkDone records that the action fired. It only matters for OnceOnly actions.
func (a *Action) MarkDone() {
	a.done = true
}
