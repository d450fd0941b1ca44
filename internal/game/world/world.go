package world

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cory-johannsen/adventure/internal/game/inventory"
)

// ErrWorldLoad marks every failure to produce a playable world. Callers must
// treat it as fatal.
var ErrWorldLoad = errors.New("world failed to load")

// InventoryLocation is the item location ID meaning "starts in the player's inventory".
const InventoryLocation = 0

// RoomRecord is the already-parsed description of one location.
type RoomRecord struct {
	// ID is the positive location identifier.
	ID int `validate:"min=1"`
	// Exits holds the destination ID per direction slot (North, South, West,
	// East, Up, Down). Zero means no exit in that direction.
	Exits [6]int `validate:"dive,min=0"`
	// Name is the short display name.
	Name string `validate:"required"`
	// Description is the long-form description.
	Description string `validate:"required"`
	// Sound is the optional ambient sound zone.
	Sound string
}

// ItemRecord is the already-parsed description of one item.
type ItemRecord struct {
	// ID names the item so actions can reveal it. Required for hidden items.
	ID string
	// Location is the room the item starts in; InventoryLocation means the player carries it.
	Location int `validate:"min=0"`
	// Keyword is the single word used to refer to the item.
	Keyword string `validate:"required"`
	// Name is the display name.
	Name string `validate:"required"`
	// Description is shown on LOOK.
	Description string
	// Portable reports whether the item can be picked up.
	Portable bool
	// Hidden items are placed only when an action reveals them.
	Hidden bool
	// Action is the verb for a legacy single-move action item ("climb").
	// It is shorthand for one action with that verb and MoveTo Destination.
	Action string `validate:"omitempty,alpha"`
	// Destination is the room a legacy action item leads to. Required with Action.
	Destination int `validate:"required_with=Action,min=0"`
	// Actions are the item's verb responses.
	Actions []ActionRecord `validate:"dive"`
}

// ActionRecord describes one verb response of an action item. The JSON tags
// are the stored form.
type ActionRecord struct {
	Verbs               []string    `json:"verbs" validate:"min=1,dive,required"`
	Message             string      `json:"message,omitempty"`
	OnceOnly            bool        `json:"once_only,omitempty"`
	AlreadyDoneMessage  string      `json:"already_done_message,omitempty"`
	UseIn               int         `json:"use_in,omitempty" validate:"min=0"`
	RequiresItem        string      `json:"requires_item,omitempty"`
	RequiresItemMessage string      `json:"requires_item_message,omitempty"`
	NewName             string      `json:"new_name,omitempty"`
	NewDescription      string      `json:"new_description,omitempty"`
	Reveals             string      `json:"reveals,omitempty"`
	RevealIn            int         `json:"reveal_in,omitempty" validate:"min=0"`
	AddExit             *ExitRecord `json:"add_exit,omitempty"`
	MoveTo              int         `json:"move_to,omitempty" validate:"min=0"`
}

// ExitRecord is an exit opened by an action.
type ExitRecord struct {
	Direction string `json:"direction" validate:"required"`
	To        int    `json:"to" validate:"min=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// World owns every Location and, transitively, all exits and the initial item placement.
type World struct {
	name      string
	locations map[int]*Location
	start     *Location
	carried   []*inventory.Item
	hidden    map[string]*inventory.Item
}

// Build constructs a World from records, rejecting any inconsistency.
//
// Precondition: start must be the ID of one of the rooms.
// Postcondition: Returns a fully linked World, or an error wrapping ErrWorldLoad.
// No partially built World is ever returned.
func Build(name string, start int, rooms []RoomRecord, items []ItemRecord) (*World, error) {
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%w: no rooms defined", ErrWorldLoad)
	}

	w := &World{
		name:      name,
		locations: make(map[int]*Location, len(rooms)),
		hidden:    make(map[string]*inventory.Item),
	}

	for i := range rooms {
		r := &rooms[i]
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: room %d: %v", ErrWorldLoad, r.ID, err)
		}
		if _, exists := w.locations[r.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate room ID %d", ErrWorldLoad, r.ID)
		}
		loc := NewLocation(r.ID, r.Name, r.Description)
		loc.Sound = r.Sound
		w.locations[r.ID] = loc
	}

	for i := range rooms {
		r := &rooms[i]
		loc := w.locations[r.ID]
		for slot, target := range r.Exits {
			if target == 0 {
				continue
			}
			dir := Directions[slot]
			to, ok := w.locations[target]
			if !ok {
				return nil, fmt.Errorf("%w: room %d: exit %s targets unknown room %d",
					ErrWorldLoad, r.ID, dir, target)
			}
			loc.AddExit(dir, to)
		}
	}

	startLoc, ok := w.locations[start]
	if !ok {
		return nil, fmt.Errorf("%w: start room %d not found", ErrWorldLoad, start)
	}
	w.start = startLoc

	ids := make(map[string]bool)
	for i := range items {
		rec := &items[i]
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("%w: item %q: %v", ErrWorldLoad, rec.Keyword, err)
		}
		if strings.ContainsAny(rec.Keyword, " \t") {
			return nil, fmt.Errorf("%w: item %q: keyword must be a single word", ErrWorldLoad, rec.Keyword)
		}
		if rec.ID != "" {
			if ids[rec.ID] {
				return nil, fmt.Errorf("%w: duplicate item ID %q", ErrWorldLoad, rec.ID)
			}
			ids[rec.ID] = true
		}
		it, err := w.newItem(rec)
		if err != nil {
			return nil, err
		}
		switch {
		case rec.Hidden:
			if rec.ID == "" {
				return nil, fmt.Errorf("%w: item %q: hidden items need an ID", ErrWorldLoad, rec.Keyword)
			}
			w.hidden[rec.ID] = it
		case rec.Location == InventoryLocation:
			w.carried = append(w.carried, it)
		default:
			loc, ok := w.locations[rec.Location]
			if !ok {
				return nil, fmt.Errorf("%w: item %q: placed in unknown room %d",
					ErrWorldLoad, rec.Keyword, rec.Location)
			}
			loc.Items.Add(it)
		}
	}

	for i := range items {
		for _, a := range items[i].Actions {
			if a.Reveals != "" && w.hidden[a.Reveals] == nil {
				return nil, fmt.Errorf("%w: item %q: reveals %q, which is not a hidden item",
					ErrWorldLoad, items[i].Keyword, a.Reveals)
			}
		}
	}

	return w, nil
}

// newItem converts one record, checking every location its actions name.
func (w *World) newItem(rec *ItemRecord) (*inventory.Item, error) {
	it := &inventory.Item{
		ID:          rec.ID,
		Keyword:     rec.Keyword,
		Name:        rec.Name,
		Description: rec.Description,
		Portable:    rec.Portable,
	}
	records := rec.Actions
	if rec.Action != "" {
		records = append([]ActionRecord{{Verbs: []string{rec.Action}, MoveTo: rec.Destination}}, records...)
	}
	for _, ar := range records {
		a, err := w.newAction(ar)
		if err != nil {
			return nil, fmt.Errorf("%w: item %q: %v", ErrWorldLoad, rec.Keyword, err)
		}
		it.Actions = append(it.Actions, a)
	}
	if len(it.Actions) > 0 {
		it.Kind = inventory.KindAction
	}
	return it, nil
}

func (w *World) newAction(ar ActionRecord) (*inventory.Action, error) {
	for _, v := range ar.Verbs {
		if strings.ContainsAny(v, " \t") {
			return nil, fmt.Errorf("action verb %q must be a single word", v)
		}
	}
	for _, ref := range []struct {
		what string
		id   int
	}{{"use_in", ar.UseIn}, {"reveal_in", ar.RevealIn}, {"move_to", ar.MoveTo}} {
		if ref.id == 0 {
			continue
		}
		if _, ok := w.locations[ref.id]; !ok {
			return nil, fmt.Errorf("action %s: %s room %d not found", strings.Join(ar.Verbs, ","), ref.what, ref.id)
		}
	}
	a := &inventory.Action{
		Verbs:               append([]string(nil), ar.Verbs...),
		Message:             ar.Message,
		OnceOnly:            ar.OnceOnly,
		AlreadyDoneMessage:  ar.AlreadyDoneMessage,
		UseIn:               ar.UseIn,
		RequiresItem:        ar.RequiresItem,
		RequiresItemMessage: ar.RequiresItemMessage,
		NewName:             ar.NewName,
		NewDescription:      ar.NewDescription,
		Reveals:             ar.Reveals,
		RevealIn:            ar.RevealIn,
		MoveTo:              ar.MoveTo,
	}
	if ar.AddExit != nil {
		if _, ok := ParseDirection(ar.AddExit.Direction); !ok {
			return nil, fmt.Errorf("action %s: unknown exit direction %q", strings.Join(ar.Verbs, ","), ar.AddExit.Direction)
		}
		if _, ok := w.locations[ar.AddExit.To]; !ok {
			return nil, fmt.Errorf("action %s: exit leads to unknown room %d", strings.Join(ar.Verbs, ","), ar.AddExit.To)
		}
		a.AddExit = &inventory.ExitGrant{Direction: ar.AddExit.Direction, To: ar.AddExit.To}
	}
	return a, nil
}

// Reveal moves the hidden item id into loc.
//
// Postcondition: Returns the item and true the first time; afterwards, or for
// an unknown id, returns (nil, false).
func (w *World) Reveal(id string, loc *Location) (*inventory.Item, bool) {
	it, ok := w.hidden[id]
	if !ok {
		return nil, false
	}
	delete(w.hidden, id)
	loc.Items.Add(it)
	return it, true
}

// Hidden reports whether the item id is still waiting to be revealed.
func (w *World) Hidden(id string) bool {
	_, ok := w.hidden[id]
	return ok
}

// Name returns the world's display name.
func (w *World) Name() string {
	return w.name
}

// Start returns the starting location.
//
// Postcondition: never nil for a World returned by Build.
func (w *World) Start() *Location {
	return w.start
}

// Location returns the location with the given ID.
//
// Postcondition: Returns (loc, true) if found, or (nil, false).
func (w *World) Location(id int) (*Location, bool) {
	loc, ok := w.locations[id]
	return loc, ok
}

// Carried returns the items that start in the player's inventory.
func (w *World) Carried() []*inventory.Item {
	out := make([]*inventory.Item, len(w.carried))
	copy(out, w.carried)
	return out
}

// LocationCount returns the number of locations.
func (w *World) LocationCount() int {
	return len(w.locations)
}

// ExitCount returns the total number of exits across all locations.
func (w *World) ExitCount() int {
	n := 0
	for _, loc := range w.locations {
		n += len(loc.Exits)
	}
	return n
}

// ItemCount returns the number of items in rooms, in the player's starting
// inventory, and still hidden.
func (w *World) ItemCount() int {
	n := len(w.carried) + len(w.hidden)
	for _, loc := range w.locations {
		n += loc.Items.Len()
	}
	return n
}

// Locations returns all locations ordered by ID.
func (w *World) Locations() []*Location {
	out := make([]*Location, 0, len(w.locations))
	for _, loc := range w.locations {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
