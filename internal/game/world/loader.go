package world

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Data is a parsed but not yet linked world: the records Build consumes.
type Data struct {
	Name      string
	StartRoom int
	Rooms     []RoomRecord
	Items     []ItemRecord
}

// Build links the records into a World. A non-zero startOverride replaces
// the file's start room.
//
// Postcondition: Returns a World or an error wrapping ErrWorldLoad.
func (d *Data) Build(startOverride int) (*World, error) {
	start := d.StartRoom
	if startOverride != 0 {
		start = startOverride
	}
	return Build(d.Name, start, d.Rooms, d.Items)
}

// yamlWorldFile is the top-level YAML structure for world files.
type yamlWorldFile struct {
	World yamlWorld `yaml:"world"`
}

// yamlWorld is the YAML representation of a world.
type yamlWorld struct {
	Name      string     `yaml:"name"`
	StartRoom int        `yaml:"start_room"`
	Rooms     []yamlRoom `yaml:"rooms"`
	Items     []yamlItem `yaml:"items"`
}

// yamlRoom is the YAML representation of a room. Exits are keyed by direction
// name or abbreviation.
type yamlRoom struct {
	ID          int            `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Sound       string         `yaml:"sound"`
	Exits       map[string]int `yaml:"exits"`
}

// yamlItem is the YAML representation of an item. Portable defaults to true.
type yamlItem struct {
	ID          string `yaml:"id"`
	Location    int    `yaml:"location"`
	Keyword     string `yaml:"keyword"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Portable    *bool  `yaml:"portable"`
	Hidden      bool   `yaml:"hidden"`
	Action      string `yaml:"action"`
	Destination int    `yaml:"destination"`

	Actions []yamlAction `yaml:"actions"`
}

// yamlAction is one entry of an item's actions list. Verb holds one or more
// comma-separated verbs.
type yamlAction struct {
	Verb                string    `yaml:"verb"`
	Message             string    `yaml:"message"`
	OnceOnly            bool      `yaml:"once_only"`
	AlreadyDoneMessage  string    `yaml:"already_done_message"`
	UseIn               int       `yaml:"use_in"`
	RequiresItem        string    `yaml:"requires_item"`
	RequiresItemMessage string    `yaml:"requires_item_message"`
	NewName             string    `yaml:"new_name"`
	NewDescription      string    `yaml:"new_description"`
	Reveals             string    `yaml:"reveals"`
	RevealIn            int       `yaml:"reveal_in"`
	MoveTo              int       `yaml:"move_to"`
	AddExit             *yamlExit `yaml:"add_exit"`
}

type yamlExit struct {
	Direction string `yaml:"direction"`
	To        int    `yaml:"to"`
}

// LoadFile reads and parses a world YAML file.
//
// Precondition: path must point to a world YAML file.
// Postcondition: Returns parsed Data or an error wrapping ErrWorldLoad.
func LoadFile(path string) (*Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading world file %s: %v", ErrWorldLoad, path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a world from YAML bytes.
//
// Postcondition: Returns parsed Data or an error wrapping ErrWorldLoad.
func LoadBytes(data []byte) (*Data, error) {
	var file yamlWorldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parsing world YAML: %v", ErrWorldLoad, err)
	}
	return convertYAMLWorld(file.World)
}

// convertYAMLWorld converts the parsed YAML structures into records.
func convertYAMLWorld(yw yamlWorld) (*Data, error) {
	d := &Data{
		Name:      yw.Name,
		StartRoom: yw.StartRoom,
		Rooms:     make([]RoomRecord, 0, len(yw.Rooms)),
		Items:     make([]ItemRecord, 0, len(yw.Items)),
	}

	for _, yr := range yw.Rooms {
		rec := RoomRecord{
			ID:          yr.ID,
			Name:        yr.Name,
			Description: strings.TrimSpace(yr.Description),
			Sound:       yr.Sound,
		}
		seen := make(map[Direction]bool, len(yr.Exits))
		for key, target := range yr.Exits {
			dir, ok := ParseDirection(key)
			if !ok {
				return nil, fmt.Errorf("%w: room %d: unknown exit direction %q", ErrWorldLoad, yr.ID, key)
			}
			if seen[dir] {
				return nil, fmt.Errorf("%w: room %d: duplicate exit direction %s", ErrWorldLoad, yr.ID, dir)
			}
			seen[dir] = true
			rec.Exits[int(dir)-1] = target
		}
		d.Rooms = append(d.Rooms, rec)
	}

	for _, yi := range yw.Items {
		portable := true
		if yi.Portable != nil {
			portable = *yi.Portable
		}
		d.Items = append(d.Items, ItemRecord{
			ID:          yi.ID,
			Location:    yi.Location,
			Keyword:     yi.Keyword,
			Name:        yi.Name,
			Description: strings.TrimSpace(yi.Description),
			Portable:    portable,
			Hidden:      yi.Hidden,
			Action:      yi.Action,
			Destination: yi.Destination,
			Actions:     convertYAMLActions(yi.Actions),
		})
	}

	return d, nil
}

func convertYAMLActions(yas []yamlAction) []ActionRecord {
	if len(yas) == 0 {
		return nil
	}
	out := make([]ActionRecord, 0, len(yas))
	for _, ya := range yas {
		rec := ActionRecord{
			Verbs:               splitVerbs(ya.Verb),
			Message:             strings.TrimSpace(ya.Message),
			OnceOnly:            ya.OnceOnly,
			AlreadyDoneMessage:  strings.TrimSpace(ya.AlreadyDoneMessage),
			UseIn:               ya.UseIn,
			RequiresItem:        ya.RequiresItem,
			RequiresItemMessage: strings.TrimSpace(ya.RequiresItemMessage),
			NewName:             ya.NewName,
			NewDescription:      strings.TrimSpace(ya.NewDescription),
			Reveals:             ya.Reveals,
			RevealIn:            ya.RevealIn,
			MoveTo:              ya.MoveTo,
		}
		if ya.AddExit != nil {
			rec.AddExit = &ExitRecord{Direction: ya.AddExit.Direction, To: ya.AddExit.To}
		}
		out = append(out, rec)
	}
	return out
}

// splitVerbs turns "search, examine" into ["search", "examine"], dropping blanks.
func splitVerbs(list string) []string {
	var verbs []string
	for _, v := range strings.Split(list, ",") {
		if v = strings.TrimSpace(v); v != "" {
			verbs = append(verbs, v)
		}
	}
	return verbs
}
