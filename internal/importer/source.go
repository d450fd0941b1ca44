package importer

// WorldData is the common intermediate format produced by all Source
// implementations. Its YAML tags match the world file schema exactly, so it
// can be marshalled directly and validated by world.LoadBytes.
type WorldData struct {
	World WorldSpec `yaml:"world"`
}

// WorldSpec holds world-level metadata, rooms and items.
type WorldSpec struct {
	Name      string     `yaml:"name"`
	StartRoom int        `yaml:"start_room"`
	Rooms     []RoomSpec `yaml:"rooms"`
	Items     []ItemSpec `yaml:"items,omitempty"`
}

// RoomSpec holds a single room. Exits are keyed by full direction name.
type RoomSpec struct {
	ID          int            `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Sound       string         `yaml:"sound,omitempty"`
	Exits       map[string]int `yaml:"exits,omitempty"`
}

// ItemSpec holds a single item. Location 0 is the player's starting inventory.
type ItemSpec struct {
	Location    int    `yaml:"location"`
	Keyword     string `yaml:"keyword"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Portable    *bool  `yaml:"portable,omitempty"`
	Action      string `yaml:"action,omitempty"`
	Destination int    `yaml:"destination,omitempty"`
}

// Source loads content from a format-specific source directory.
//
// Precondition: sourceDir must exist and contain the expected layout for the format.
// Postcondition: returns a WorldData with at least one room, or a non-nil error.
type Source interface {
	Load(sourceDir string) (*WorldData, error)
}
