// Package legacycsv reads the original comma-separated world tables.
//
// The source directory holds:
//
//	hm_map.csv     one line per room; line N is room N. Fields: six exit
//	               targets (N, S, W, E, U, D; 0 = none), name, description.
//	               Line 0 is a placeholder and is skipped.
//	hm_items.csv   one line per item. Fields: location (0 = carried),
//	               keyword, name, description, getable ("false" = fixed),
//	               then optionally action verb and destination room.
//	hm_sounds.csv  optional. Fields: room, sound zone.
package legacycsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cory-johannsen/adventure/internal/importer"
)

// Legacy file names inside the source directory.
const (
	MapFile    = "hm_map.csv"
	ItemsFile  = "hm_items.csv"
	SoundsFile = "hm_sounds.csv"
)

// DefaultName is the world name given to legacy content.
const DefaultName = "Haunted Mansion"

// DefaultStartRoom is the room the legacy game always began in.
const DefaultStartRoom = 1

var _ importer.Source = (*Source)(nil)

// Source implements importer.Source for the legacy CSV tables.
type Source struct{}

// NewSource constructs a Source.
func NewSource() *Source { return &Source{} }

// Load reads the CSV tables under sourceDir.
//
// Precondition: sourceDir must contain hm_map.csv and hm_items.csv.
// Postcondition: returns a WorldData with at least one room or a non-nil error.
func (s *Source) Load(sourceDir string) (*importer.WorldData, error) {
	rooms, err := readRooms(filepath.Join(sourceDir, MapFile))
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%s: no rooms after the placeholder line", MapFile)
	}

	items, err := readItems(filepath.Join(sourceDir, ItemsFile))
	if err != nil {
		return nil, err
	}

	sounds, err := readSounds(filepath.Join(sourceDir, SoundsFile))
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*importer.RoomSpec, len(rooms))
	for i := range rooms {
		byID[rooms[i].ID] = &rooms[i]
	}
	for room, zone := range sounds {
		r, ok := byID[room]
		if !ok {
			return nil, fmt.Errorf("%s: sound for unknown room %d", SoundsFile, room)
		}
		r.Sound = zone
	}

	return &importer.WorldData{World: importer.WorldSpec{
		Name:      DefaultName,
		StartRoom: DefaultStartRoom,
		Rooms:     rooms,
		Items:     items,
	}}, nil
}

func readRooms(path string) ([]importer.RoomSpec, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	var rooms []importer.RoomSpec
	for line, rec := range records {
		if line == 0 {
			continue
		}
		if len(rec) < 8 {
			return nil, fmt.Errorf("%s line %d: want 8 fields, got %d", MapFile, line+1, len(rec))
		}
		var slots [6]int
		for i := range slots {
			n, err := atoi(rec[i])
			if err != nil {
				return nil, fmt.Errorf("%s line %d: exit %d: %w", MapFile, line+1, i+1, err)
			}
			slots[i] = n
		}
		rooms = append(rooms, importer.RoomSpec{
			ID:          line,
			Name:        strings.TrimSpace(rec[6]),
			Description: strings.TrimSpace(rec[7]),
			Exits:       importer.ExitsFromSlots(slots),
		})
	}
	return rooms, nil
}

func readItems(path string) ([]importer.ItemSpec, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	items := make([]importer.ItemSpec, 0, len(records))
	for line, rec := range records {
		if len(rec) < 5 {
			return nil, fmt.Errorf("%s line %d: want at least 5 fields, got %d", ItemsFile, line+1, len(rec))
		}
		loc, err := atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: location: %w", ItemsFile, line+1, err)
		}
		portable := importer.ParsePortable(rec[4])
		it := importer.ItemSpec{
			Location:    loc,
			Keyword:     strings.TrimSpace(rec[1]),
			Name:        strings.TrimSpace(rec[2]),
			Description: strings.TrimSpace(rec[3]),
			Portable:    &portable,
		}
		if len(rec) >= 7 && strings.TrimSpace(rec[5]) != "" {
			dest, err := atoi(rec[6])
			if err != nil {
				return nil, fmt.Errorf("%s line %d: destination: %w", ItemsFile, line+1, err)
			}
			it.Action = strings.ToLower(strings.TrimSpace(rec[5]))
			it.Destination = dest
		}
		items = append(items, it)
	}
	return items, nil
}

// readSounds returns room -> zone. A missing file yields no sounds.
func readSounds(path string) (map[int]string, error) {
	records, err := readCSV(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sounds := make(map[int]string, len(records))
	for line, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("%s line %d: want 2 fields, got %d", SoundsFile, line+1, len(rec))
		}
		room, err := atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: room: %w", SoundsFile, line+1, err)
		}
		sounds[room] = strings.TrimSpace(rec[1])
	}
	return sounds, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return parseCSV(f, filepath.Base(path))
}

// parseCSV reads quoted, variable-width records. Blank lines are skipped by
// encoding/csv.
func parseCSV(r io.Reader, name string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return records, nil
}

func atoi(field string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(field))
}
