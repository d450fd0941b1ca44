package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDirection_NamesAndAbbrevs(t *testing.T) {
	want := map[Direction][2]string{
		North: {"North", "N"},
		South: {"South", "S"},
		West:  {"West", "W"},
		East:  {"East", "E"},
		Up:    {"Up", "U"},
		Down:  {"Down", "D"},
	}
	for d, names := range want {
		assert.Equal(t, names[0], d.String())
		assert.Equal(t, names[1], d.Abbrev())
		assert.True(t, d.Valid())
	}
	assert.False(t, Direction(0).Valid())
	assert.Equal(t, "Undefined", Direction(7).String())
	assert.Equal(t, "", Direction(7).Abbrev())
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("north")
	require.True(t, ok)
	assert.Equal(t, North, d)

	d, ok = ParseDirection("u")
	require.True(t, ok)
	assert.Equal(t, Up, d)

	_, ok = ParseDirection("northeast")
	assert.False(t, ok)
}

func TestPropertyParseDirectionRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := rapid.SampledFrom(Directions).Draw(t, "dir")
		useAbbrev := rapid.Bool().Draw(t, "abbrev")
		word := d.String()
		if useAbbrev {
			word = d.Abbrev()
		}
		got, ok := ParseDirection(word)
		if !ok || got != d {
			t.Fatalf("ParseDirection(%q) = %v, %v; want %v", word, got, ok, d)
		}
	})
}

func TestLocation_ExitFor(t *testing.T) {
	hall := NewLocation(1, "Hall", "A hall.")
	study := NewLocation(2, "Study", "A study.")
	hall.AddExit(North, study)

	e, ok := hall.ExitFor("NORTH")
	require.True(t, ok)
	assert.Same(t, study, e.To)

	e, ok = hall.ExitFor("n")
	require.True(t, ok)
	assert.Same(t, study, e.To)

	_, ok = hall.ExitFor("south")
	assert.False(t, ok)
}

func TestLocation_ExitFor_LastMatchWins(t *testing.T) {
	hall := NewLocation(1, "Hall", "A hall.")
	first := NewLocation(2, "First", "First.")
	second := NewLocation(3, "Second", "Second.")
	// Build never produces this; a hand-built location can.
	hall.Exits = []Exit{
		{Direction: North, To: first},
		{Direction: North, To: second},
	}

	e, ok := hall.ExitFor("north")
	require.True(t, ok)
	assert.Same(t, second, e.To)
}

func TestLocation_ExitNames(t *testing.T) {
	hall := NewLocation(1, "Hall", "A hall.")
	other := NewLocation(2, "Other", "Other.")
	hall.AddExit(North, other)
	hall.AddExit(South, other)
	hall.AddExit(East, other)
	assert.Equal(t, []string{"North", "South", "East"}, hall.ExitNames())
}

func TestLocation_SetExit(t *testing.T) {
	hall := NewLocation(1, "Hall", "A hall.")
	study := NewLocation(2, "Study", "A study.")
	vault := NewLocation(3, "Vault", "A vault.")

	hall.SetExit(North, study)
	require.Len(t, hall.Exits, 1)

	hall.SetExit(North, vault)
	require.Len(t, hall.Exits, 1, "an existing exit is redirected, not duplicated")
	e, ok := hall.ExitFor("n")
	require.True(t, ok)
	assert.Same(t, vault, e.To)

	hall.SetExit(Down, study)
	assert.Equal(t, []string{"North", "Down"}, hall.ExitNames())
}
