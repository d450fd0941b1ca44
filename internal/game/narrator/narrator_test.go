package narrator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/adventure/internal/game/inventory"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

func TestJoinList(t *testing.T) {
	assert.Equal(t, "", JoinList(nil))
	assert.Equal(t, "North.\n", JoinList([]string{"North"}))
	assert.Equal(t, "book and key.\n", JoinList([]string{"book", "key"}))
	assert.Equal(t, "North, South and East.\n", JoinList([]string{"North", "South", "East"}))
	assert.Equal(t, "a, b, c and d.\n", JoinList([]string{"a", "b", "c", "d"}))
}

func TestPropertyJoinListSeparators(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		labels := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 1, 10).Draw(t, "labels")
		out := JoinList(labels)
		if !strings.HasSuffix(out, ".\n") {
			t.Fatalf("missing terminator: %q", out)
		}
		wantCommas := 0
		if len(labels) > 2 {
			wantCommas = len(labels) - 2
		}
		if got := strings.Count(out, ", "); got != wantCommas {
			t.Fatalf("commas = %d, want %d in %q", got, wantCommas, out)
		}
		wantAnd := 0
		if len(labels) > 1 {
			wantAnd = 1
		}
		if got := strings.Count(out, " and "); got != wantAnd {
			t.Fatalf("ands = %d, want %d in %q", got, wantAnd, out)
		}
	})
}

func TestExits(t *testing.T) {
	hall := world.NewLocation(1, "Hall", "A hall.")
	assert.Equal(t, "There are no obvious exits.\n", Exits(hall))

	other := world.NewLocation(2, "Other", "Other.")
	hall.AddExit(world.North, other)
	hall.AddExit(world.South, other)
	hall.AddExit(world.East, other)
	assert.Equal(t, "Obvious exits lead North, South and East.\n", Exits(hall))
}

func TestItems(t *testing.T) {
	hall := world.NewLocation(1, "Hall", "A hall.")
	assert.Equal(t, "You see nothing of interest.\n", Items(hall))

	hall.Items.Add(&inventory.Item{Keyword: "book", Name: "a small book"})
	assert.Equal(t, "You see a small book.\n", Items(hall))
}

func TestInventory(t *testing.T) {
	assert.Equal(t, "You are carrying nothing.\n", Inventory(inventory.New()))

	inv := inventory.New(
		&inventory.Item{Keyword: "book", Name: "book"},
		&inventory.Item{Keyword: "key", Name: "key"},
	)
	assert.Equal(t, "You are carrying book and key.\n", Inventory(inv))
}

func TestLocation(t *testing.T) {
	foyer := world.NewLocation(1, "Foyer", "A dusty foyer.")
	foyer.Sound = "foyer.au"
	hall := world.NewLocation(2, "Hall", "A hall.")
	foyer.AddExit(world.North, hall)

	full := Location(foyer, true)
	assert.Equal(t, "LOCATION: Foyer\n"+
		"A dusty foyer.\n"+
		"Obvious exits lead North.\n"+
		"You see nothing of interest.\n"+
		"[Background sound: foyer.au]\n", full)

	brief := Location(foyer, false)
	assert.NotContains(t, brief, "A dusty foyer.")
	assert.True(t, strings.HasPrefix(brief, "LOCATION: Foyer\nObvious exits"))

	assert.NotContains(t, Location(hall, true), "[Background sound")
}
