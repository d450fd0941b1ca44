package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/importer"
)

func TestExitsFromSlots(t *testing.T) {
	got := importer.ExitsFromSlots([6]int{2, 0, 0, 7, 0, 3})
	assert.Equal(t, map[string]int{"North": 2, "East": 7, "Down": 3}, got)
}

func TestExitsFromSlots_None(t *testing.T) {
	assert.Nil(t, importer.ExitsFromSlots([6]int{}))
}

func TestParsePortable(t *testing.T) {
	assert.False(t, importer.ParsePortable("false"))
	assert.False(t, importer.ParsePortable(" FALSE "))
	assert.True(t, importer.ParsePortable("true"))
	assert.True(t, importer.ParsePortable(""))
	assert.True(t, importer.ParsePortable("no"))
}

func TestPropertyExitsFromSlotsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var slots [6]int
		for i := range slots {
			slots[i] = rapid.IntRange(0, 50).Draw(t, "target")
		}
		exits := importer.ExitsFromSlots(slots)
		var back [6]int
		for name, target := range exits {
			d, ok := world.ParseDirection(name)
			assert.True(t, ok)
			back[int(d)-1] = target
		}
		assert.Equal(t, slots, back)
	})
}
