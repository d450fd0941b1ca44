package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Len(t, r.Commands(), len(BuiltinCommands()))
}

func TestResolve_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("go")
	assert.True(t, ok)
	assert.Equal(t, VerbGo, cmd.Name)
	assert.Equal(t, HandlerGo, cmd.Handler)
}

func TestResolve_Alias(t *testing.T) {
	r := DefaultRegistry()

	tests := map[string]string{
		"TAKE":    HandlerGet,
		"examine": HandlerLook,
		"i":       HandlerInventory,
		"L":       HandlerLook,
		"exit":    HandlerQuit,
	}
	for alias, handler := range tests {
		cmd, ok := r.Resolve(alias)
		require.True(t, ok, alias)
		assert.Equal(t, handler, cmd.Handler, alias)
	}
}

func TestResolve_ConfirmationAndSystemVerbs(t *testing.T) {
	r := DefaultRegistry()

	tests := map[string]string{
		"search":  HandlerSearch,
		"VERSION": HandlerVersion,
		"restart": HandlerRestart,
		"yes":     HandlerYes,
		"No":      HandlerNo,
	}
	for verb, handler := range tests {
		cmd, ok := r.Resolve(verb)
		require.True(t, ok, verb)
		assert.Equal(t, handler, cmd.Handler, verb)
	}
	search, _ := r.Resolve("search")
	assert.Equal(t, CategoryWorld, search.Category)
	yes, _ := r.Resolve("yes")
	assert.Equal(t, CategorySystem, yes.Category)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Resolve("dance")
	assert.False(t, ok)
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "GO", Handler: HandlerGo},
		{Name: "go", Handler: HandlerGo},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate command name")
}

func TestNewRegistry_AliasConflictsWithName(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "GET", Handler: HandlerGet},
		{Name: "GRAB", Aliases: []string{"get"}, Handler: HandlerGet},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "conflicts")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "GET", Aliases: []string{"TAKE"}, Handler: HandlerGet},
		{Name: "GRAB", Aliases: []string{"take"}, Handler: HandlerGet},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestCommandsByCategory(t *testing.T) {
	cats := DefaultRegistry().CommandsByCategory()
	assert.Len(t, cats[CategoryMovement], 1)
	assert.NotEmpty(t, cats[CategoryWorld])
	assert.NotEmpty(t, cats[CategorySystem])
}

func TestPropertyResolveIsCaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	names := make([]string, 0)
	for _, c := range BuiltinCommands() {
		names = append(names, c.Name)
		names = append(names, c.Aliases...)
	}
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.SampledFrom(names).Draw(t, "name")
		lower := []byte(name)
		for i, c := range lower {
			if c >= 'A' && c <= 'Z' {
				lower[i] = c + 32
			}
		}
		a, okA := r.Resolve(name)
		b, okB := r.Resolve(string(lower))
		if !okA || !okB || a != b {
			t.Fatalf("Resolve(%q) and Resolve(%q) disagree", name, lower)
		}
	})
}
