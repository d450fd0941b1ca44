package hooks_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/adventure/internal/game/hooks"
	"github.com/cory-johannsen/adventure/internal/game/interpreter"
	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/scripting"
)

// scriptTree writes files (relative path -> source) under a temp root.
func scriptTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, src := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	return root
}

func loadManager(t *testing.T, files map[string]string) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core))
	t.Cleanup(mgr.Close)
	require.NoError(t, mgr.LoadDir(scriptTree(t, files), 0))
	return mgr, logs
}

func hookWorld(t *testing.T) *world.World {
	t.Helper()
	rooms := []world.RoomRecord{
		{ID: 1, Exits: [6]int{2, 0, 0, 0, 0, 0}, Name: "Foyer", Description: "A dusty foyer."},
		{ID: 2, Exits: [6]int{0, 1, 0, 0, 0, 0}, Name: "Chapel", Description: "Candles gutter."},
	}
	w, err := world.Build("Mansion", 1, rooms, nil)
	require.NoError(t, err)
	return w
}

func TestScope(t *testing.T) {
	assert.Equal(t, "42", hooks.Scope(world.NewLocation(42, "Hall", "A hall.")))
}

func TestScripted_OnDescribe_ScopedScript(t *testing.T) {
	mgr, _ := loadManager(t, map[string]string{
		"2/chapel.lua": `function on_describe(id, name) return "The bell tolls in the " .. name .. "." end`,
	})
	h := hooks.NewScripted(mgr, zaptest.NewLogger(t))
	w := hookWorld(t)

	chapel, _ := w.Location(2)
	assert.Equal(t, "The bell tolls in the Chapel.", h.OnDescribe(chapel))
	assert.Equal(t, "", h.OnDescribe(w.Start()), "no script for the foyer")
}

func TestScripted_OnDescribe_NilReturnIsSilent(t *testing.T) {
	mgr, _ := loadManager(t, map[string]string{
		"global.lua": `function on_describe(id, name) return nil end`,
	})
	h := hooks.NewScripted(mgr, zaptest.NewLogger(t))
	assert.Equal(t, "", h.OnDescribe(hookWorld(t).Start()))
}

func TestScripted_OnCommand_GlobalScript(t *testing.T) {
	mgr, _ := loadManager(t, map[string]string{
		"global.lua": `
			function on_command(verb, noun, id)
				if verb == "XYZZY" then return "Nothing happens." end
				if verb == "PRAY" and id == 2 then return "You feel watched." end
				return nil
			end
		`,
	})
	h := hooks.NewScripted(mgr, zaptest.NewLogger(t))
	w := hookWorld(t)
	chapel, _ := w.Location(2)

	text, ok := h.OnCommand("XYZZY", "", w.Start())
	assert.True(t, ok)
	assert.Equal(t, "Nothing happens.", text)

	_, ok = h.OnCommand("PRAY", "", w.Start())
	assert.False(t, ok)

	text, ok = h.OnCommand("PRAY", "", chapel)
	assert.True(t, ok)
	assert.Equal(t, "You feel watched.", text)
}

func TestScripted_OnCommand_NonStringIgnored(t *testing.T) {
	mgr, _ := loadManager(t, map[string]string{
		"global.lua": `function on_command(verb, noun, id) return 7 end`,
	})
	h := hooks.NewScripted(mgr, zaptest.NewLogger(t))
	_, ok := h.OnCommand("DANCE", "", hookWorld(t).Start())
	assert.False(t, ok)
}

func TestScripted_OnCommand_RuntimeErrorNotHandled(t *testing.T) {
	mgr, logs := loadManager(t, map[string]string{
		"global.lua": `function on_command(verb, noun, id) error("boom") end`,
	})
	h := hooks.NewScripted(mgr, zaptest.NewLogger(t))
	_, ok := h.OnCommand("DANCE", "", hookWorld(t).Start())
	assert.False(t, ok)
	assert.NotEmpty(t, logs.FilterLevelExact(zap.WarnLevel).All())
}

func TestScripted_NoScripts(t *testing.T) {
	mgr := scripting.NewManager(zaptest.NewLogger(t))
	h := hooks.NewScripted(mgr, zaptest.NewLogger(t))
	loc := hookWorld(t).Start()
	assert.Equal(t, "", h.OnDescribe(loc))
	_, ok := h.OnCommand("DANCE", "", loc)
	assert.False(t, ok)
}

func TestScripted_DrivesInterpreter(t *testing.T) {
	mgr, _ := loadManager(t, map[string]string{
		"global.lua": `function on_command(verb, noun, id) if verb == "XYZZY" then return "Nothing happens." end end`,
		"2/chapel.lua": `function on_describe(id, name) return "A cold wind blows." end`,
	})
	in, err := interpreter.New(hookWorld(t), zaptest.NewLogger(t),
		interpreter.WithHooks(hooks.NewScripted(mgr, zaptest.NewLogger(t))))
	require.NoError(t, err)

	opening := in.Start().Text
	assert.NotContains(t, opening, "A cold wind blows.")

	res := in.Execute("xyzzy")
	assert.Equal(t, "Nothing happens.\n", res.Text)

	res = in.Execute("n")
	assert.True(t, strings.HasSuffix(res.Text, "A cold wind blows.\n"), res.Text)

	res = in.Execute("dance")
	assert.Equal(t, interpreter.MsgUnknownVerb, res.Text)
}

func TestLoad(t *testing.T) {
	root := scriptTree(t, map[string]string{
		"global.lua": `function on_command(verb, noun, id) return "ok" end`,
	})
	h, err := hooks.Load(root, 0, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer h.Close()

	text, ok := h.OnCommand("ANY", "", hookWorld(t).Start())
	assert.True(t, ok)
	assert.Equal(t, "ok", text)
}

func TestLoad_MissingRoot(t *testing.T) {
	_, err := hooks.Load(filepath.Join(t.TempDir(), "absent"), 0, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "loading scripts")
}

func TestLoad_ShippedScripts(t *testing.T) {
	h, err := hooks.Load("../../../content/scripts", 0, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer h.Close()

	ballroom := world.NewLocation(15, "Ballroom", "A vast ballroom.")
	assert.NotEmpty(t, h.OnDescribe(ballroom))
	text, ok := h.OnCommand("DANCE", "", ballroom)
	assert.True(t, ok)
	assert.Contains(t, text, "ghosts")

	foyer := world.NewLocation(1, "Foyer", "Dusty.")
	_, ok = h.OnCommand("XYZZY", "", foyer)
	assert.True(t, ok)
}
