package console_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/adventure/internal/frontend/console"
	"github.com/cory-johannsen/adventure/internal/game/interpreter"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

func newConsole(t *testing.T) *console.Console {
	t.Helper()
	rooms := []world.RoomRecord{
		{ID: 1, Exits: [6]int{0, 0, 0, 0, 2, 0}, Name: "Foyer", Description: "A dusty foyer."},
		{ID: 2, Exits: [6]int{0, 0, 0, 0, 0, 1}, Name: "Attic", Description: "Cobwebs everywhere."},
	}
	items := []world.ItemRecord{{Location: 0, Keyword: "lamp", Name: "a brass lamp", Portable: true}}
	w, err := world.Build("Mansion", 1, rooms, items)
	require.NoError(t, err)
	in, err := interpreter.New(w, zaptest.NewLogger(t))
	require.NoError(t, err)
	return console.New(in, zaptest.NewLogger(t))
}

func TestConsole_PlaysUntilQuit(t *testing.T) {
	var out bytes.Buffer
	err := newConsole(t).Run(context.Background(), strings.NewReader("u\ndrop lamp\nquit\nyes\nlook\n"), &out)
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Welcome to Mansion.\n\nLOCATION: Foyer\nA dusty foyer.\n"), text)
	assert.Contains(t, text, "> LOCATION: Attic\nCobwebs everywhere.\n")
	assert.Contains(t, text, "> lamp dropped.\n\n> ")
	assert.Contains(t, text, "> "+interpreter.MsgConfirmQuit+"\n> ")
	assert.True(t, strings.HasSuffix(text, "> Goodbye.\n\n"), "nothing runs after QUIT")
}

func TestConsole_BlankLineAfterEachBlock(t *testing.T) {
	var out bytes.Buffer
	err := newConsole(t).Run(context.Background(), strings.NewReader("i\n\nu\n"), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Obvious exits lead Up.\n\n> ", "opening block")
	assert.Contains(t, text, "> You are carrying a brass lamp.\n\n> > LOCATION: Attic", "blank input adds no spacing")
}

func TestConsole_EndOfInput(t *testing.T) {
	var out bytes.Buffer
	err := newConsole(t).Run(context.Background(), strings.NewReader("i\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "You are carrying a brass lamp.\n\n")
	assert.True(t, strings.HasSuffix(out.String(), "> \n"))
}

func TestConsole_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- newConsole(t).Run(ctx, r, io.Discard) }()
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("console did not stop on cancel")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestConsole_WriteError(t *testing.T) {
	err := newConsole(t).Run(context.Background(), strings.NewReader(""), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing opening")
}
