package handlers

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/adventure/internal/frontend/telnet"
	"github.com/cory-johannsen/adventure/internal/game/interpreter"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

func sessionWorld() (*world.World, error) {
	rooms := []world.RoomRecord{
		{ID: 1, Exits: [6]int{2, 0, 0, 0, 0, 0}, Name: "Foyer", Description: "A dusty foyer.", Sound: "foyer"},
		{ID: 2, Exits: [6]int{0, 1, 0, 0, 0, 0}, Name: "Library", Description: "Shelves of books."},
	}
	items := []world.ItemRecord{
		{Location: 2, Keyword: "book", Name: "a small book", Portable: true},
	}
	return world.Build("Mansion", 1, rooms, items)
}

type sessionRun struct {
	err    chan error
	output chan string
}

// runSession plays input through a GameHandler over an in-memory connection.
func runSession(t *testing.T, h *GameHandler, ctx context.Context, input string) sessionRun {
	t.Helper()
	server, client := net.Pipe()
	conn := telnet.NewConn("session-1", server, 2*time.Second, 2*time.Second)

	run := sessionRun{err: make(chan error, 1), output: make(chan string, 1)}
	go func() {
		run.err <- h.HandleSession(ctx, conn)
		conn.Close()
	}()
	go func() {
		out, _ := io.ReadAll(client)
		run.output <- string(out)
	}()
	if input != "" {
		go func() { _, _ = client.Write([]byte(input)) }()
	}
	t.Cleanup(func() { client.Close() })
	return run
}

func waitSession(t *testing.T, run sessionRun) (string, error) {
	t.Helper()
	select {
	case err := <-run.err:
		select {
		case out := <-run.output:
			return telnet.StripANSI(out), err
		case <-time.After(2 * time.Second):
			t.Fatal("output not drained")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end")
	}
	return "", nil
}

func TestGameHandler_PlaysUntilQuit(t *testing.T) {
	h := NewGameHandler(sessionWorld, zaptest.NewLogger(t))
	run := runSession(t, h, context.Background(), "n\r\nget book\r\ni\r\nquit\r\nyes\r\n")

	out, err := waitSession(t, run)
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to Mansion. Type HELP for a list of commands.\r\n")
	assert.Contains(t, out, "LOCATION: Foyer\r\nA dusty foyer.\r\n")
	assert.Contains(t, out, "LOCATION: Library\r\nShelves of books.\r\n")
	assert.Contains(t, out, "book taken.\r\n")
	assert.Contains(t, out, "You are carrying a small book.\r\n")
	assert.Contains(t, out, "Are you sure you want to quit? (YES/NO)\r\n")
	assert.Contains(t, out, "Goodbye.\r\n")
	assert.NotContains(t, out, "\n\n\n")
}

func TestGameHandler_BlankLineBeforeEachPrompt(t *testing.T) {
	h := NewGameHandler(sessionWorld, zaptest.NewLogger(t))
	out, err := waitSession(t, runSession(t, h, context.Background(), "n\r\n\r\ni\r\nquit\r\nyes\r\n"))
	require.NoError(t, err)

	assert.Contains(t, out, "[Background sound: foyer]\r\n\r\n> ", "opening block")
	assert.Contains(t, out, "You see a small book.\r\n\r\n> > You are carrying nothing.\r\n\r\n> ",
		"one blank line per block and none for empty input")
	assert.True(t, strings.HasSuffix(out, "Goodbye.\r\n\r\n"), out)
}

func TestGameHandler_RestartRebuildsTheSessionWorld(t *testing.T) {
	builds := 0
	factory := func() (*world.World, error) {
		builds++
		return sessionWorld()
	}
	h := NewGameHandler(factory, zaptest.NewLogger(t))
	out, err := waitSession(t, runSession(t, h, context.Background(),
		"n\r\nget book\r\nrestart\r\nyes\r\ni\r\nquit\r\nyes\r\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, builds)
	assert.Contains(t, out, "Restarting...\r\n\r\nLOCATION: Foyer\r\n")
	assert.Contains(t, out, "You are carrying nothing.\r\n")
}

func TestGameHandler_EachSessionGetsFreshWorld(t *testing.T) {
	h := NewGameHandler(sessionWorld, zaptest.NewLogger(t))

	_, err := waitSession(t, runSession(t, h, context.Background(), "n\r\nget book\r\nquit\r\nyes\r\n"))
	require.NoError(t, err)

	out, err := waitSession(t, runSession(t, h, context.Background(), "n\r\nquit\r\nyes\r\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "You see a small book.\r\n", "second player finds the book in place")
}

func TestGameHandler_ClientDisconnect(t *testing.T) {
	h := NewGameHandler(sessionWorld, zaptest.NewLogger(t))
	server, client := net.Pipe()
	conn := telnet.NewConn("session-2", server, 2*time.Second, 2*time.Second)
	done := make(chan error, 1)
	go func() { done <- h.HandleSession(context.Background(), conn) }()

	// Wait until the first prompt is fully read so the session is blocked on input.
	var seen strings.Builder
	buf := make([]byte, 256)
	for !strings.Contains(telnet.StripANSI(seen.String()), "\r\n> ") {
		n, err := client.Read(buf)
		require.NoError(t, err)
		seen.Write(buf[:n])
	}
	client.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end after disconnect")
	}
	assert.Contains(t, telnet.StripANSI(seen.String()), "LOCATION: Foyer")
}

func TestGameHandler_VerboseOption(t *testing.T) {
	h := NewGameHandler(sessionWorld, zaptest.NewLogger(t), interpreter.WithVerbose(true))
	out, err := waitSession(t, runSession(t, h, context.Background(), "n\r\ns\r\nquit\r\nyes\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, countOccurrences(out, "A dusty foyer."))
}

func TestGameHandler_WorldFailure(t *testing.T) {
	broken := func() (*world.World, error) { return nil, world.ErrWorldLoad }
	h := NewGameHandler(broken, zaptest.NewLogger(t))
	out, err := waitSession(t, runSession(t, h, context.Background(), ""))
	assert.True(t, errors.Is(err, world.ErrWorldLoad))
	assert.Contains(t, out, "The world could not be loaded.")
}

func countOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}
