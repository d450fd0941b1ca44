// Package handlers implements the Telnet game session: one independent world
// and interpreter per connected player.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/frontend/telnet"
	"github.com/cory-johannsen/adventure/internal/game/interpreter"
	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/observability"
)

// WorldFactory builds a fresh World. Each session mutates its own copy.
type WorldFactory func() (*world.World, error)

// GameHandler runs the adventure for one Telnet client at a time.
type GameHandler struct {
	newWorld WorldFactory
	opts     []interpreter.Option
	logger   *zap.Logger
}

// NewGameHandler creates a GameHandler. opts are applied to every session's
// interpreter.
//
// Precondition: newWorld and logger must be non-nil.
func NewGameHandler(newWorld WorldFactory, logger *zap.Logger, opts ...interpreter.Option) *GameHandler {
	return &GameHandler{newWorld: newWorld, opts: opts, logger: logger}
}

// HandleSession plays one game over conn until the player quits, the
// connection drops, or ctx is cancelled.
//
// Postcondition: Returns nil on QUIT or client disconnect, or a wrapped error.
func (h *GameHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	w, err := h.newWorld()
	if err != nil {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "The world could not be loaded. Please try again later."))
		return fmt.Errorf("building world: %w", err)
	}
	logger := observability.SessionLogger(h.logger, conn.ID(), w.Name())

	opts := append([]interpreter.Option{interpreter.WithWorldFactory(h.newWorld)}, h.opts...)
	in, err := interpreter.New(w, logger, opts...)
	if err != nil {
		return fmt.Errorf("starting interpreter: %w", err)
	}

	logger.Info("game started", zap.Int("start", w.Start().ID))

	banner := fmt.Sprintf("Welcome to %s. Type HELP for a list of commands.\n\n", w.Name())
	if err := conn.WriteText(telnet.Colorize(telnet.Bold, banner)); err != nil {
		return fmt.Errorf("writing banner: %w", err)
	}
	if err := writeBlock(conn, in.Start().Text); err != nil {
		return fmt.Errorf("writing opening: %w", err)
	}

	turns := 0
	for {
		if err := conn.WritePrompt(Prompt()); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		line, err := conn.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				_ = conn.WriteText("\nThe game is shutting down.\n")
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				logger.Info("player disconnected", zap.Int("turns", turns))
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		res := in.Execute(line)
		if res.Verb != "" || res.Text != "" {
			turns++
		}
		if err := writeBlock(conn, res.Text); err != nil {
			return fmt.Errorf("writing narration: %w", err)
		}
		if res.Quit {
			logger.Info("player quit",
				zap.Int("turns", turns),
				zap.Int("location", in.Player().Location().ID),
			)
			return nil
		}
	}
}

// writeBlock writes one narration block followed by a blank line, so each
// response stands apart from the next prompt. Empty narration writes nothing.
func writeBlock(conn *telnet.Conn, text string) error {
	if text == "" {
		return nil
	}
	return conn.WriteText(RenderNarration(text) + "\n")
}
