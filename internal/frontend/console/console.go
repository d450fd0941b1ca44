// Package console plays the adventure on a local terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/interpreter"
)

// Prompt is written before each command is read.
const Prompt = "> "

// Console runs one interpreter against a line-oriented reader and writer.
type Console struct {
	in     *interpreter.Interpreter
	logger *zap.Logger
}

// New creates a Console.
//
// Precondition: in and logger must be non-nil.
func New(in *interpreter.Interpreter, logger *zap.Logger) *Console {
	return &Console{in: in, logger: logger}
}

// Run prints the opening narration, then executes one line per turn until the
// player quits, input ends, or ctx is cancelled.
//
// Postcondition: Returns nil on QUIT or end of input, ctx.Err() on
// cancellation, or a wrapped read/write error.
func (c *Console) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Welcome to %s.\n\n%s\n", c.in.World().Name(), c.in.Start().Text); err != nil {
		return fmt.Errorf("writing opening: %w", err)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if _, err := io.WriteString(w, Prompt); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			_, _ = io.WriteString(w, "\n")
			c.logger.Debug("input closed")
			return nil
		case line = <-lines:
		}

		// Each response is followed by a blank line before the next prompt.
		res := c.in.Execute(line)
		if res.Text != "" {
			if _, err := io.WriteString(w, res.Text+"\n"); err != nil {
				return fmt.Errorf("writing narration: %w", err)
			}
		}
		if res.Quit {
			return nil
		}
	}
}
