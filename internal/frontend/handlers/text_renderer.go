package handlers

import (
	"strings"

	"github.com/cory-johannsen/adventure/internal/frontend/telnet"
	"github.com/cory-johannsen/adventure/internal/game/interpreter"
	"github.com/cory-johannsen/adventure/internal/game/narrator"
)

// failures are narration lines rendered as errors.
var failures = map[string]bool{
	strings.TrimSuffix(interpreter.MsgUnknownVerb, "\n"): true,
	strings.TrimSuffix(interpreter.MsgNoExit, "\n"):      true,
	strings.TrimSuffix(interpreter.MsgNotHere, "\n"):     true,
	strings.TrimSuffix(interpreter.MsgNotCarried, "\n"):  true,
	strings.TrimSuffix(interpreter.MsgNotAround, "\n"):   true,
}

// RenderNarration colors interpreter narration for a Telnet terminal. Each
// line is styled by what it describes; unknown lines pass through unchanged.
//
// Postcondition: StripANSI of the result equals text.
func RenderNarration(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		b.WriteString(styleLine(body))
		if len(body) < len(line) {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func styleLine(line string) string {
	switch {
	case line == "":
		return line
	case strings.HasPrefix(line, narrator.LocationHeader):
		return telnet.Colorize(telnet.Bold+telnet.BrightWhite, line)
	case strings.HasPrefix(line, "Obvious exits"), strings.HasPrefix(line, "There are no obvious exits"):
		return telnet.Colorize(telnet.Cyan, line)
	case strings.HasPrefix(line, "You see"), strings.HasPrefix(line, "You are carrying"):
		return telnet.Colorize(telnet.Yellow, line)
	case strings.HasPrefix(line, "[Background sound:"):
		return telnet.Colorize(telnet.BrightBlack, line)
	case strings.HasPrefix(line, "You can't"), failures[line]:
		return telnet.Colorize(telnet.Red, line)
	case strings.HasSuffix(line, " taken."), strings.HasSuffix(line, " dropped."):
		return telnet.Colorize(telnet.Green, line)
	default:
		return line
	}
}

// Prompt is the input prompt shown after each turn.
func Prompt() string {
	return telnet.Colorize(telnet.Dim, "> ")
}
