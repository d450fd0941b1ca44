package testutil

import (
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/cory-johannsen/adventure/internal/frontend/telnet"
)

// GamePrompt is the command prompt as it appears once colour codes are removed.
const GamePrompt = "> "

// TelnetClient plays the game over a real TCP connection. Everything it
// returns has telnet negotiation and ANSI styling removed, so tests can match
// plain narration.
type TelnetClient struct {
	conn net.Conn
	t    *testing.T

	raw  []byte
	seen int
}

// NewTelnetClient dials the given address and returns a test client.
//
// Precondition: addr must be a valid "host:port" string with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	start := time.Now()

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v [%s]", addr, err, time.Since(start))
	}
	t.Cleanup(func() { _ = conn.Close() })

	t.Logf("telnet client connected to %s [%s]", addr, time.Since(start))
	return &TelnetClient{conn: conn, t: t}
}

// plain is everything received so far in readable form.
func (c *TelnetClient) plain() string {
	return telnet.StripANSI(string(telnet.FilterIAC(c.raw)))
}

// ReadUntil reads until substr appears in output not yet returned by an
// earlier call. Text received after the match is kept for the next call.
//
// Precondition: substr must be non-empty.
// Postcondition: Returns the unread output up to and including substr, or
// fails the test on timeout.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	tmp := make([]byte, 1024)
	for {
		text := c.plain()
		if i := strings.Index(text[c.seen:], substr); i >= 0 {
			end := c.seen + i + len(substr)
			out := text[c.seen:end]
			c.seen = end
			return out
		}
		n, err := c.conn.Read(tmp)
		c.raw = append(c.raw, tmp[:n]...)
		if err != nil && n == 0 {
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, text[c.seen:], err)
		}
	}
}

// Opening returns the welcome banner and first location, up to the first prompt.
func (c *TelnetClient) Opening() string {
	c.t.Helper()
	return strings.TrimSuffix(c.ReadUntil(GamePrompt, 5*time.Second), GamePrompt)
}

// Turn sends one command and returns the narration printed before the next prompt.
func (c *TelnetClient) Turn(command string) string {
	c.t.Helper()
	c.Send(command)
	return strings.TrimSuffix(c.ReadUntil(GamePrompt, 5*time.Second), GamePrompt)
}

// Send writes a line of text to the server, appending \r\n.
//
// Precondition: text should not contain trailing newline characters.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Close closes the underlying connection.
func (c *TelnetClient) Close() {
	_ = c.conn.Close()
}
