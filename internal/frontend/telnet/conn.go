package telnet

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// MaxLineLength caps the bytes kept from one input line; the excess is dropped.
const MaxLineLength = 512

// Telnet IAC (Interpret As Command) constants per RFC 854.
const (
	IAC  byte = 255 // Interpret As Command
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250 // Sub-negotiation Begin
	SE   byte = 240 // Sub-negotiation End
	NOP  byte = 241
	GA   byte = 249 // Go Ahead

	// Telnet options
	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

// Conn wraps a TCP connection with Telnet protocol handling.
// It filters IAC sequences from input and provides line-based reading.
type Conn struct {
	id     string
	raw    net.Conn
	reader *bufio.Reader
	mu     sync.Mutex

	// filter and skipLF carry input state from one ReadLine to the next.
	filter iacFilter
	skipLF bool

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps a raw TCP connection with Telnet protocol handling. id names
// the session in logs.
//
// Precondition: raw must be a valid, open network connection.
// Postcondition: Returns a Conn ready for reading and writing.
func NewConn(id string, raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		id:           id,
		raw:          raw,
		reader:       bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate asks the client to suppress go-ahead. Echo stays with the client.
//
// Postcondition: Negotiation bytes are written to the connection.
func (c *Conn) Negotiate() error {
	return c.send([]byte{IAC, WILL, OptSuppressGoAhead})
}

// ReadLine reads one command line. Telnet commands are removed even when they
// arrive split across packets. A line ends at CR, LF or CRLF; the byte after a
// CR is never waited for. Backspace and DEL erase the previous character,
// other control bytes are dropped, and the line is capped at MaxLineLength.
//
// Postcondition: Returns the line without its terminator, or an error
// (including io.EOF).
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}

	var line []byte
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return string(line), err
		}
		if !c.filter.text(b) {
			continue
		}

		skip := c.skipLF
		c.skipLF = false
		switch {
		case b == '\n' && skip, b == 0 && skip:
			// Second half of a CRLF or CR NUL ending.
			continue
		case b == '\n':
			return string(line), nil
		case b == '\r':
			c.skipLF = true
			return string(line), nil
		case b == '\b' || b == 0x7f:
			if len(line) > 0 {
				_, size := utf8.DecodeLastRune(line)
				line = line[:len(line)-size]
			}
		case b < 32 && b != '\t', b == IAC:
			// Control bytes and a literal 0xFF carry no command text.
		case len(line) < MaxLineLength:
			line = append(line, b)
		}
	}
}

// iacState tracks where the filter is inside a Telnet command.
type iacState int

const (
	stText   iacState = iota
	stCommand         // after IAC
	stOption          // after IAC WILL/WONT/DO/DONT
	stSub             // inside IAC SB ... IAC SE
	stSubIAC          // IAC seen inside a sub-negotiation
)

// iacFilter removes Telnet commands from a byte stream one byte at a time.
type iacFilter struct {
	state iacState
}

// text consumes b and reports whether it is part of the data stream. An
// escaped IAC (IAC IAC) yields one 0xFF data byte.
func (f *iacFilter) text(b byte) bool {
	switch f.state {
	case stCommand:
		f.state = stText
		switch b {
		case WILL, WONT, DO, DONT:
			f.state = stOption
		case SB:
			f.state = stSub
		case IAC:
			return true
		}
		return false
	case stOption:
		f.state = stText
		return false
	case stSub:
		if b == IAC {
			f.state = stSubIAC
		}
		return false
	case stSubIAC:
		if b == SE {
			f.state = stText
		} else {
			f.state = stSub
		}
		return false
	}
	if b == IAC {
		f.state = stCommand
		return false
	}
	return true
}

// send writes p under the connection lock with the write deadline applied.
func (c *Conn) send(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	_, err := c.raw.Write(p)
	return err
}

// WriteLine sends a line of text followed by \r\n to the client.
//
// Precondition: text should not contain trailing newline characters.
// Postcondition: text + \r\n is written to the connection.
func (c *Conn) WriteLine(text string) error {
	return c.send([]byte(text + "\r\n"))
}

// WriteText sends multi-line text, translating each "\n" into the "\r\n"
// Telnet clients expect.
//
// Postcondition: text is written with normalized line endings.
func (c *Conn) WriteText(text string) error {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return c.Write([]byte(strings.ReplaceAll(text, "\n", "\r\n")))
}

// Write sends raw bytes to the client.
//
// Postcondition: The data is written to the connection.
func (c *Conn) Write(data []byte) error {
	return c.send(data)
}

// WritePrompt sends a prompt string without a trailing newline.
//
// Postcondition: The prompt text is written to the connection.
func (c *Conn) WritePrompt(prompt string) error {
	return c.send([]byte(prompt))
}

// Close closes the underlying TCP connection.
//
// Postcondition: The connection is closed and no longer usable.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// ID returns the session identifier.
func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the remote network address of the client.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}

// FilterIAC removes Telnet commands from a complete byte slice. An escaped
// IAC becomes one 0xFF byte; a command cut off at the end is dropped.
//
// Postcondition: Returns the data bytes of input in order.
func FilterIAC(input []byte) []byte {
	var f iacFilter
	result := make([]byte, 0, len(input))
	for _, b := range input {
		if f.text(b) {
			result = append(result, b)
		}
	}
	return result
}
