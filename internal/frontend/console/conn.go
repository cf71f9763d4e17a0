package console

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Conn is a line-oriented terminal: it reads one line of player input at a
// time and writes game text.
//
// Lines are read by a single background goroutine, started on the first
// ReadLine, so a blocked read can be abandoned when the caller's context is
// cancelled. A line read after its caller gave up is kept for the next call.
type Conn struct {
	reader *bufio.Reader
	out    io.Writer
	mu     sync.Mutex

	start   sync.Once
	lines   chan string
	readErr error
	pending *string
}

// NewConn wraps an input stream and an output stream.
//
// Precondition: in and out must be non-nil.
func NewConn(in io.Reader, out io.Writer) *Conn {
	return &Conn{
		reader: bufio.NewReaderSize(in, 4096),
		out:    out,
		lines:  make(chan string),
	}
}

// ReadLine reads a single line of input without its line terminator.
// Control characters other than tab are dropped; \r, \n and \r\n all end a line.
//
// Postcondition: Returns the next line, or io.EOF once input is exhausted
// and no partial line remains. Returns ctx.Err() as soon as ctx is
// cancelled, even while waiting for input. ReadLine must not be called
// concurrently.
func (c *Conn) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.pending != nil {
		line := *c.pending
		c.pending = nil
		return line, nil
	}
	c.start.Do(func() { go c.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", c.readErr
		}
		if err := ctx.Err(); err != nil {
			c.pending = &line
			return "", err
		}
		return line, nil
	}
}

// readLoop feeds c.lines until the input fails, then records the error and
// closes the channel.
func (c *Conn) readLoop() {
	for {
		line, err := c.readLine()
		if err != nil {
			c.readErr = err
			close(c.lines)
			return
		}
		c.lines <- line
	}
}

func (c *Conn) readLine() (string, error) {
	var line bytes.Buffer
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				return line.String(), nil
			}
			return "", err
		}

		if b == '\n' {
			break
		}
		if b == '\r' {
			next, err := c.reader.Peek(1)
			if err == nil && len(next) > 0 && next[0] == '\n' {
				_, _ = c.reader.ReadByte()
			}
			break
		}
		if (b < 32 && b != '\t') || b == 127 {
			continue
		}
		line.WriteByte(b)
	}
	return line.String(), nil
}

// WriteLine writes text followed by a newline.
func (c *Conn) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, text)
	return err
}

// WritePrompt writes text without a trailing newline.
func (c *Conn) WritePrompt(prompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.out, prompt)
	return err
}

// Write writes raw text as-is.
func (c *Conn) Write(text string) error {
	return c.WritePrompt(text)
}
