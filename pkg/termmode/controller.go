package termmode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Controller serialises access to a terminal's line discipline and input.
//
// It is not safe for concurrent use: one interaction holds the terminal at a
// time.
type Controller struct {
	port Port
	src  io.Reader
	in   *bufio.Reader
}

// New returns a [Controller] reading keys from in and switching modes on port.
func New(port Port, in io.Reader) *Controller {
	return &Controller{
		port: port,
		src:  in,
		in:   bufio.NewReader(in),
	}
}

// Snapshot returns the currently installed mode.
func (c *Controller) Snapshot() (Mode, error) {
	m, err := c.port.Mode()
	if err != nil {
		return Mode{}, fmt.Errorf("snapshot mode: %w", err)
	}

	return m, nil
}

// Restore installs m, typically a value returned by [Controller.Snapshot].
func (c *Controller) Restore(m Mode) error {
	err := c.port.SetMode(m)
	if err != nil {
		return fmt.Errorf("restore mode: %w", err)
	}

	return nil
}

// EnterRaw captures the current mode and installs its raw variant.
// The returned [Guard] must be restored on every path.
func (c *Controller) EnterRaw() (*Guard, error) {
	saved, err := c.port.Mode()
	if err != nil {
		return nil, fmt.Errorf("capture mode: %w", err)
	}

	err = c.port.SetMode(saved.Raw())
	if err != nil {
		// Some ports apply settings partially before failing.
		restoreErr := c.port.SetMode(saved)

		return nil, errors.Join(fmt.Errorf("enter raw mode: %w", err), restoreErr)
	}

	slog.Debug("entered raw mode")

	return &Guard{c: c, saved: saved}, nil
}

// ReadKey blocks until a single key is read in raw mode and returns it.
// The original mode is restored before returning.
func (c *Controller) ReadKey() (byte, error) {
	g, err := c.EnterRaw()
	if err != nil {
		return 0, err
	}
	defer g.Release()

	b, err := g.ReadByte()
	if err != nil {
		return 0, err
	}

	return b, g.Restore()
}

// Discard drops pending input, both at the device and in the read buffer, so
// stray keystrokes cannot leak into the next interaction.
func (c *Controller) Discard() error {
	c.in.Reset(c.src)

	err := c.port.DiscardInput()
	if err != nil {
		return fmt.Errorf("discard input: %w", err)
	}

	return nil
}

// maxLinePrealloc bounds the buffer allocated up front by [Controller.ReadLine].
const maxLinePrealloc = 4096

// ReadLine reads one line in the current mode and returns at most maxChars
// characters of it. The remainder of the line, including the line break, is
// consumed and dropped. A line ended by EOF is returned without error if it
// contains data.
func (c *Controller) ReadLine(maxChars int) (string, error) {
	maxChars = max(maxChars, 0)

	buf := make([]rune, 0, min(maxChars, maxLinePrealloc)+1)
	read := false

	for {
		r, _, err := c.in.ReadRune()
		if errors.Is(err, io.EOF) {
			if !read {
				return "", fmt.Errorf("read line: %w", io.ErrUnexpectedEOF)
			}

			break
		}
		if err != nil {
			return "", fmt.Errorf("read line: %w", err)
		}

		read = true

		if r == '\n' {
			break
		}
		if len(buf) >= maxChars {
			continue
		}

		buf = append(buf, r)
	}

	if n := len(buf); n > 0 && buf[n-1] == '\r' {
		buf = buf[:n-1]
	}

	return string(buf), nil
}

// Guard owns a mode captured by [Controller.EnterRaw].
type Guard struct {
	c        *Controller
	saved    Mode
	restored bool
}

// Saved returns the mode that Restore reinstalls.
func (g *Guard) Saved() Mode {
	return g.saved
}

// ReadByte performs one blocking single byte read.
func (g *Guard) ReadByte() (byte, error) {
	b, err := g.c.in.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("read key: %w", err)
	}

	return b, nil
}

// Restore reinstalls the captured mode. Calls after the first are no-ops.
func (g *Guard) Restore() error {
	if g.restored {
		return nil
	}

	g.restored = true

	err := g.c.port.SetMode(g.saved)
	if err != nil {
		return fmt.Errorf("restore mode: %w", err)
	}

	slog.Debug("restored terminal mode")

	return nil
}

// Release restores the captured mode and logs a failure. It is meant to be
// deferred right after [Controller.EnterRaw].
func (g *Guard) Release() {
	err := g.Restore()
	if err != nil {
		slog.Error("release raw mode", slog.Any("err", err))
	}
}
