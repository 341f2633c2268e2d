//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package termmode

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// TTY is a [Port] for a terminal file descriptor.
type TTY struct {
	fd int
}

// NewTTY returns a [Port] for f, which must be a terminal.
func NewTTY(f *os.File) (*TTY, error) {
	fd := int(f.Fd()) //nolint:gosec // G115: file descriptors fit in int.

	_, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", f.Name(), ErrNotTerminal, err)
	}

	return &TTY{fd: fd}, nil
}

// Mode implements [Port].
func (t *TTY) Mode() (Mode, error) {
	termios, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return Mode{}, fmt.Errorf("get termios: %w", err)
	}

	return Mode{
		platform:  *termios,
		Canonical: termios.Lflag&unix.ICANON != 0,
		Echo:      termios.Lflag&unix.ECHO != 0,
	}, nil
}

// SetMode implements [Port].
func (t *TTY) SetMode(m Mode) error {
	termios, ok := m.platform.(unix.Termios)
	if !ok {
		current, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
		if err != nil {
			return fmt.Errorf("get termios: %w", err)
		}

		termios = *current
	}

	termios.Lflag = setFlag(termios.Lflag, unix.ICANON, m.Canonical)
	termios.Lflag = setFlag(termios.Lflag, unix.ECHO, m.Echo)

	err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &termios)
	if err != nil {
		return fmt.Errorf("set termios: %w", err)
	}

	return nil
}

// DiscardInput implements [Port]. The current termios is reinstalled with the
// request variant that flushes unread input.
func (t *TTY) DiscardInput() error {
	termios, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}

	err = unix.IoctlSetTermios(t.fd, ioctlSetTermiosFlush, termios)
	if err != nil {
		return fmt.Errorf("flush input: %w", err)
	}

	return nil
}

func rawPlatform(p any) any {
	termios, ok := p.(unix.Termios)
	if !ok {
		return p
	}

	termios.Lflag &^= unix.ICANON | unix.ECHO
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	return termios
}

func setFlag[T ~uint32 | ~uint64](flags, bit T, on bool) T {
	if on {
		return flags | bit
	}

	return flags &^ bit
}
