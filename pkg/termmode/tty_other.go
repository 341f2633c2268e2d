//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package termmode

import (
	"fmt"
	"os"
)

// TTY is unavailable on this platform.
type TTY struct{}

// NewTTY always fails on this platform.
func NewTTY(f *os.File) (*TTY, error) {
	return nil, fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)
}

// Mode implements [Port].
func (*TTY) Mode() (Mode, error) { return Mode{}, ErrNotTerminal }

// SetMode implements [Port].
func (*TTY) SetMode(Mode) error { return ErrNotTerminal }

// DiscardInput implements [Port].
func (*TTY) DiscardInput() error { return ErrNotTerminal }

func rawPlatform(p any) any { return p }
