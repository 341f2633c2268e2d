package termmode

import (
	"errors"
)

// ErrNotTerminal is returned by ports that cannot control the line discipline
// of their file.
var ErrNotTerminal = errors.New("not a terminal")

// Mode is a snapshot of a terminal's line discipline.
//
// Modes are comparable; two snapshots of an unchanged terminal are equal.
type Mode struct {
	// platform holds the OS specific state (e.g. a termios value).
	platform any

	// Canonical is true when input is delivered line by line.
	Canonical bool
	// Echo is true when typed characters are echoed back.
	Echo bool
}

// Raw returns a copy of m with line buffering and echo disabled.
func (m Mode) Raw() Mode {
	raw := m
	raw.Canonical = false
	raw.Echo = false
	raw.platform = rawPlatform(m.platform)

	return raw
}

// IsRaw reports whether both line buffering and echo are disabled.
func (m Mode) IsRaw() bool {
	return !m.Canonical && !m.Echo
}

// Port is the terminal device a [Controller] drives.
type Port interface {
	// Mode returns the currently installed mode.
	Mode() (Mode, error)
	// SetMode installs m immediately.
	SetMode(m Mode) error
	// DiscardInput drops input received but not yet read.
	DiscardInput() error
}
