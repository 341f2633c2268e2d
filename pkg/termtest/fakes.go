package termtest

import (
	"io"
	"time"

	"github.com/macropower/textdlg/pkg/termmode"
)

// Port is an in-memory [termmode.Port]. It starts in canonical mode with echo.
type Port struct {
	// SetErr, when non-nil, is returned by SetMode for raw modes.
	SetErr error

	// Sets records every mode installed, in order.
	Sets []termmode.Mode

	mode     termmode.Mode
	Discards int
}

// NewPort returns a [Port] in canonical mode with echo enabled.
func NewPort() *Port {
	return &Port{
		mode: termmode.Mode{Canonical: true, Echo: true},
	}
}

// Mode implements [termmode.Port].
func (p *Port) Mode() (termmode.Mode, error) {
	return p.mode, nil
}

// SetMode implements [termmode.Port].
func (p *Port) SetMode(m termmode.Mode) error {
	if p.SetErr != nil && m.IsRaw() {
		return p.SetErr
	}

	p.Sets = append(p.Sets, m)
	p.mode = m

	return nil
}

// DiscardInput implements [termmode.Port].
func (p *Port) DiscardInput() error {
	p.Discards++
	return nil
}

// Sleeper records requested pauses without suspending.
type Sleeper struct {
	// OnSleep, if set, is called for every pause before it is recorded.
	OnSleep func(time.Duration)

	Sleeps []time.Duration
}

// Sleep implements [clock.Sleeper].
func (s *Sleeper) Sleep(d time.Duration) error {
	if s.OnSleep != nil {
		s.OnSleep(d)
	}

	s.Sleeps = append(s.Sleeps, d)

	return nil
}

// Total returns the sum of all recorded pauses.
func (s *Sleeper) Total() time.Duration {
	var total time.Duration
	for _, d := range s.Sleeps {
		total += d
	}

	return total
}

// Keys is an [io.Reader] delivering each chunk in a separate Read, the way a
// terminal delivers keystrokes.
type Keys struct {
	chunks []string
}

// NewKeys returns a [Keys] reader for chunks.
func NewKeys(chunks ...string) *Keys {
	return &Keys{chunks: chunks}
}

// Read implements [io.Reader].
func (k *Keys) Read(p []byte) (int, error) {
	if len(k.chunks) == 0 {
		return 0, io.EOF
	}

	n := copy(p, k.chunks[0])

	k.chunks[0] = k.chunks[0][n:]
	if k.chunks[0] == "" {
		k.chunks = k.chunks[1:]
	}

	return n, nil
}

// Remaining returns the number of chunks not yet fully read.
func (k *Keys) Remaining() int {
	return len(k.chunks)
}
