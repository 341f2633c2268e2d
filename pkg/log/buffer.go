package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DefaultRingSize is used by [NewRing] for non-positive sizes.
const DefaultRingSize = 200

// Ring keeps the most recent log records written to it. It holds log output
// back while a dialog owns the terminal, so that records do not corrupt the
// screen, and replays it afterwards.
//
// A Ring is safe for concurrent use.
type Ring struct {
	records [][]byte
	next    int
	dropped int
	mu      sync.Mutex
}

// NewRing returns a [Ring] holding at most size records.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}

	return &Ring{records: make([][]byte, 0, size)}
}

// Write implements [io.Writer]. Each call is stored as one record; once the
// ring is full the oldest record is overwritten.
func (r *Ring) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	rec := bytes.Clone(p)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) < cap(r.records) {
		r.records = append(r.records, rec)

		return len(p), nil
	}

	r.records[r.next] = rec
	r.next = (r.next + 1) % len(r.records)
	r.dropped++

	return len(p), nil
}

// Records returns copies of the held records, oldest first.
func (r *Ring) Records() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]byte, 0, len(r.records))
	for i := range r.records {
		out = append(out, bytes.Clone(r.records[(r.next+i)%len(r.records)]))
	}

	return out
}

// Len returns the number of held records.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.records)
}

// Dropped returns how many records were overwritten since the last reset.
func (r *Ring) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.dropped
}

// Reset drops every held record.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = r.records[:0]
	r.next = 0
	r.dropped = 0
}

// WriteTo implements [io.WriterTo], writing the held records oldest first.
func (r *Ring) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, rec := range r.Records() {
		n, err := w.Write(rec)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write log record: %w", err)
		}
	}

	return total, nil
}
