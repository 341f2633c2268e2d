package log_test

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/textdlg/pkg/log"
)

func TestRing(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		writes      []string
		want        []string
		size        int
		wantDropped int
	}{
		"empty": {
			size: 3,
		},
		"partial": {
			size:   3,
			writes: []string{"a", "b"},
			want:   []string{"a", "b"},
		},
		"full": {
			size:   3,
			writes: []string{"a", "b", "c"},
			want:   []string{"a", "b", "c"},
		},
		"wrapped": {
			size:        3,
			writes:      []string{"a", "b", "c", "d", "e"},
			want:        []string{"c", "d", "e"},
			wantDropped: 2,
		},
		"empty writes ignored": {
			size:   2,
			writes: []string{"a", "", "b"},
			want:   []string{"a", "b"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := log.NewRing(tc.size)
			for _, w := range tc.writes {
				n, err := r.Write([]byte(w))
				require.NoError(t, err)
				assert.Equal(t, len(w), n)
			}

			var got []string
			for _, rec := range r.Records() {
				got = append(got, string(rec))
			}

			assert.Equal(t, tc.want, got)
			assert.Equal(t, len(tc.want), r.Len())
			assert.Equal(t, tc.wantDropped, r.Dropped())
		})
	}
}

func TestRingCopies(t *testing.T) {
	t.Parallel()

	r := log.NewRing(2)
	p := []byte("abc")

	_, err := r.Write(p)
	require.NoError(t, err)

	p[0] = 'x'

	recs := r.Records()
	assert.Equal(t, "abc", string(recs[0]))

	recs[0][0] = 'y'
	assert.Equal(t, "abc", string(r.Records()[0]))
}

func TestRingReset(t *testing.T) {
	t.Parallel()

	r := log.NewRing(1)
	_, err := r.Write([]byte("a"))
	require.NoError(t, err)
	_, err = r.Write([]byte("b"))
	require.NoError(t, err)

	r.Reset()

	assert.Zero(t, r.Len())
	assert.Zero(t, r.Dropped())
	assert.Empty(t, r.Records())

	_, err = r.Write([]byte("c"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("c")}, r.Records())
}

func TestRingWriteTo(t *testing.T) {
	t.Parallel()

	r := log.NewRing(0)
	for i := range 3 {
		_, err := fmt.Fprintf(r, "line %d\n", i)
		require.NoError(t, err)
	}

	var buf bytes.Buffer

	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "line 0\nline 1\nline 2\n", buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestRingWriteToError(t *testing.T) {
	t.Parallel()

	r := log.NewRing(2)
	_, err := r.Write([]byte("a"))
	require.NoError(t, err)

	_, err = r.WriteTo(failWriter{})
	require.Error(t, err)
}

func TestRingConcurrent(t *testing.T) {
	t.Parallel()

	r := log.NewRing(50)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Go(func() {
			for j := range 20 {
				_, err := fmt.Fprintf(r, "%d-%d", i, j)
				assert.NoError(t, err)
			}
		})
	}

	wg.Wait()

	assert.Equal(t, 50, r.Len())
	assert.Equal(t, 150, r.Dropped())
}
