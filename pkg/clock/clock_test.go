package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/textdlg/pkg/clock"
)

func TestRealSleep(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wakes     []time.Duration // How far the fake clock advances per wait.
		request   time.Duration
		wantErr   error
		wantWaits []time.Duration
	}{
		"zero returns immediately": {
			request: 0,
		},
		"negative is rejected without waiting": {
			request: -time.Millisecond,
			wantErr: clock.ErrNegativeDuration,
		},
		"single full wait": {
			request:   70 * time.Millisecond,
			wakes:     []time.Duration{70 * time.Millisecond},
			wantWaits: []time.Duration{70 * time.Millisecond},
		},
		"early wake resumes for the remainder": {
			request: 70 * time.Millisecond,
			wakes:   []time.Duration{20 * time.Millisecond, 30 * time.Millisecond, 20 * time.Millisecond},
			wantWaits: []time.Duration{
				70 * time.Millisecond,
				50 * time.Millisecond,
				20 * time.Millisecond,
			},
		},
		"oversleep is accepted": {
			request:   10 * time.Millisecond,
			wakes:     []time.Duration{15 * time.Millisecond},
			wantWaits: []time.Duration{10 * time.Millisecond},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			now := time.Unix(0, 0)

			var waits []time.Duration

			r := clock.Real{
				Now: func() time.Time { return now },
				Wait: func(d time.Duration) {
					require.Less(t, len(waits), len(tc.wakes), "unexpected extra wait")
					now = now.Add(tc.wakes[len(waits)])
					waits = append(waits, d)
				},
			}

			err := r.Sleep(tc.request)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.wantWaits, waits)
		})
	}
}

func TestRealSleepElapsed(t *testing.T) {
	t.Parallel()

	start := time.Now()
	require.NoError(t, clock.Real{}.Sleep(5*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestMillis(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 70*time.Millisecond, clock.Millis(70))
	assert.Equal(t, time.Duration(0), clock.Millis(0))
	assert.Equal(t, -time.Millisecond, clock.Millis(-1))
}
