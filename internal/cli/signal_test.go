package cli

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchSignals(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		restoreErr error
		signal     os.Signal
	}{
		"interrupt": {
			signal: os.Interrupt,
		},
		"terminate": {
			signal: syscall.SIGTERM,
		},
		"restore failure still exits": {
			signal:     os.Interrupt,
			restoreErr: errors.New("ioctl failed"),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sigs := make(chan os.Signal, 1)
			restored := 0
			codes := make(chan int, 1)

			stop := watchSignals(sigs, func() error {
				restored++
				return tc.restoreErr
			}, func(code int) {
				codes <- code
			})

			sigs <- tc.signal

			assert.Equal(t, exitInterrupted, <-codes)

			stop()
			stop()

			assert.Equal(t, 1, restored)
		})
	}
}

func TestWatchSignalsStop(t *testing.T) {
	t.Parallel()

	sigs := make(chan os.Signal, 1)
	called := false

	stop := watchSignals(sigs, func() error {
		called = true
		return nil
	}, func(int) {
		called = true
	})

	stop()

	// The watcher is gone, a late signal stays queued.
	sigs <- os.Interrupt

	assert.False(t, called)
	assert.Len(t, sigs, 1)
}
