package cli

import (
	"log/slog"
	"os"
	"sync"
)

// watchSignals restores the terminal and calls exit with [exitInterrupted]
// when a signal arrives on sigs. The returned func stops watching and waits
// for the watcher to return.
func watchSignals(sigs <-chan os.Signal, restore func() error, exit func(code int)) func() {
	done := make(chan struct{})

	var wg sync.WaitGroup

	wg.Go(func() {
		select {
		case sig := <-sigs:
			slog.Debug("signal received", slog.String("signal", sig.String()))

			err := restore()
			if err != nil {
				slog.Error("restore terminal mode", slog.Any("err", err))
			}

			exit(exitInterrupted)

		case <-done:
		}
	})

	var once sync.Once

	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
