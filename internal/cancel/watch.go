package cancel

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Watch registers a SIGINT/SIGTERM handler that sets token exactly once and
// invokes onCancel exactly once, then returns a stop function that
// unregisters the handler. Go's os/signal already implements the
// async-signal-safe wake mechanism spec.md §4.7 and §9 describe (a
// self-pipe under the runtime signal multiplexer) — the watcher goroutine
// below plays the role of the dedicated thread that drains it, so onCancel
// runs in ordinary goroutine context and is free to lock, allocate, and do
// I/O, matching banksean-sand's sand/mux.go waitForShutdown.
func Watch(token *Token, onCancel func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	var once sync.Once

	go func() {
		select {
		case <-sigCh:
			once.Do(func() {
				token.Set()
				onCancel()
			})
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
