package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// forceExit ends the process on a second interrupt.
var forceExit = func() { os.Exit(1) }

// shutdownContext derives a context canceled by the first SIGINT or SIGTERM,
// letting the watcher flush pending store writes. A second signal calls
// forceExit. The returned stop func cancels the context and releases the
// signal handler; callers defer it.
func shutdownContext(parent context.Context, logger *slog.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})

	go func() {
		defer signal.Stop(sigCh)

		interrupted := false

		for {
			select {
			case sig := <-sigCh:
				if !interrupted {
					interrupted = true

					logger.Info("stopping", slog.String("signal", sig.String()))
					cancel()

					continue
				}

				logger.Warn("second signal, exiting immediately", slog.String("signal", sig.String()))
				forceExit()

				return

			case <-done:
				return
			}
		}
	}()

	var once sync.Once

	stop := func() {
		once.Do(func() {
			cancel()
			close(done)
		})
	}

	return ctx, stop
}
