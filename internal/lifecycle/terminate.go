// Package lifecycle turns host termination signals into undo.TerminateMsg so
// a visible undo banner gets to run its expire action before the process ends.
//
// This is best effort: a process killed while suspended never sees the signal.
package lifecycle

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/undoctl/internal/undo"
)

// Signals are the signals Watch listens for by default.
var Signals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

// Watch forwards the first termination signal to send as undo.TerminateMsg.
// Pass tea.Program.Send as send, and run the program with
// tea.WithoutSignalHandler so the signal is not handled twice. The returned
// stop function releases the signal subscription.
func Watch(ctx context.Context, send func(tea.Msg), log *slog.Logger, sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		sigs = Signals
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		forward(ctx, ch, send, log)
	}()

	return func() {
		signal.Stop(ch)
		cancel()
		<-done
	}
}

func forward(ctx context.Context, ch <-chan os.Signal, send func(tea.Msg), log *slog.Logger) {
	select {
	case sig := <-ch:
		log.Info("termination signal received", "signal", sig.String())
		send(undo.TerminateMsg{})
	case <-ctx.Done():
	}
}
