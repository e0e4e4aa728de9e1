package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/term"

	"github.com/jask/undoctl/internal/config"
	"github.com/jask/undoctl/internal/lifecycle"
	"github.com/jask/undoctl/internal/metrics"
	"github.com/jask/undoctl/internal/undo"
)

var errNoTTY = errors.New("undoctl needs an interactive terminal")

// newController builds the banner controller described by cfg and registers
// its metrics on reg.
func (s *session) newController(reg prometheus.Registerer) (*undo.Controller, error) {
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	b := s.cfg.Banner
	return undo.New(
		undo.WithInsets(undo.Insets{
			Top:    b.Insets.Top,
			Right:  b.Insets.Right,
			Bottom: b.Insets.Bottom,
			Left:   b.Insets.Left,
		}),
		undo.WithMaxSeconds(b.MaxSeconds),
		undo.WithDefaultSeconds(b.Seconds),
		undo.WithTickInterval(b.TickInterval),
		undo.WithGraceDelay(b.GraceDelay),
		undo.WithLogger(s.log),
		undo.WithRecorder(rec),
	), nil
}

func keyMap(cfg config.KeysConfig) undo.KeyMap {
	km := undo.DefaultKeyMap()
	if len(cfg.Undo) > 0 {
		km.Undo = key.NewBinding(key.WithKeys(cfg.Undo...), key.WithHelp(cfg.Undo[0], "undo"))
	}
	return km
}

// runProgram runs host with ctrl's banner layered over it until the host
// terminates or a termination signal arrives.
func (s *session) runProgram(ctx context.Context, host tea.Model, ctrl *undo.Controller, reg *prometheus.Registry) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTTY
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metricsDone := make(chan error, 1)
	if addr := s.cfg.Metrics.Addr; addr != "" {
		go func() {
			metricsDone <- metrics.Serve(ctx, addr, metrics.NewHandler(reg), s.log)
		}()
	} else {
		close(metricsDone)
	}

	overlay := undo.Attach(host, ctrl, undo.WithKeyMap(keyMap(s.cfg.Keys)))
	p := tea.NewProgram(overlay,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)
	stop := lifecycle.Watch(ctx, p.Send, s.log)

	_, runErr := p.Run()
	stop()
	// anything still pending when the program stopped gets its expire action
	overlay.Close()

	cancel()
	if err := <-metricsDone; err != nil {
		s.log.Error("metrics server", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	s.log.Info("undoctl stopped")
	return nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
