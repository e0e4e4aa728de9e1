package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jask/undoctl/internal/config"
	"github.com/jask/undoctl/internal/logging"
)

// session is what every subcommand shares once the root has loaded config.
type session struct {
	configPath  string
	noColor     bool
	metricsAddr string

	cfg      config.Config
	log      *slog.Logger
	logClose io.Closer
}

func newRoot() *cobra.Command {
	s := &session{}
	root := &cobra.Command{
		Use:           "undoctl",
		Short:         "Undo banner demos for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return s.close()
		},
	}
	root.PersistentFlags().StringVar(&s.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVar(&s.noColor, "no-color", false, "disable colors")
	root.PersistentFlags().StringVar(&s.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	root.AddCommand(
		listCmd(s),
		appCmd(s),
		configCmd(s),
	)
	return root
}

func (s *session) open(cmd *cobra.Command) error {
	// config init must work even when the existing file is broken
	if cmd.Name() == "init" {
		s.log = logging.NewNop()
		return nil
	}

	cfg, err := config.Load(s.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = s.metricsAddr
	}
	s.cfg = cfg

	if s.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	log, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	s.log, s.logClose = log, closer
	s.log.Info("undoctl starting", "command", cmd.CommandPath(), "config", s.configPath)
	return nil
}

func (s *session) close() error {
	if s.logClose == nil {
		return nil
	}
	return s.logClose.Close()
}

// markdownStyle picks the glamour style matching the terminal.
func (s *session) markdownStyle() string {
	if s.noColor || lipgloss.ColorProfile() == termenv.Ascii {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
