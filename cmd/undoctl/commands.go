package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/undoctl/internal/config"
	"github.com/jask/undoctl/internal/database"
	"github.com/jask/undoctl/internal/database/repository"
	"github.com/jask/undoctl/internal/tui"
)

func listCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Delete names from a list, with a few seconds to undo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dbPath := s.cfg.Database.Path
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return fmt.Errorf("mkdir db dir: %w", err)
			}
			if err := database.RunMigrations(dbPath); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			db, err := database.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			if err := database.SeedDefaults(ctx, db); err != nil {
				return fmt.Errorf("seed defaults: %w", err)
			}
			names := repository.NewNameRepo(db)
			// a banner still pending when the last run died never expired
			if n, err := names.PurgeDeleted(ctx); err != nil {
				return fmt.Errorf("purge leftovers: %w", err)
			} else if n > 0 {
				s.log.Info("purged leftover deletions", "count", n)
			}

			reg := newRegistry()
			ctrl, err := s.newController(reg)
			if err != nil {
				return err
			}
			km := keyMap(s.cfg.Keys)
			screen := tui.NewListScreen(ctx, names, ctrl, km.Undo, s.log)
			return s.runProgram(ctx, screen, ctrl, reg)
		},
	}
}

func appCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "app",
		Short: "Show the banner from a button, next to a text field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := newRegistry()
			ctrl, err := s.newController(reg)
			if err != nil {
				return err
			}
			km := keyMap(s.cfg.Keys)
			screen := tui.NewAppScreen(ctrl, km.Undo, s.markdownStyle(), s.log)
			return s.runProgram(cmd.Context(), screen, ctrl, reg)
		},
	}
}

func configCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := s.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			written, err := config.Save(config.Default(), path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", written)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
