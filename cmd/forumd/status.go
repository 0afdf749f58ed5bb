// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forumkit/forumkit/internal/config"
	"github.com/forumkit/forumkit/internal/store"
)

// MigrationStatus holds the schema state reported by the status command.
type MigrationStatus struct {
	Version uint   `json:"version"`
	Name    string `json:"name,omitempty"`
	Dirty   bool   `json:"dirty"`
	Applied []uint `json:"applied"`
	Pending []uint `json:"pending"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	jsonOutput bool
}

// newStatusCmd creates the status subcommand with all flags configured.
func newStatusCmd() *cobra.Command {
	scfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database migration status",
		Long:  `Show the current schema version and the applied and pending migrations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, scfg)
		},
	}

	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")
	cmd.Flags().BoolVar(&scfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

func runStatus(cmd *cobra.Command, scfg *statusConfig) error {
	cfg, err := config.Load(resolveConfigFile(), cmd.Flags())
	if err != nil {
		return err
	}

	migrator, err := store.NewMigrator(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	status, err := collectStatus(migrator)
	if err != nil {
		return err
	}

	if scfg.jsonOutput {
		blob, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		cmd.Println(string(blob))
		return nil
	}

	cmd.Println(formatStatus(status))
	return nil
}

func collectStatus(migrator *store.Migrator) (*MigrationStatus, error) {
	version, dirty, err := migrator.Version()
	if err != nil {
		return nil, err
	}

	applied, err := migrator.AppliedMigrations()
	if err != nil {
		return nil, err
	}
	pending, err := migrator.PendingMigrations()
	if err != nil {
		return nil, err
	}

	status := &MigrationStatus{
		Version: version,
		Dirty:   dirty,
		Applied: applied,
		Pending: pending,
	}
	if version > 0 {
		name, err := store.MigrationName(version)
		if err != nil {
			return nil, err
		}
		status.Name = name
	}
	return status, nil
}

func formatStatus(s *MigrationStatus) string {
	var b strings.Builder

	if s.Version == 0 {
		b.WriteString("Schema version: none (no migrations applied)\n")
	} else {
		fmt.Fprintf(&b, "Schema version: %d (%s)\n", s.Version, s.Name)
	}
	if s.Dirty {
		b.WriteString("State: DIRTY - manual intervention required\n")
	} else {
		b.WriteString("State: clean\n")
	}
	fmt.Fprintf(&b, "Applied: %s\n", formatVersions(s.Applied))
	fmt.Fprintf(&b, "Pending: %s", formatVersions(s.Pending))
	return b.String()
}

func formatVersions(versions []uint) string {
	if len(versions) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(versions))
	for _, v := range versions {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return strings.Join(parts, ", ")
}
