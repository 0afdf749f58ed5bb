// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/forumkit/forumkit/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// resolveConfigFile returns the --config flag value, falling back to
// the XDG config file when present.
func resolveConfigFile() string {
	if configFile != "" {
		return configFile
	}
	return xdg.ConfigFile()
}

// NewRootCmd creates the root command for the ForumKit CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forumd",
		Short: "ForumKit - a session-authenticated forum service",
		Long: `ForumKit serves a forum of users, posts, and comments over HTTP,
with cookie sessions and ownership-checked mutations backed by PostgreSQL.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}
