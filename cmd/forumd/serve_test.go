// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/forumkit/internal/config"
)

func TestServeCommand_DefaultsWithoutConfigFile(t *testing.T) {
	cmd := newServeCmd()

	cfg, err := config.Load("", cmd.Flags())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestServeCommand_FlagOverride(t *testing.T) {
	cmd := newServeCmd()
	require.NoError(t, cmd.Flags().Set("session.ttl", "1h"))

	cfg, err := config.Load("", cmd.Flags())
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}
