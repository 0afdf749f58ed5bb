// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatStatus_NoMigrations(t *testing.T) {
	out := formatStatus(&MigrationStatus{})

	assert.Contains(t, out, "none (no migrations applied)")
	assert.Contains(t, out, "State: clean")
	assert.Contains(t, out, "Applied: none")
	assert.Contains(t, out, "Pending: none")
}

func TestFormatStatus_AppliedAndDirty(t *testing.T) {
	out := formatStatus(&MigrationStatus{
		Version: 1,
		Name:    "000001_init",
		Dirty:   true,
		Applied: []uint{1},
	})

	assert.Contains(t, out, "Schema version: 1 (000001_init)")
	assert.Contains(t, out, "DIRTY")
	assert.Contains(t, out, "Applied: 1")
}

func TestFormatVersions(t *testing.T) {
	assert.Equal(t, "none", formatVersions(nil))
	assert.Equal(t, "1, 2, 3", formatVersions([]uint{1, 2, 3}))
}
