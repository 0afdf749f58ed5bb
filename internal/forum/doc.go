// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

// Package forum holds the domain model and the ownership-gated mutation
// pipeline for users, posts, and comments.
//
// Every mutation follows the same ordered chain: the acting user is
// resolved first, then the target or parent resource, then ownership.
// Each step either yields a value or short-circuits with exactly one
// error kind; the single persisting write is always the final step.
package forum
