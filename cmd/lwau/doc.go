// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for lwau.
//
// This package implements the Cobra command hierarchy: the root command with
// the global flags, check and update for installed mods, and download-to for
// the persisted download directory. Each command's core logic lives in a
// runX function taking a params struct, so it can be tested without Cobra or
// live network access.
package cmd
