// SPDX-License-Identifier: MPL-2.0

// Package mod pairs an installed manifest with its remote counterpart.
//
// A Mod is either resolved (both manifests loaded) or failed (a captured
// load, parse or network error). Failures are never returned from Open so a
// batch can report them per mod and carry on.
package mod
