// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that lay out game directories,
// failing the test immediately on I/O errors instead of returning them.
package testutil
