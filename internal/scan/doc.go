// SPDX-License-Identifier: MPL-2.0

// Package scan finds installed .version manifests under a directory tree.
package scan
