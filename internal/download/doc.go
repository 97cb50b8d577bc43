// SPDX-License-Identifier: MPL-2.0

// Package download saves mod archives into a directory.
package download
