// SPDX-License-Identifier: MPL-2.0

// Package version implements the partial version tuples used by AVC
// .version manifests.
//
// A Version has up to four components (major, minor, patch, build). Any of
// them may be unset. Ordering treats an unset component as lower than zero,
// strict equality distinguishes unset from zero, and FuzzyEqual does not.
package version
