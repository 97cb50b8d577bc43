// SPDX-License-Identifier: MPL-2.0

// Package locator works out where the archive for a mod version can be
// downloaded from.
//
// Strategies are tried in order: the GitHub releases of the repository named
// in GITHUB, then the DOWNLOAD page (Spacedock's mod API, or GitHub releases
// inferred from a github.com URL). When nothing matches, the DOWNLOAD page is
// handed to an Opener so the user can fetch the archive by hand.
package locator
