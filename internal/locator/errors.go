// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"errors"
	"fmt"
)

// ErrNoArchive is the sentinel error wrapped by ResolutionError.
var ErrNoArchive = errors.New("no archive found")

// ResolutionError reports that no strategy produced an archive URL. It is
// informational: the mod simply needs a manual download.
type ResolutionError struct {
	// Name is the mod being resolved.
	Name string
	// Page is the DOWNLOAD page, empty when the manifest gave none.
	Page string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Page == "" {
		return fmt.Sprintf("%s: no download page specified", e.Name)
	}
	return fmt.Sprintf("%s: no archive found at %s", e.Name, e.Page)
}

// Unwrap returns ErrNoArchive so callers can use errors.Is.
func (e *ResolutionError) Unwrap() error { return ErrNoArchive }
