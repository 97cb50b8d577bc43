// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad is the sentinel error wrapped by LoadError.
	ErrLoad = errors.New("cannot load manifest")
	// ErrParse is the sentinel error wrapped by ParseError.
	ErrParse = errors.New("cannot parse manifest")
	// ErrNetwork is the sentinel error wrapped by NetworkError.
	ErrNetwork = errors.New("network request failed")
)

type (
	// LoadError is returned when a manifest file is missing or unreadable.
	LoadError struct {
		Path string
		Err  error
	}

	// ParseError is returned when a manifest is not valid UTF-8, not valid
	// JSON, or does not satisfy the manifest schema.
	ParseError struct {
		// Source is the file path or URL the document came from.
		Source string
		Err    error
	}

	// NetworkError is returned when a GET fails in transport or answers
	// with a non-2xx status.
	NetworkError struct {
		URL        string
		StatusCode int // zero for transport failures
		Err        error
	}
)

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load manifest %s: %v", e.Path, e.Err)
}

// Is reports ErrLoad so callers can use errors.Is.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Unwrap returns the underlying I/O error.
func (e *LoadError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse manifest %s: %v", e.Source, e.Err)
}

// Is reports ErrParse so callers can use errors.Is.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Unwrap returns the underlying decode or validation error.
func (e *ParseError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

// Is reports ErrNetwork so callers can use errors.Is.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// Unwrap returns the underlying transport error, if any.
func (e *NetworkError) Unwrap() error { return e.Err }
