// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
)

const (
	// ExitOK means every mod is up to date or its update was handled.
	ExitOK = 0
	// ExitAttention means an update is available or needs manual work.
	ExitAttention = 1
	// ExitFatal means a single named target or the settings could not be used.
	ExitFatal = 2
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers. Anything worth showing has already been printed when an
// ExitError is returned.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps a RunE result to a process exit status. Errors that are not
// an ExitError come from Cobra itself (bad flags or arguments).
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFatal
}
