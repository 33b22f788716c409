// ABOUTME: Sentinel errors returned by the directory adapter.
// ABOUTME: Callers match them with errors.Is.

package directory

import "errors"

var (
	ErrNotConfigured     = errors.New("backend is not configured")
	ErrLibraryNotFound   = errors.New("library not found")
	ErrInvalidSubmission = errors.New("invalid submission")
)
