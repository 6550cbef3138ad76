// Where: internal/domain/settings/errors.go
// What: Failure kinds for settings documents.
// Why: Let callers tell access, format, and shape failures apart with errors.Is.
package settings

import "errors"

var (
	// ErrAccess marks a settings file that could not be read or written.
	ErrAccess = errors.New("settings file access failed")
	// ErrFormat marks content that is not valid JSON.
	ErrFormat = errors.New("settings file is not valid JSON")
	// ErrShape marks valid JSON that lacks the expected extMimeTypes object.
	ErrShape = errors.New("settings document has unexpected shape")
)
