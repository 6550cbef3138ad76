// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"strings"

	"github.com/poruru/mimesort/internal/meta"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(string) (string, bool)

// Key constructs a prefixed environment variable name.
// Example: Key("FILE") returns "MIMESORT_FILE".
func Key(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// Lookup returns the trimmed value of the prefixed variable and whether it
// was set to something non-blank.
func Lookup(lookup LookupFunc, suffix string) (string, bool) {
	if lookup == nil {
		return "", false
	}
	value, ok := lookup(Key(suffix))
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}
