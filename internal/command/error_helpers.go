// Where: internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Keep failure output consistent and point users at the likely fix.
package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/poruru/mimesort/internal/domain/settings"
	"github.com/poruru/mimesort/internal/meta"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	fmt.Fprintf(out, "✗ %v\n", err)
	return 1
}

// exitWithSuggestion prints an error followed by next steps and returns 1.
func exitWithSuggestion(out io.Writer, err error, suggestions []string) int {
	exitWithError(out, err)
	if len(suggestions) == 0 {
		return 1
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	for _, s := range suggestions {
		fmt.Fprintf(out, "  - %s\n", s)
	}
	return 1
}

// exitWithSettingsError reports a settings failure with hints for its kind.
func exitWithSettingsError(out io.Writer, err error) int {
	var hints []string
	switch {
	case errors.Is(err, settings.ErrAccess):
		hints = []string{
			fmt.Sprintf("Pass the settings path explicitly: %s sort path/to/%s", meta.AppName, meta.DefaultSettingsFile),
			"Check that the file exists and is writable",
		}
	case errors.Is(err, settings.ErrFormat):
		hints = []string{"Fix the JSON syntax error reported above; the file was not modified"}
	case errors.Is(err, settings.ErrShape):
		hints = []string{fmt.Sprintf("Make sure the top-level object has a %q object of string values", meta.MimeTypesKey)}
	}
	return exitWithSuggestion(out, err, hints)
}
