// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface construction.
package command

import (
	"io"

	"github.com/poruru/mimesort/internal/infra/ui"
)

func newUI(out io.Writer, emoji bool) ui.UserInterface {
	return ui.NewConsoleUI(out, emoji)
}
