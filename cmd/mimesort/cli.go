// Where: cmd/mimesort/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"fmt"
	"os"

	"github.com/poruru/mimesort/internal/command"
	"github.com/poruru/mimesort/internal/logging"
	"github.com/poruru/mimesort/internal/usecase/sortsettings"
)

var getwd = os.Getwd

// buildDependencies constructs the runtime dependencies required by the CLI.
// The working directory is resolved once up front so a deleted cwd fails fast.
func buildDependencies() (command.Dependencies, error) {
	wd, err := getwd()
	if err != nil {
		return command.Dependencies{}, fmt.Errorf("resolve working directory: %w", err)
	}

	return command.Dependencies{
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
		Getwd:     func() (string, error) { return wd, nil },
		LookupEnv: os.LookupEnv,
		NewLogger: logging.NewZapLogger,
		NewSorter: sortsettings.NewService,
	}, nil
}
