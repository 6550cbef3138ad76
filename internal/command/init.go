// Where: internal/command/init.go
// What: init command handler.
// Why: Record a project's settings path and rewrite options in the tool config.
package command

import (
	"errors"
	"fmt"

	"github.com/poruru/mimesort/internal/infra/config"
	"github.com/poruru/mimesort/internal/meta"
	"github.com/poruru/mimesort/internal/presenters"
)

func runInit(cli CLI, deps Dependencies) int {
	wd, err := deps.Getwd()
	if err != nil {
		return exitWithError(deps.Out, fmt.Errorf("resolve working directory: %w", err))
	}
	path, _, err := toolConfigPath(cli, wd)
	if err != nil {
		return exitWithError(deps.Out, err)
	}
	indent, err := resolveIndent(cli.Init.Indent, config.ToolConfig{})
	if err != nil {
		return exitWithError(deps.Out, err)
	}

	cfg := config.DefaultToolConfig()
	cfg.File = firstNonEmpty(cli.Init.File, meta.DefaultSettingsFile)
	cfg.Indent = &indent
	cfg.Atomic = cli.Init.Atomic

	if err := config.SaveToolConfig(path, cfg, cli.Init.Force); err != nil {
		if errors.Is(err, config.ErrToolConfigExists) {
			return exitWithSuggestion(deps.Out, err, []string{
				fmt.Sprintf("Re-run with --force to replace it: %s init --force", meta.AppName),
			})
		}
		return exitWithError(deps.Out, err)
	}

	presenters.PrintToolConfig(newUI(deps.Out, cli.Emoji), path, cfg)
	return 0
}
