// Where: internal/command/sort.go
// What: sort and check command handlers.
// Why: Adapt CLI flags to the sortsettings workflow and report the outcome.
package command

import (
	"github.com/poruru/mimesort/internal/presenters"
	"github.com/poruru/mimesort/internal/usecase/sortsettings"
)

func runSort(cli CLI, deps Dependencies) int {
	return sortOrCheck(cli, deps, optionInputs{
		File:   cli.Sort.File,
		Indent: cli.Sort.Indent,
		Atomic: cli.Sort.Atomic,
	}, cli.Sort.Check, cli.Sort.DryRun)
}

func runCheck(cli CLI, deps Dependencies) int {
	return sortOrCheck(cli, deps, optionInputs{File: cli.Check.File, Indent: -1}, true, false)
}

func sortOrCheck(cli CLI, deps Dependencies, in optionInputs, check, dryRun bool) int {
	opts, err := resolveOptions(cli, deps, in)
	if err != nil {
		return exitWithError(deps.Out, err)
	}
	defer opts.close()

	res, err := deps.NewSorter(opts.Logger).Run(sortsettings.Request{
		Path:   opts.Path,
		Indent: opts.Indent,
		Atomic: opts.Atomic,
		DryRun: dryRun,
		Check:  check,
	})
	if err != nil {
		return exitWithSettingsError(deps.Out, err)
	}

	if dryRun && !check {
		if _, err := deps.Out.Write(res.Output); err != nil {
			return exitWithError(deps.Out, err)
		}
		return 0
	}

	presenters.PrintSortResult(newUI(deps.Out, cli.Emoji), res, check)
	if check && !res.AlreadySorted {
		return 1
	}
	return 0
}
