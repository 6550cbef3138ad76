// Where: internal/command/lookup.go
// What: lookup and list command handlers.
// Why: Expose the MIME table the proxy serves from without editing the file.
package command

import (
	"fmt"

	"github.com/poruru/mimesort/internal/domain/settings"
	"github.com/poruru/mimesort/internal/presenters"
)

type loadedTable struct {
	table   settings.MimeTable
	gzipped []string
}

func loadTable(cli CLI, deps Dependencies, file string) (loadedTable, int, bool) {
	opts, err := resolveOptions(cli, deps, optionInputs{File: file, Indent: -1})
	if err != nil {
		return loadedTable{}, exitWithError(deps.Out, err), false
	}
	defer opts.close()

	doc, err := deps.NewSorter(opts.Logger).Load(opts.Path)
	if err != nil {
		return loadedTable{}, exitWithSettingsError(deps.Out, err), false
	}
	table, err := doc.MimeTypes()
	if err != nil {
		return loadedTable{}, exitWithSettingsError(deps.Out, fmt.Errorf("parse %s: %w", opts.Path, err)), false
	}
	gzipped, err := doc.GzippedTypes()
	if err != nil {
		return loadedTable{}, exitWithSettingsError(deps.Out, fmt.Errorf("parse %s: %w", opts.Path, err)), false
	}
	return loadedTable{table: table, gzipped: gzipped}, 0, true
}

func runLookup(cli CLI, deps Dependencies) int {
	loaded, code, ok := loadTable(cli, deps, cli.Lookup.File)
	if !ok {
		return code
	}

	results := make([]settings.Resolution, 0, len(cli.Lookup.Names))
	exitCode := 0
	for _, name := range cli.Lookup.Names {
		res := settings.Resolve(loaded.table, loaded.gzipped, name)
		if !res.Found {
			exitCode = 1
		}
		results = append(results, res)
	}
	presenters.PrintResolutions(newUI(deps.Out, cli.Emoji), results)
	return exitCode
}

func runList(cli CLI, deps Dependencies) int {
	loaded, code, ok := loadTable(cli, deps, cli.List.File)
	if !ok {
		return code
	}

	rows := presenters.TableRows(loaded.table, loaded.gzipped)
	if err := presenters.RenderTable(deps.Out, rows, cli.List.Output, cli.List.Format); err != nil {
		return exitWithError(deps.Out, err)
	}
	return 0
}
