// Where: internal/presenters/mimetable.go
// What: Output presenters for MIME tables, lookups, and sort results.
// Why: Keep rendering out of command handlers so formats stay consistent.
package presenters

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	jsoniter "github.com/json-iterator/go"
	"github.com/poruru/mimesort/internal/domain/settings"
	"github.com/poruru/mimesort/internal/infra/config"
	"github.com/poruru/mimesort/internal/infra/ui"
	"github.com/poruru/mimesort/internal/usecase/sortsettings"
	"sigs.k8s.io/yaml"
)

// Output formats accepted by RenderTable.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var jsonAPI = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

// TableRow is the value handed to list templates.
type TableRow struct {
	Ext     string `json:"ext"`
	Mime    string `json:"mime"`
	Gzipped bool   `json:"gzipped,omitempty"`
}

// TableRows converts a table into rows, sorted by extension.
func TableRows(table settings.MimeTable, gzipped []string) []TableRow {
	sorted := table.Sorted()
	rows := make([]TableRow, 0, len(sorted))
	for _, entry := range sorted {
		rows = append(rows, TableRow{
			Ext:     entry.Ext,
			Mime:    entry.Mime,
			Gzipped: settings.IsGzipped(gzipped, entry.Ext),
		})
	}
	return rows
}

// RenderTable writes rows to w. A non-empty format is parsed as a Go template
// with sprig functions and executed once per row; otherwise output selects
// text, json, or yaml.
func RenderTable(w io.Writer, rows []TableRow, output, format string) error {
	if strings.TrimSpace(format) != "" {
		return renderTemplate(w, rows, format)
	}

	switch output {
	case OutputText, "":
		width := 0
		for _, row := range rows {
			width = max(width, len(row.Ext))
		}
		for _, row := range rows {
			suffix := ""
			if row.Gzipped {
				suffix = " (gzip)"
			}
			fmt.Fprintf(w, "%-*s  %s%s\n", width, row.Ext, row.Mime, suffix)
		}
		return nil
	case OutputJSON:
		payload, err := jsonAPI.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", payload)
		return err
	case OutputYAML:
		mapping := make(map[string]string, len(rows))
		for _, row := range rows {
			mapping[row.Ext] = row.Mime
		}
		payload, err := yaml.Marshal(mapping)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(payload)
		return err
	}
	return fmt.Errorf("unsupported output format %q", output)
}

func renderTemplate(w io.Writer, rows []TableRow, format string) error {
	tmpl, err := template.New("row").Funcs(sprig.TxtFuncMap()).Parse(format)
	if err != nil {
		return fmt.Errorf("parse format template: %w", err)
	}
	for _, row := range rows {
		if err := tmpl.Execute(w, row); err != nil {
			return fmt.Errorf("render %s: %w", row.Ext, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// PrintResolutions reports lookup results, one line per name.
func PrintResolutions(u ui.UserInterface, results []settings.Resolution) {
	if u == nil {
		return
	}
	for _, res := range results {
		switch {
		case !res.Found && res.Ext == "":
			u.Warn(fmt.Sprintf("%s: no extension", res.Name))
		case !res.Found:
			u.Warn(fmt.Sprintf("%s: no MIME type for %q", res.Name, res.Ext))
		case res.Gzipped:
			u.Info(fmt.Sprintf("%s: %s (Content-Encoding: gzip)", res.Name, res.Mime))
		default:
			u.Info(fmt.Sprintf("%s: %s", res.Name, res.Mime))
		}
	}
}

// PrintSortResult summarizes a sort or check run. Writes also get a block
// with the entry count, indent, and write mode.
func PrintSortResult(u ui.UserInterface, res sortsettings.Result, check bool) {
	if u == nil {
		return
	}
	switch {
	case check && res.AlreadySorted:
		u.Success(fmt.Sprintf("%s: extMimeTypes is sorted (%d entries)", res.Path, res.Entries))
	case check:
		u.Warn(fmt.Sprintf("%s: extMimeTypes is not sorted (%d entries)", res.Path, res.Entries))
	case res.Written:
		if res.AlreadySorted {
			u.Success(fmt.Sprintf("%s: already sorted, rewrote %d entries", res.Path, res.Entries))
		} else {
			u.Success(fmt.Sprintf("%s: sorted %d entries", res.Path, res.Entries))
		}
		u.Block("📝", "Write summary", []ui.KeyValue{
			{Key: "entries", Value: res.Entries},
			{Key: "indent", Value: res.Indent},
			{Key: "mode", Value: writeMode(res.Atomic)},
		})
	}
}

// PrintToolConfig reports a freshly written tool config.
func PrintToolConfig(u ui.UserInterface, path string, cfg config.ToolConfig) {
	if u == nil {
		return
	}
	rows := []ui.KeyValue{{Key: "file", Value: cfg.File}}
	if cfg.Indent != nil {
		rows = append(rows, ui.KeyValue{Key: "indent", Value: *cfg.Indent})
	}
	rows = append(rows, ui.KeyValue{Key: "mode", Value: writeMode(cfg.Atomic)})

	u.Success(fmt.Sprintf("wrote %s", path))
	u.Block("🛠", "Tool config", rows)
}

func writeMode(atomic bool) string {
	if atomic {
		return "atomic"
	}
	return "in-place"
}
