// Where: internal/domain/settings/table.go
// What: Extension to MIME type table and its ordering rules.
// Why: Keep the sort policy (ascending, codepoint-wise) in one place.
package settings

import (
	"slices"
	"strings"
)

// Entry maps one file extension to a MIME type.
type Entry struct {
	Ext  string `json:"ext"`
	Mime string `json:"mime"`
}

// MimeTable is an ordered extMimeTypes object.
type MimeTable []Entry

// Sorted returns a copy ordered by ascending extension. Go string comparison
// is byte-wise over UTF-8, which matches codepoint order.
func (t MimeTable) Sorted() MimeTable {
	sorted := slices.Clone(t)
	slices.SortStableFunc(sorted, compareEntries)
	return sorted
}

// IsSorted reports whether every adjacent pair satisfies a <= b.
func (t MimeTable) IsSorted() bool {
	return slices.IsSortedFunc(t, compareEntries)
}

// Lookup returns the MIME type registered for ext, matched exactly.
func (t MimeTable) Lookup(ext string) (string, bool) {
	for _, entry := range t {
		if entry.Ext == ext {
			return entry.Mime, true
		}
	}
	return "", false
}

func compareEntries(a, b Entry) int {
	return strings.Compare(a.Ext, b.Ext)
}
