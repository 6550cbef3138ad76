// Where: internal/domain/settings/resolve.go
// What: Content-type resolution for request names.
// Why: Mirror how the proxy picks Content-Type and Content-Encoding from the table.
package settings

import (
	"path/filepath"
	"slices"
	"strings"
)

// Resolution is the outcome of resolving one request name.
type Resolution struct {
	Name    string `json:"name"`
	Ext     string `json:"ext"`
	Mime    string `json:"mime,omitempty"`
	Found   bool   `json:"found"`
	Gzipped bool   `json:"gzipped"`
}

// Resolve maps a file name, path, or bare extension to its MIME type.
// The extension is lower-cased and looked up without its dot first, then with it.
// An empty MIME type counts as no match.
func Resolve(table MimeTable, gzipped []string, name string) Resolution {
	ext := extensionOf(name)
	res := Resolution{Name: name, Ext: ext}
	if ext == "" {
		return res
	}
	if mime, ok := table.Lookup(ext); ok && mime != "" {
		res.Mime, res.Found = mime, true
	} else if mime, ok := table.Lookup("." + ext); ok && mime != "" {
		res.Mime, res.Found = mime, true
	}
	res.Gzipped = res.Found && IsGzipped(gzipped, ext)
	return res
}

// IsGzipped reports whether ext, with or without its leading dot, is listed
// in extGzippedTypes.
func IsGzipped(gzipped []string, ext string) bool {
	return slices.Contains(gzipped, strings.TrimPrefix(ext, "."))
}

func extensionOf(name string) string {
	name = strings.TrimSpace(name)
	if ext := filepath.Ext(name); ext != "" {
		return strings.ToLower(ext[1:])
	}
	if strings.ContainsAny(name, `/\`) {
		return ""
	}
	return strings.ToLower(name)
}
