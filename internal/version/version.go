// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report which build rewrote a settings file when users file issues.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/poruru/mimesort/internal/meta"
)

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the version string derived from build info.
// Tagged module builds report their module version; VCS builds report the
// short revision, with "(dirty)" appended when the tree was modified.
// It returns "dev" when nothing useful is embedded.
func GetVersion() string {
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}

// Banner returns the one-line version banner printed by the version command.
func Banner() string {
	return fmt.Sprintf("%s %s", meta.AppName, GetVersion())
}
