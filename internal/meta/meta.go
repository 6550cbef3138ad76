// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep app identity and settings document keys in one place.
package meta

const (
	// Project Identity
	AppName   = "mimesort"
	EnvPrefix = "MIMESORT"

	// Settings document
	DefaultSettingsFile = "proxySettings.json"
	MimeTypesKey        = "extMimeTypes"
	GzippedTypesKey     = "extGzippedTypes"
	DefaultIndent       = 2
	MaxIndent           = 8

	// Tool configuration
	ConfigFile     = ".mimesort.yaml"
	DefaultLogging = "console"
	DefaultLevel   = "warn"
)
