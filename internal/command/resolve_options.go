// Where: internal/command/resolve_options.go
// What: Resolution of settings path, formatting, and logger options.
// Why: Apply flag > env > tool config > default precedence in one place.
package command

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/poruru/mimesort/internal/infra/config"
	"github.com/poruru/mimesort/internal/infra/envutil"
	"github.com/poruru/mimesort/internal/logging"
	"github.com/poruru/mimesort/internal/meta"
	"go.uber.org/zap"
)

type runOptions struct {
	Path   string
	Indent int
	Atomic bool
	Logger *zap.Logger
}

// close flushes the logger. Sync errors on terminals are expected and ignored.
func (o runOptions) close() {
	if o.Logger != nil {
		_ = o.Logger.Sync()
	}
}

type optionInputs struct {
	File   string
	Indent int
	Atomic bool
}

func resolveOptions(cli CLI, deps Dependencies, in optionInputs) (runOptions, error) {
	wd, err := deps.Getwd()
	if err != nil {
		return runOptions{}, fmt.Errorf("resolve working directory: %w", err)
	}

	cfgPath, explicit, err := toolConfigPath(cli, wd)
	if err != nil {
		return runOptions{}, err
	}
	cfg, err := config.LoadToolConfigOptional(cfgPath, explicit)
	if err != nil {
		return runOptions{}, err
	}

	logger, err := resolveLogger(cli, deps, cfg)
	if err != nil {
		return runOptions{}, err
	}

	indent, err := resolveIndent(in.Indent, cfg)
	if err != nil {
		return runOptions{}, err
	}

	opts := runOptions{
		Path:   resolveSettingsPath(in.File, deps, cfg, wd, filepath.Dir(cfgPath)),
		Indent: indent,
		Atomic: in.Atomic || cfg.Atomic,
		Logger: logger,
	}
	logger.Debug("Resolved options",
		zap.String("path", opts.Path),
		zap.Int("indent", opts.Indent),
		zap.Bool("atomic", opts.Atomic),
		zap.String("config", cfgPath),
	)
	return opts, nil
}

// toolConfigPath returns --config (relative to wd) or the default location,
// and whether the path was given explicitly.
func toolConfigPath(cli CLI, wd string) (string, bool, error) {
	if path := strings.TrimSpace(cli.Config); path != "" {
		return absFrom(wd, path), true, nil
	}
	path, err := config.ToolConfigPath(wd)
	return path, false, err
}

func resolveLogger(cli CLI, deps Dependencies, cfg config.ToolConfig) (*zap.Logger, error) {
	levelName := firstNonEmpty(cli.LogLevel, cfg.LogLevel, meta.DefaultLevel)
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	preset := firstNonEmpty(cli.LogPreset, cfg.LogPreset, meta.DefaultLogging)
	return deps.NewLogger(deps.ErrOut, preset, level)
}

// resolveSettingsPath picks the argument, then $MIMESORT_FILE, then the tool
// config entry (relative to the config file), then proxySettings.json.
func resolveSettingsPath(arg string, deps Dependencies, cfg config.ToolConfig, wd, cfgDir string) string {
	if path := strings.TrimSpace(arg); path != "" {
		return absFrom(wd, path)
	}
	if path, ok := envutil.Lookup(deps.LookupEnv, "FILE"); ok {
		return absFrom(wd, path)
	}
	if path := strings.TrimSpace(cfg.File); path != "" {
		return absFrom(cfgDir, path)
	}
	return filepath.Join(wd, meta.DefaultSettingsFile)
}

// resolveIndent treats a negative flag value as unset.
func resolveIndent(flag int, cfg config.ToolConfig) (int, error) {
	indent := meta.DefaultIndent
	switch {
	case flag >= 0:
		indent = flag
	case cfg.Indent != nil:
		indent = *cfg.Indent
	}
	if indent < 0 || indent > meta.MaxIndent {
		return 0, fmt.Errorf("indent must be between 0 and %d, got %d", meta.MaxIndent, indent)
	}
	return indent, nil
}

func absFrom(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
