// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/poruru/mimesort/internal/infra/envutil"
	"github.com/poruru/mimesort/internal/logging"
	"github.com/poruru/mimesort/internal/meta"
	"github.com/poruru/mimesort/internal/usecase/sortsettings"
	"github.com/poruru/mimesort/internal/version"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Tests swap the writers, working directory, and environment lookups.
type Dependencies struct {
	Out       io.Writer
	ErrOut    io.Writer
	Getwd     func() (string, error)
	LookupEnv func(string) (string, bool)
	NewLogger func(w io.Writer, preset string, level zapcore.Level) (*zap.Logger, error)
	NewSorter func(*zap.Logger) *sortsettings.Service
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Config    string `name:"config" help:"Path to tool config (default: ./${config_file})"`
	LogLevel  string `name:"log-level" help:"Diagnostic log level (debug/info/warn/error, env: ${env_prefix}_LOG_LEVEL)"`
	LogPreset string `name:"log-preset" help:"Logger preset (${log_presets})"`
	Emoji     bool   `name:"emoji" help:"Decorate output with emoji"`

	Sort    SortCmd    `cmd:"" default:"withargs" help:"Sort extMimeTypes keys and rewrite the settings file"`
	Check   CheckCmd   `cmd:"" help:"Report whether extMimeTypes is sorted without writing"`
	Lookup  LookupCmd  `cmd:"" help:"Resolve file names or extensions to MIME types"`
	List    ListCmd    `cmd:"" help:"Print the MIME table in sorted order"`
	Init    InitCmd    `cmd:"" help:"Write a ${config_file} with the given defaults"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	// SortCmd defines the sort command flags.
	SortCmd struct {
		File   string `arg:"" optional:"" help:"Settings file (default: ${default_file})"`
		Indent int    `name:"indent" default:"-1" help:"Indent width, 0 for compact output (default: 2, env: ${env_prefix}_INDENT)"`
		Atomic bool   `name:"atomic" help:"Write through a temp file and rename instead of rewriting in place"`
		DryRun bool   `name:"dry-run" help:"Print the sorted document instead of writing it"`
		Check  bool   `name:"check" help:"Only report whether the table is sorted"`
	}

	// CheckCmd defines the check command arguments.
	CheckCmd struct {
		File string `arg:"" optional:"" help:"Settings file (default: ${default_file})"`
	}

	// LookupCmd defines the lookup command arguments.
	LookupCmd struct {
		Names []string `arg:"" help:"File names, URLs, or bare extensions"`
		File  string   `short:"f" name:"file" help:"Settings file (default: ${default_file})"`
	}

	// ListCmd defines the list command flags.
	ListCmd struct {
		File   string `arg:"" optional:"" help:"Settings file (default: ${default_file})"`
		Output string `short:"o" name:"output" enum:"text,json,yaml" default:"text" help:"Output format (text/json/yaml)"`
		Format string `name:"format" help:"Go template rendered per entry (.Ext, .Mime, .Gzipped; sprig functions available)"`
	}

	// InitCmd defines the init command flags.
	InitCmd struct {
		File   string `arg:"" optional:"" help:"Settings file (default: ${default_file})"`
		Indent int    `name:"indent" default:"-1" help:"Indent width, 0 for compact output (default: 2, env: ${env_prefix}_INDENT)"`
		Atomic bool   `name:"atomic" help:"Write through a temp file and rename instead of rewriting in place"`
		Force  bool   `name:"force" help:"Overwrite an existing ${config_file}"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	out := deps.Out

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Sort the extMimeTypes table of a proxy settings file."),
		kong.Writers(out, deps.ErrOut),
		kong.Vars{
			"config_file":  meta.ConfigFile,
			"default_file": meta.DefaultSettingsFile,
			"log_presets":  strings.Join(logging.Presets, "/"),
			"env_prefix":   meta.EnvPrefix,
		},
		kong.Resolvers(envResolver(deps.LookupEnv)),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, out)
	}

	command := commandName(ctx.Command())
	if exitCode, handled := dispatchCommand(command, cli, deps); handled {
		return exitCode
	}

	newUI(out, cli.Emoji).Warn("unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies) int

func dispatchCommand(command string, cli CLI, deps Dependencies) (int, bool) {
	handlers := map[string]commandHandler{
		"sort":    runSort,
		"check":   runCheck,
		"lookup":  runLookup,
		"list":    runList,
		"init":    runInit,
		"version": runVersion,
	}

	if handler, ok := handlers[command]; ok {
		return handler(cli, deps), true
	}
	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(cli CLI, deps Dependencies) int {
	newUI(deps.Out, cli.Emoji).Info(version.Banner())
	return 0
}

// commandName strips positional placeholders from a kong command path,
// e.g. "sort <file>" becomes "sort".
func commandName(path string) string {
	fields := strings.Fields(path)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "--indent") {
		u := newUI(out, false)
		u.Warn(fmt.Sprintf("`--indent` (or %s) expects a number between 0 and %d.", envutil.Key("INDENT"), meta.MaxIndent))
		u.Info(fmt.Sprintf("Example: %s sort --indent 4", meta.AppName))
		return 1
	}
	return exitWithError(out, err)
}

// envFlags maps flag names to the environment suffix that supplies them when
// the flag is absent from the command line.
var envFlags = map[string]string{
	"indent":    "INDENT",
	"log-level": "LOG_LEVEL",
}

// envResolver feeds MIMESORT_* variables to kong through the injected lookup.
// kong applies command-line values after resolvers, so flags still win.
func envResolver(lookup envutil.LookupFunc) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		suffix, ok := envFlags[flag.Name]
		if !ok {
			return nil, nil
		}
		if value, ok := envutil.Lookup(lookup, suffix); ok {
			return value, nil
		}
		return nil, nil
	})
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}
	if deps.NewLogger == nil {
		deps.NewLogger = logging.NewZapLogger
	}
	if deps.NewSorter == nil {
		deps.NewSorter = sortsettings.NewService
	}
	return deps
}
