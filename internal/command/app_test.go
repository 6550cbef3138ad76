// Where: internal/command/app_test.go
// What: Tests for CLI run behavior.
// Why: Ensure command routing and option precedence remain stable.
package command

import (
	"strings"
	"testing"
)

func TestRunNoArgsSortsDefaultFile(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "proxySettings.json", unsortedFixture)

	if code := env.run(); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, env.out.String())
	}
	if got := env.read(t, "proxySettings.json"); got != sortedFixture {
		t.Fatalf("unexpected file:\n%s", got)
	}
	if !strings.Contains(env.out.String(), "sorted 3 entries") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestRunDefaultCommandAcceptsPath(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "conf/settings.json", unsortedFixture)

	if code := env.run("conf/settings.json"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, env.out.String())
	}
	if got := env.read(t, "conf/settings.json"); got != sortedFixture {
		t.Fatalf("unexpected file:\n%s", got)
	}
}

func TestRunSortAtomicAndIndent(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "proxySettings.json", `{"extMimeTypes": {"b": "x/b", "a": "x/a"}}`)

	if code := env.run("sort", "--atomic", "--indent", "4"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, env.out.String())
	}
	want := "{\n    \"extMimeTypes\": {\n        \"a\": \"x/a\",\n        \"b\": \"x/b\"\n    }\n}\n"
	if got := env.read(t, "proxySettings.json"); got != want {
		t.Fatalf("unexpected file:\n%q", got)
	}
}

func TestRunSortDryRunPrintsDocument(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "proxySettings.json", unsortedFixture)

	if code := env.run("sort", "--dry-run"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if env.out.String() != sortedFixture {
		t.Fatalf("unexpected stdout:\n%s", env.out.String())
	}
	if got := env.read(t, "proxySettings.json"); got != unsortedFixture {
		t.Fatalf("dry run modified the file")
	}
}

func TestRunCheck(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "proxySettings.json", unsortedFixture)

	if code := env.run("check"); code != 1 {
		t.Fatalf("expected exit 1 for unsorted table, got %d", code)
	}
	if !strings.Contains(env.out.String(), "is not sorted") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
	if got := env.read(t, "proxySettings.json"); got != unsortedFixture {
		t.Fatalf("check modified the file")
	}

	env.write(t, "proxySettings.json", sortedFixture)
	env.out.Reset()
	if code := env.run("sort", "--check"); code != 0 {
		t.Fatalf("expected exit 0 for sorted table, got %d: %s", code, env.out.String())
	}
}

func TestRunSortShapeFailureLeavesFile(t *testing.T) {
	env := newTestEnv(t)
	content := `{"version": 1}`
	env.write(t, "proxySettings.json", content)

	if code := env.run("sort"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	out := env.out.String()
	if !strings.Contains(out, "✗ ") || !strings.Contains(out, "unexpected shape") || !strings.Contains(out, "Next steps:") {
		t.Fatalf("unexpected output: %q", out)
	}
	if got := env.read(t, "proxySettings.json"); got != content {
		t.Fatalf("file was modified: %q", got)
	}
}

func TestRunSortMissingFile(t *testing.T) {
	env := newTestEnv(t)
	if code := env.run(); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.out.String(), "access failed") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestRunUsesToolConfig(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "data/proxySettings.json", `{"extMimeTypes": {"b": "x/b", "a": "x/a"}}`)
	env.write(t, ".mimesort.yaml", "version: 1\nfile: data/proxySettings.json\nindent: 0\n")

	if code := env.run(); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, env.out.String())
	}
	if got := env.read(t, "data/proxySettings.json"); got != "{\"extMimeTypes\":{\"a\":\"x/a\",\"b\":\"x/b\"}}\n" {
		t.Fatalf("unexpected file: %q", got)
	}
}

func TestRunExplicitConfigMustExist(t *testing.T) {
	env := newTestEnv(t)
	if code := env.run("--config", "missing.yaml", "check"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.out.String(), "read tool config") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestRunEnvFileOverridesConfig(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "from-env.json", `{"extMimeTypes": {"b": "x/b", "a": "x/a"}}`)
	env.write(t, ".mimesort.yaml", "version: 1\nfile: from-config.json\n")
	env.env["MIMESORT_FILE"] = "from-env.json"

	if code := env.run("check"); code != 1 {
		t.Fatalf("expected unsorted env file to fail check, got %d: %s", code, env.out.String())
	}
	if !strings.Contains(env.out.String(), "from-env.json") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestRunEnvIndent(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "env sets indent",
			args: []string{"sort"},
			want: "{\n    \"extMimeTypes\": {\n        \"a\": \"x/a\",\n        \"b\": \"x/b\"\n    }\n}\n",
		},
		{
			name: "flag beats env",
			args: []string{"sort", "--indent", "0"},
			want: "{\"extMimeTypes\":{\"a\":\"x/a\",\"b\":\"x/b\"}}\n",
		},
		{
			name: "default command reads env",
			args: nil,
			want: "{\n    \"extMimeTypes\": {\n        \"a\": \"x/a\",\n        \"b\": \"x/b\"\n    }\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.write(t, "proxySettings.json", `{"extMimeTypes": {"b": "x/b", "a": "x/a"}}`)
			env.env["MIMESORT_INDENT"] = "4"

			if code := env.run(tt.args...); code != 0 {
				t.Fatalf("expected exit 0, got %d: %s", code, env.out.String())
			}
			if got := env.read(t, "proxySettings.json"); got != tt.want {
				t.Fatalf("unexpected file:\n%q", got)
			}
		})
	}
}

func TestRunEnvLogLevel(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "proxySettings.json", unsortedFixture)
	env.env["MIMESORT_LOG_LEVEL"] = "debug"

	env.run("--log-preset", "console-notime", "check")
	if !strings.Contains(env.errOut.String(), "Loaded MIME table") {
		t.Fatalf("expected debug logs from env level, got %q", env.errOut.String())
	}

	env.errOut.Reset()
	env.run("--log-level", "error", "check")
	if env.errOut.Len() != 0 {
		t.Fatalf("flag level should override env, got %q", env.errOut.String())
	}
}

func TestRunInit(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "data/settings.json", `{"extMimeTypes": {"b": "x/b", "a": "x/a"}}`)

	if code := env.run("init", "data/settings.json", "--indent", "0", "--atomic"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, env.out.String())
	}
	if !strings.Contains(env.out.String(), "mode:        atomic") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
	if got := env.read(t, ".mimesort.yaml"); !strings.Contains(got, "file: data/settings.json") {
		t.Fatalf("unexpected config:\n%s", got)
	}

	if code := env.run(); code != 0 {
		t.Fatalf("expected sort through recorded config, got %d: %s", code, env.out.String())
	}
	if got := env.read(t, "data/settings.json"); got != "{\"extMimeTypes\":{\"a\":\"x/a\",\"b\":\"x/b\"}}\n" {
		t.Fatalf("unexpected file: %q", got)
	}

	env.out.Reset()
	if code := env.run("init"); code != 1 {
		t.Fatalf("expected existing config to block init, got %d", code)
	}
	if !strings.Contains(env.out.String(), "already exists") || !strings.Contains(env.out.String(), "--force") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}

	if code := env.run("init", "--force"); code != 0 {
		t.Fatalf("expected forced init to succeed, got %d: %s", code, env.out.String())
	}
	if got := env.read(t, ".mimesort.yaml"); !strings.Contains(got, "file: proxySettings.json") || !strings.Contains(got, "indent: 2") {
		t.Fatalf("unexpected config:\n%s", got)
	}
}

func TestRunLookup(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "proxySettings.json", unsortedFixture)

	if code := env.run("lookup", "index.HTML", "vector.svgz"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, env.out.String())
	}
	want := "index.HTML: text/html\nvector.svgz: image/svg+xml (Content-Encoding: gzip)\n"
	if env.out.String() != want {
		t.Fatalf("unexpected output:\n%q", env.out.String())
	}

	env.out.Reset()
	if code := env.run("lookup", "clip.flv"); code != 1 {
		t.Fatalf("expected exit 1 for unknown extension, got %d", code)
	}
}

func TestRunList(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "proxySettings.json", unsortedFixture)

	if code := env.run("list", "-o", "yaml"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, env.out.String())
	}
	want := "html: text/html\nsvgz: image/svg+xml\nswf: application/x-shockwave-flash\n"
	if env.out.String() != want {
		t.Fatalf("unexpected output:\n%s", env.out.String())
	}

	env.out.Reset()
	if code := env.run("list", "--format", "{{ .Ext }}{{ if .Gzipped }}*{{ end }}"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, env.out.String())
	}
	if env.out.String() != "html\nsvgz*\nswf\n" {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestRunDebugLoggingGoesToErrOut(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "proxySettings.json", unsortedFixture)

	if code := env.run("--log-level", "debug", "--log-preset", "systemd", "check"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.errOut.String(), "Loaded MIME table") {
		t.Fatalf("expected debug logs on stderr, got %q", env.errOut.String())
	}
	if strings.Contains(env.out.String(), "Loaded MIME table") {
		t.Fatalf("logs leaked to stdout: %q", env.out.String())
	}
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	env := newTestEnv(t)
	if code := env.run("--log-level", "loud", "check"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.out.String(), "parse log level") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestRunIndentParseError(t *testing.T) {
	env := newTestEnv(t)
	if code := env.run("sort", "--indent", "wide"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.out.String(), "expects a number") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestRunIndentOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "proxySettings.json", unsortedFixture)
	if code := env.run("sort", "--indent", "12"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if got := env.read(t, "proxySettings.json"); got != unsortedFixture {
		t.Fatalf("file was modified")
	}
}

func TestRunVersion(t *testing.T) {
	env := newTestEnv(t)
	if code := env.run("version"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(env.out.String(), "mimesort ") {
		t.Fatalf("unexpected output: %q", env.out.String())
	}
}

func TestCommandName(t *testing.T) {
	tests := map[string]string{
		"sort <file>":    "sort",
		"lookup <names>": "lookup",
		"version":        "version",
		"":               "",
	}
	for in, want := range tests {
		if got := commandName(in); got != want {
			t.Fatalf("commandName(%q) = %q, want %q", in, got, want)
		}
	}
}
