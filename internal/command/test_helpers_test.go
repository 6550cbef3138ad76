// Where: internal/command/test_helpers_test.go
// What: Shared fixtures for command tests.
// Why: Run the CLI against a temp working directory without touching the real env.
package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const unsortedFixture = `{
  "proxyPort": "22500",
  "extGzippedTypes": ["svgz"],
  "extMimeTypes": {
    "swf": "application/x-shockwave-flash",
    "html": "text/html",
    "svgz": "image/svg+xml"
  }
}`

const sortedFixture = `{
  "proxyPort": "22500",
  "extGzippedTypes": [
    "svgz"
  ],
  "extMimeTypes": {
    "html": "text/html",
    "svgz": "image/svg+xml",
    "swf": "application/x-shockwave-flash"
  }
}
`

type testEnv struct {
	dir    string
	out    bytes.Buffer
	errOut bytes.Buffer
	env    map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{dir: t.TempDir(), env: map[string]string{}}
}

func (e *testEnv) deps() Dependencies {
	return Dependencies{
		Out:    &e.out,
		ErrOut: &e.errOut,
		Getwd:  func() (string, error) { return e.dir, nil },
		LookupEnv: func(key string) (string, bool) {
			v, ok := e.env[key]
			return v, ok
		},
	}
}

func (e *testEnv) run(args ...string) int {
	return Run(args, e.deps())
}

func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func (e *testEnv) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}
