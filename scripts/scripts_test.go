package scripts

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tmplrun/configs"
	"github.com/reusee/tmplrun/modes"
	"github.com/reusee/tmplrun/templates"
)

func testScope(t *testing.T, defs ...any) dscope.Scope {
	t.Helper()
	return dscope.New(
		new(Module),
		modes.ForTest(t),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Fork(defs...)
}

// fakeInterpreter writes a shell script acting as the interpreter.
func fakeInterpreter(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "interp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustTemplate(t *testing.T, text string, kv ...string) *templates.Template {
	t.Helper()
	tmpl, err := templates.New(text)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if err := tmpl.Set(kv[i], kv[i+1]); err != nil {
			t.Fatal(err)
		}
	}
	return tmpl
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) > 0 {
		t.Fatalf("leaked %s", entries[0].Name())
	}
}
