package debugs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tmplrun/modes"
	"github.com/reusee/tmplrun/templates"
	"go.starlark.net/starlark"
)

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"foo": 42,
		})
	})
}

func TestRunScript(t *testing.T) {
	assembler := templates.NewAssembler()
	tmpl, err := templates.New(`let @[name]@ = @[value]@;`)
	if err != nil {
		t.Fatal(err)
	}
	assembler.AddTemplate(tmpl)

	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		run RunScript,
	) {
		globals, err := run(t.Context(), "test.star", []byte(`
n = count()
missing = unresolved(0)
set(0, "name", "x")
set_global("value", str(41 + 1))
value = global("value")
all_names = names(0)
out = render()
`), AssemblerGlobals(assembler))
		if err != nil {
			t.Fatal(err)
		}
		if eq, err := starlark.Equal(globals["n"], starlark.MakeInt(1)); err != nil || !eq {
			t.Fatalf("got %v", globals["n"])
		}
		if s := globals["missing"].String(); s != `["name", "value"]` {
			t.Fatalf("got %s", s)
		}
		if s := globals["all_names"].String(); s != `["name", "value"]` {
			t.Fatalf("got %s", s)
		}
		if v, _ := starlark.AsString(globals["value"]); v != "42" {
			t.Fatalf("got %v", globals["value"])
		}
		if out, _ := starlark.AsString(globals["out"]); out != "let x = 42;" {
			t.Fatalf("got %v", globals["out"])
		}
	})
}

func TestRunScriptErrors(t *testing.T) {
	assembler := templates.NewAssembler()
	tmpl, err := templates.New(`@[a]@`)
	if err != nil {
		t.Fatal(err)
	}
	assembler.AddTemplate(tmpl)

	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		run RunScript,
	) {
		_, err := run(t.Context(), "test.star", []byte(`render()`), AssemblerGlobals(assembler))
		if !errors.Is(err, templates.ErrMissingPlaceholder) {
			t.Fatalf("got %v", err)
		}

		_, err = run(t.Context(), "test.star", []byte(`set(0, "b", "1")`), AssemblerGlobals(assembler))
		if !errors.Is(err, templates.ErrUnknownPlaceholder) {
			t.Fatalf("got %v", err)
		}

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err = run(ctx, "loop.star", []byte("while True:\n  pass\n"), nil)
		if err == nil || !strings.Contains(err.Error(), "canceled") {
			t.Fatalf("got %v", err)
		}
	})
}
