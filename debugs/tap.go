package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/tmplrun/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

func predeclared(globals map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		ret[name] = toStarlarkValue(name, value)
	}
	return ret
}

// Tap starts an interactive starlark session on stdin with globals predeclared.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, predeclared(globals))
	}
}

// RunScript executes a starlark program non-interactively.
type RunScript func(ctx context.Context, filename string, src []byte, globals map[string]any) (starlark.StringDict, error)

func (Module) RunScript(
	logger logs.Logger,
) RunScript {
	return func(ctx context.Context, filename string, src []byte, globals map[string]any) (starlark.StringDict, error) {
		thread := &starlark.Thread{
			Name: filename,
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, msg, "script", filename)
			},
		}
		stop := context.AfterFunc(ctx, func() {
			thread.Cancel(context.Cause(ctx).Error())
		})
		defer stop()
		return starlark.ExecFileOptions(fileOptions, thread, filename, src, predeclared(globals))
	}
}
