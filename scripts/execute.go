package scripts

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/reusee/tmplrun/logs"
	"github.com/reusee/tmplrun/procs"
	"github.com/reusee/tmplrun/templates"
)

// Execute renders the script, writes it into a fresh temporary directory and
// runs the interpreter on it, returning the captured standard output. There is
// no implicit timeout, bound ctx to limit the run. The directory is removed
// before Execute returns, whatever the outcome.
type Execute func(ctx context.Context, script *Script) (string, error)

const waitDelay = 2 * time.Second

type execution struct {
	ctx    context.Context
	script *Script
	source string
	dir    string
	file   string
	output string
}

type stage = procs.Func[*execution]

func (Module) Execute(
	resolve ResolveInterpreter,
	style ManifestStyle,
	ext ScriptExt,
	tempDir TempDir,
	logger logs.Logger,
	newSpan logs.NewSpan,
) Execute {

	render := stage(func(e *execution) (procs.Proc[*execution], error) {
		source, err := e.script.Source(style)
		if err != nil {
			return nil, err
		}
		e.source = source
		return nil, nil
	})

	materialize := stage(func(e *execution) (procs.Proc[*execution], error) {
		if err := e.ctx.Err(); err != nil {
			return nil, canceled(err, "")
		}
		dir, err := os.MkdirTemp(string(tempDir), "tmplrun-*")
		if err != nil {
			return nil, &templates.IoError{
				Path: filepath.Join(string(tempDir), "tmplrun-*"),
				Err:  err,
			}
		}
		e.dir = dir
		e.file = filepath.Join(dir, "main"+string(ext))
		if err := os.WriteFile(e.file, []byte(e.source), 0644); err != nil {
			return nil, &templates.IoError{
				Path: e.file,
				Err:  err,
			}
		}
		logger.DebugContext(e.ctx, "script materialized", "file", e.file, "dependencies", len(e.script.Dependencies))
		return nil, nil
	})

	run := stage(func(e *execution) (procs.Proc[*execution], error) {
		interpreter, err := resolve()
		if err != nil {
			return nil, err
		}

		cmd := exec.CommandContext(e.ctx, interpreter, e.file)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		cmd.WaitDelay = waitDelay
		configureCommand(cmd)

		logger.InfoContext(e.ctx, "run script", "interpreter", interpreter, "file", e.file)
		err = cmd.Run()
		if errors.Is(err, exec.ErrWaitDelay) {
			// exited cleanly, a descendant kept the output pipes open
			err = nil
		}

		if err != nil {
			if ctxErr := e.ctx.Err(); ctxErr != nil {
				return nil, canceled(ctxErr, stderr.String())
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return nil, &ExecutionError{
					Reason:      ErrExitStatus,
					Interpreter: interpreter,
					ExitCode:    exitErr.ExitCode(),
					Stderr:      stderr.String(),
				}
			}
			return nil, &ExecutionError{
				Reason:      ErrSpawn,
				Interpreter: interpreter,
				Stderr:      stderr.String(),
				Err:         err,
			}
		}

		e.output = stdout.String()
		return nil, nil
	})

	return func(ctx context.Context, script *Script) (output string, err error) {
		ctx, _ = newSpan(ctx, "", "template", script.Template.Name)
		e := &execution{
			ctx:    ctx,
			script: script,
		}

		defer func() {
			if e.dir == "" {
				return
			}
			if rmErr := os.RemoveAll(e.dir); rmErr != nil {
				logger.ErrorContext(ctx, "remove script directory", "dir", e.dir, "error", rmErr)
				err = errors.Join(err, &templates.IoError{
					Path: e.dir,
					Err:  rmErr,
				})
			}
		}()

		if err := procs.Drive(e, procs.Proc[*execution](procs.Procs[*execution]{
			render,
			materialize,
			run,
		})); err != nil {
			if errors.Is(err, ErrExecution) {
				logger.ErrorContext(ctx, "script failed", "error", err)
				err = logs.WrapSpan(ctx, err)
			}
			return "", err
		}

		return e.output, nil
	}
}

func canceled(err error, stderr string) *ExecutionError {
	return &ExecutionError{
		Reason: ErrCanceled,
		Stderr: stderr,
		Err:    err,
	}
}
