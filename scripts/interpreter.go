package scripts

import (
	"os/exec"
	"sync"

	"github.com/reusee/tmplrun/logs"
)

// ResolveInterpreter returns the interpreter's executable path. The lookup
// runs once per scope, every execution sharing the scope reuses its result.
type ResolveInterpreter func() (string, error)

func (Module) ResolveInterpreter(
	name InterpreterName,
	logger logs.Logger,
) ResolveInterpreter {
	return sync.OnceValues(func() (string, error) {
		path, err := exec.LookPath(string(name))
		if err != nil {
			logger.Error("interpreter not found", "name", name, "error", err)
			return "", &ExecutionError{
				Reason:      ErrInterpreterNotFound,
				Interpreter: string(name),
				Err:         err,
			}
		}
		logger.Info("interpreter resolved", "name", name, "path", path)
		return path, nil
	})
}
