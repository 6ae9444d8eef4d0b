package scripts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExecution = errors.New("execution error")

	ErrInterpreterNotFound = errors.New("interpreter not found")
	ErrSpawn               = errors.New("spawn failed")
	ErrExitStatus          = errors.New("nonzero exit status")
	ErrCanceled            = errors.New("execution canceled")
)

type ExecutionError struct {
	Reason      error
	Interpreter string
	ExitCode    int
	Stderr      string
	Err         error
}

func (e *ExecutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %v", ErrExecution, e.Reason)
	if e.Interpreter != "" {
		fmt.Fprintf(&b, ": %s", e.Interpreter)
	}
	if errors.Is(e.Reason, ErrExitStatus) {
		fmt.Fprintf(&b, ": exit code %d", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&b, "\n%s", stderr)
	}
	return b.String()
}

func (e *ExecutionError) Unwrap() []error {
	ret := []error{e.Reason}
	if e.Err != nil {
		ret = append(ret, e.Err)
	}
	return ret
}

func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}
