//go:build !unix

package scripts

import "os/exec"

// configureCommand keeps the default cancellation, killing the interpreter
// process only.
func configureCommand(cmd *exec.Cmd) {}
