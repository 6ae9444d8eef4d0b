package scripts

import (
	"runtime"

	"github.com/reusee/tmplrun/cmds"
	"github.com/reusee/tmplrun/configs"
	"github.com/reusee/tmplrun/logs"
	"github.com/reusee/tmplrun/vars"
)

const DefaultInterpreter = "rust-script"

type InterpreterName string

var interpreterFlag = cmds.Var[string]("-interpreter", "script interpreter command")

func (Module) InterpreterName(
	loader configs.Loader,
	logger logs.Logger,
) InterpreterName {
	return InterpreterName(vars.FirstNonZero(
		*interpreterFlag,
		configs.Lookup[string](loader, logger, "interpreter"),
		DefaultInterpreter,
	))
}

// ScriptExt is the file extension of the materialized program.
type ScriptExt string

var scriptExtFlag = cmds.Var[string]("-script-ext", "extension of the materialized script")

func (Module) ScriptExt(
	loader configs.Loader,
	logger logs.Logger,
) ScriptExt {
	return ScriptExt(vars.FirstNonZero(
		*scriptExtFlag,
		configs.Lookup[string](loader, logger, "script_ext"),
		".rs",
	))
}

// TempDir is the parent of per-execution directories, the system default
// when empty.
type TempDir string

var tempDirFlag = cmds.Var[string]("-temp-dir", "parent directory of script directories")

func (Module) TempDir(
	loader configs.Loader,
	logger logs.Logger,
) TempDir {
	return TempDir(vars.FirstNonZero(
		*tempDirFlag,
		configs.Lookup[string](loader, logger, "temp_dir"),
	))
}

type MaxParallel int

var maxParallelFlag = cmds.Var[int]("-max-parallel", "maximum concurrent executions")

func (Module) MaxParallel(
	loader configs.Loader,
	logger logs.Logger,
) MaxParallel {
	return MaxParallel(max(1, vars.FirstNonZero(
		*maxParallelFlag,
		configs.Lookup[int](loader, logger, "max_parallel"),
		runtime.NumCPU(),
	)))
}
