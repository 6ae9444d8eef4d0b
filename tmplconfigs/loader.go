package tmplconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/tmplrun/cmds"
	"github.com/reusee/tmplrun/configs"
	"github.com/reusee/tmplrun/logs"
)

//go:embed schema.cue
var Schema string

var configFlag = cmds.Collect[string]("-config", "add a cue config file")

var filenames = []string{
	"tmplrun.cue",
	".tmplrun.cue",
}

// ConfigsLoader searches explicit -config files first, then the working
// directory, the user config directory and /etc.
func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	paths := append([]string(nil), *configFlag...)
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")

	paths = append(paths, findConfigFiles(dirs)...)

	return configs.NewLoader(paths, Schema)
}

func findConfigFiles(dirs []string) (paths []string) {
	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}
