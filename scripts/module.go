package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tmplrun/configs"
	"github.com/reusee/tmplrun/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
