package sources

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tmplrun/logs"
	"github.com/reusee/tmplrun/nets"
)

type Module struct {
	dscope.Module
	Nets nets.Module
	Logs logs.Module
}
