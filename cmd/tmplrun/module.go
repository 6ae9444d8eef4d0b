package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tmplrun/debugs"
	"github.com/reusee/tmplrun/scripts"
	"github.com/reusee/tmplrun/sources"
	"github.com/reusee/tmplrun/tmplconfigs"
)

type Module struct {
	dscope.Module
	Scripts scripts.Module
	Sources sources.Module
	Configs tmplconfigs.Module
	Debugs  debugs.Module
}
