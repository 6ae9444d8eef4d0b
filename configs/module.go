package configs

import "github.com/reusee/dscope"

// Module carries no providers. A configs.Loader is provided by the
// application (see tmplconfigs) or by tests.
type Module struct {
	dscope.Module
}
