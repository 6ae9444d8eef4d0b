package debugs

import (
	"github.com/reusee/tmplrun/templates"
)

// AssemblerGlobals exposes an assembler to starlark sessions.
func AssemblerGlobals(assembler *templates.Assembler) map[string]any {
	return map[string]any{
		"count": assembler.Len,
		"names": func(index int) ([]string, error) {
			t, err := assembler.Template(index)
			if err != nil {
				return nil, err
			}
			return t.Names(), nil
		},
		"unresolved": assembler.Unresolved,
		"set":        assembler.Set,
		"set_global": assembler.SetGlobal,
		"global": func(name string) string {
			value, _ := assembler.Global(name)
			return value
		},
		"render": assembler.RenderAll,
	}
}
