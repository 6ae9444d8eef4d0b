package templates

import (
	"fmt"
	"strings"
)

// Assembler composes owned templates under a shared global namespace.
// Local bindings take precedence over globals. The zero value is an empty
// assembler. Not safe for concurrent use.
type Assembler struct {
	members []*Template
	globals map[string]string
}

func NewAssembler() *Assembler {
	return &Assembler{
		globals: make(map[string]string),
	}
}

// AddTemplate takes ownership of t and returns its index.
func (a *Assembler) AddTemplate(t *Template) int {
	a.members = append(a.members, t)
	return len(a.members) - 1
}

func (a *Assembler) Len() int {
	return len(a.members)
}

func (a *Assembler) Template(index int) (*Template, error) {
	if index < 0 || index >= len(a.members) {
		return nil, fmt.Errorf("template index out of range: %d", index)
	}
	return a.members[index], nil
}

// Set binds a local value in the member at index.
func (a *Assembler) Set(index int, name string, value string) error {
	t, err := a.Template(index)
	if err != nil {
		return err
	}
	return t.Set(name, value)
}

func (a *Assembler) SetGlobal(name string, value string) {
	if a.globals == nil {
		a.globals = make(map[string]string)
	}
	a.globals[name] = value
}

func (a *Assembler) Global(name string) (string, bool) {
	value, ok := a.globals[name]
	return value, ok
}

func (a *Assembler) lookup(t *Template) func(string) (string, bool) {
	return func(name string) (string, bool) {
		if value, ok := t.values[name]; ok {
			return value, true
		}
		value, ok := a.globals[name]
		return value, ok
	}
}

func (a *Assembler) missing(index int) (ret []*MissingPlaceholderError) {
	lookup := a.lookup(a.members[index])
	for _, name := range a.members[index].names {
		if _, ok := lookup(name); !ok {
			ret = append(ret, &MissingPlaceholderError{
				TemplateIndex: index,
				Name:          name,
			})
		}
	}
	return
}

// Unresolved returns the names of the member at index that neither a local
// nor a global binding resolves.
func (a *Assembler) Unresolved(index int) ([]string, error) {
	if _, err := a.Template(index); err != nil {
		return nil, err
	}
	var ret []string
	for _, missing := range a.missing(index) {
		ret = append(ret, missing.Name)
	}
	return ret, nil
}

// RenderAll renders every member in insertion order and joins them with a
// newline. All unresolved placeholders of all members are reported together.
func (a *Assembler) RenderAll() (string, error) {
	var missing MissingPlaceholdersError
	for i := range a.members {
		missing = append(missing, a.missing(i)...)
	}
	if len(missing) > 0 {
		return "", missing
	}

	renders := make([]string, 0, len(a.members))
	for _, t := range a.members {
		renders = append(renders, t.substitute(a.lookup(t)))
	}
	return strings.Join(renders, "\n"), nil
}

// Resolve returns a detached copy of the member at index with globals
// written into the copy for every placeholder it leaves unbound.
func (a *Assembler) Resolve(index int) (*Template, error) {
	t, err := a.Template(index)
	if err != nil {
		return nil, err
	}
	ret := t.Clone()
	for _, name := range ret.Unresolved() {
		if value, ok := a.globals[name]; ok {
			ret.values[name] = value
		}
	}
	return ret, nil
}
