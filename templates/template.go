package templates

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// Template is source text with named placeholders and the values bound to
// them. It is not safe for concurrent mutation.
type Template struct {
	// Name labels the template source, the file path for FromFile.
	Name string

	text   string
	parts  []part
	names  []string
	values map[string]string
}

func New(text string) (*Template, error) {
	parts, err := scan(text)
	if err != nil {
		return nil, err
	}
	return &Template{
		text:   text,
		parts:  parts,
		names:  placeholderNames(parts),
		values: make(map[string]string),
	}, nil
}

func FromBytes(name string, content []byte) (*Template, error) {
	t, err := New(string(content))
	if err != nil {
		return nil, err
	}
	t.Name = name
	return t, nil
}

func FromFile(path string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &IoError{
			Path: path,
			Err:  err,
		}
	}
	return FromBytes(path, content)
}

func (t *Template) Text() string {
	return t.text
}

func (t *Template) Names() []string {
	return slices.Clone(t.names)
}

func (t *Template) Has(name string) bool {
	return slices.Contains(t.names, name)
}

func (t *Template) Value(name string) (string, bool) {
	value, ok := t.values[name]
	return value, ok
}

func (t *Template) Set(name string, value string) error {
	if !t.Has(name) {
		return &UnknownPlaceholderError{
			Name: name,
		}
	}
	t.values[name] = value
	return nil
}

func (t *Template) Unresolved() []string {
	var ret []string
	for _, name := range t.names {
		if _, ok := t.values[name]; !ok {
			ret = append(ret, name)
		}
	}
	return ret
}

func (t *Template) Render() (string, error) {
	if unresolved := t.Unresolved(); len(unresolved) > 0 {
		return "", &MissingPlaceholderError{
			TemplateIndex: -1,
			Name:          unresolved[0],
		}
	}
	return t.substitute(t.Value), nil
}

func (t *Template) Clone() *Template {
	ret := *t
	ret.values = maps.Clone(t.values)
	return &ret
}

// substitute writes every part, resolving placeholders with lookup. Callers
// ensure lookup succeeds for every name.
func (t *Template) substitute(lookup func(string) (string, bool)) string {
	var b strings.Builder
	b.Grow(len(t.text))
	for _, p := range t.parts {
		if !p.placeholder {
			b.WriteString(p.text)
			continue
		}
		value, _ := lookup(p.text)
		b.WriteString(value)
	}
	return b.String()
}
