package scripts

import "github.com/reusee/tmplrun/templates"

// Script is a template to be executed together with the dependency
// declarations written into its manifest header.
type Script struct {
	Template     *templates.Template
	Dependencies []string
}

func NewScript(template *templates.Template) *Script {
	return &Script{
		Template: template,
	}
}

func (s *Script) WithDependency(deps ...string) *Script {
	s.Dependencies = append(s.Dependencies, deps...)
	return s
}

// Source renders the template and prepends the manifest.
func (s *Script) Source(style ManifestStyle) (string, error) {
	rendered, err := s.Template.Render()
	if err != nil {
		return "", err
	}
	return style.Build(s.Dependencies) + rendered, nil
}
