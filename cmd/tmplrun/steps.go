package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/reusee/tmplrun/cmds"
	"github.com/reusee/tmplrun/debugs"
	"github.com/reusee/tmplrun/sources"
	"github.com/reusee/tmplrun/templates"
)

// session is the state the command line words build up.
type session struct {
	assembler    *templates.Assembler
	dependencies [][]string

	loadTemplate sources.LoadTemplate
	loadValues   sources.LoadValues
	runScript    debugs.RunScript
}

var errNoTemplate = errors.New("no template defined yet")

func (s *session) current() (int, error) {
	if s.assembler.Len() == 0 {
		return 0, errNoTemplate
	}
	return s.assembler.Len() - 1, nil
}

type step func(ctx context.Context, s *session) error

var steps []step

func addStep(fn step) {
	steps = append(steps, fn)
}

func templateStep(location string) step {
	return func(ctx context.Context, s *session) error {
		tmpl, err := s.loadTemplate(ctx, location)
		if err != nil {
			return err
		}
		s.assembler.AddTemplate(tmpl)
		s.dependencies = append(s.dependencies, nil)
		return nil
	}
}

func setStep(name, value string) step {
	return func(ctx context.Context, s *session) error {
		index, err := s.current()
		if err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
		return s.assembler.Set(index, name, value)
	}
}

func globalStep(name, value string) step {
	return func(ctx context.Context, s *session) error {
		s.assembler.SetGlobal(name, value)
		return nil
	}
}

func valuesStep(location string) step {
	return func(ctx context.Context, s *session) error {
		values, err := s.loadValues(ctx, location)
		if err != nil {
			return err
		}
		for _, v := range values {
			s.assembler.SetGlobal(v.Name, v.Value)
		}
		return nil
	}
}

func depStep(decl string) step {
	return func(ctx context.Context, s *session) error {
		index, err := s.current()
		if err != nil {
			return fmt.Errorf("dep %s: %w", decl, err)
		}
		s.dependencies[index] = append(s.dependencies[index], decl)
		return nil
	}
}

func scriptStep(path string) step {
	return func(ctx context.Context, s *session) error {
		src, err := os.ReadFile(path)
		if err != nil {
			return &templates.IoError{
				Path: path,
				Err:  err,
			}
		}
		_, err = s.runScript(ctx, path, src, debugs.AssemblerGlobals(s.assembler))
		return err
	}
}

var (
	outputPath  = cmds.Var[string]("output", "write the result to a file")
	executeFlag = cmds.Switch("-execute", "run every template with the interpreter")
	askFlag     = cmds.Switch("-ask", "prompt for unresolved placeholders")
	tapFlag     = cmds.Switch("-tap", "open a starlark session before rendering")
)

func init() {
	cmds.Define("template", cmds.Func(func(location string) {
		addStep(templateStep(location))
	}).Desc("add a template from a file path or http(s) url"))
	cmds.Define("set", cmds.Func(func(name, value string) {
		addStep(setStep(name, value))
	}).Desc("bind a value in the last added template"))
	cmds.Define("global", cmds.Func(func(name, value string) {
		addStep(globalStep(name, value))
	}).Desc("bind a value for all templates"))
	cmds.Define("values", cmds.Func(func(location string) {
		addStep(valuesStep(location))
	}).Desc("bind globals from a yaml mapping"))
	cmds.Define("dep", cmds.Func(func(decl string) {
		addStep(depStep(decl))
	}).Desc("declare a dependency of the last added template"))
	cmds.Define("script", cmds.Func(func(path string) {
		addStep(scriptStep(path))
	}).Desc("run a starlark script against the templates"))
}
