package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/natefinch/atomic"
	"github.com/reusee/dscope"
	"github.com/reusee/tmplrun/cmds"
	"github.com/reusee/tmplrun/debugs"
	"github.com/reusee/tmplrun/logs"
	"github.com/reusee/tmplrun/modes"
	"github.com/reusee/tmplrun/scripts"
	"github.com/reusee/tmplrun/sources"
	"github.com/reusee/tmplrun/templates"
)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		exit(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		logger logs.Logger,
		loadTemplate sources.LoadTemplate,
		loadValues sources.LoadValues,
		runScript debugs.RunScript,
		tap debugs.Tap,
		executeAll scripts.ExecuteAll,
	) {
		s := &session{
			assembler:    templates.NewAssembler(),
			loadTemplate: loadTemplate,
			loadValues:   loadValues,
			runScript:    runScript,
		}
		for _, fn := range steps {
			if err := fn(ctx, s); err != nil {
				exit(err)
			}
		}
		if s.assembler.Len() == 0 {
			exit(fmt.Errorf("no template given, see -h"))
		}

		if *askFlag {
			if err := ask(s.assembler, surveyPrompt); err != nil {
				exit(err)
			}
		}

		if *tapFlag {
			tap(ctx, "templates", debugs.AssemblerGlobals(s.assembler))
		}

		var output string
		var err error
		if *executeFlag {
			output, err = execute(ctx, s, executeAll)
		} else {
			output, err = s.assembler.RenderAll()
		}
		if err != nil {
			exit(err)
		}

		if err := writeOutput(*outputPath, output, os.Stdout); err != nil {
			exit(err)
		}
		logger.Debug("done", "templates", s.assembler.Len())
	})
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

type prompt func(message string) (string, error)

func surveyPrompt(message string) (ret string, err error) {
	err = survey.AskOne(&survey.Input{
		Message: message,
	}, &ret)
	return
}

// ask binds every unresolved placeholder of every template locally.
func ask(assembler *templates.Assembler, prompt prompt) error {
	for i := range assembler.Len() {
		names, err := assembler.Unresolved(i)
		if err != nil {
			return err
		}
		tmpl, err := assembler.Template(i)
		if err != nil {
			return err
		}
		for _, name := range names {
			value, err := prompt(fmt.Sprintf("%s (%s):", name, tmpl.Name))
			if err != nil {
				return err
			}
			if err := assembler.Set(i, name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// execute runs every template as its own script and joins the outputs.
func execute(ctx context.Context, s *session, executeAll scripts.ExecuteAll) (string, error) {
	// report every missing placeholder before running anything
	if _, err := s.assembler.RenderAll(); err != nil {
		return "", err
	}

	batch := make([]*scripts.Script, 0, s.assembler.Len())
	for i := range s.assembler.Len() {
		resolved, err := s.assembler.Resolve(i)
		if err != nil {
			return "", err
		}
		batch = append(batch, scripts.NewScript(resolved).WithDependency(s.dependencies[i]...))
	}

	var outputs []string
	var errs []error
	for i, result := range executeAll(ctx, batch...) {
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("template %d: %w", i, result.Err))
			continue
		}
		outputs = append(outputs, result.Output)
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	return strings.Join(outputs, ""), nil
}

func writeOutput(path string, output string, stdout io.Writer) error {
	if path == "" {
		_, err := io.WriteString(stdout, output)
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(output)); err != nil {
		return &templates.IoError{
			Path: path,
			Err:  err,
		}
	}
	return nil
}
