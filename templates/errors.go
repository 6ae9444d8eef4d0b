package templates

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIO                 = errors.New("io error")
	ErrParse              = errors.New("parse error")
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
	ErrMissingPlaceholder = errors.New("missing placeholder")

	// parse error reasons
	ErrUnterminated = errors.New("unterminated placeholder")
	ErrNested       = errors.New("nested placeholder")
	ErrInvalidName  = errors.New("invalid placeholder name")
)

type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

func (e *IoError) Is(target error) bool {
	return target == ErrIO
}

// ParseError reports malformed placeholder syntax. Offset is a byte offset
// into the source text, Line and Column are 1-based.
type ParseError struct {
	Reason   error
	Offset   int
	Line     int
	Column   int
	Fragment string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %v: %q", e.Line, e.Column, e.Reason, e.Fragment)
}

func (e *ParseError) Unwrap() error {
	return e.Reason
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

type UnknownPlaceholderError struct {
	Name string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown placeholder: %s", e.Name)
}

func (e *UnknownPlaceholderError) Is(target error) bool {
	return target == ErrUnknownPlaceholder
}

// MissingPlaceholderError names an unbound placeholder. TemplateIndex is the
// owning member's index when raised by an Assembler, -1 otherwise.
type MissingPlaceholderError struct {
	TemplateIndex int
	Name          string
}

func (e *MissingPlaceholderError) Error() string {
	if e.TemplateIndex < 0 {
		return fmt.Sprintf("missing placeholder: %s", e.Name)
	}
	return fmt.Sprintf("missing placeholder: %s (template %d)", e.Name, e.TemplateIndex)
}

func (e *MissingPlaceholderError) Is(target error) bool {
	return target == ErrMissingPlaceholder
}

// MissingPlaceholdersError aggregates every unresolved placeholder found by
// Assembler.RenderAll.
type MissingPlaceholdersError []*MissingPlaceholderError

func (e MissingPlaceholdersError) Error() string {
	var b strings.Builder
	b.WriteString("missing placeholders: ")
	for i, missing := range e {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s (template %d)", missing.Name, missing.TemplateIndex)
	}
	return b.String()
}

func (e MissingPlaceholdersError) Unwrap() []error {
	ret := make([]error, 0, len(e))
	for _, missing := range e {
		ret = append(ret, missing)
	}
	return ret
}
