package logs

import (
	"context"
	"fmt"
)

// SpanError annotates an error with the span it occurred in.
type SpanError struct {
	Span Span
	Err  error
}

func (s *SpanError) Error() string {
	return fmt.Sprintf("%v (span: %s)", s.Err, s.Span)
}

func (s *SpanError) Unwrap() error {
	return s.Err
}

func WrapSpan(ctx context.Context, err error) error {
	v := ctx.Value(SpanKey)
	if v == nil || err == nil {
		return err
	}
	return &SpanError{
		Span: v.(Span),
		Err:  err,
	}
}
