package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan derives a context carrying a fresh span. attrs are logged with
// the span creation record.
type NewSpan func(ctx context.Context, parent Span, attrs ...any) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, parent Span, attrs ...any) (context.Context, Span) {

		var creatorSpan Span
		if v := ctx.Value(SpanKey); v != nil {
			creatorSpan = v.(Span)
		}
		if parent == "" {
			parent = creatorSpan
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		var args []any
		if creatorSpan != "" && creatorSpan != parent {
			args = append(args, "creator", creatorSpan)
		}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		args = append(args, attrs...)
		logger.DebugContext(ctx, "new span", args...)

		return ctx, span
	}
}
