package logs

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tmplrun/modes"
)

func TestHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
	if !strings.Contains(buf.String(), "hello=world!") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := context.WithValue(context.Background(), SpanKey, Span("foo"))
		logger.With("script", "main.rs").InfoContext(ctx, "test")
	})
	if !strings.Contains(buf.String(), "script=main.rs") {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "logs.span=foo") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestToJournalKey(t *testing.T) {
	if key := toJournalKey("logs.span"); key != "LOGS_SPAN" {
		t.Fatalf("got %s", key)
	}
	if key := toJournalKey("exit-code2"); key != "EXIT_CODE2" {
		t.Fatalf("got %s", key)
	}
}
