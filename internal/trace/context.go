package trace

import (
	"context"
	"time"
)

type ctxKey struct{}

// FromContext extracts the Tracer from context, Nop if there is none.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext is what a new span inherits from the enclosing one.
type SpanContext struct {
	SpanID uint64
	File   string
}

type spanCtxKey struct{}

// CurrentSpan retrieves the active span context, zero if there is none.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

func withSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// Start begins a span under the one stored in ctx and returns a context that
// carries the new span. Spans filtered out by the level leave ctx unchanged.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	span := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx))
	if span.ID() == 0 {
		return ctx, span
	}
	return withSpanContext(ctx, span.context()), span
}

// StartFile begins the span of one file. Every span and point opened under
// the returned context is tagged with path, even when the file span itself
// is filtered out by the level.
func StartFile(ctx context.Context, path string) (context.Context, *Span) {
	sc := CurrentSpan(ctx)
	sc.File = path
	ctx = withSpanContext(ctx, sc)
	return Start(ctx, ScopeFile, "file")
}

// Point emits an instant event under the span stored in ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	sc := CurrentSpan(ctx)
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: sc.SpanID,
		File:     sc.File,
		Name:     name,
		Detail:   detail,
	})
}
