package observ

import "context"

type timerKey struct{}

// WithTimer attaches t to ctx.
func WithTimer(ctx context.Context, t *Timer) context.Context {
	return context.WithValue(ctx, timerKey{}, t)
}

// FromContext returns the Timer stored in ctx or nil. A nil Timer is valid
// and records nothing.
func FromContext(ctx context.Context) *Timer {
	if ctx == nil {
		return nil
	}
	t, _ := ctx.Value(timerKey{}).(*Timer)
	return t
}
