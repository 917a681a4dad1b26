package connection

import "context"

type ctxKey struct{}

// WithConnection returns a copy of ctx carrying s.
func WithConnection(ctx context.Context, s *Snapshot) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the snapshot attached by [WithConnection].
func FromContext(ctx context.Context) (*Snapshot, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Snapshot)
	return s, ok && s != nil
}

// MustFromContext is like [FromContext] but panics with
// [ErrOutsideProvider] when no snapshot is attached.
func MustFromContext(ctx context.Context) *Snapshot {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrOutsideProvider)
	}
	return s
}

// WhenConnected runs fn only when the attached snapshot has an account and
// reports whether it ran.
func WhenConnected(ctx context.Context, fn func(*Snapshot)) bool {
	s, ok := FromContext(ctx)
	if !ok || !s.Connected() {
		return false
	}
	fn(s)
	return true
}
