package application

import (
	"context"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
)

// IdentityProvider answers "who is calling" for the current request.
// The returned principal is trusted as-is.
type IdentityProvider interface {
	Caller(ctx context.Context) (entity.Principal, bool)
}

type callerKey struct{}

// WithCaller attaches an already authenticated principal to ctx.
func WithCaller(ctx context.Context, p entity.Principal) context.Context {
	return context.WithValue(ctx, callerKey{}, p)
}

// CallerFromContext returns the principal stored by WithCaller.
func CallerFromContext(ctx context.Context) (entity.Principal, bool) {
	p, ok := ctx.Value(callerKey{}).(entity.Principal)
	if !ok || p == "" {
		return "", false
	}
	return p, true
}

// ContextIdentity reads the caller placed on the context by the transport layer.
type ContextIdentity struct{}

func (ContextIdentity) Caller(ctx context.Context) (entity.Principal, bool) {
	return CallerFromContext(ctx)
}
