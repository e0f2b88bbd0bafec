package middleware

import (
	"context"

	"github.com/nmalet/blog-backend/internal/auth"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, ident auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFrom returns the verified caller identity placed in the
// context by the auth middleware.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(auth.Identity)
	return v, ok
}
