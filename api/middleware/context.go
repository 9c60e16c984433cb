package middleware

import (
	"context"

	pkgAuth "github.com/lumierebeauty/lumiere-backend/pkg/auth"
)

type contextKey string

const ctxPrincipal contextKey = "principal"

// PrincipalFromContext returns the verified caller identity, or the zero
// Principal for anonymous requests.
func PrincipalFromContext(ctx context.Context) pkgAuth.Principal {
	if ctx == nil {
		return pkgAuth.Principal{}
	}
	if p, ok := ctx.Value(ctxPrincipal).(pkgAuth.Principal); ok {
		return p
	}
	return pkgAuth.Principal{}
}

// WithPrincipal injects the caller identity into the context.
func WithPrincipal(ctx context.Context, p pkgAuth.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, p)
}
