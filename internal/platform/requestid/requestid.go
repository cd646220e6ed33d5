package requestid

import "context"

// Header is the HTTP header carrying the request ID, both on incoming
// requests and on calls to the analysis backend.
const Header = "X-Request-ID"

type ctxKey struct{}

// NewContext returns a context that carries the given request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
