package transport

import "context"

// Identity is what the access guard attaches to the request context after a
// token verifies.
type Identity struct {
	UserID int64
}

type ctxKey string

const contextUserKey ctxKey = "authUser"

func ContextWithUser(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextUserKey, identity)
}

func UserFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(contextUserKey).(*Identity)
	return identity, ok
}
