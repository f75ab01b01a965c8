package models

import "context"

type userCtxKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext returns the user stored in the context, or nil.
func UserFromContext(ctx context.Context) *User {
	user, ok := ctx.Value(userCtxKey{}).(*User)
	if !ok {
		return nil
	}
	return user
}
