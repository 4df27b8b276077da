package auth

import (
	"context"

	"github.com/user/deptaihub-go/users"
)

// contextKey is a private type for context keys, so no other package can collide with ours.
type contextKey string

const userContextKey contextKey = "auth_user"

// NewContextWithUser returns a child context carrying the authenticated user.
func NewContextWithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the user placed in the context by Guard.Middleware.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(userContextKey).(*users.User)
	return user, ok && user != nil
}
