package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/user/deptaihub-go/apperror"
	"github.com/user/deptaihub-go/users"
)

// Guard authenticates requests from their bearer token.
// It is the only way a request obtains an identity.
type Guard struct {
	tokens *TokenService
	users  *users.UserService
}

// NewGuard creates a Guard.
func NewGuard(tokens *TokenService, userService *users.UserService) *Guard {
	return &Guard{tokens: tokens, users: userService}
}

// Authenticate resolves the user behind the request's `Authorization: Bearer <token>` header.
// Every failure is returned as an *apperror.AppError wrapping one of the package sentinels.
func (g *Guard) Authenticate(r *http.Request) (*users.User, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return nil, apperror.NewAuthError(msgNotAuthenticated, ErrMissingCredentials)
	}
	scheme, token, _ := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !strings.EqualFold(scheme, "bearer") || token == "" {
		return nil, apperror.NewAuthError(msgInvalidScheme, ErrMissingCredentials)
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, apperror.NewAuthError(msgTokenExpired, err)
		}
		return nil, apperror.NewAuthError(msgTokenInvalid, err)
	}

	// The stored record is authoritative for the role and cohort, not the token.
	user, found, err := g.users.GetByRollNo(r.Context(), claims.RollNo)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to load user", err)
	}
	if !found {
		return nil, apperror.NewAuthError(msgUserNotFound, ErrUserNotFound)
	}
	return user, nil
}

// Middleware rejects unauthenticated requests and stores the user in the request context.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Authenticate(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(NewContextWithUser(r.Context(), user)))
	})
}

// RequireRole only lets through users holding role. It must run after Guard.Middleware.
func RequireRole(role users.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := CheckRole(r, role); err != nil {
				WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CheckRole returns a 403 AppError unless the request's user holds role.
func CheckRole(r *http.Request, role users.Role) error {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return apperror.NewAuthError(msgNotAuthenticated, ErrMissingCredentials)
	}
	if user.Role != role {
		return apperror.NewForbiddenError(MsgAdminRequired, ErrForbidden)
	}
	return nil
}
