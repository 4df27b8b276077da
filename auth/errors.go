package auth

import "errors"

// Sentinel errors of the authentication flow.
// They are wrapped into *apperror.AppError values at the service boundary,
// so callers can still test for them with errors.Is.
var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidFormat      = errors.New("invalid roll number format")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("insufficient role")
)

// User-facing messages. Clients match on some of these strings.
const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidScheme    = "Invalid authentication credentials"
	msgTokenExpired     = "Token expired"
	msgTokenInvalid     = "Invalid token"
	msgUserNotFound     = "User not found"
	msgInvalidPassword  = "Invalid password"
	msgInvalidFormat    = "Invalid roll number format"
	msgRollNoNotFound   = "Roll number not found. Contact admin."
	MsgAdminRequired    = "Admin access required"
)
