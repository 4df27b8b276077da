// Package auth handles authentication and authorization for the portal:
// roll-number login, session tokens, and the guard that resolves the user
// behind every protected request.
package auth

import (
	"context"
	"regexp"

	"github.com/user/deptaihub-go/apperror"
	"github.com/user/deptaihub-go/users"
)

// adminRollNo is the one account allowed outside the student roll number format.
const adminRollNo = "admin"

// rollNoPattern is the roll number format of the department's current batch.
var rollNoPattern = regexp.MustCompile(`^2473A31\d{3}$`)

// ValidRollNo reports whether rollNo may attempt a login.
func ValidRollNo(rollNo string) bool {
	return rollNo == adminRollNo || rollNoPattern.MatchString(rollNo)
}

// AuthService implements the login flow.
type AuthService struct {
	users  *users.UserService
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userService *users.UserService, tokens *TokenService) *AuthService {
	return &AuthService{users: userService, tokens: tokens}
}

// Login exchanges a roll number and password for a session token.
//
// Checks run in a fixed order: the password must equal the roll number, then
// the roll number must be well formed, then it must belong to a stored user.
// The first failing check decides the error.
func (s *AuthService) Login(ctx context.Context, rollNo, password string) (*LoginResponse, error) {
	if password != rollNo {
		return nil, apperror.NewAuthError(msgInvalidPassword, ErrInvalidCredentials)
	}
	if !ValidRollNo(rollNo) {
		return nil, apperror.NewAuthError(msgInvalidFormat, ErrInvalidFormat)
	}

	user, found, err := s.users.GetByRollNo(ctx, rollNo)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to load user", err)
	}
	if !found {
		return nil, apperror.NewAuthError(msgRollNoNotFound, ErrUserNotFound)
	}

	token, _, err := s.tokens.Issue(user.RollNo, user.Role)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to issue token", err)
	}
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.Profile(),
	}, nil
}

// IssueFor signs a token for an existing user without a password check.
// It backs the operator `token` command.
func (s *AuthService) IssueFor(ctx context.Context, rollNo string) (string, error) {
	user, found, err := s.users.GetByRollNo(ctx, rollNo)
	if err != nil {
		return "", apperror.NewDatabaseError("Failed to load user", err)
	}
	if !found {
		return "", apperror.NewNotFoundError(msgUserNotFound, ErrUserNotFound)
	}
	token, _, err := s.tokens.Issue(user.RollNo, user.Role)
	return token, err
}
