package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/deptaihub-go/config"
	"github.com/user/deptaihub-go/users"
)

// Claims is the payload of a session token.
// Embedding jwt.RegisteredClaims gives us the standard `iat` and `exp` claims.
type Claims struct {
	RollNo string     `json:"roll_no"`
	Role   users.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens with a single
// process-wide secret. Tokens are stateless; there is no revocation list.
type TokenService struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

// NewTokenService creates a TokenService from the auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		duration: cfg.TokenDuration,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for issuing and verifying tokens.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a token for rollNo with the given role.
// It returns the token together with its expiry.
func (s *TokenService) Issue(rollNo string, role users.Role) (string, time.Time, error) {
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("issue token for %s: unknown role %q", rollNo, string(role))
	}
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.duration)
	claims := &Claims{
		RollNo: rollNo,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
//
// The signature is checked before any claim is trusted. A token is expired
// once the clock reaches its `exp` claim, which yields ErrTokenExpired; every
// other failure (bad signature, foreign algorithm, malformed token, missing
// roll number or unknown role) yields ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.RollNo == "" {
		return nil, fmt.Errorf("%w: roll_no claim missing", ErrTokenInvalid)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: role claim missing", ErrTokenInvalid)
	}
	return claims, nil
}
