package auth

import "github.com/user/deptaihub-go/users"

// LoginRequest is the body of POST /api/auth/login.
// The initial password of every account is its roll number.
// Empty or missing fields are left to Login, which rejects them with 401.
type LoginRequest struct {
	RollNo   string `json:"roll_no" example:"2473A31139"`
	Password string `json:"password" example:"2473A31139"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	AccessToken string        `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string        `json:"token_type" example:"bearer"`
	User        users.Profile `json:"user"`
}
