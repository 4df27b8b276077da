// Package users is the credential store of the portal: user records keyed by
// roll number, and the closed set of roles a user can hold.
package users

import (
	"fmt"
	"strings"
)

// Role is the closed enumeration of portal roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role name. Surrounding whitespace and case are ignored.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStudent, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// UnmarshalText rejects unknown roles, so a document or token carrying one
// fails to decode instead of reaching a role comparison.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %q", string(r))
	}
	return []byte(r), nil
}

// User is a portal account as stored in the `users` collection.
type User struct {
	RollNo   string `json:"roll_no"`
	Name     string `json:"name"`
	Semester string `json:"semester"`
	Section  string `json:"section"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Profile is the public projection of a user returned by the API.
type Profile struct {
	RollNo   string `json:"roll_no" example:"2473A31139"`
	Name     string `json:"name" example:"LIKITH NAIDU"`
	Role     Role   `json:"role" example:"student"`
	Semester string `json:"semester" example:"3"`
	Section  string `json:"section" example:"FIRE FLIES"`
}

// Profile returns the public projection of u.
func (u *User) Profile() Profile {
	return Profile{
		RollNo:   u.RollNo,
		Name:     u.Name,
		Role:     u.Role,
		Semester: u.Semester,
		Section:  u.Section,
	}
}
