package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/user/deptaihub-go/store"
)

// UserService reads and creates users in the document store.
// Users are never updated or deleted by the portal itself.
type UserService struct {
	users store.Collection
}

// NewUserService creates a new UserService on top of the `users` collection of s.
func NewUserService(s store.Store) *UserService {
	return &UserService{users: s.Collection(store.CollectionUsers)}
}

// GetByRollNo looks a user up by roll number.
// It returns (nil, false, nil) when no such user exists.
func (s *UserService) GetByRollNo(ctx context.Context, rollNo string) (*User, bool, error) {
	var user User
	found, err := s.users.FindOne(ctx, store.Filter{"roll_no": rollNo}, &user)
	if err != nil {
		return nil, false, fmt.Errorf("find user %s: %w", rollNo, err)
	}
	if !found {
		return nil, false, nil
	}
	return &user, true, nil
}

// Create inserts a new user after validating it.
// A second user with the same roll number fails with store.ErrDuplicate.
func (s *UserService) Create(ctx context.Context, user User) error {
	user.RollNo = strings.TrimSpace(user.RollNo)
	if user.RollNo == "" {
		return errors.New("user roll_no is required")
	}
	if !user.Role.Valid() {
		return fmt.Errorf("user %s: unknown role %q", user.RollNo, string(user.Role))
	}
	if err := s.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user %s: %w", user.RollNo, err)
	}
	return nil
}

// EnsureUser inserts user unless its roll number is already present.
// It reports whether a new user was created; existing users are left untouched.
func (s *UserService) EnsureUser(ctx context.Context, user User) (bool, error) {
	_, found, err := s.GetByRollNo(ctx, user.RollNo)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}
	if err := s.Create(ctx, user); err != nil {
		// Another process seeding concurrently got there first.
		if errors.Is(err, store.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Count returns the number of stored users.
func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.users.Count(ctx, nil)
}
