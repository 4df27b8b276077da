package users

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/deptaihub-go/store"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "student", want: RoleStudent},
		{in: "admin", want: RoleAdmin},
		{in: " Admin ", want: RoleAdmin},
		{in: "staff", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserJSONRejectsUnknownRole(t *testing.T) {
	var u User
	err := json.Unmarshal([]byte(`{"roll_no":"x","role":"superuser"}`), &u)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"roll_no":"x","role":"student"}`), &u))
	assert.Equal(t, RoleStudent, u.Role)
}

func TestUserServiceEnsureUserIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(store.NewMemoryStore(store.DefaultIndexes...))

	student := User{RollNo: "2473A31139", Name: "LIKITH NAIDU", Semester: "3", Section: "FIRE FLIES", Role: RoleStudent}

	created, err := svc.EnsureUser(ctx, student)
	require.NoError(t, err)
	assert.True(t, created)

	renamed := student
	renamed.Name = "SOMEONE ELSE"
	created, err = svc.EnsureUser(ctx, renamed)
	require.NoError(t, err)
	assert.False(t, created)

	got, found, err := svc.GetByRollNo(ctx, "2473A31139")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "LIKITH NAIDU", got.Name)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserServiceCreateValidates(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(store.NewMemoryStore(store.DefaultIndexes...))

	assert.Error(t, svc.Create(ctx, User{RollNo: " ", Role: RoleStudent}))
	assert.Error(t, svc.Create(ctx, User{RollNo: "2473A31100", Role: Role("guest")}))

	require.NoError(t, svc.Create(ctx, User{RollNo: "admin", Name: "Department Admin", Role: RoleAdmin}))
	assert.ErrorIs(t, svc.Create(ctx, User{RollNo: "admin", Role: RoleAdmin}), store.ErrDuplicate)
}

func TestGetByRollNoMissing(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())
	u, found, err := svc.GetByRollNo(context.Background(), "2473A31999")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, u)
}

func TestProfileProjection(t *testing.T) {
	u := &User{RollNo: "admin", Name: "Department Admin", Role: RoleAdmin}
	assert.True(t, u.IsAdmin())
	assert.Equal(t, Profile{RollNo: "admin", Name: "Department Admin", Role: RoleAdmin}, u.Profile())

	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
}
