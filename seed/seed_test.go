package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/deptaihub-go/records"
	"github.com/user/deptaihub-go/store"
	"github.com/user/deptaihub-go/users"
	"github.com/user/deptaihub-go/visibility"
)

func TestDefaultSeed(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)

	all, err := f.Users()
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, users.User{RollNo: "2473A31139", Name: "LIKITH NAIDU", Semester: "3", Section: "FIRE FLIES", Role: users.RoleStudent}, all[0])
	assert.Equal(t, users.User{RollNo: "admin", Name: "Department Admin", Role: users.RoleAdmin}, all[4])

	assert.Len(t, f.Notices, 2)
	assert.Len(t, f.Events, 2)
	assert.Len(t, f.Timetable, 4)
	assert.Empty(t, f.Resources)
	require.Len(t, f.Faculty, 2)
	require.NotNil(t, f.Faculty[0].PhotoURL)
	assert.Contains(t, *f.Faculty[0].PhotoURL, "1559839734-2b71ea197ec2")
	assert.Len(t, f.Records(), 10)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(store.DefaultIndexes...)
	userService := users.NewUserService(s)
	recordService := records.NewService(s, nil)
	seeder := NewSeeder(userService, recordService, nil)

	f, err := Load("")
	require.NoError(t, err)
	report, err := seeder.Run(ctx, f, true)
	require.NoError(t, err)
	assert.Equal(t, Report{Users: 5, Records: 10}, report)

	f, err = Load("")
	require.NoError(t, err)
	report, err = seeder.Run(ctx, f, true)
	require.NoError(t, err)
	assert.Equal(t, Report{}, report)

	n, err := s.Collection(store.CollectionTimetable).Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	admin, found, err := userService.GetByRollNo(ctx, "admin")
	require.NoError(t, err)
	require.True(t, found)
	var notices []records.Notice
	require.NoError(t, recordService.List(ctx, visibility.KindNotice, admin, &notices))
	require.Len(t, notices, 2)
	assert.NotEmpty(t, notices[0].ID)
}

func TestRunWithoutContent(t *testing.T) {
	s := store.NewMemoryStore(store.DefaultIndexes...)
	seeder := NewSeeder(users.NewUserService(s), records.NewService(s, nil), nil)
	f, err := Load("")
	require.NoError(t, err)

	report, err := seeder.Run(context.Background(), f, false)
	require.NoError(t, err)
	assert.Equal(t, Report{Users: 5}, report)
}

func TestRunReportsStoreFailures(t *testing.T) {
	s := store.NewUnavailableStore(assert.AnError)
	seeder := NewSeeder(users.NewUserService(s), records.NewService(s, nil), nil)
	f, err := Load("")
	require.NoError(t, err)

	_, err = seeder.Run(context.Background(), f, true)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
students:
  "2473A31001": {name: A, semester: "5", section: B}
admins:
  hod: {name: Head}
  ops: {name: Ops, role: superuser}
`), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	_, err = f.Users()
	assert.Error(t, err)

	delete(f.Admins, "ops")
	all, err := f.Users()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, users.RoleAdmin, all[1].Role)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
