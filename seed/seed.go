// Package seed loads the portal's initial users and sample content from a
// YAML file and writes them to the document store.
//
// Seeding is idempotent: users are matched by roll number and content records
// by their natural key, so running it on every start never duplicates data.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/user/deptaihub-go/records"
	"github.com/user/deptaihub-go/users"
)

//go:embed seed.yaml
var defaultSeed []byte

// UserEntry is a user as written in the seed file, keyed by roll number.
type UserEntry struct {
	Name     string `yaml:"name"`
	Semester string `yaml:"semester"`
	Section  string `yaml:"section"`
	Role     string `yaml:"role"`
}

// File is the parsed seed file.
type File struct {
	Students  map[string]UserEntry     `yaml:"students"`
	Admins    map[string]UserEntry     `yaml:"admins"`
	Notices   []records.Notice         `yaml:"notices"`
	Events    []records.Event          `yaml:"events"`
	Timetable []records.TimetableEntry `yaml:"timetable"`
	Resources []records.Resource       `yaml:"resources"`
	Faculty   []records.Faculty        `yaml:"faculty"`
}

// Load reads the seed file at path, or the embedded default when path is empty.
func Load(path string) (*File, error) {
	if path == "" {
		return Parse(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Users returns every user of the seed file, students first, each group
// ordered by roll number. Students always get the student role; admins
// default to the admin role.
func (f *File) Users() ([]users.User, error) {
	var out []users.User
	for _, rollNo := range sortedKeys(f.Students) {
		e := f.Students[rollNo]
		out = append(out, users.User{RollNo: rollNo, Name: e.Name, Semester: e.Semester, Section: e.Section, Role: users.RoleStudent})
	}
	for _, rollNo := range sortedKeys(f.Admins) {
		e := f.Admins[rollNo]
		role := users.RoleAdmin
		if e.Role != "" {
			parsed, err := users.ParseRole(e.Role)
			if err != nil {
				return nil, fmt.Errorf("admin %s: %w", rollNo, err)
			}
			role = parsed
		}
		out = append(out, users.User{RollNo: rollNo, Name: e.Name, Semester: e.Semester, Section: e.Section, Role: role})
	}
	return out, nil
}

// Records returns the sample content of the seed file.
func (f *File) Records() []records.Record {
	var out []records.Record
	for i := range f.Notices {
		out = append(out, &f.Notices[i])
	}
	for i := range f.Events {
		out = append(out, &f.Events[i])
	}
	for i := range f.Timetable {
		out = append(out, &f.Timetable[i])
	}
	for i := range f.Resources {
		out = append(out, &f.Resources[i])
	}
	for i := range f.Faculty {
		out = append(out, &f.Faculty[i])
	}
	return out
}

func sortedKeys(m map[string]UserEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Report counts what a seeding run inserted.
type Report struct {
	Users   int
	Records int
}

// Seeder writes a seed file to the store.
type Seeder struct {
	users   *users.UserService
	records *records.Service
	logger  *slog.Logger
}

// NewSeeder creates a Seeder. A nil logger means slog.Default().
func NewSeeder(userService *users.UserService, recordService *records.Service, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{users: userService, records: recordService, logger: logger}
}

// Run inserts the users of f and, when withContent is set, its sample records.
// A failing entry does not stop the run; all failures are returned joined.
func (s *Seeder) Run(ctx context.Context, f *File, withContent bool) (Report, error) {
	var (
		report Report
		errs   []error
	)

	seedUsers, err := f.Users()
	if err != nil {
		return report, err
	}
	for _, u := range seedUsers {
		created, err := s.users.EnsureUser(ctx, u)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if created {
			report.Users++
		}
	}

	if withContent {
		for _, rec := range f.Records() {
			inserted, err := s.records.InsertIfMissing(ctx, rec)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if inserted {
				report.Records++
			}
		}
	}

	s.logger.Info("seeding finished", "users_created", report.Users, "records_created", report.Records, "failures", len(errs))
	return report, errors.Join(errs...)
}
