package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/deptaihub-go/apperror"
	"github.com/user/deptaihub-go/auth"
	"github.com/user/deptaihub-go/store"
	"github.com/user/deptaihub-go/users"
	"github.com/user/deptaihub-go/visibility"
)

// ErrForbidden is wrapped by the 403 returned when a non-admin tries to create a record.
var ErrForbidden = auth.ErrForbidden

// Publisher receives every record after it has been stored.
type Publisher interface {
	Publish(kind visibility.Kind, record any) int
}

// Service lists and creates records in the document store.
type Service struct {
	store     store.Store
	publisher Publisher
	newID     func() string
	now       func() time.Time
}

// NewService creates a Service. publisher may be nil.
func NewService(s store.Store, publisher Publisher) *Service {
	return &Service{
		store:     s,
		publisher: publisher,
		newID:     func() string { return uuid.New().String() },
		now:       time.Now,
	}
}

// List decodes the records of kind visible to user into out, a pointer to a slice.
// No match yields an empty slice, never nil.
func (s *Service) List(ctx context.Context, kind visibility.Kind, user *users.User, out any) error {
	filter, err := visibility.Scope(kind, user)
	if err != nil {
		if errors.Is(err, visibility.ErrNoUser) {
			return apperror.NewAuthError("Not authenticated", auth.ErrMissingCredentials)
		}
		return apperror.NewInternalError("Internal server error", err)
	}
	if err := s.store.Collection(kind.Collection()).Find(ctx, filter, out); err != nil {
		return apperror.NewDatabaseError(fmt.Sprintf("Failed to list %s records", kind), err)
	}
	return nil
}

// Create stores rec on behalf of user and returns its new id.
// Only admins may create records; any id sent by the client is replaced.
func (s *Service) Create(ctx context.Context, user *users.User, rec Record) (string, error) {
	if user == nil {
		return "", apperror.NewAuthError("Not authenticated", auth.ErrMissingCredentials)
	}
	if !user.IsAdmin() {
		return "", apperror.NewForbiddenError(auth.MsgAdminRequired, ErrForbidden)
	}
	if res, ok := rec.(*Resource); ok {
		s.fillResourceDefaults(res, user)
	}

	id := s.newID()
	rec.SetID(id)
	if err := s.store.Collection(rec.Kind().Collection()).InsertOne(ctx, rec); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return "", apperror.NewConflictError("Record already exists", err)
		}
		return "", apperror.NewDatabaseError(fmt.Sprintf("Failed to create %s", rec.Kind()), err)
	}

	if s.publisher != nil {
		s.publisher.Publish(rec.Kind(), rec)
	}
	return id, nil
}

// InsertIfMissing stores rec unless a record with the same natural key exists.
// It is used for seeding and bypasses the role check. It reports whether rec was inserted.
func (s *Service) InsertIfMissing(ctx context.Context, rec Record) (bool, error) {
	coll := s.store.Collection(rec.Kind().Collection())
	n, err := coll.Count(ctx, rec.NaturalKey())
	if err != nil {
		return false, fmt.Errorf("count %s records: %w", rec.Kind(), err)
	}
	if n > 0 {
		return false, nil
	}
	rec.SetID(s.newID())
	if err := coll.InsertOne(ctx, rec); err != nil {
		return false, fmt.Errorf("insert %s record: %w", rec.Kind(), err)
	}
	return true, nil
}

func (s *Service) fillResourceDefaults(res *Resource, user *users.User) {
	if strings.TrimSpace(res.UploadedBy) == "" {
		res.UploadedBy = user.Name
	}
	if strings.TrimSpace(res.UploadDate) == "" {
		res.UploadDate = s.now().Format(time.DateOnly)
	}
}

// createdMessage is the confirmation text returned for a new record of kind.
func createdMessage(kind visibility.Kind) string {
	switch kind {
	case visibility.KindNotice:
		return "Notice created successfully"
	case visibility.KindEvent:
		return "Event created successfully"
	case visibility.KindTimetable:
		return "Timetable entry created successfully"
	case visibility.KindResource:
		return "Resource created successfully"
	case visibility.KindFaculty:
		return "Faculty created successfully"
	default:
		return "Record created successfully"
	}
}
