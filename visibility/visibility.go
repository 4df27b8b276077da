// Package visibility decides which records a user may see.
//
// Admins see every record. Students see all notices, events and faculty,
// only the timetable of their own semester and section, and only the
// resources of their own semester. The rule is expressed once, as a store
// filter, and reused for in-process records by Visible.
package visibility

import (
	"errors"
	"fmt"

	"github.com/user/deptaihub-go/store"
	"github.com/user/deptaihub-go/users"
)

// Kind names a record type.
type Kind string

const (
	KindNotice    Kind = "notice"
	KindEvent     Kind = "event"
	KindTimetable Kind = "timetable"
	KindResource  Kind = "resource"
	KindFaculty   Kind = "faculty"
)

// Kinds lists every record kind.
var Kinds = []Kind{KindNotice, KindEvent, KindTimetable, KindResource, KindFaculty}

// ErrNoUser is returned when a filter is requested without a user.
var ErrNoUser = errors.New("visibility requires an authenticated user")

// Collection returns the store collection holding records of kind k.
func (k Kind) Collection() string {
	switch k {
	case KindNotice:
		return store.CollectionNotices
	case KindEvent:
		return store.CollectionEvents
	case KindTimetable:
		return store.CollectionTimetable
	case KindResource:
		return store.CollectionResources
	case KindFaculty:
		return store.CollectionFaculty
	default:
		return ""
	}
}

// Scope builds the store filter restricting records of kind to those user may see.
// An empty filter matches every record.
func Scope(kind Kind, user *users.User) (store.Filter, error) {
	if user == nil {
		return nil, ErrNoUser
	}
	if kind.Collection() == "" {
		return nil, fmt.Errorf("unknown record kind %q", string(kind))
	}
	if user.Role == users.RoleAdmin {
		return store.Filter{}, nil
	}

	switch kind {
	case KindTimetable:
		return store.Filter{"semester": user.Semester, "section": user.Section}, nil
	case KindResource:
		return store.Filter{"semester": user.Semester}, nil
	default:
		return store.Filter{}, nil
	}
}

// Visible reports whether user may see record, given as its decoded JSON fields.
func Visible(kind Kind, user *users.User, record map[string]any) bool {
	filter, err := Scope(kind, user)
	if err != nil {
		return false
	}
	for field, want := range filter {
		got, ok := record[field]
		if !ok || got != want {
			return false
		}
	}
	return true
}
