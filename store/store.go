// Package store is the document store the portal keeps its users and records in.
//
// The rest of the application only sees the narrow Collection interface:
// FindOne, Find, InsertOne and Count over equality filters on top-level fields.
// Documents go in as any JSON-serialisable value and come back decoded into the
// caller's type, so the backend (memory, PostgreSQL JSONB or Redis) never leaks
// its own storage identifiers into API responses.
package store

import (
	"context"
	"errors"
)

// Names of the collections used by the portal.
const (
	CollectionUsers     = "users"
	CollectionNotices   = "notices"
	CollectionEvents    = "events"
	CollectionTimetable = "timetables"
	CollectionResources = "resources"
	CollectionFaculty   = "faculty"
)

var (
	// ErrDuplicate is returned by InsertOne when a unique index would be violated.
	ErrDuplicate = errors.New("duplicate document")
	// ErrUnavailable is returned by every operation of a store whose backend could not be reached.
	ErrUnavailable = errors.New("document store unavailable")
	// ErrNotObject is returned when a document does not serialise to a JSON object.
	ErrNotObject = errors.New("document must encode to a JSON object")
)

// Filter is an equality predicate on named top-level fields.
// An empty (or nil) filter matches every document of the collection.
type Filter map[string]any

// Collection is a named, append-only set of documents.
type Collection interface {
	// FindOne decodes the first document matching filter into out.
	// It reports false (and leaves out untouched) when nothing matches.
	FindOne(ctx context.Context, filter Filter, out any) (bool, error)
	// Find decodes every matching document, in insertion order, into out,
	// which must be a pointer to a slice. No match yields an empty slice.
	Find(ctx context.Context, filter Filter, out any) error
	// InsertOne appends doc to the collection.
	InsertOne(ctx context.Context, doc any) error
	// Count returns the number of documents matching filter.
	Count(ctx context.Context, filter Filter) (int, error)
}

// Store hands out collections and owns the backend connection.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close() error
}

// Index declares that Field must be unique within Collection.
// Documents that do not carry the field are not indexed.
type Index struct {
	Collection string
	Field      string
}

// DefaultIndexes are the uniqueness guarantees of the portal's data model:
// roll numbers are unique among users, and record ids are unique per collection.
var DefaultIndexes = []Index{
	{Collection: CollectionUsers, Field: "roll_no"},
	{Collection: CollectionNotices, Field: "id"},
	{Collection: CollectionEvents, Field: "id"},
	{Collection: CollectionTimetable, Field: "id"},
	{Collection: CollectionResources, Field: "id"},
	{Collection: CollectionFaculty, Field: "id"},
}

// indexFields groups the unique fields per collection.
func indexFields(indexes []Index) map[string][]string {
	out := make(map[string][]string)
	for _, idx := range indexes {
		out[idx.Collection] = append(out[idx.Collection], idx.Field)
	}
	return out
}
