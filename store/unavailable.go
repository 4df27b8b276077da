package store

import (
	"context"
	"fmt"
)

// UnavailableStore stands in for a backend that could not be reached at startup.
// The process keeps serving (health checks, token verification errors) while
// every storage operation fails with ErrUnavailable.
type UnavailableStore struct {
	cause error
}

// NewUnavailableStore records why the real backend is missing.
func NewUnavailableStore(cause error) *UnavailableStore {
	return &UnavailableStore{cause: cause}
}

func (s *UnavailableStore) err() error {
	if s.cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, s.cause)
}

func (s *UnavailableStore) Collection(string) Collection { return unavailableCollection{s} }

func (s *UnavailableStore) Ping(context.Context) error { return s.err() }

func (s *UnavailableStore) Close() error { return nil }

type unavailableCollection struct{ s *UnavailableStore }

func (c unavailableCollection) FindOne(context.Context, Filter, any) (bool, error) {
	return false, c.s.err()
}

func (c unavailableCollection) Find(context.Context, Filter, any) error { return c.s.err() }

func (c unavailableCollection) InsertOne(context.Context, any) error { return c.s.err() }

func (c unavailableCollection) Count(context.Context, Filter) (int, error) { return 0, c.s.err() }
