package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	Semester string `json:"semester"`
	Section  string `json:"section"`
	Hours    int    `json:"hours,omitempty"`
}

// runCollectionSuite exercises the Collection contract against any backend.
func runCollectionSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("find on empty collection yields empty slice", func(t *testing.T) {
		coll := newStore(t).Collection(CollectionTimetable)

		var got []testEntry
		require.NoError(t, coll.Find(ctx, nil, &got))
		assert.NotNil(t, got)
		assert.Empty(t, got)

		found, err := coll.FindOne(ctx, Filter{"id": "missing"}, &testEntry{})
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("equality filters keep insertion order", func(t *testing.T) {
		coll := newStore(t).Collection(CollectionTimetable)
		entries := []testEntry{
			{ID: "1", Subject: "Machine Learning", Semester: "3", Section: "A", Hours: 4},
			{ID: "2", Subject: "Data Structures", Semester: "3", Section: "B"},
			{ID: "3", Subject: "Neural Networks", Semester: "3", Section: "A"},
			{ID: "4", Subject: "Compilers", Semester: "5", Section: "A"},
		}
		for _, e := range entries {
			require.NoError(t, coll.InsertOne(ctx, e))
		}

		var cohort []testEntry
		require.NoError(t, coll.Find(ctx, Filter{"semester": "3", "section": "A"}, &cohort))
		require.Len(t, cohort, 2)
		assert.Equal(t, "1", cohort[0].ID)
		assert.Equal(t, "3", cohort[1].ID)

		var all []testEntry
		require.NoError(t, coll.Find(ctx, Filter{}, &all))
		assert.Len(t, all, 4)

		var byHours testEntry
		found, err := coll.FindOne(ctx, Filter{"hours": 4}, &byHours)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Machine Learning", byHours.Subject)

		n, err := coll.Count(ctx, Filter{"semester": "3"})
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = coll.Count(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("unique index rejects duplicates", func(t *testing.T) {
		s := newStore(t)
		users := s.Collection(CollectionUsers)
		require.NoError(t, users.InsertOne(ctx, map[string]string{"roll_no": "2473A31139", "name": "A"}))

		err := users.InsertOne(ctx, map[string]string{"roll_no": "2473A31139", "name": "B"})
		require.ErrorIs(t, err, ErrDuplicate)

		n, err := users.Count(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		// Another collection does not share the index.
		require.NoError(t, s.Collection(CollectionFaculty).InsertOne(ctx, map[string]string{"roll_no": "2473A31139"}))
	})

	t.Run("non object documents are rejected", func(t *testing.T) {
		coll := newStore(t).Collection(CollectionNotices)
		require.ErrorIs(t, coll.InsertOne(ctx, []string{"not", "an", "object"}), ErrNotObject)
	})
}

func TestMemoryStore(t *testing.T) {
	runCollectionSuite(t, func(t *testing.T) Store {
		return NewMemoryStore(DefaultIndexes...)
	})
}

func TestRedisStore(t *testing.T) {
	runCollectionSuite(t, func(t *testing.T) Store {
		mr := miniredis.RunT(t)
		s := NewRedisStore(mr.Addr(), "", 0, "test", DefaultIndexes...)
		t.Cleanup(func() { _ = s.Close() })
		require.NoError(t, s.Ping(context.Background()))
		return s
	})
}

func TestRedisStoreKeysUsePrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(mr.Addr(), "", 0, "portal", DefaultIndexes...)
	defer s.Close()

	require.NoError(t, s.Collection(CollectionNotices).InsertOne(context.Background(), testEntry{ID: "n1"}))

	assert.True(t, mr.Exists("portal:notices"))
	assert.True(t, mr.Exists(`portal:notices:unique:id:"n1"`))
}

func TestUnavailableStoreFailsEveryOperation(t *testing.T) {
	ctx := context.Background()
	s := NewUnavailableStore(assert.AnError)
	coll := s.Collection(CollectionUsers)

	assert.ErrorIs(t, s.Ping(ctx), ErrUnavailable)
	_, err := coll.FindOne(ctx, nil, &testEntry{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, coll.Find(ctx, nil, &[]testEntry{}), ErrUnavailable)
	assert.ErrorIs(t, coll.InsertOne(ctx, testEntry{}), ErrUnavailable)
	_, err = coll.Count(ctx, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFindRequiresSlicePointer(t *testing.T) {
	coll := NewMemoryStore().Collection(CollectionEvents)
	var notASlice testEntry
	assert.Error(t, coll.Find(context.Background(), nil, &notASlice))
}
