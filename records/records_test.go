package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/deptaihub-go/apperror"
	"github.com/user/deptaihub-go/auth"
	"github.com/user/deptaihub-go/store"
	"github.com/user/deptaihub-go/users"
	"github.com/user/deptaihub-go/visibility"
)

var (
	student = &users.User{RollNo: "2473A31139", Name: "LIKITH NAIDU", Semester: "3", Section: "FIRE FLIES", Role: users.RoleStudent}
	admin   = &users.User{RollNo: "admin", Name: "Department Admin", Role: users.RoleAdmin}
)

type recordingPublisher struct {
	mu     sync.Mutex
	kinds  []visibility.Kind
	events []any
}

func (p *recordingPublisher) Publish(kind visibility.Kind, record any) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, kind)
	p.events = append(p.events, record)
	return 1
}

func newService(t *testing.T) (*Service, *recordingPublisher, store.Store) {
	t.Helper()
	s := store.NewMemoryStore(store.DefaultIndexes...)
	pub := &recordingPublisher{}
	svc := NewService(s, pub)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC) }
	return svc, pub, s
}

func TestCreateRequiresAdmin(t *testing.T) {
	svc, pub, s := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, student, &Notice{Title: "t", Description: "d", Category: "c", Date: "2024-03-01"})
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, http.StatusForbidden, apperror.FromError(err).StatusCode())
	assert.Equal(t, "Admin access required", apperror.FromError(err).Message)

	n, err := s.Collection(store.CollectionNotices).Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, pub.kinds)
}

func TestCreateAssignsFreshIDs(t *testing.T) {
	svc, pub, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, admin, &Event{ID: "client-chosen", Title: "AI Tech Fest 2024", Description: "d", Date: "2024-03-25", Location: "Auditorium"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, admin, &Event{ID: "client-chosen", Title: "AI Tech Fest 2024", Description: "d", Date: "2024-03-25", Location: "Auditorium"})
	require.NoError(t, err)

	assert.NotEqual(t, "client-chosen", first)
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36)

	var events []Event
	require.NoError(t, svc.List(ctx, visibility.KindEvent, student, &events))
	require.Len(t, events, 2)
	assert.Equal(t, first, events[0].ID)
	assert.Nil(t, events[0].RSVPLink)

	assert.Equal(t, []visibility.Kind{visibility.KindEvent, visibility.KindEvent}, pub.kinds)
}

func TestCreateResourceDefaults(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, &Resource{Title: "Notes", Subject: "ML", Semester: "3", FileURL: "https://x/notes.pdf"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, &Resource{Title: "Old", Subject: "ML", Semester: "3", FileURL: "https://x/old.pdf", UploadedBy: "Dr. Smith", UploadDate: "2023-01-01"})
	require.NoError(t, err)

	var got []Resource
	require.NoError(t, svc.List(ctx, visibility.KindResource, admin, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Department Admin", got[0].UploadedBy)
	assert.Equal(t, "2024-03-10", got[0].UploadDate)
	assert.Equal(t, "Dr. Smith", got[1].UploadedBy)
	assert.Equal(t, "2023-01-01", got[1].UploadDate)
}

func TestListAppliesVisibility(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	for _, e := range []*TimetableEntry{
		{Day: "Monday", Time: "09:00-10:00", Subject: "ML", Faculty: "Dr. Smith", Semester: "3", Section: "FIRE FLIES"},
		{Day: "Monday", Time: "09:00-10:00", Subject: "DS", Faculty: "Prof. Johnson", Semester: "3", Section: "A"},
		{Day: "Tuesday", Time: "09:00-10:00", Subject: "AI", Faculty: "Dr. Brown", Semester: "5", Section: "FIRE FLIES"},
	} {
		_, err := svc.Create(ctx, admin, e)
		require.NoError(t, err)
	}
	for _, r := range []*Resource{
		{Title: "A", Subject: "ML", Semester: "3", FileURL: "u"},
		{Title: "B", Subject: "AI", Semester: "5", FileURL: "u"},
	} {
		_, err := svc.Create(ctx, admin, r)
		require.NoError(t, err)
	}

	var timetable []TimetableEntry
	require.NoError(t, svc.List(ctx, visibility.KindTimetable, student, &timetable))
	require.Len(t, timetable, 1)
	assert.Equal(t, "ML", timetable[0].Subject)

	require.NoError(t, svc.List(ctx, visibility.KindTimetable, admin, &timetable))
	assert.Len(t, timetable, 3)

	var resources []Resource
	require.NoError(t, svc.List(ctx, visibility.KindResource, student, &resources))
	require.Len(t, resources, 1)
	assert.Equal(t, "A", resources[0].Title)
}

func TestListEmptyIsNotNil(t *testing.T) {
	svc, _, _ := newService(t)
	var faculty []Faculty
	require.NoError(t, svc.List(context.Background(), visibility.KindFaculty, student, &faculty))
	assert.NotNil(t, faculty)
	assert.Empty(t, faculty)
}

func TestListStoreFailure(t *testing.T) {
	svc := NewService(store.NewUnavailableStore(assert.AnError), nil)
	var notices []Notice
	err := svc.List(context.Background(), visibility.KindNotice, student, &notices)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperror.FromError(err).StatusCode())
}

func TestInsertIfMissing(t *testing.T) {
	svc, pub, _ := newService(t)
	ctx := context.Background()

	f := &Faculty{Name: "Dr. Sarah Smith", Designation: "Professor", Email: "sarah.smith@pbrvits.edu.in"}
	inserted, err := svc.InsertIfMissing(ctx, f)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = svc.InsertIfMissing(ctx, &Faculty{Name: "Renamed", Designation: "Professor", Email: "sarah.smith@pbrvits.edu.in"})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Empty(t, pub.kinds)
}

func serve(h http.HandlerFunc, method, body string, user *users.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req = req.WithContext(auth.NewContextWithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateHandler(t *testing.T) {
	svc, _, s := newService(t)
	h := NewHandlers(svc)
	body := `{"id":"mine","title":"Mid-Term Examinations Schedule","description":"d","category":"Exams","date":"2024-03-01"}`

	rec := serve(h.HandleCreateNotice(), http.MethodPost, body, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var created CreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Notice created successfully", created.Message)
	assert.NotEqual(t, "mine", created.ID)

	rec = serve(h.HandleCreateNotice(), http.MethodPost, body, student)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"detail":"Admin access required"}`, rec.Body.String())

	// Role is checked before the body.
	rec = serve(h.HandleCreateNotice(), http.MethodPost, `{}`, student)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(h.HandleCreateNotice(), http.MethodPost, `{"title":"x"}`, admin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	n, err := s.Collection(store.CollectionNotices).Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec = serve(h.HandleCreateFaculty(), http.MethodPost, `{"name":"X","designation":"Y","email":"not-an-email"}`, admin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":"email must be a valid email address"}`, rec.Body.String())
}

func TestCreatedMessages(t *testing.T) {
	svc, _, _ := newService(t)
	h := NewHandlers(svc)
	tests := []struct {
		handler http.HandlerFunc
		body    string
		message string
	}{
		{h.HandleCreateEvent(), `{"title":"t","description":"d","date":"2024-03-25","location":"Hall"}`, "Event created successfully"},
		{h.HandleCreateTimetableEntry(), `{"day":"Monday","time":"09:00-10:00","subject":"ML","faculty":"Dr. Smith","semester":"3","section":"A"}`, "Timetable entry created successfully"},
		{h.HandleCreateResource(), `{"title":"t","subject":"s","semester":"3","file_url":"https://x"}`, "Resource created successfully"},
		{h.HandleCreateFaculty(), `{"name":"n","designation":"d","email":"n@pbrvits.edu.in"}`, "Faculty created successfully"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			rec := serve(tt.handler, http.MethodPost, tt.body, admin)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var created CreatedResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
			assert.Equal(t, tt.message, created.Message)
		})
	}
}

func TestListHandler(t *testing.T) {
	svc, _, _ := newService(t)
	h := NewHandlers(svc)

	rec := serve(h.HandleListNotices(), http.MethodGet, "", student)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	_, err := svc.Create(context.Background(), admin, &Notice{Title: "t", Description: "d", Category: "c", Date: "2024-03-01"})
	require.NoError(t, err)

	rec = serve(h.HandleListNotices(), http.MethodGet, "", student)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "t", got[0]["title"])
	assert.Contains(t, got[0], "pdf_url")
	assert.Nil(t, got[0]["pdf_url"])

	rec = serve(h.HandleListNotices(), http.MethodGet, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
