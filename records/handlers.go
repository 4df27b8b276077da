package records

import (
	"net/http"

	"github.com/user/deptaihub-go/auth"
	"github.com/user/deptaihub-go/users"
	"github.com/user/deptaihub-go/visibility"
)

// Handlers exposes the record Service over HTTP.
// Every handler expects the user placed in the context by auth.Guard.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

func listHandler[T any](svc *Service, kind visibility.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := auth.UserFromContext(r.Context())
		items := []T{}
		if err := svc.List(r.Context(), kind, user, &items); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, items)
	}
}

func createHandler[T any, P interface {
	*T
	Record
}](svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// A non-admin is refused before the body is even read.
		if err := auth.CheckRole(r, users.RoleAdmin); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		user, _ := auth.UserFromContext(r.Context())

		rec := P(new(T))
		if err := auth.DecodeAndValidate(r, rec); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		id, err := svc.Create(r.Context(), user, rec)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, CreatedResponse{Message: createdMessage(rec.Kind()), ID: id})
	}
}

// HandleListNotices godoc
// @Summary List notices
// @Tags Notices
// @Produce json
// @Success 200 {array} records.Notice
// @Failure 401 {object} apperror.ErrorResponse
// @Router /notices [get]
// @Security BearerAuth
func (h *Handlers) HandleListNotices() http.HandlerFunc {
	return listHandler[Notice](h.service, visibility.KindNotice)
}

// HandleCreateNotice godoc
// @Summary Create a notice
// @Description Admin only. Any id in the body is ignored; a new one is assigned.
// @Tags Notices
// @Accept json
// @Produce json
// @Param notice body records.Notice true "Notice"
// @Success 200 {object} records.CreatedResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Admin access required"
// @Failure 422 {object} apperror.ErrorResponse
// @Router /notices [post]
// @Security BearerAuth
func (h *Handlers) HandleCreateNotice() http.HandlerFunc {
	return createHandler[Notice](h.service)
}

// HandleListEvents godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Success 200 {array} records.Event
// @Failure 401 {object} apperror.ErrorResponse
// @Router /events [get]
// @Security BearerAuth
func (h *Handlers) HandleListEvents() http.HandlerFunc {
	return listHandler[Event](h.service, visibility.KindEvent)
}

// HandleCreateEvent godoc
// @Summary Create an event
// @Description Admin only.
// @Tags Events
// @Accept json
// @Produce json
// @Param event body records.Event true "Event"
// @Success 200 {object} records.CreatedResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Admin access required"
// @Failure 422 {object} apperror.ErrorResponse
// @Router /events [post]
// @Security BearerAuth
func (h *Handlers) HandleCreateEvent() http.HandlerFunc {
	return createHandler[Event](h.service)
}

// HandleListTimetable godoc
// @Summary List timetable entries
// @Description Students only see their own semester and section.
// @Tags Timetable
// @Produce json
// @Success 200 {array} records.TimetableEntry
// @Failure 401 {object} apperror.ErrorResponse
// @Router /timetable [get]
// @Security BearerAuth
func (h *Handlers) HandleListTimetable() http.HandlerFunc {
	return listHandler[TimetableEntry](h.service, visibility.KindTimetable)
}

// HandleCreateTimetableEntry godoc
// @Summary Create a timetable entry
// @Description Admin only.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param entry body records.TimetableEntry true "Timetable entry"
// @Success 200 {object} records.CreatedResponse
// @Failure 403 {object} apperror.ErrorResponse "Admin access required"
// @Failure 422 {object} apperror.ErrorResponse
// @Router /timetable [post]
// @Security BearerAuth
func (h *Handlers) HandleCreateTimetableEntry() http.HandlerFunc {
	return createHandler[TimetableEntry](h.service)
}

// HandleListResources godoc
// @Summary List resources
// @Description Students only see resources of their own semester.
// @Tags Resources
// @Produce json
// @Success 200 {array} records.Resource
// @Failure 401 {object} apperror.ErrorResponse
// @Router /resources [get]
// @Security BearerAuth
func (h *Handlers) HandleListResources() http.HandlerFunc {
	return listHandler[Resource](h.service, visibility.KindResource)
}

// HandleCreateResource godoc
// @Summary Upload a resource
// @Description Admin only. uploaded_by and upload_date default to the caller and today.
// @Tags Resources
// @Accept json
// @Produce json
// @Param resource body records.Resource true "Resource"
// @Success 200 {object} records.CreatedResponse
// @Failure 403 {object} apperror.ErrorResponse "Admin access required"
// @Failure 422 {object} apperror.ErrorResponse
// @Router /resources [post]
// @Security BearerAuth
func (h *Handlers) HandleCreateResource() http.HandlerFunc {
	return createHandler[Resource](h.service)
}

// HandleListFaculty godoc
// @Summary List faculty
// @Tags Faculty
// @Produce json
// @Success 200 {array} records.Faculty
// @Failure 401 {object} apperror.ErrorResponse
// @Router /faculty [get]
// @Security BearerAuth
func (h *Handlers) HandleListFaculty() http.HandlerFunc {
	return listHandler[Faculty](h.service, visibility.KindFaculty)
}

// HandleCreateFaculty godoc
// @Summary Add a faculty member
// @Description Admin only.
// @Tags Faculty
// @Accept json
// @Produce json
// @Param faculty body records.Faculty true "Faculty member"
// @Success 200 {object} records.CreatedResponse
// @Failure 403 {object} apperror.ErrorResponse "Admin access required"
// @Failure 422 {object} apperror.ErrorResponse
// @Router /faculty [post]
// @Security BearerAuth
func (h *Handlers) HandleCreateFaculty() http.HandlerFunc {
	return createHandler[Faculty](h.service)
}
