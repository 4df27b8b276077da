package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/deptaihub-go/apperror"
)

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service *AuthService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

// HandleLogin godoc
// @Summary Log in with a roll number
// @Description Exchanges a roll number and password for a bearer session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 401 {object} apperror.ErrorResponse "Invalid password, bad format or unknown roll number"
// @Failure 422 {object} apperror.ErrorResponse "Malformed body"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidate(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.Login(r.Context(), req.RollNo, req.Password)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleMe godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user.
// @Tags Auth
// @Produce json
// @Success 200 {object} users.Profile
// @Failure 401 {object} apperror.ErrorResponse
// @Router /auth/me [get]
// @Security BearerAuth
func (h *Handlers) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError(msgNotAuthenticated, ErrMissingCredentials))
			return
		}
		WriteJSON(w, http.StatusOK, user.Profile())
	}
}

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; all we can do is record it.
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError writes err as a `{"detail": ...}` response.
// Errors that are not AppErrors become a 500 without leaking their text.
// The full error chain is logged with the request id; its level depends on the kind of failure.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.FromError(err)
	status := appErr.StatusCode()
	slog.Log(r.Context(), errorLogLevel(err, status), "request failed",
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", appErr.Error(),
	)
	WriteJSON(w, status, appErr.ToResponse())
}

func errorLogLevel(err error, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case apperror.IsAuthError(err), apperror.IsForbiddenError(err), apperror.IsConflictError(err):
		// Denied access and duplicate writes are worth an audit line.
		return slog.LevelInfo
	case apperror.IsValidationError(err), apperror.IsNotFound(err):
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}
