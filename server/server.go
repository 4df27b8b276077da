// Package server wires the portal's services into an HTTP router.
package server

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/deptaihub-go/apperror"
	"github.com/user/deptaihub-go/auth"
	"github.com/user/deptaihub-go/config"
	_ "github.com/user/deptaihub-go/docs" // Registers the Swagger document
	"github.com/user/deptaihub-go/feed"
	"github.com/user/deptaihub-go/logging"
	"github.com/user/deptaihub-go/records"
	"github.com/user/deptaihub-go/store"
	"github.com/user/deptaihub-go/users"
)

// RequestTimeout bounds every request except the live feed.
const RequestTimeout = 60 * time.Second

// Server holds the services behind the HTTP API.
type Server struct {
	cfg    *config.AppConfig
	logger *slog.Logger

	Store       store.Store
	Tokens      *auth.TokenService
	Users       *users.UserService
	Auth        *auth.AuthService
	Records     *records.Service
	Broadcaster *feed.Broadcaster

	guard *auth.Guard
}

// New builds the services on top of s. A nil logger means slog.Default().
func New(cfg *config.AppConfig, s store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	tokens := auth.NewTokenService(*cfg.Auth)
	userService := users.NewUserService(s)
	broadcaster := feed.NewBroadcaster(logger)

	return &Server{
		cfg:         cfg,
		logger:      logger,
		Store:       s,
		Tokens:      tokens,
		Users:       userService,
		Auth:        auth.NewAuthService(userService, tokens),
		Records:     records.NewService(s, broadcaster),
		Broadcaster: broadcaster,
		guard:       auth.NewGuard(tokens, userService),
	}
}

// Router returns the HTTP handler of the API.
func (s *Server) Router() http.Handler {
	authHandlers := auth.NewHandlers(s.Auth)
	recordHandlers := records.NewHandlers(s.Records)
	feedHandler := feed.NewHandler(s.Broadcaster, feed.DefaultHeartbeat)
	adminOnly := auth.RequireRole(users.RoleAdmin)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLog(s.logger))
	r.Use(s.recoverer)
	r.Use(cors.Handler(corsOptions(s.cfg.Server.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		auth.WriteError(w, r, apperror.NewNotFoundError("Not Found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		auth.WriteJSON(w, http.StatusMethodNotAllowed, apperror.ErrorResponse{Detail: "Method Not Allowed"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth())

		// The feed is long-lived, so it stays outside the request timeout.
		r.With(s.guard.Middleware).Get("/feed", feedHandler.HandleStream())

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(RequestTimeout))

			r.Post("/auth/login", authHandlers.HandleLogin())

			r.Group(func(r chi.Router) {
				r.Use(s.guard.Middleware)

				r.Get("/auth/me", authHandlers.HandleMe())

				r.Get("/notices", recordHandlers.HandleListNotices())
				r.With(adminOnly).Post("/notices", recordHandlers.HandleCreateNotice())

				r.Get("/events", recordHandlers.HandleListEvents())
				r.With(adminOnly).Post("/events", recordHandlers.HandleCreateEvent())

				r.Get("/timetable", recordHandlers.HandleListTimetable())
				r.With(adminOnly).Post("/timetable", recordHandlers.HandleCreateTimetableEntry())

				r.Get("/resources", recordHandlers.HandleListResources())
				r.With(adminOnly).Post("/resources", recordHandlers.HandleCreateResource())

				r.Get("/faculty", recordHandlers.HandleListFaculty())
				r.With(adminOnly).Post("/faculty", recordHandlers.HandleCreateFaculty())
			})
		})
	})
	return r
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"Dept-AI Hub - PBR VITS API"`
}

// handleHealth godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} server.HealthResponse
// @Router /health [get]
func (s *Server) handleHealth() http.HandlerFunc {
	resp := HealthResponse{Status: "healthy", Service: s.cfg.Server.ServiceName}
	return func(w http.ResponseWriter, r *http.Request) {
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// recoverer turns a panicking handler into a 500 `{"detail": ...}` response.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			s.logger.Error("panic recovered",
				"request_id", middleware.GetReqID(r.Context()),
				"panic", rvr,
				"stack", string(debug.Stack()),
			)
			auth.WriteError(w, r, apperror.NewInternalError("Internal server error", nil))
		}()
		next.ServeHTTP(w, r)
	})
}

func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	// A wildcard with credentials must echo the caller's origin; browsers reject a literal "*".
	if len(origins) == 0 || slices.Contains(origins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
	}
	return opts
}
