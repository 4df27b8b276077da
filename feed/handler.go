package feed

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/user/deptaihub-go/apperror"
	"github.com/user/deptaihub-go/auth"
)

// DefaultHeartbeat is how often an idle stream gets a comment line to keep proxies from closing it.
const DefaultHeartbeat = 25 * time.Second

// Handler serves the live feed over Server-Sent Events.
type Handler struct {
	broadcaster *Broadcaster
	heartbeat   time.Duration
}

// NewHandler creates a feed handler on top of b.
func NewHandler(b *Broadcaster, heartbeat time.Duration) *Handler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Handler{broadcaster: b, heartbeat: heartbeat}
}

// HandleStream godoc
// @Summary Live feed of new records
// @Description Streams records created after the connection was opened, as Server-Sent Events named "<kind>.created". Only records visible to the caller are sent.
// @Tags Feed
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /feed [get]
// @Security BearerAuth
func (h *Handler) HandleStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", auth.ErrMissingCredentials))
			return
		}

		rc := http.NewResponseController(w)
		// The stream outlives the server's write timeout.
		_ = rc.SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		if err := rc.Flush(); err != nil {
			return
		}

		id, events := h.broadcaster.Subscribe(user)
		defer h.broadcaster.Unsubscribe(id)

		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case event, open := <-events:
				if !open {
					return
				}
				if err := writeEvent(w, event); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
					return
				}
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// writeEvent writes event in the text/event-stream wire format.
func writeEvent(w io.Writer, event Event) error {
	var sb strings.Builder
	if event.Name != "" {
		fmt.Fprintf(&sb, "event: %s\n", event.Name)
	}
	for _, line := range strings.Split(event.Data, "\n") {
		fmt.Fprintf(&sb, "data: %s\n", line)
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
