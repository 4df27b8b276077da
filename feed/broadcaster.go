// Package feed streams newly created records to connected clients as
// Server-Sent Events. Each subscriber only receives the records the
// visibility rules allow its user to see.
package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/user/deptaihub-go/users"
	"github.com/user/deptaihub-go/visibility"
)

// DefaultBuffer is the number of events a subscriber may lag behind before
// further events are dropped for it.
const DefaultBuffer = 32

// Event is a single Server-Sent Event.
type Event struct {
	Name string // "event:" field, e.g. "notice.created"
	Data string // "data:" field, the record as JSON
}

type subscriber struct {
	user   *users.User
	events chan Event
}

// Broadcaster manages feed subscribers and fans records out to them.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
	buffer      int
	logger      *slog.Logger
}

// NewBroadcaster creates a Broadcaster. A nil logger means slog.Default().
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subscribers: make(map[string]*subscriber),
		buffer:      DefaultBuffer,
		logger:      logger,
	}
}

// Subscribe registers user as a subscriber and returns its id and event channel.
// The channel is closed by Unsubscribe.
func (b *Broadcaster) Subscribe(user *users.User) (string, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	sub := &subscriber{user: user, events: make(chan Event, b.buffer)}
	b.subscribers[id] = sub
	b.logger.Debug("feed subscriber registered", "subscriber_id", id, "roll_no", user.RollNo)
	return id, sub.events
}

// Unsubscribe removes a subscriber and closes its channel. Unknown ids are ignored.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[id]; ok {
		close(sub.events)
		delete(b.subscribers, id)
		b.logger.Debug("feed subscriber removed", "subscriber_id", id)
	}
}

// Subscribers returns the number of connected subscribers.
func (b *Broadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Publish sends a newly created record of the given kind to every subscriber
// allowed to see it. Sends never block: a subscriber whose buffer is full
// misses the event. It returns the number of subscribers the event reached.
func (b *Broadcaster) Publish(kind visibility.Kind, record any) int {
	data, err := json.Marshal(record)
	if err != nil {
		b.logger.Error("feed: failed to encode record", "kind", kind, "error", err)
		return 0
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		b.logger.Error("feed: record is not a JSON object", "kind", kind, "error", err)
		return 0
	}
	event := Event{Name: fmt.Sprintf("%s.created", kind), Data: string(data)}

	// The read lock is held while sending so Unsubscribe cannot close a channel mid-send.
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for id, sub := range b.subscribers {
		if !visibility.Visible(kind, sub.user, fields) {
			continue
		}
		select {
		case sub.events <- event:
			delivered++
		default:
			b.logger.Warn("feed subscriber is lagging, event dropped", "subscriber_id", id, "event", event.Name)
		}
	}
	return delivered
}
