// Package notify shows transient messages to the shopper.
package notify

import (
	"sync"
	"time"
)

// Level classifies a notification.
type Level string

// Notification levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Notification is a single transient message.
type Notification struct {
	ID       int       `json:"id"`
	Level    Level     `json:"level"`
	Message  string    `json:"message"`
	PushedAt time.Time `json:"pushed_at"`
}

// Hub holds the currently visible notifications. Each pushed message
// hides itself after the configured TTL; expiry is fire-and-forget and
// cannot be cancelled.
type Hub struct {
	mu     sync.Mutex
	nextID int
	active []Notification
	ttl    time.Duration
	now    func() time.Time
}

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// NewHub creates a hub. A non-positive ttl falls back to DefaultTTL.
func NewHub(ttl time.Duration) *Hub {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Hub{ttl: ttl, now: time.Now}
}

// Push shows a message and schedules its auto-hide.
func (h *Hub) Push(level Level, message string) Notification {
	h.mu.Lock()
	h.nextID++
	n := Notification{ID: h.nextID, Level: level, Message: message, PushedAt: h.now()}
	h.active = append(h.active, n)
	h.mu.Unlock()

	time.AfterFunc(h.ttl, func() { h.expire(n.ID) })
	return n
}

// Active returns the notifications currently visible, oldest first.
func (h *Hub) Active() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, len(h.active))
	copy(out, h.active)
	return out
}

func (h *Hub) expire(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, n := range h.active {
		if n.ID == id {
			h.active = append(h.active[:i], h.active[i+1:]...)
			return
		}
	}
}
