package chat

import (
	"log/slog"
	"sync"
)

// Room groups the sessions that receive each other's broadcasts. Members are
// kept in join order so fan-out order is deterministic. All mutation runs
// under the room's own mutex; no global lock serializes rooms against each
// other.
type Room struct {
	ID int

	mu      sync.Mutex
	members []*Session
}

func NewRoom(id int) *Room {
	return &Room{ID: id}
}

// Add appends the session unless it is already a member.
func (r *Room) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m == s {
			return
		}
	}
	r.members = append(r.members, s)
}

// Remove drops the session; removing a non-member is a no-op.
func (r *Room) Remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.members {
		if m == s {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}

func (r *Room) Contains(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m == s {
			return true
		}
	}
	return false
}

func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// MemberNames lists the display names of current members in join order.
// Unnamed members cannot occur here since JOIN requires a name.
func (r *Room) MemberNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.members))
	for _, m := range r.members {
		if name := m.Name(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Broadcast delivers text to every member except excluding. A nil excluding
// means a system message for all members. Delivery only enqueues, so a
// stalled member never blocks the fan-out; failed members are reaped by
// their own pumps.
func (r *Room) Broadcast(logger *slog.Logger, from, text string, excluding *Session) {
	r.mu.Lock()
	targets := make([]*Session, 0, len(r.members))
	for _, m := range r.members {
		if m != excluding {
			targets = append(targets, m)
		}
	}
	r.mu.Unlock()

	for _, m := range targets {
		m.deliver(logger, from, text)
	}
}
