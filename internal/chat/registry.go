package chat

import (
	"sync"
)

var (
	ErrUsernameTaken = errorString("username_taken")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// NameRegistry maps display names to live sessions and enforces server-wide
// name uniqueness. Entries are weak back-references: registering never takes
// ownership, and disconnect removes the entry.
type NameRegistry struct {
	mu     sync.RWMutex
	byName map[string]*Session
}

func NewNameRegistry() *NameRegistry {
	return &NameRegistry{byName: make(map[string]*Session)}
}

// Register claims name for s. Re-registering a name the same session already
// holds succeeds trivially; a name held by a different live session is
// rejected with ErrUsernameTaken.
func (r *NameRegistry) Register(name string, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.byName[name]; ok && owner != s {
		return ErrUsernameTaken
	}
	r.byName[name] = s
	return nil
}

// Unregister removes name only while it still maps to s, so a racing rename
// by a new owner is never clobbered.
func (r *NameRegistry) Unregister(name string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.byName[name]; ok && owner == s {
		delete(r.byName, name)
	}
}

func (r *NameRegistry) Lookup(name string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

func (r *NameRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Reset clears all entries. Only called on full server stop.
func (r *NameRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = make(map[string]*Session)
}

// RoomRegistry maps room ids to rooms, creating a room lazily on first JOIN.
// Rooms are never destroyed; an empty room just sits idle.
type RoomRegistry struct {
	mu    sync.Mutex
	rooms map[int]*Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[int]*Room)}
}

// GetOrCreate returns the room for id, creating it atomically so concurrent
// joins for the same id always observe the same room.
func (r *RoomRegistry) GetOrCreate(id int) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		room = NewRoom(id)
		r.rooms[id] = room
		OpenRooms.Set(float64(len(r.rooms)))
	}
	return room
}

// Get returns the room for id if it exists.
func (r *RoomRegistry) Get(id int) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	return room, ok
}

func (r *RoomRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

// Reset clears all rooms. Only called on full server stop.
func (r *RoomRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = make(map[int]*Room)
	OpenRooms.Set(0)
}
