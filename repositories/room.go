//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_registry.go -package=mocks
package repositories

import "sync"

type IRoomRegistry interface {
	EnsureExists(roomID string)
	Known(roomID string) bool
	RoomIDs() []string
}

// RoomRegistry owns the set of known room identifiers.
// Rooms are created implicitly on first touch, by reads as well as writes,
// and live for the duration of the process. The registry never mutates
// messages or summaries.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]struct{}
	order []string
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]struct{})}
}

// EnsureExists registers a room identifier if it is not known yet.
// Idempotent and infallible.
func (r *RoomRegistry) EnsureExists(roomID string) {
	r.mu.RLock()
	_, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok = r.rooms[roomID]; !ok {
		r.rooms[roomID] = struct{}{}
		r.order = append(r.order, roomID)
	}
}

func (r *RoomRegistry) Known(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID]
	return ok
}

// RoomIDs returns the known room identifiers in first-touch order.
func (r *RoomRegistry) RoomIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
