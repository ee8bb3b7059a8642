//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_ledger.go -package=mocks
package repositories

import (
	"baro-server/domain"
	"sync"
)

type IMessageLedger interface {
	Append(roomID string, message domain.Message)
	List(roomID string) []domain.Message
}

// MessageLedger owns the ordered message sequence of every room, in memory
// for the lifetime of the process.
//
// Appends to the same room are serialized by a per-room mutex so that
// concurrent exchanges cannot lose or interleave partial writes; appends to
// different rooms never contend. The outer map is guarded separately and
// only long enough to resolve or vivify the room entry.
type MessageLedger struct {
	mu    sync.RWMutex
	rooms map[string]*roomLog
}

type roomLog struct {
	mu       sync.Mutex
	messages []domain.Message
}

func NewMessageLedger() *MessageLedger {
	return &MessageLedger{rooms: make(map[string]*roomLog)}
}

// Append adds a message at the tail of the room's sequence.
// An unknown room is vivified with an empty sequence rather than rejected;
// callers are expected to have consulted the RoomRegistry first, but the
// ledger does not enforce it.
func (l *MessageLedger) Append(roomID string, message domain.Message) {
	log := l.roomLogFor(roomID)
	log.mu.Lock()
	defer log.mu.Unlock()
	log.messages = append(log.messages, message)
}

// List returns the room's messages in append order. A room that never
// received a message yields an empty slice, which is a valid state and
// not an error.
func (l *MessageLedger) List(roomID string) []domain.Message {
	l.mu.RLock()
	log, ok := l.rooms[roomID]
	l.mu.RUnlock()
	if !ok {
		return []domain.Message{}
	}

	log.mu.Lock()
	defer log.mu.Unlock()
	out := make([]domain.Message, len(log.messages))
	copy(out, log.messages)
	return out
}

func (l *MessageLedger) roomLogFor(roomID string) *roomLog {
	l.mu.RLock()
	log, ok := l.rooms[roomID]
	l.mu.RUnlock()
	if ok {
		return log
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if log, ok = l.rooms[roomID]; !ok {
		log = &roomLog{}
		l.rooms[roomID] = log
	}
	return log
}
