// Package domain contains core concepts of the bot backend.
// This file defines Messages and related rules.
// Messages are immutable once created; they are appended, never edited.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies which side of an exchange produced a message.
type Sender string

const (
	SenderUser Sender = "USER"
	SenderBot  Sender = "BOT"
)

// Message represents one immutable turn in a room's conversation.
// Within a room, messages are totally ordered by insertion sequence.
// Timestamp is advisory display data in milliseconds since epoch:
// two messages can legitimately share a millisecond.
type Message struct {
	ID        uuid.UUID
	RoomID    string
	Text      string
	Sender    Sender
	Timestamp int64
}

// NewUserMessage builds a USER message with a fresh identifier and the
// current wall-clock time.
func NewUserMessage(roomID, text string) Message {
	return newMessage(roomID, text, SenderUser)
}

// NewBotMessage builds a BOT message with a fresh identifier and the
// current wall-clock time.
func NewBotMessage(roomID, text string) Message {
	return newMessage(roomID, text, SenderBot)
}

func newMessage(roomID, text string, sender Sender) Message {
	return Message{
		ID:        uuid.New(),
		RoomID:    roomID,
		Text:      text,
		Sender:    sender,
		Timestamp: NowMillis(),
	}
}

// NowMillis returns the current time in milliseconds since epoch,
// the timestamp unit used across the wire and in summaries.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
