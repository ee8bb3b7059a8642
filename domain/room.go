package domain

import "fmt"

// titlePrefixLen is how much of the room identifier makes it into the
// default title of a freshly summarized room.
const titlePrefixLen = 8

// RoomSummary is a denormalized projection of a room's display metadata.
// LastMessage always reflects the most recently projected message text;
// Title and CreatedAt are frozen when the summary is first materialized.
type RoomSummary struct {
	ID          string
	Title       string
	LastMessage string
	CreatedAt   int64
}

// DefaultTitle derives the display title of a room from its identifier.
func DefaultTitle(roomID string) string {
	prefix := []rune(roomID)
	if len(prefix) > titlePrefixLen {
		prefix = prefix[:titlePrefixLen]
	}
	return fmt.Sprintf("Room %s", string(prefix))
}
