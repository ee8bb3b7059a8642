// Package projection builds room summaries from ledger activity.
// Summaries are exclusively owned and mutated here; every other component
// reads them through ListSummaries.
package projection

import (
	"baro-server/domain"
	"sync"
)

// SummaryProjector derives the per-room display summary.
//
// A summary is materialized lazily on the first projected message, not when
// the room is registered. The outer map lock is held only to resolve the
// entry; field updates happen under the entry's own mutex so unrelated
// rooms never serialize each other.
type SummaryProjector struct {
	mu      sync.RWMutex
	entries map[string]*summaryEntry
	order   []string
}

type summaryEntry struct {
	mu      sync.Mutex
	summary domain.RoomSummary
}

func NewSummaryProjector() *SummaryProjector {
	return &SummaryProjector{entries: make(map[string]*summaryEntry)}
}

// OnMessageAppended projects a freshly appended message into the room's
// summary. On first call for a room it freezes Title and CreatedAt; on
// every call it overwrites LastMessage and nothing else.
func (p *SummaryProjector) OnMessageAppended(roomID, text string, now int64) {
	entry, created := p.entryFor(roomID, text, now)
	if created {
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.summary.LastMessage = text
}

// ListSummaries returns every known summary in materialization order.
func (p *SummaryProjector) ListSummaries() []domain.RoomSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.RoomSummary, 0, len(p.order))
	for _, roomID := range p.order {
		entry := p.entries[roomID]
		entry.mu.Lock()
		out = append(out, entry.summary)
		entry.mu.Unlock()
	}
	return out
}

// Summary returns the room's summary, if one has been materialized.
func (p *SummaryProjector) Summary(roomID string) (domain.RoomSummary, bool) {
	p.mu.RLock()
	entry, ok := p.entries[roomID]
	p.mu.RUnlock()
	if !ok {
		return domain.RoomSummary{}, false
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.summary, true
}

func (p *SummaryProjector) entryFor(roomID, text string, now int64) (*summaryEntry, bool) {
	p.mu.RLock()
	entry, ok := p.entries[roomID]
	p.mu.RUnlock()
	if ok {
		return entry, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok = p.entries[roomID]; ok {
		return entry, false
	}
	entry = &summaryEntry{summary: domain.RoomSummary{
		ID:          roomID,
		Title:       domain.DefaultTitle(roomID),
		LastMessage: text,
		CreatedAt:   now,
	}}
	p.entries[roomID] = entry
	p.order = append(p.order, roomID)
	return entry, true
}
