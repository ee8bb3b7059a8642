// Package search maintains a full-text index over recorded messages.
// Indexing is best-effort from the exchange path: a failed write is logged
// by the caller, never fatal to the exchange itself.
package search

import (
	"baro-server/domain"
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/blugelabs/bluge"
)

const defaultLimit = 25

// MessageIndex wraps a bluge writer holding one document per message.
// The room id is indexed as a keyword so searches stay scoped to a room.
type MessageIndex struct {
	mu     sync.Mutex
	writer *bluge.Writer
	log    *slog.Logger
}

// Hit is one search result, resolved back to ledger coordinates.
type Hit struct {
	MessageID string
	RoomID    string
	Text      string
	Sender    string
	Timestamp int64
}

func NewMessageIndex(writer *bluge.Writer, log *slog.Logger) *MessageIndex {
	return &MessageIndex{writer: writer, log: log}
}

// Index upserts one message document.
func (idx *MessageIndex) Index(message domain.Message) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewKeywordField("room", message.RoomID).StoreValue()).
		AddField(bluge.NewTextField("text", message.Text).StoreValue()).
		AddField(bluge.NewKeywordField("sender", string(message.Sender)).StoreValue()).
		AddField(bluge.NewKeywordField("ts", strconv.FormatInt(message.Timestamp, 10)).StoreValue())

	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.writer.Update(doc.ID(), doc)
}

// Search returns messages of one room matching the query terms,
// best-scoring first.
func (idx *MessageIndex) Search(ctx context.Context, roomID, terms string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	reader, err := idx.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			idx.log.Warn("Closing index reader failed", "error", err)
		}
	}()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewTermQuery(roomID).SetField("room")).
		AddMust(bluge.NewMatchQuery(terms).SetField("text"))

	it, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for match, err := it.Next(); match != nil; match, err = it.Next() {
		if err != nil {
			return nil, err
		}
		var hit Hit
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID = string(value)
			case "room":
				hit.RoomID = string(value)
			case "text":
				hit.Text = string(value)
			case "sender":
				hit.Sender = string(value)
			case "ts":
				hit.Timestamp, _ = strconv.ParseInt(string(value), 10, 64)
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
