package services

import (
	"baro-server/domain"
	"baro-server/engine"
	serrors "baro-server/errors"
	"baro-server/moderation"
	"baro-server/observability"
	"baro-server/projection"
	"baro-server/repositories"
	"baro-server/search"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"
)

type IBotService interface {
	SendMessage(ctx context.Context, roomID, text string) (domain.Message, error)
	ListRooms() []domain.RoomSummary
	ListMessages(roomID string) []domain.Message
	SearchMessages(ctx context.Context, roomID, terms string, limit int) ([]search.Hit, error)
}

// BotService runs the message exchange: it resolves the room, records the
// user's message, consults the response engine, records the bot's reply,
// and projects the room summary.
//
// Two concurrent exchanges on the same room may interleave their user/bot
// pairs in the ledger (UserA, UserB, BotA, BotB). Only per-room append
// order of individual messages is guaranteed, not pairing atomicity; this
// is accepted behavior, not a defect.
type BotService struct {
	registry  repositories.IRoomRegistry
	ledger    repositories.IMessageLedger
	projector *projection.SummaryProjector
	engine    engine.IResponseEngine
	moderator *moderation.Moderator
	index     *search.MessageIndex
	stats     *observability.ExchangeStats
	log       *slog.Logger
}

func NewBotService(
	registry repositories.IRoomRegistry,
	ledger repositories.IMessageLedger,
	projector *projection.SummaryProjector,
	responseEngine engine.IResponseEngine,
	moderator *moderation.Moderator,
	index *search.MessageIndex,
	stats *observability.ExchangeStats,
	log *slog.Logger,
) *BotService {
	return &BotService{
		registry:  registry,
		ledger:    ledger,
		projector: projector,
		engine:    responseEngine,
		moderator: moderator,
		index:     index,
		stats:     stats,
		log:       log,
	}
}

// SendMessage runs one full exchange and returns the bot's reply message.
//
// The user message is committed before the engine is consulted: if the
// engine fails, or the caller goes away mid-call, the user message stays
// in the ledger with no paired reply and no summary update. No rollback
// is attempted.
func (s *BotService) SendMessage(ctx context.Context, roomID, text string) (domain.Message, error) {
	// 1. Room resolution. Always succeeds, no external I/O.
	s.registry.EnsureExists(roomID)

	// 2. Record the inbound user message, censored when a word list is
	// configured. This commit is unconditional.
	if s.moderator != nil {
		censored, found := s.moderator.Censor(text)
		if len(found) > 0 {
			s.log.Warn("Censored inbound message", "room_id", roomID, "words", found)
		}
		text = censored
	}
	userMessage := domain.NewUserMessage(roomID, text)
	s.ledger.Append(roomID, userMessage)
	s.indexMessage(userMessage)

	// 3. Consult the response engine, the only step that blocks on
	// external latency. Any failure is fatal to this exchange and is
	// never retried here.
	info := whatlanggo.Detect(text)
	start := time.Now()
	reply, err := s.engine.Respond(ctx, engine.Input{Message: text, Lang: info.Lang.Iso6391()})
	s.stats.ObserveEngineLatency(time.Since(start))
	if err != nil {
		s.stats.IncrEngineFailures()
		s.log.Error("Response engine failed", "room_id", roomID, "error", err)
		return domain.Message{}, fmt.Errorf("%w: %v", serrors.ErrUpstreamFailure, err)
	}

	// 4. Record the bot reply with its own fresh timestamp.
	botMessage := domain.NewBotMessage(roomID, reply.Text())
	s.ledger.Append(roomID, botMessage)
	s.indexMessage(botMessage)

	// 5. Project the summary from the bot's reply text.
	s.projector.OnMessageAppended(roomID, botMessage.Text, domain.NowMillis())

	s.stats.IncrExchanges()

	// 6. Only the bot message goes back to the caller.
	return botMessage, nil
}

// ListRooms returns the summaries of every room that has completed at
// least one exchange.
func (s *BotService) ListRooms() []domain.RoomSummary {
	return s.projector.ListSummaries()
}

// ListMessages returns the room's history in append order. Reading an
// unknown room registers it and yields an empty history, never an error.
func (s *BotService) ListMessages(roomID string) []domain.Message {
	s.registry.EnsureExists(roomID)
	return s.ledger.List(roomID)
}

func (s *BotService) SearchMessages(ctx context.Context, roomID, terms string, limit int) ([]search.Hit, error) {
	if s.index == nil {
		return nil, nil
	}
	return s.index.Search(ctx, roomID, terms, limit)
}

// indexMessage is best-effort: search lags behind the ledger on failure
// but the exchange itself never aborts because of the index.
func (s *BotService) indexMessage(message domain.Message) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(message); err != nil {
		s.log.Warn("Indexing message failed", "message_id", message.ID, "error", err)
		return
	}
	s.stats.IncrMessagesIndexed()
}
