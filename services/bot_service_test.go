package services

import (
	"baro-server/domain"
	"baro-server/engine"
	serrors "baro-server/errors"
	"baro-server/mocks"
	"baro-server/moderation"
	"baro-server/observability"
	"baro-server/projection"
	"baro-server/repositories"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBotServiceUnderTest(t *testing.T, responseEngine engine.IResponseEngine,
	moderator *moderation.Moderator) (*BotService, *repositories.MessageLedger, *projection.SummaryProjector) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ledger := repositories.NewMessageLedger()
	projector := projection.NewSummaryProjector()
	service := NewBotService(
		repositories.NewRoomRegistry(), ledger, projector,
		responseEngine, moderator, nil, observability.NewExchangeStats(log), log,
	)
	return service, ledger, projector
}

func TestBotService_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("should record the pair and project the bot reply", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockEngine := mocks.NewMockIResponseEngine(ctrl)
		service, ledger, projector := newBotServiceUnderTest(t, mockEngine, nil)

		mockEngine.EXPECT().
			Respond(gomock.Any(), gomock.Any()).
			Return(engine.StructuredReply{Answer: "Drink more water."}, nil).
			Times(1)

		botMessage, err := service.SendMessage(ctx, "room-1", "I have a headache")

		req.NoError(err)
		req.Equal(domain.SenderBot, botMessage.Sender)
		req.Equal("Drink more water.", botMessage.Text)

		messages := ledger.List("room-1")
		req.Len(messages, 2)
		req.Equal(domain.SenderUser, messages[0].Sender)
		req.Equal("I have a headache", messages[0].Text)
		req.Equal(botMessage.ID, messages[1].ID)

		summary, ok := projector.Summary("room-1")
		req.True(ok)
		req.Equal("Drink more water.", summary.LastMessage)
	})

	t.Run("should keep the user message when the engine fails", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockEngine := mocks.NewMockIResponseEngine(ctrl)
		service, ledger, projector := newBotServiceUnderTest(t, mockEngine, nil)

		mockEngine.EXPECT().
			Respond(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("connection refused")).
			Times(1)

		_, err := service.SendMessage(ctx, "room-1", "hello")

		req.ErrorIs(err, serrors.ErrUpstreamFailure)

		// The orphaned user message stays, no bot message, no summary.
		messages := ledger.List("room-1")
		req.Len(messages, 1)
		req.Equal(domain.SenderUser, messages[0].Sender)
		_, ok := projector.Summary("room-1")
		req.False(ok)
	})

	t.Run("should censor the user message before recording it", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockEngine := mocks.NewMockIResponseEngine(ctrl)
		moderator, err := moderation.NewModerator([]string{"badger"}, '*')
		req.NoError(err)
		service, ledger, _ := newBotServiceUnderTest(t, mockEngine, moderator)

		// The engine receives the censored text, never the original.
		mockEngine.EXPECT().
			Respond(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input engine.Input) (engine.Reply, error) {
				req.Equal("you ******", input.Message)
				return engine.StructuredReply{Answer: "language, please"}, nil
			}).
			Times(1)

		_, err = service.SendMessage(ctx, "room-1", "you badger")

		req.NoError(err)
		req.Equal("you ******", ledger.List("room-1")[0].Text)
	})

	t.Run("should survive concurrent exchanges on the same room", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockEngine := mocks.NewMockIResponseEngine(ctrl)
		service, ledger, _ := newBotServiceUnderTest(t, mockEngine, nil)

		mockEngine.EXPECT().
			Respond(gomock.Any(), gomock.Any()).
			Return(engine.StructuredReply{Answer: "ok"}, nil).
			Times(2)

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, err := service.SendMessage(ctx, "room-1", fmt.Sprintf("msg-%d", n))
				require.NoError(t, err)
			}(i)
		}
		wg.Wait()

		// Two full exchanges: four messages, none lost. Pairing order
		// between the exchanges is unspecified.
		req.Len(ledger.List("room-1"), 4)
	})
}

func TestBotService_ListMessages(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockEngine := mocks.NewMockIResponseEngine(ctrl)
	service, _, _ := newBotServiceUnderTest(t, mockEngine, nil)

	t.Run("should answer an empty history for an unknown room", func(t *testing.T) {
		messages := service.ListMessages("fresh-room")

		req.NotNil(messages)
		req.Empty(messages)
	})
}

func TestBotService_ListRooms(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockEngine := mocks.NewMockIResponseEngine(ctrl)
	service, _, _ := newBotServiceUnderTest(t, mockEngine, nil)

	mockEngine.EXPECT().
		Respond(gomock.Any(), gomock.Any()).
		Return(engine.StructuredReply{Answer: "reply"}, nil).
		Times(2)

	// A room only browsed never gets a summary.
	service.ListMessages("browsed-only")

	_, err := service.SendMessage(ctx, "room-a", "hi")
	req.NoError(err)
	_, err = service.SendMessage(ctx, "room-b", "hi")
	req.NoError(err)

	rooms := service.ListRooms()
	req.Len(rooms, 2)
	req.Equal("room-a", rooms[0].ID)
	req.Equal("room-b", rooms[1].ID)
}
