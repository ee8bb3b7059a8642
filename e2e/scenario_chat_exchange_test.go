package e2e

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testChatExchangeSuite struct {
	BaseHTTPSuite
}

func TestChatExchangeSuite(t *testing.T) {
	suite.Run(t, &testChatExchangeSuite{})
}

type messageDto struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

type roomSummaryDto struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	LastMessage string `json:"lastMessage"`
	CreatedAt   int64  `json:"createdAt"`
}

type sendMessageResponse struct {
	Messages []messageDto `json:"messages"`
}

func (s *testChatExchangeSuite) TestFullExchangeFlow() {
	// A fresh room id per run so scenarios stay independent of server state.
	roomID := uuid.New().String()

	s.Run("Step 0: Fresh room answers an empty history", func() {
		s.Header(s.T(), "History of an untouched room")

		var history []messageDto
		status := s.Call(s.T(), http.MethodGet, "/bot/rooms/"+roomID+"/messages", nil, "", &history)

		s.Require().Equal(http.StatusOK, status)
		s.Require().Empty(history)
	})

	s.Run("Step 1: Exchange returns the bot reply", func() {
		s.Header(s.T(), "Posting a message")

		var response sendMessageResponse
		status := s.Call(s.T(), http.MethodPost, "/bot/rooms/"+roomID+"/messages",
			map[string]string{"text": "Hello, I need some advice"}, "", &response)

		s.Require().Equal(http.StatusOK, status)
		s.Require().Len(response.Messages, 1)
		s.Require().Equal("BOT", response.Messages[0].Sender)
		s.Require().NotEmpty(response.Messages[0].Text)
	})

	s.Run("Step 2: History holds the ordered pair", func() {
		s.Header(s.T(), "Reading back the history")

		var history []messageDto
		status := s.Call(s.T(), http.MethodGet, "/bot/rooms/"+roomID+"/messages", nil, "", &history)

		s.Require().Equal(http.StatusOK, status)
		s.Require().Len(history, 2)
		s.Require().Equal("USER", history[0].Sender)
		s.Require().Equal("BOT", history[1].Sender)
		s.Require().LessOrEqual(history[0].Timestamp, history[1].Timestamp)
	})

	s.Run("Step 3: Room list carries the summary", func() {
		s.Header(s.T(), "Listing rooms")

		var rooms []roomSummaryDto
		status := s.Call(s.T(), http.MethodGet, "/bot/rooms", nil, "", &rooms)

		s.Require().Equal(http.StatusOK, status)

		var found *roomSummaryDto
		for i := range rooms {
			if rooms[i].ID == roomID {
				found = &rooms[i]
				break
			}
		}
		s.Require().NotNil(found, "Room missing from the room list after an exchange")
		s.Require().NotEmpty(found.Title)
		s.Require().NotEmpty(found.LastMessage)
	})
}

func (s *testChatExchangeSuite) TestStatsEndpoint() {
	s.Header(s.T(), "Operational snapshot")

	var snapshot map[string]any
	status := s.Call(s.T(), http.MethodGet, "/stats", nil, "", &snapshot)

	s.Require().Equal(http.StatusOK, status)
	s.Require().Contains(snapshot, "exchanges")
	s.Require().Contains(snapshot, "goroutines")
}
