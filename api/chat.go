package api

import (
	"baro-server/domain"
	serrors "baro-server/errors"
	"baro-server/search"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

// ChatMessageDto mirrors the mobile client's message shape.
type ChatMessageDto struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

// RoomSummaryDto mirrors the mobile client's room list item.
type RoomSummaryDto struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	LastMessage string `json:"lastMessage"`
	CreatedAt   int64  `json:"createdAt"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessageResponse wraps the bot reply in a list, the envelope the
// client consumes.
type SendMessageResponse struct {
	Messages []ChatMessageDto `json:"messages"`
}

type SearchResponse struct {
	Hits []ChatMessageDto `json:"hits"`
}

// ListRooms handles GET /bot/rooms.
func (h *Handler) ListRooms(w http.ResponseWriter, _ *http.Request) {
	summaries := h.bot.ListRooms()
	h.JSON(w, http.StatusOK, lo.Map(summaries, func(s domain.RoomSummary, _ int) RoomSummaryDto {
		return RoomSummaryDto{
			ID:          s.ID,
			Title:       s.Title,
			LastMessage: s.LastMessage,
			CreatedAt:   s.CreatedAt,
		}
	}))
}

// ListMessages handles GET /bot/rooms/{roomID}/messages.
// A room without history answers 200 with an empty list: absence of
// messages is not absence of room.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	messages := h.bot.ListMessages(roomID)
	h.JSON(w, http.StatusOK, toMessageDtos(messages))
}

// SendMessage handles POST /bot/rooms/{roomID}/messages and runs the full
// exchange. An engine failure surfaces as 502 with the failure detail;
// the user message recorded before the failure is kept.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		h.Error(w, http.StatusBadRequest, "text is required")
		return
	}

	botMessage, err := h.bot.SendMessage(r.Context(), roomID, req.Text)
	if err != nil {
		if errors.Is(err, serrors.ErrUpstreamFailure) {
			h.Error(w, http.StatusBadGateway, err.Error())
			return
		}
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.JSON(w, http.StatusOK, SendMessageResponse{
		Messages: toMessageDtos([]domain.Message{botMessage}),
	})
}

// SearchMessages handles GET /bot/rooms/{roomID}/messages/search?q=...
func (h *Handler) SearchMessages(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	terms := r.URL.Query().Get("q")
	if terms == "" {
		h.Error(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	hits, err := h.bot.SearchMessages(r.Context(), roomID, terms, limit)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.JSON(w, http.StatusOK, SearchResponse{
		Hits: lo.Map(hits, func(hit search.Hit, _ int) ChatMessageDto {
			return ChatMessageDto{
				ID:        hit.MessageID,
				Text:      hit.Text,
				Sender:    hit.Sender,
				Timestamp: hit.Timestamp,
			}
		}),
	})
}

func toMessageDtos(messages []domain.Message) []ChatMessageDto {
	return lo.Map(messages, func(m domain.Message, _ int) ChatMessageDto {
		return ChatMessageDto{
			ID:        m.ID.String(),
			Text:      m.Text,
			Sender:    string(m.Sender),
			Timestamp: m.Timestamp,
		}
	})
}
