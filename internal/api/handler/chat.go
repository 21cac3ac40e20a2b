package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/manhuntgame/manhunt/internal/api/apierr"
	"github.com/manhuntgame/manhunt/internal/api/request"
	"github.com/manhuntgame/manhunt/internal/api/response"
	"github.com/manhuntgame/manhunt/internal/api/sse"
	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/services/chat"
)

// ChatHandler handles chat endpoints
type ChatHandler struct {
	chatService *chat.Service
	broadcaster *sse.Broadcaster
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *chat.Service, hubManager *sse.HubManager, logger *slog.Logger) *ChatHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &ChatHandler{
		chatService: chatService,
		broadcaster: broadcaster,
	}
}

// Send handles POST /chat/send
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.SendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	gameID := model.NormalizeGameID(req.GameID)
	if gameID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Game ID is required"))
		return
	}

	msg, err := h.chatService.Send(r.Context(), gameID, model.PlayerID(req.PlayerID), req.Name, req.Message, req.Channel)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastChat(msg)
	}

	response.JSON(w, http.StatusOK, response.OKResponse{OK: true})
}

// List handles GET /chat/list?gameId=&role=
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	gameID := model.NormalizeGameID(r.URL.Query().Get("gameId"))
	if gameID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Game ID is required"))
		return
	}

	messages, err := h.chatService.List(r.Context(), gameID, r.URL.Query().Get("role"))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChatMessagesFromModel(messages))
}
