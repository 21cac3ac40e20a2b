package handler

import (
	"net/http"

	"github.com/manhuntgame/manhunt/internal/api/apierr"
	"github.com/manhuntgame/manhunt/internal/api/sse"
	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/services/game"
)

// EventsHandler serves the SSE change feed for a game
type EventsHandler struct {
	gameController *game.Controller
	hubManager     *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(gameController *game.Controller, hubManager *sse.HubManager) *EventsHandler {
	return &EventsHandler{
		gameController: gameController,
		hubManager:     hubManager,
	}
}

// Stream handles GET /events?gameId=
// The connection stays open and receives roster, chat and boundary events
// until the client goes away. Polling the read endpoints remains valid; the
// stream only says when re-fetching is worthwhile.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	gameID := model.NormalizeGameID(r.URL.Query().Get("gameId"))
	if gameID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Game ID is required"))
		return
	}

	if _, err := h.gameController.GetGame(r.Context(), gameID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(gameID)
	sse.ServeSSE(w, r, hub)
}
