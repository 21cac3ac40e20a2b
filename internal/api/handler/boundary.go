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
	"github.com/manhuntgame/manhunt/internal/services/boundary"
)

// BoundaryHandler handles game-area boundary endpoints
type BoundaryHandler struct {
	boundaryService *boundary.Service
	broadcaster     *sse.Broadcaster
}

// NewBoundaryHandler creates a new boundary handler
func NewBoundaryHandler(boundaryService *boundary.Service, hubManager *sse.HubManager, logger *slog.Logger) *BoundaryHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &BoundaryHandler{
		boundaryService: boundaryService,
		broadcaster:     broadcaster,
	}
}

// Get handles GET /game-boundary?gameId=
// A game without a boundary answers {"boundary": null}, not an error.
func (h *BoundaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.NormalizeGameID(r.URL.Query().Get("gameId"))
	if gameID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Missing gameId"))
		return
	}

	raw, err := h.boundaryService.Get(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BoundaryResponse{Boundary: raw})
}

// Set handles POST /game-boundary
func (h *BoundaryHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req request.SetBoundaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	gameID := model.NormalizeGameID(req.GameID)
	if gameID == "" || len(req.Boundary) == 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Missing gameId or boundary"))
		return
	}

	if err := h.boundaryService.Set(r.Context(), gameID, req.Boundary); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastBoundary(gameID)
	}

	response.JSON(w, http.StatusOK, response.OKResponse{OK: true})
}
