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
	"github.com/manhuntgame/manhunt/internal/services/game"
)

// GameHandler handles game, roster and position endpoints
type GameHandler struct {
	gameController *game.Controller
	broadcaster    *sse.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &GameHandler{
		gameController: gameController,
		broadcaster:    broadcaster,
	}
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.CreateGame(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CreateGameResponse{GameID: string(g.ID)})
}

// Join handles POST /join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	player, err := h.gameController.JoinGame(r.Context(), req.Name, req.Role, req.GameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.broadcastRoster(r, player.GameID)

	response.JSON(w, http.StatusOK, response.JoinResponseFromModel(player))
}

// ListPlayers handles GET /players?gameId=
func (h *GameHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	gameID := model.NormalizeGameID(r.URL.Query().Get("gameId"))
	if gameID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Game ID is required"))
		return
	}

	players, err := h.gameController.ListPlayers(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// UpdatePosition handles POST /update-position
func (h *GameHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	gameID := model.NormalizeGameID(req.GameID)
	if gameID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Game ID is required"))
		return
	}
	if req.PlayerID == "" || len(req.Position) != 2 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid payload"))
		return
	}

	pos := model.NewPosition(req.Position[0], req.Position[1])
	err := h.gameController.UpdatePosition(r.Context(), gameID, model.PlayerID(req.PlayerID), pos)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.broadcastRoster(r, gameID)

	response.JSON(w, http.StatusOK, response.OKResponse{OK: true})
}

// broadcastRoster pushes the current roster to SSE watchers, best effort
func (h *GameHandler) broadcastRoster(r *http.Request, gameID model.GameID) {
	if h.broadcaster == nil {
		return
	}
	players, err := h.gameController.ListPlayers(r.Context(), gameID)
	if err != nil {
		return
	}
	h.broadcaster.BroadcastRoster(gameID, players)
}
