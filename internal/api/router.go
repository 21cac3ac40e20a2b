package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/manhuntgame/manhunt/internal/api/handler"
	"github.com/manhuntgame/manhunt/internal/api/sse"
	"github.com/manhuntgame/manhunt/internal/middleware"
	"github.com/manhuntgame/manhunt/internal/services/boundary"
	"github.com/manhuntgame/manhunt/internal/services/chat"
	"github.com/manhuntgame/manhunt/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	GameController  *game.Controller
	ChatService     *chat.Service
	BoundaryService *boundary.Service
	HubManager      *sse.HubManager
}

// NewRouter creates a new API router with all routes configured.
// The paths and shapes are the wire contract the map clients poll.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Logger)
	chatHandler := handler.NewChatHandler(cfg.ChatService, cfg.HubManager, cfg.Logger)
	boundaryHandler := handler.NewBoundaryHandler(cfg.BoundaryService, cfg.HubManager, cfg.Logger)
	eventsHandler := handler.NewEventsHandler(cfg.GameController, cfg.HubManager)

	// Common middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Game and roster routes
	r.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/join", gameHandler.Join).Methods(http.MethodPost)
	r.HandleFunc("/players", gameHandler.ListPlayers).Methods(http.MethodGet)
	r.HandleFunc("/update-position", gameHandler.UpdatePosition).Methods(http.MethodPost)

	// Boundary routes
	r.HandleFunc("/game-boundary", boundaryHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/game-boundary", boundaryHandler.Set).Methods(http.MethodPost)

	// Chat routes
	r.HandleFunc("/chat/list", chatHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/chat/send", chatHandler.Send).Methods(http.MethodPost)

	// Server-push change feed; an alternative to polling, same read contract
	r.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
