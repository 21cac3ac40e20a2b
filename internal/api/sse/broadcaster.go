package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/manhuntgame/manhunt/internal/api/response"
	"github.com/manhuntgame/manhunt/internal/model"
)

// Broadcaster pushes game-change events to SSE clients. It leaves the poll
// endpoints untouched: anything delivered here can also be re-fetched from
// the regular read endpoints.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastRoster pushes the full roster to everyone watching the game.
// Sent after joins and position updates.
func (b *Broadcaster) BroadcastRoster(gameID model.GameID, players []*model.Player) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(response.PlayersFromModel(players))
	if err != nil {
		b.logger.Error("sse failed to encode roster",
			slog.String("game_id", string(gameID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent("roster", data)
}

// BroadcastChat announces a new chat message. Open-channel messages go out
// in full; detectives-channel messages are announced without their body so
// the stream never shows Mr. X what the list endpoint would withhold.
// Detectives re-fetch through the list endpoint, where the role filter
// applies as usual.
func (b *Broadcaster) BroadcastChat(msg *model.ChatMessage) {
	hub := b.hubManager.GetHub(msg.GameID)
	if hub == nil {
		return
	}

	if msg.Channel != model.ChannelAll {
		hub.BroadcastEvent("chat", []byte(`{"channel":"detectives"}`))
		return
	}

	data, err := json.Marshal(response.ChatMessageFromModel(msg))
	if err != nil {
		b.logger.Error("sse failed to encode chat message",
			slog.String("game_id", string(msg.GameID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent("chat", data)
}

// BroadcastBoundary signals that the game area changed; clients re-fetch it
func (b *Broadcaster) BroadcastBoundary(gameID model.GameID) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent("boundary", []byte(`{"changed":true}`))
}
