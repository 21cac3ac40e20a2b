package response

import (
	"encoding/json"
	"time"

	"github.com/manhuntgame/manhunt/internal/model"
)

// CreateGameResponse is the response for creating a game
type CreateGameResponse struct {
	GameID string `json:"gameId"`
}

// JoinResponse is the response after joining a game. Color is null for
// Mr. X.
type JoinResponse struct {
	PlayerID string  `json:"playerId"`
	Role     string  `json:"role"`
	Color    *string `json:"color"`
	GameID   string  `json:"gameId"`
}

// JoinResponseFromModel converts a freshly appended player
func JoinResponseFromModel(p *model.Player) JoinResponse {
	return JoinResponse{
		PlayerID: string(p.ID),
		Role:     string(p.Role),
		Color:    colorOrNull(p.Color),
		GameID:   string(p.GameID),
	}
}

// Player represents a roster entry. Position is the raw [lng, lat] pair as
// last reported, or null before the first report.
type Player struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Role     string          `json:"role"`
	Color    *string         `json:"color"`
	Position *model.Position `json:"position"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       string(p.ID),
		Name:     p.Name,
		Role:     string(p.Role),
		Color:    colorOrNull(p.Color),
		Position: p.Position,
	}
}

// PlayersFromModel converts a roster
func PlayersFromModel(players []*model.Player) []Player {
	result := make([]Player, len(players))
	for i, p := range players {
		result[i] = PlayerFromModel(p)
	}
	return result
}

// ChatMessage represents a chat record. Field names follow the stored
// column names, which clients already depend on.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	Channel    string    `json:"channel"`
	PlayerID   *string   `json:"player_id"`
}

// ChatMessageFromModel converts a model.ChatMessage
func ChatMessageFromModel(m *model.ChatMessage) ChatMessage {
	var playerID *string
	if m.PlayerID != "" {
		id := string(m.PlayerID)
		playerID = &id
	}
	return ChatMessage{
		ID:         m.ID,
		SenderName: m.SenderName,
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
		Channel:    string(m.Channel),
		PlayerID:   playerID,
	}
}

// ChatMessagesFromModel converts a message list
func ChatMessagesFromModel(messages []*model.ChatMessage) []ChatMessage {
	result := make([]ChatMessage, len(messages))
	for i, m := range messages {
		result[i] = ChatMessageFromModel(m)
	}
	return result
}

// BoundaryResponse wraps the stored GeoJSON; Boundary is null when the game
// has no configured area.
type BoundaryResponse struct {
	Boundary json.RawMessage `json:"boundary"`
}

// OKResponse acknowledges a write with no payload
type OKResponse struct {
	OK bool `json:"ok"`
}

func colorOrNull(color string) *string {
	if color == "" {
		return nil
	}
	return &color
}
