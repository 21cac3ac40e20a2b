package request

import "encoding/json"

// JoinRequest is the request body for joining (or implicitly creating) a game
type JoinRequest struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	// GameID is optional; when empty a new game is created for the joiner
	GameID string `json:"gameId,omitempty"`
}

// UpdatePositionRequest is the request body for reporting a GPS sample.
// Position is [longitude, latitude] in GeoJSON axis order, not map order.
type UpdatePositionRequest struct {
	PlayerID string    `json:"playerId"`
	GameID   string    `json:"gameId"`
	Position []float64 `json:"position"`
}

// SendChatRequest is the request body for posting a chat message
type SendChatRequest struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId,omitempty"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Channel  string `json:"channel,omitempty"`
}

// SetBoundaryRequest is the request body for storing a game-area boundary
type SetBoundaryRequest struct {
	GameID   string          `json:"gameId"`
	Boundary json.RawMessage `json:"boundary"`
}
