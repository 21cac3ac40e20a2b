package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/manhuntgame/manhunt/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations are passive stores except for one invariant they must
// enforce themselves: AppendPlayer with a mr_x player must fail with
// model.ErrMrXTaken if the game already has one, atomically with the
// insert. A separate read-then-write would let two concurrent joins both
// claim the slot.
type Storage interface {
	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GameExists(ctx context.Context, id model.GameID) (bool, error)

	// Roster operations
	AppendPlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context, gameID model.GameID) ([]*model.Player, error)
	UpdatePlayerPosition(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position, at time.Time) error

	// Chat operations
	AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error
	// ListChatMessages returns the oldest messages on the given channels,
	// ascending by creation time, capped at limit.
	ListChatMessages(ctx context.Context, gameID model.GameID, channels []model.Channel, limit int) ([]*model.ChatMessage, error)

	// Boundary operations. The boundary is opaque GeoJSON to the store.
	SaveBoundary(ctx context.Context, gameID model.GameID, boundary json.RawMessage) error
	GetBoundary(ctx context.Context, gameID model.GameID) (json.RawMessage, error)
}
