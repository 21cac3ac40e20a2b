package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Unlike the durable backends it retains each player's route history.
type Storage struct {
	mu sync.RWMutex

	games      map[model.GameID]*model.Game
	players    map[model.GameID][]*model.Player
	chat       map[model.GameID][]*model.ChatMessage
	boundaries map[model.GameID]json.RawMessage
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:      make(map[model.GameID]*model.Game),
		players:    make(map[model.GameID][]*model.Player),
		chat:       make(map[model.GameID][]*model.ChatMessage),
		boundaries: make(map[model.GameID]json.RawMessage),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[game.ID]; ok {
		return model.ErrGameExists
	}
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[id]
	return ok, nil
}

// Roster operations

func (s *Storage) AppendPlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[player.GameID]; !ok {
		return model.ErrGameNotFound
	}

	// The mr_x check and the insert share the lock, so concurrent joins
	// cannot both claim the slot.
	if player.Role == model.RoleMrX {
		for _, p := range s.players[player.GameID] {
			if p.Role == model.RoleMrX {
				return model.ErrMrXTaken
			}
		}
	}

	s.players[player.GameID] = append(s.players[player.GameID], player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.games[gameID]; !ok {
		return nil, model.ErrGameNotFound
	}
	for _, p := range s.players[gameID] {
		if p.ID == playerID {
			return p, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (s *Storage) ListPlayers(ctx context.Context, gameID model.GameID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.games[gameID]; !ok {
		return nil, model.ErrGameNotFound
	}
	players := s.players[gameID]
	result := make([]*model.Player, len(players))
	copy(result, players)
	return result, nil
}

func (s *Storage) UpdatePlayerPosition(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[gameID]; !ok {
		return model.ErrGameNotFound
	}
	for _, p := range s.players[gameID] {
		if p.ID == playerID {
			p.Position = &pos
			p.PositionAt = at
			p.Route = append(p.Route, model.RoutePoint{At: at, Position: pos})
			return nil
		}
	}
	return model.ErrPlayerNotFound
}

// Chat operations

func (s *Storage) AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat[msg.GameID] = append(s.chat[msg.GameID], msg)
	return nil
}

func (s *Storage) ListChatMessages(ctx context.Context, gameID model.GameID, channels []model.Channel, limit int) ([]*model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[model.Channel]bool, len(channels))
	for _, c := range channels {
		wanted[c] = true
	}

	var result []*model.ChatMessage
	for _, msg := range s.chat[gameID] {
		if !wanted[msg.Channel] {
			continue
		}
		result = append(result, msg)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// Boundary operations

func (s *Storage) SaveBoundary(ctx context.Context, gameID model.GameID, boundary json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make(json.RawMessage, len(boundary))
	copy(stored, boundary)
	s.boundaries[gameID] = stored
	return nil
}

func (s *Storage) GetBoundary(ctx context.Context, gameID model.GameID) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	boundary, ok := s.boundaries[gameID]
	if !ok {
		return nil, model.ErrBoundaryNotFound
	}
	return boundary, nil
}
