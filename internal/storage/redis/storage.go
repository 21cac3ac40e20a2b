package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Route history is not retained; only the last known position survives.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrGameExists
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	exists, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Roster operations

func (s *Storage) AppendPlayer(ctx context.Context, player *model.Player) error {
	exists, err := s.GameExists(ctx, player.GameID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrGameNotFound
	}

	// Claim the Mr. X slot before writing anything. SETNX makes the claim
	// atomic; the loser of a concurrent double-join sees the slot taken.
	if player.Role == model.RoleMrX {
		ok, err := s.client.SetNX(ctx, mrxKey(player.GameID), string(player.ID), s.cfg.GameTTL).Result()
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrMrXTaken
		}
	}

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Pipeline the player record and the roster index together
	roster := rosterKey(player.GameID)
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.GameID, player.ID), data, s.cfg.GameTTL)
	pipe.RPush(ctx, roster, string(player.ID))
	pipe.Expire(ctx, roster, s.cfg.GameTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(gameID, playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			exists, existsErr := s.GameExists(ctx, gameID)
			if existsErr != nil {
				return nil, existsErr
			}
			if !exists {
				return nil, model.ErrGameNotFound
			}
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context, gameID model.GameID) ([]*model.Player, error) {
	exists, err := s.GameExists(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrGameNotFound
	}

	ids, err := s.client.LRange(ctx, rosterKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(gameID, model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Player record may have expired ahead of the index
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue
		}
		players = append(players, &player)
	}

	return players, nil
}

func (s *Storage) UpdatePlayerPosition(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position, at time.Time) error {
	player, err := s.GetPlayer(ctx, gameID, playerID)
	if err != nil {
		return err
	}

	player.Position = &pos
	player.PositionAt = at

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(gameID, playerID), data, s.cfg.GameTTL).Err()
}

// Chat operations

func (s *Storage) AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	key := chatKey(msg.GameID)
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.cfg.GameTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListChatMessages(ctx context.Context, gameID model.GameID, channels []model.Channel, limit int) ([]*model.ChatMessage, error) {
	values, err := s.client.LRange(ctx, chatKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	wanted := make(map[model.Channel]bool, len(channels))
	for _, c := range channels {
		wanted[c] = true
	}

	var messages []*model.ChatMessage
	for _, val := range values {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(val), &msg); err != nil {
			continue
		}
		if !wanted[msg.Channel] {
			continue
		}
		messages = append(messages, &msg)
		if len(messages) >= limit {
			break
		}
	}
	return messages, nil
}

// Boundary operations

func (s *Storage) SaveBoundary(ctx context.Context, gameID model.GameID, boundary json.RawMessage) error {
	return s.client.Set(ctx, boundaryKey(gameID), []byte(boundary), s.cfg.GameTTL).Err()
}

func (s *Storage) GetBoundary(ctx context.Context, gameID model.GameID) (json.RawMessage, error) {
	data, err := s.client.Get(ctx, boundaryKey(gameID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBoundaryNotFound
		}
		return nil, err
	}
	return json.RawMessage(data), nil
}
