package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS players (
    id TEXT PRIMARY KEY,
    game_id TEXT NOT NULL REFERENCES games(id),
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    lng DOUBLE PRECISION,
    lat DOUBLE PRECISION,
    position_at TIMESTAMPTZ,
    joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_players_game_id ON players(game_id);
CREATE UNIQUE INDEX IF NOT EXISTS uniq_players_mrx_per_game
    ON players(game_id) WHERE role = 'mr_x';
CREATE TABLE IF NOT EXISTS chat_messages (
    id TEXT PRIMARY KEY,
    game_id TEXT NOT NULL,
    player_id TEXT,
    sender_name TEXT NOT NULL,
    message TEXT NOT NULL,
    channel TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_game_created
    ON chat_messages(game_id, created_at);
CREATE TABLE IF NOT EXISTS game_boundaries (
    game_id TEXT PRIMARY KEY,
    boundary JSONB NOT NULL
);
`

// Storage implements the storage interface using PostgreSQL. The partial
// unique index on players(game_id) WHERE role = 'mr_x' makes the Mr. X
// precondition a database constraint rather than an application-level check.
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and initializes the schema
func New(ctx context.Context, databaseURL string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

// Close releases database resources
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO games (id, created_at) VALUES ($1, $2)`,
		string(game.ID), game.CreatedAt)
	if isUniqueViolation(err) {
		return model.ErrGameExists
	}
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, created_at FROM games WHERE id = $1`, string(id))

	var game model.Game
	if err := row.Scan(&game.ID, &game.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM games WHERE id = $1)`, string(id)).Scan(&exists)
	return exists, err
}

// Roster operations

func (s *Storage) AppendPlayer(ctx context.Context, player *model.Player) error {
	var lng, lat *float64
	var positionAt *time.Time
	if player.Position != nil {
		l, a := player.Position.Lng(), player.Position.Lat()
		lng, lat = &l, &a
		positionAt = &player.PositionAt
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO players (id, game_id, name, role, color, lng, lat, position_at, joined_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(player.ID), string(player.GameID), player.Name, string(player.Role),
		player.Color, lng, lat, positionAt, player.JoinedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation: the mr_x slot is already held
			return model.ErrMrXTaken
		case "23503": // foreign_key_violation: the game row is missing
			return model.ErrGameNotFound
		}
	}
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Player, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, game_id, name, role, color, lng, lat, position_at, joined_at
		 FROM players WHERE id = $1 AND game_id = $2`,
		string(playerID), string(gameID))

	player, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		exists, existsErr := s.GameExists(ctx, gameID)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, model.ErrGameNotFound
		}
		return nil, model.ErrPlayerNotFound
	}
	return player, err
}

func (s *Storage) ListPlayers(ctx context.Context, gameID model.GameID) ([]*model.Player, error) {
	exists, err := s.GameExists(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrGameNotFound
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, game_id, name, role, color, lng, lat, position_at, joined_at
		 FROM players WHERE game_id = $1 ORDER BY joined_at, id`,
		string(gameID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []*model.Player{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (s *Storage) UpdatePlayerPosition(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE players SET lng = $1, lat = $2, position_at = $3
		 WHERE id = $4 AND game_id = $5`,
		pos.Lng(), pos.Lat(), at, string(playerID), string(gameID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		exists, existsErr := s.GameExists(ctx, gameID)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return model.ErrGameNotFound
		}
		return model.ErrPlayerNotFound
	}
	return nil
}

// Chat operations

func (s *Storage) AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	var playerID *string
	if msg.PlayerID != "" {
		id := string(msg.PlayerID)
		playerID = &id
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO chat_messages (id, game_id, player_id, sender_name, message, channel, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, string(msg.GameID), playerID, msg.SenderName, msg.Message,
		string(msg.Channel), msg.CreatedAt)
	return err
}

func (s *Storage) ListChatMessages(ctx context.Context, gameID model.GameID, channels []model.Channel, limit int) ([]*model.ChatMessage, error) {
	names := make([]string, len(channels))
	for i, c := range channels {
		names[i] = string(c)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, game_id, player_id, sender_name, message, channel, created_at
		 FROM chat_messages
		 WHERE game_id = $1 AND channel = ANY($2)
		 ORDER BY created_at ASC
		 LIMIT $3`,
		string(gameID), names, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*model.ChatMessage{}
	for rows.Next() {
		var msg model.ChatMessage
		var playerID *string
		if err := rows.Scan(&msg.ID, &msg.GameID, &playerID, &msg.SenderName,
			&msg.Message, &msg.Channel, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if playerID != nil {
			msg.PlayerID = model.PlayerID(*playerID)
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

// Boundary operations

func (s *Storage) SaveBoundary(ctx context.Context, gameID model.GameID, boundary json.RawMessage) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO game_boundaries (game_id, boundary) VALUES ($1, $2)
		 ON CONFLICT (game_id) DO UPDATE SET boundary = EXCLUDED.boundary`,
		string(gameID), []byte(boundary))
	return err
}

func (s *Storage) GetBoundary(ctx context.Context, gameID model.GameID) (json.RawMessage, error) {
	var boundary []byte
	err := s.pool.QueryRow(ctx,
		`SELECT boundary FROM game_boundaries WHERE game_id = $1`,
		string(gameID)).Scan(&boundary)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBoundaryNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(boundary), nil
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var player model.Player
	var lng, lat *float64
	var positionAt *time.Time
	err := row.Scan(&player.ID, &player.GameID, &player.Name, &player.Role,
		&player.Color, &lng, &lat, &positionAt, &player.JoinedAt)
	if err != nil {
		return nil, err
	}
	if lng != nil && lat != nil {
		pos := model.NewPosition(*lng, *lat)
		player.Position = &pos
		if positionAt != nil {
			player.PositionAt = *positionAt
		}
	}
	return &player, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
