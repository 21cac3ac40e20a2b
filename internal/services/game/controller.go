package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/manhuntgame/manhunt/internal/dependencies/clock"
	"github.com/manhuntgame/manhunt/internal/dependencies/random"
	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/storage"
)

// Controller owns game sessions: code allocation, the roster, role and
// color assignment, and position updates.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateGame allocates a fresh game code and persists an empty game
func (c *Controller) CreateGame(ctx context.Context) (*model.Game, error) {
	for {
		code := model.GameID(c.random.String(model.GameIDLength, model.GameIDAlphabet))

		exists, err := c.storage.GameExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		game := &model.Game{
			ID:        code,
			CreatedAt: c.clock.Now(),
		}
		err = c.storage.CreateGame(ctx, game)
		if errors.Is(err, model.ErrGameExists) {
			// Lost a race for the code against another creator; roll again
			continue
		}
		if err != nil {
			return nil, err
		}

		c.logger.Info("game created", slog.String("game_id", string(code)))
		return game, nil
	}
}

// GetGame retrieves a game by its code
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// JoinGame adds a player to a game, creating the game first when no code is
// supplied. The requested role resolves to detective unless it is exactly
// "mr_x"; a second mr_x request fails with model.ErrMrXTaken rather than
// silently downgrading the caller.
func (c *Controller) JoinGame(ctx context.Context, name, requestedRole, rawGameID string) (*model.Player, error) {
	cleanName := strings.TrimSpace(name)
	if cleanName == "" {
		return nil, model.ErrNameRequired
	}

	gameID := model.NormalizeGameID(rawGameID)
	if gameID == "" {
		game, err := c.CreateGame(ctx)
		if err != nil {
			return nil, err
		}
		gameID = game.ID
	} else {
		if _, err := c.storage.GetGame(ctx, gameID); err != nil {
			return nil, err
		}
	}

	role := model.ResolveRole(requestedRole)

	var color string
	if role == model.RoleDetective {
		roster, err := c.storage.ListPlayers(ctx, gameID)
		if err != nil {
			return nil, err
		}
		color = pickColor(roster)
	}

	player := &model.Player{
		ID:       model.PlayerID(uuid.NewString()),
		GameID:   gameID,
		Name:     cleanName,
		Role:     role,
		Color:    color,
		Route:    []model.RoutePoint{},
		JoinedAt: c.clock.Now(),
	}

	if err := c.storage.AppendPlayer(ctx, player); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(player.ID)),
		slog.String("role", string(role)))
	return player, nil
}

// ListPlayers returns the full roster for a game. Every position is
// included, Mr. X's too; concealment is left to the clients.
func (c *Controller) ListPlayers(ctx context.Context, gameID model.GameID) ([]*model.Player, error) {
	return c.storage.ListPlayers(ctx, gameID)
}

// UpdatePosition overwrites a player's last known position. The durable
// backends keep only the latest sample; the in-memory store also appends
// to the route history.
func (c *Controller) UpdatePosition(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) error {
	if !pos.Valid() {
		return model.ErrInvalidPosition
	}
	return c.storage.UpdatePlayerPosition(ctx, gameID, playerID, pos, c.clock.Now())
}

// pickColor scans the palette in order for the first color no detective in
// the roster holds yet. With the palette exhausted it recycles by roster
// index, which can collide with an existing detective's color.
func pickColor(roster []*model.Player) string {
	used := make(map[string]bool)
	for _, p := range roster {
		if p.Role == model.RoleDetective && p.Color != "" {
			used[p.Color] = true
		}
	}
	for _, color := range model.DetectiveColors {
		if !used[color] {
			return color
		}
	}
	return model.DetectiveColors[len(roster)%len(model.DetectiveColors)]
}
