package redis

import (
	"fmt"

	"github.com/manhuntgame/manhunt/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "manhunt"

// Key generation functions for each entity type

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// mrxKey returns the Redis key holding the game's Mr. X claim.
// The slot is claimed with SETNX so only one join can ever win it.
func mrxKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s:mrx", keyPrefix, id)
}

// playerKey returns the Redis key for a Player
func playerKey(gameID model.GameID, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s:%s", keyPrefix, gameID, playerID)
}

// rosterKey returns the Redis key for the LIST of player keys in join order
func rosterKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:roster:%s", keyPrefix, gameID)
}

// chatKey returns the Redis key for the LIST of chat messages, oldest first
func chatKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:chat:%s", keyPrefix, gameID)
}

// boundaryKey returns the Redis key for the game boundary GeoJSON
func boundaryKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:boundary:%s", keyPrefix, gameID)
}
