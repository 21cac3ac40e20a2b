package model

import (
	"strings"
	"time"
)

// GameID is a human-readable code players share to join the same game
type GameID string

const (
	// GameIDLength is the length of generated game codes
	GameIDLength = 6
	// GameIDAlphabet is the characters used in game codes.
	// I, O, 0 and 1 are excluded because they are easy to misread.
	GameIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NormalizeGameID upper-cases and trims a game code as entered by a player
func NormalizeGameID(raw string) GameID {
	return GameID(strings.ToUpper(strings.TrimSpace(raw)))
}

// Game represents a single manhunt session. The roster, chat history and
// boundary are stored separately, keyed by the game ID.
type Game struct {
	ID        GameID
	CreatedAt time.Time
}
