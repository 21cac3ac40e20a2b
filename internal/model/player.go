package model

import "time"

// PlayerID uniquely identifies a player within a game
type PlayerID string

// Role distinguishes the hidden player from the hunters
type Role string

const (
	RoleMrX       Role = "mr_x"
	RoleDetective Role = "detective"
)

// ResolveRole maps a requested role string to a Role.
// Anything other than exactly "mr_x" becomes a detective.
func ResolveRole(requested string) Role {
	if requested == string(RoleMrX) {
		return RoleMrX
	}
	return RoleDetective
}

// DetectiveColors is the fixed palette assigned to detectives, scanned in
// order. Once all eight are taken, colors are recycled by roster index and
// may collide. Mr. X never gets a color.
var DetectiveColors = []string{
	"blue",
	"green",
	"orange",
	"purple",
	"teal",
	"brown",
	"magenta",
	"cyan",
}

// RoutePoint is one historical position sample
type RoutePoint struct {
	At       time.Time
	Position Position
}

// Player represents a game participant
type Player struct {
	ID     PlayerID
	GameID GameID
	Name   string
	Role   Role
	// Color is empty for Mr. X
	Color string
	// Position is the last reported position, nil before the first report
	Position   *Position
	PositionAt time.Time
	// Route is the historical position trail. Only the in-memory store
	// retains it; durable backends keep the last position only.
	Route    []RoutePoint
	JoinedAt time.Time
}

// IsDetective reports whether the player is on the hunting side
func (p *Player) IsDetective() bool {
	return p.Role == RoleDetective
}
