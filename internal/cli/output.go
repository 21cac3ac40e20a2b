package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateGameResult:
		o.printCreateGameResult(v)
	case JoinResult:
		o.printJoinResult(v)
	case []Player:
		o.printPlayers(v)
	case []ChatMessage:
		o.printChatMessages(v)
	case BoundaryResult:
		o.printBoundaryResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// CreateGameResult response type (matches API)
type CreateGameResult struct {
	GameID string `json:"gameId"`
}

// JoinResult response type
type JoinResult struct {
	PlayerID string  `json:"playerId"`
	Role     string  `json:"role"`
	Color    *string `json:"color"`
	GameID   string  `json:"gameId"`
}

// Player response type
type Player struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Role     string     `json:"role"`
	Color    *string    `json:"color"`
	Position *[]float64 `json:"position"`
}

// ChatMessage response type
type ChatMessage struct {
	ID         string  `json:"id"`
	SenderName string  `json:"sender_name"`
	Message    string  `json:"message"`
	CreatedAt  string  `json:"created_at"`
	Channel    string  `json:"channel"`
	PlayerID   *string `json:"player_id"`
}

// BoundaryResult response type
type BoundaryResult struct {
	Boundary json.RawMessage `json:"boundary"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printCreateGameResult(r CreateGameResult) {
	fmt.Printf("Game: %s\n", r.GameID)
}

func (o *Output) printJoinResult(r JoinResult) {
	fmt.Printf("Joined game %s as %s\n", r.GameID, r.Role)
	fmt.Printf("Player ID: %s\n", r.PlayerID)
	if r.Color != nil {
		fmt.Printf("Color: %s\n", *r.Color)
	}
}

func (o *Output) printPlayers(players []Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		colorStr := ""
		if p.Color != nil {
			colorStr = " " + *p.Color
		}
		posStr := "no position yet"
		if p.Position != nil && len(*p.Position) == 2 {
			// Positions are stored (lng, lat); print the familiar lat, lng
			posStr = fmt.Sprintf("%.5f, %.5f", (*p.Position)[1], (*p.Position)[0])
		}
		fmt.Printf("  - %s [%s%s] %s (%s)\n", p.Name, p.Role, colorStr, posStr, p.ID)
	}
}

func (o *Output) printChatMessages(messages []ChatMessage) {
	for _, m := range messages {
		channelStr := ""
		if m.Channel == "detectives" {
			channelStr = " (detectives)"
		}
		fmt.Printf("[%s] %s%s: %s\n", m.CreatedAt, m.SenderName, channelStr, m.Message)
	}
}

func (o *Output) printBoundaryResult(r BoundaryResult) {
	if r.Boundary == nil || string(r.Boundary) == "null" {
		fmt.Println("No boundary set")
		return
	}
	o.printJSON(json.RawMessage(r.Boundary))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
