package model

import "time"

// Channel scopes who can read a chat message
type Channel string

const (
	// ChannelAll is visible to every participant
	ChannelAll Channel = "all"
	// ChannelDetectives is visible to detectives only
	ChannelDetectives Channel = "detectives"
)

// NormalizeChannel coerces arbitrary input to a valid channel.
// Anything other than exactly "detectives" falls back to the open channel.
func NormalizeChannel(raw string) Channel {
	if raw == string(ChannelDetectives) {
		return ChannelDetectives
	}
	return ChannelAll
}

// ChatListLimit caps how many messages a single list call returns
const ChatListLimit = 100

// ChatMessage is an immutable chat record. SenderName is free text and is
// not required to match the registered player name. PlayerID is empty for
// anonymous senders.
type ChatMessage struct {
	ID         string
	GameID     GameID
	PlayerID   PlayerID
	SenderName string
	Message    string
	Channel    Channel
	CreatedAt  time.Time
}
