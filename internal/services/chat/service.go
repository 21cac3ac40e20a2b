package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/manhuntgame/manhunt/internal/dependencies/clock"
	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/storage"
)

// Service handles in-game chat: channel normalization, the detectives-only
// authorization check, and the capped ascending history read.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new chat Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Send appends an immutable chat record with a server-assigned timestamp.
// Posting to the detectives channel requires a player ID that resolves to a
// detective in this game; Mr. X and anonymous senders are rejected.
func (s *Service) Send(ctx context.Context, gameID model.GameID, playerID model.PlayerID, senderName, message, rawChannel string) (*model.ChatMessage, error) {
	senderName = strings.TrimSpace(senderName)
	if senderName == "" {
		return nil, model.ErrSenderRequired
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, model.ErrMessageRequired
	}

	channel := model.NormalizeChannel(rawChannel)

	if channel == model.ChannelDetectives {
		if playerID == "" {
			return nil, model.ErrDetectivesOnly
		}
		player, err := s.storage.GetPlayer(ctx, gameID, playerID)
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) || errors.Is(err, model.ErrGameNotFound) {
				return nil, model.ErrDetectivesOnly
			}
			return nil, err
		}
		if !player.IsDetective() {
			return nil, model.ErrDetectivesOnly
		}
	}

	msg := &model.ChatMessage{
		ID:         uuid.NewString(),
		GameID:     gameID,
		PlayerID:   playerID,
		SenderName: senderName,
		Message:    message,
		Channel:    channel,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.storage.AppendChatMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("chat message sent",
		slog.String("game_id", string(gameID)),
		slog.String("channel", string(channel)))
	return msg, nil
}

// List returns up to the 100 oldest messages, ascending by creation time.
// Detectives see both channels; everyone else sees the open channel only.
// This filter is the only confidentiality the chat system has.
func (s *Service) List(ctx context.Context, gameID model.GameID, requesterRole string) ([]*model.ChatMessage, error) {
	channels := []model.Channel{model.ChannelAll}
	if strings.ToLower(requesterRole) == string(model.RoleDetective) {
		channels = append(channels, model.ChannelDetectives)
	}
	return s.storage.ListChatMessages(ctx, gameID, channels, model.ChatListLimit)
}
