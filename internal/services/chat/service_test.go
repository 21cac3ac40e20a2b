package chat

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/manhuntgame/manhunt/internal/dependencies/mocks"
	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/storage/memory"
	"github.com/manhuntgame/manhunt/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context

	gameID    model.GameID
	detective *model.Player
	mrX       *model.Player
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	s.gameID = "ABC234"
	err := s.storage.CreateGame(s.ctx, &model.Game{ID: s.gameID, CreatedAt: s.clock.Now()})
	s.Require().NoError(err)

	s.mrX = &model.Player{
		ID:       "mrx-1",
		GameID:   s.gameID,
		Name:     "Alice",
		Role:     model.RoleMrX,
		JoinedAt: s.clock.Now(),
	}
	s.Require().NoError(s.storage.AppendPlayer(s.ctx, s.mrX))

	s.detective = &model.Player{
		ID:       "det-1",
		GameID:   s.gameID,
		Name:     "Bob",
		Role:     model.RoleDetective,
		Color:    "blue",
		JoinedAt: s.clock.Now(),
	}
	s.Require().NoError(s.storage.AppendPlayer(s.ctx, s.detective))
}

// Send tests

func (s *ServiceSuite) TestSendToOpenChannel() {
	msg, err := s.service.Send(s.ctx, s.gameID, s.mrX.ID, "Alice", "hello", "")
	s.Require().NoError(err)

	s.Equal(model.ChannelAll, msg.Channel)
	s.Equal("hello", msg.Message)
	s.Equal(s.clock.Now(), msg.CreatedAt)
	s.NotEmpty(msg.ID)
}

func (s *ServiceSuite) TestSendAnonymousToOpenChannel() {
	msg, err := s.service.Send(s.ctx, s.gameID, "", "Spectator", "hi all", "all")
	s.Require().NoError(err)
	s.Equal(model.ChannelAll, msg.Channel)
}

func (s *ServiceSuite) TestSendTrimsSenderAndMessage() {
	msg, err := s.service.Send(s.ctx, s.gameID, s.detective.ID, "  Bob  ", "  over here  ", "")
	s.Require().NoError(err)
	s.Equal("Bob", msg.SenderName)
	s.Equal("over here", msg.Message)
}

func (s *ServiceSuite) TestSendFailsIfSenderEmpty() {
	_, err := s.service.Send(s.ctx, s.gameID, s.detective.ID, "   ", "hello", "")
	s.ErrorIs(err, model.ErrSenderRequired)
}

func (s *ServiceSuite) TestSendFailsIfMessageEmpty() {
	_, err := s.service.Send(s.ctx, s.gameID, s.detective.ID, "Bob", "   ", "")
	s.ErrorIs(err, model.ErrMessageRequired)
}

func (s *ServiceSuite) TestSendUnknownChannelBecomesOpen() {
	msg, err := s.service.Send(s.ctx, s.gameID, s.mrX.ID, "Alice", "hello", "DETECTIVES")
	s.Require().NoError(err)
	// Only the exact lowercase string selects the private channel
	s.Equal(model.ChannelAll, msg.Channel)
}

// Detectives channel authorization

func (s *ServiceSuite) TestDetectiveCanSendToDetectivesChannel() {
	msg, err := s.service.Send(s.ctx, s.gameID, s.detective.ID, "Bob", "he went north", "detectives")
	s.Require().NoError(err)
	s.Equal(model.ChannelDetectives, msg.Channel)
}

func (s *ServiceSuite) TestMrXCannotSendToDetectivesChannel() {
	_, err := s.service.Send(s.ctx, s.gameID, s.mrX.ID, "Alice", "where am I", "detectives")
	s.ErrorIs(err, model.ErrDetectivesOnly)
}

func (s *ServiceSuite) TestAnonymousCannotSendToDetectivesChannel() {
	_, err := s.service.Send(s.ctx, s.gameID, "", "Ghost", "boo", "detectives")
	s.ErrorIs(err, model.ErrDetectivesOnly)
}

func (s *ServiceSuite) TestUnknownPlayerCannotSendToDetectivesChannel() {
	_, err := s.service.Send(s.ctx, s.gameID, "nonexistent", "Eve", "psst", "detectives")
	s.ErrorIs(err, model.ErrDetectivesOnly)
}

// List tests

func (s *ServiceSuite) TestListForDetectiveSeesBothChannels() {
	_, _ = s.service.Send(s.ctx, s.gameID, s.mrX.ID, "Alice", "public", "all")
	_, _ = s.service.Send(s.ctx, s.gameID, s.detective.ID, "Bob", "private", "detectives")

	messages, err := s.service.List(s.ctx, s.gameID, "detective")
	s.Require().NoError(err)
	s.Len(messages, 2)
}

func (s *ServiceSuite) TestListForMrXSeesOpenChannelOnly() {
	_, _ = s.service.Send(s.ctx, s.gameID, s.mrX.ID, "Alice", "public", "all")
	_, _ = s.service.Send(s.ctx, s.gameID, s.detective.ID, "Bob", "private", "detectives")

	messages, err := s.service.List(s.ctx, s.gameID, "mr_x")
	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.Equal(model.ChannelAll, messages[0].Channel)
}

func (s *ServiceSuite) TestListWithoutRoleSeesOpenChannelOnly() {
	_, _ = s.service.Send(s.ctx, s.gameID, s.detective.ID, "Bob", "private", "detectives")

	messages, err := s.service.List(s.ctx, s.gameID, "")
	s.Require().NoError(err)
	s.Empty(messages)
}

func (s *ServiceSuite) TestListIsAscendingByCreation() {
	for i := 0; i < 3; i++ {
		_, err := s.service.Send(s.ctx, s.gameID, s.detective.ID, "Bob", fmt.Sprintf("msg-%d", i), "all")
		s.Require().NoError(err)
		s.clock.Advance(time.Second)
	}

	messages, _ := s.service.List(s.ctx, s.gameID, "")
	s.Require().Len(messages, 3)
	for i := 0; i < 2; i++ {
		s.True(messages[i].CreatedAt.Before(messages[i+1].CreatedAt))
	}
}

func (s *ServiceSuite) TestListCapsAtLimit() {
	for i := 0; i < model.ChatListLimit+10; i++ {
		_, err := s.service.Send(s.ctx, s.gameID, s.detective.ID, "Bob", fmt.Sprintf("msg-%d", i), "all")
		s.Require().NoError(err)
	}

	messages, _ := s.service.List(s.ctx, s.gameID, "")
	s.Len(messages, model.ChatListLimit)
}
