package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manhuntgame/manhunt/internal/model"
)

func getTestDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	return url
}

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	url := getTestDatabaseURL(t)
	ctx := context.Background()

	s, err := New(ctx, url)
	require.NoError(t, err)

	// Clean up tables for test isolation
	_, err = s.pool.Exec(ctx, "DELETE FROM chat_messages; DELETE FROM game_boundaries; DELETE FROM players; DELETE FROM games")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func createTestGame(t *testing.T, s *Storage, id model.GameID) {
	t.Helper()
	err := s.CreateGame(context.Background(), &model.Game{ID: id, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
}

func TestStorage_CreateAndGetGame(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")

	game, err := s.GetGame(ctx, "ABC234")
	require.NoError(t, err)
	assert.Equal(t, model.GameID("ABC234"), game.ID)

	exists, err := s.GameExists(ctx, "ABC234")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStorage_CreateGameDuplicate(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")

	err := s.CreateGame(ctx, &model.Game{ID: "ABC234", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, model.ErrGameExists)
}

func TestStorage_GetGameNotFound(t *testing.T) {
	s := setupTestStorage(t)

	_, err := s.GetGame(context.Background(), "NOSUCH")
	assert.ErrorIs(t, err, model.ErrGameNotFound)
}

func TestStorage_AppendAndListPlayers(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")

	base := time.Now().UTC()
	for i, name := range []string{"Alice", "Bob"} {
		player := &model.Player{
			ID:       model.PlayerID([]string{"p1", "p2"}[i]),
			GameID:   "ABC234",
			Name:     name,
			Role:     model.RoleDetective,
			Color:    []string{"blue", "green"}[i],
			JoinedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.AppendPlayer(ctx, player))
	}

	players, err := s.ListPlayers(ctx, "ABC234")
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "Bob", players[1].Name)
	assert.Nil(t, players[0].Position)
}

func TestStorage_AppendPlayerUnknownGame(t *testing.T) {
	s := setupTestStorage(t)

	player := &model.Player{ID: "p1", GameID: "NOSUCH", Name: "Alice", Role: model.RoleDetective, JoinedAt: time.Now()}
	err := s.AppendPlayer(context.Background(), player)
	assert.ErrorIs(t, err, model.ErrGameNotFound)
}

func TestStorage_SecondMrXViolatesConstraint(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")

	first := &model.Player{ID: "mrx-1", GameID: "ABC234", Name: "Alice", Role: model.RoleMrX, JoinedAt: time.Now()}
	require.NoError(t, s.AppendPlayer(ctx, first))

	second := &model.Player{ID: "mrx-2", GameID: "ABC234", Name: "Mallory", Role: model.RoleMrX, JoinedAt: time.Now()}
	err := s.AppendPlayer(ctx, second)
	assert.ErrorIs(t, err, model.ErrMrXTaken)
}

func TestStorage_MrXAllowedInDifferentGames(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")
	createTestGame(t, s, "DEF567")

	require.NoError(t, s.AppendPlayer(ctx, &model.Player{ID: "mrx-1", GameID: "ABC234", Name: "Alice", Role: model.RoleMrX, JoinedAt: time.Now()}))
	require.NoError(t, s.AppendPlayer(ctx, &model.Player{ID: "mrx-2", GameID: "DEF567", Name: "Bob", Role: model.RoleMrX, JoinedAt: time.Now()}))
}

func TestStorage_UpdatePlayerPosition(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")
	require.NoError(t, s.AppendPlayer(ctx, &model.Player{ID: "p1", GameID: "ABC234", Name: "Alice", Role: model.RoleDetective, JoinedAt: time.Now()}))

	pos := model.NewPosition(11.57549, 48.13743)
	at := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, s.UpdatePlayerPosition(ctx, "ABC234", "p1", pos, at))

	player, err := s.GetPlayer(ctx, "ABC234", "p1")
	require.NoError(t, err)
	require.NotNil(t, player.Position)
	assert.InDelta(t, 11.57549, player.Position.Lng(), 1e-9)
	assert.InDelta(t, 48.13743, player.Position.Lat(), 1e-9)
	assert.True(t, at.Equal(player.PositionAt))
}

func TestStorage_UpdatePlayerPositionNotFound(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")

	err := s.UpdatePlayerPosition(ctx, "ABC234", "nonexistent", model.NewPosition(11.5, 48.1), time.Now())
	assert.ErrorIs(t, err, model.ErrPlayerNotFound)
}

func TestStorage_ChatMessagesAscendingAndFiltered(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")

	base := time.Now().UTC()
	msgs := []*model.ChatMessage{
		{ID: "m1", GameID: "ABC234", SenderName: "Alice", Message: "public", Channel: model.ChannelAll, CreatedAt: base},
		{ID: "m2", GameID: "ABC234", PlayerID: "p1", SenderName: "Bob", Message: "private", Channel: model.ChannelDetectives, CreatedAt: base.Add(time.Second)},
		{ID: "m3", GameID: "ABC234", SenderName: "Alice", Message: "again", Channel: model.ChannelAll, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, msg := range msgs {
		require.NoError(t, s.AppendChatMessage(ctx, msg))
	}

	open, err := s.ListChatMessages(ctx, "ABC234", []model.Channel{model.ChannelAll}, 100)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "public", open[0].Message)
	assert.Equal(t, "again", open[1].Message)
	assert.Empty(t, open[0].PlayerID)

	both, err := s.ListChatMessages(ctx, "ABC234", []model.Channel{model.ChannelAll, model.ChannelDetectives}, 100)
	require.NoError(t, err)
	require.Len(t, both, 3)
	assert.Equal(t, model.PlayerID("p1"), both[1].PlayerID)
}

func TestStorage_ChatMessagesLimit(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		msg := &model.ChatMessage{
			ID: string(rune('a' + i)), GameID: "ABC234", SenderName: "Alice",
			Message: "msg", Channel: model.ChannelAll, CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.AppendChatMessage(ctx, msg))
	}

	messages, err := s.ListChatMessages(ctx, "ABC234", []model.Channel{model.ChannelAll}, 3)
	require.NoError(t, err)
	assert.Len(t, messages, 3)
}

func TestStorage_BoundaryUpsert(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createTestGame(t, s, "ABC234")

	_, err := s.GetBoundary(ctx, "ABC234")
	assert.ErrorIs(t, err, model.ErrBoundaryNotFound)

	require.NoError(t, s.SaveBoundary(ctx, "ABC234", json.RawMessage(`{"v": 1}`)))
	require.NoError(t, s.SaveBoundary(ctx, "ABC234", json.RawMessage(`{"v": 2}`)))

	boundary, err := s.GetBoundary(ctx, "ABC234")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v": 2}`, string(boundary))
}
