package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(context.Background(), Config{})
	require.NoError(t, err)

	assert.NotNil(t, app.Storage)
	assert.NotNil(t, app.GameController)
	assert.NotNil(t, app.ChatService)
	assert.NotNil(t, app.BoundaryService)
	assert.NotNil(t, app.HubManager)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(context.Background(), Config{StorageType: "cassette-tape"})
	assert.Error(t, err)
}

func TestNewRequiresRedisConfig(t *testing.T) {
	_, err := New(context.Background(), Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewRequiresDatabaseURL(t *testing.T) {
	_, err := New(context.Background(), Config{StorageType: StorageTypePostgres})
	assert.Error(t, err)
}

func TestNewForTestingUsesMocks(t *testing.T) {
	app := NewForTesting()

	app.MockRandom.QueueString("ABC234")
	game, err := app.GameController.CreateGame(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ABC234", string(game.ID))
	assert.Equal(t, app.MockClock.Now(), game.CreatedAt)
}
