package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsbot/repository/testutil"
)

func TestChannelRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewChannelRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		channels, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, channels)
	})

	t.Run("create and list", func(t *testing.T) {
		ch := testutil.CreateTestGateChannel("starsnews")
		created, err := repo.Create(ctx, ch)
		require.NoError(t, err)
		assert.True(t, created)
		assert.False(t, ch.CreatedAt.IsZero())

		dup, err := repo.Create(ctx, testutil.CreateTestGateChannel("starsnews"))
		require.NoError(t, err)
		assert.False(t, dup)

		channels, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, channels, 1)
		assert.Equal(t, "@starsnews", channels[0].ChannelID)
		assert.Equal(t, "https://t.me/starsnews", channels[0].Link)
	})

	t.Run("delete", func(t *testing.T) {
		removed, err := repo.Delete(ctx, "@starsnews")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Delete(ctx, "@starsnews")
		require.NoError(t, err)
		assert.False(t, removed)
	})
}
