package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelService(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewChannelService(store, testAdmin(adminID))

	t.Run("non-admin cannot add", func(t *testing.T) {
		_, err := svc.Add(ctx, 1, "News", "https://t.me/starsnews")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("invalid link", func(t *testing.T) {
		_, err := svc.Add(ctx, adminID, "News", "https://example.com/starsnews")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invite and post links are not stored", func(t *testing.T) {
		for _, link := range []string{
			"https://t.me/joinchat/AAAAAEabcdef",
			"https://t.me/c/1234567890/55",
			"https://t.me/starsnews/123",
		} {
			_, err := svc.Add(ctx, adminID, "News", link)
			assert.ErrorIs(t, err, ErrInvalidInput, link)
		}

		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.Add(ctx, adminID, "  ", "https://t.me/starsnews")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("add", func(t *testing.T) {
		ch, err := svc.Add(ctx, adminID, " News ", "https://t.me/starsnews")
		require.NoError(t, err)
		assert.Equal(t, "@starsnews", ch.ChannelID)
		assert.Equal(t, "News", ch.Name)
		assert.Equal(t, "https://t.me/starsnews", ch.Link)

		_, err = svc.Add(ctx, adminID, "Again", "https://t.me/starsnews")
		assert.ErrorIs(t, err, ErrAlreadyExists)

		list, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("remove", func(t *testing.T) {
		assert.ErrorIs(t, svc.Remove(ctx, 1, "@starsnews"), ErrUnauthorized)

		require.NoError(t, svc.Remove(ctx, adminID, "@starsnews"))
		assert.ErrorIs(t, svc.Remove(ctx, adminID, "@starsnews"), ErrNotFound)

		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
