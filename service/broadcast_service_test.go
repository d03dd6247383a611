package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBroadcastService_ContinuesOnError(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seedUser(1, 0)
	store.seedUser(2, 0)
	store.seedUser(3, 0)

	sender := new(MockMessageSender)
	sender.On("SendText", mock.Anything, int64(1), "hello").Return(nil)
	sender.On("SendText", mock.Anything, int64(2), "hello").Return(errors.New("Forbidden: bot was blocked by the user"))
	sender.On("SendText", mock.Anything, int64(3), "hello").Return(nil)

	result, err := NewBroadcastService(store, sender, testAdmin(adminID), 0).Broadcast(ctx, adminID, "hello")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)

	// The third user still received the message after the second failed
	sender.AssertCalled(t, "SendText", mock.Anything, int64(3), "hello")
	sender.AssertNumberOfCalls(t, "SendText", 3)
}

func TestBroadcastService_Unauthorized(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seedUser(1, 0)
	sender := new(MockMessageSender)

	_, err := NewBroadcastService(store, sender, testAdmin(adminID), 0).Broadcast(ctx, 1, "hello")
	assert.ErrorIs(t, err, ErrUnauthorized)
	sender.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
}

func TestBroadcastService_CancelledContext(t *testing.T) {
	store := newFakeStore()
	store.seedUser(1, 0)
	store.seedUser(2, 0)
	sender := new(MockMessageSender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewBroadcastService(store, sender, testAdmin(adminID), 1).Broadcast(ctx, adminID, "hello")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 2, result.Failed)
}
