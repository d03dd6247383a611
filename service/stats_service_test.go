package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsbot/models"
)

func TestStatsService_Stats(t *testing.T) {
	ctx := context.Background()
	f := newMockFixture()
	f.users.On("Count", ctx).Return(int64(42), nil)
	f.channels.On("GetAll", ctx).Return([]*models.GateChannel{{ChannelID: "@a"}, {ChannelID: "@b"}}, nil)
	f.withdrawals.On("CountByStatus", ctx).Return(&models.WithdrawalStats{Pending: 3, Completed: 2, Rejected: 1}, nil)

	stats, err := NewStatsService(f.factory, testAdmin(adminID)).Stats(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalChannels)
	assert.Equal(t, int64(6), stats.Withdrawals.Total())
}

func TestStatsService_Unauthorized(t *testing.T) {
	f := newMockFixture()

	_, err := NewStatsService(f.factory, testAdmin(adminID)).Stats(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
	f.factory.AssertNotCalled(t, "Create")
}

func TestAdminAuthorizer(t *testing.T) {
	auth := NewAdminAuthorizer(adminID)
	assert.True(t, auth.IsAdmin(adminID))
	assert.False(t, auth.IsAdmin(1))
	assert.False(t, NewAdminAuthorizer(0).IsAdmin(0))
}
