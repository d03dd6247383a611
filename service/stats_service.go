package service

import (
	"context"

	"starsbot/models"
)

// statsService implements the StatsService interface
type statsService struct {
	uowFactory UnitOfWorkFactory
	auth       Authorizer
}

// NewStatsService creates a new statistics service
func NewStatsService(uowFactory UnitOfWorkFactory, auth Authorizer) StatsService {
	return &statsService{
		uowFactory: uowFactory,
		auth:       auth,
	}
}

// Stats returns user, channel and withdrawal counts
func (s *statsService) Stats(ctx context.Context, actorID int64) (*models.BotStats, error) {
	if err := requireAdmin(s.auth, actorID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, storeError("failed to count users", err)
	}

	channels, err := uow.ChannelRepository().GetAll(ctx)
	if err != nil {
		return nil, storeError("failed to list gate channels", err)
	}

	withdrawals, err := uow.WithdrawalRepository().CountByStatus(ctx)
	if err != nil {
		return nil, storeError("failed to count withdrawals", err)
	}

	return &models.BotStats{
		TotalUsers:    users,
		TotalChannels: len(channels),
		Withdrawals:   *withdrawals,
	}, nil
}
