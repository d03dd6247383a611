package service

import (
	"context"
	"fmt"
	"time"

	"starsbot/models"
)

// bonusService implements the BonusService interface
type bonusService struct {
	uowFactory UnitOfWorkFactory
	amount     int64
	cooldown   time.Duration
	now        func() time.Time
}

// NewBonusService creates a new daily bonus service
func NewBonusService(uowFactory UnitOfWorkFactory, amount int64, cooldown time.Duration) BonusService {
	return &bonusService{
		uowFactory: uowFactory,
		amount:     amount,
		cooldown:   cooldown,
		now:        time.Now,
	}
}

// Status reports whether the bonus can be claimed and how long remains otherwise
func (s *bonusService) Status(ctx context.Context, telegramID int64) (*models.BonusStatus, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, storeError("failed to get user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", telegramID, ErrNotFound)
	}

	now := s.now()
	return &models.BonusStatus{
		Claimable: CanClaimBonus(user.LastBonusAt, now, s.cooldown),
		Remaining: RemainingCooldown(user.LastBonusAt, now, s.cooldown),
		Amount:    s.amount,
	}, nil
}

// Claim credits the bonus and stamps the claim time in one conditional update,
// so two quick claims cannot both pay out
func (s *bonusService) Claim(ctx context.Context, telegramID int64) (*models.BonusResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	userRepo := uow.UserRepository()
	now := s.now()

	newBalance, claimed, err := userRepo.ClaimBonus(ctx, telegramID, s.amount, now, now.Add(-s.cooldown))
	if err != nil {
		return nil, classify("failed to claim bonus", err)
	}

	if !claimed {
		user, err := userRepo.GetByTelegramID(ctx, telegramID)
		if err != nil {
			return nil, storeError("failed to get user", err)
		}
		if user == nil {
			return nil, fmt.Errorf("user %d: %w", telegramID, ErrNotFound)
		}
		return nil, &BonusNotReadyError{Remaining: RemainingCooldown(user.LastBonusAt, now, s.cooldown)}
	}

	publishBalanceChange(uow, telegramID, newBalance-s.amount, newBalance, models.ChangeReasonDailyBonus)

	if err := uow.Commit(); err != nil {
		return nil, storeError("failed to commit transaction", err)
	}

	return &models.BonusResult{
		Amount:     s.amount,
		NewBalance: newBalance,
		ClaimedAt:  now,
	}, nil
}
