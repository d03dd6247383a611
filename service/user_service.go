package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"starsbot/events"
	"starsbot/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory    UnitOfWorkFactory
	referralBonus int64
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, referralBonus int64) UserService {
	return &userService{
		uowFactory:    uowFactory,
		referralBonus: referralBonus,
	}
}

// GetOrCreateUser retrieves an existing user or creates a new one.
// A referral is credited at most once per referred user: only on the
// insert that actually created the row, and never to the user themselves.
func (s *userService) GetOrCreateUser(ctx context.Context, telegramID int64, firstName, username string, referrerID *int64) (*models.User, bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	userRepo := uow.UserRepository()

	user, err := userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, false, storeError("failed to check existing user", err)
	}
	if user != nil {
		return user, false, nil
	}

	var referredBy *int64
	if referrerID != nil && *referrerID != telegramID {
		referrer, err := userRepo.GetByTelegramID(ctx, *referrerID)
		if err != nil {
			return nil, false, storeError("failed to check referrer", err)
		}
		if referrer != nil {
			referredBy = referrerID
		}
	}

	user, err = userRepo.Create(ctx, telegramID, firstName, username, referredBy)
	if err != nil {
		return nil, false, storeError("failed to create user", err)
	}
	if user == nil {
		// Lost a race with a concurrent start from the same user
		existing, err := userRepo.GetByTelegramID(ctx, telegramID)
		if err != nil {
			return nil, false, storeError("failed to reload user", err)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("user %d vanished after insert conflict: %w", telegramID, ErrStoreUnavailable)
		}
		return existing, false, nil
	}

	if referredBy != nil {
		if s.referralBonus > 0 {
			if _, err := applyCredit(ctx, uow, *referredBy, s.referralBonus, models.ChangeReasonReferral); err != nil {
				return nil, false, err
			}
		}
		if err := userRepo.IncrementReferrals(ctx, *referredBy); err != nil {
			return nil, false, classify("failed to count referral", err)
		}
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		TelegramID: telegramID,
		FirstName:  firstName,
		ReferredBy: referredBy,
	})

	if err := uow.Commit(); err != nil {
		return nil, false, storeError("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"telegramID": telegramID,
		"referredBy": referredBy,
	}).Info("Created user")

	return user, true, nil
}

// GetUser returns a user or ErrNotFound
func (s *userService) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
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
	return user, nil
}
