package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"starsbot/events"
	"starsbot/models"
)

const maxTokenAttempts = 5

// withdrawalService implements the WithdrawalService interface
type withdrawalService struct {
	uowFactory UnitOfWorkFactory
	auth       Authorizer
	minimum    int64
	now        func() time.Time
	newToken   func() string
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(uowFactory UnitOfWorkFactory, auth Authorizer, minimum int64) WithdrawalService {
	return &withdrawalService{
		uowFactory: uowFactory,
		auth:       auth,
		minimum:    minimum,
		now:        time.Now,
		newToken:   randomToken,
	}
}

// randomToken returns 8 random digits without a leading zero
func randomToken() string {
	return strconv.Itoa(10_000_000 + rand.IntN(90_000_000))
}

// MinimumAmount returns the configured minimum withdrawal
func (s *withdrawalService) MinimumAmount() int64 {
	return s.minimum
}

// Submit debits amount and records a pending withdrawal in the same transaction.
// The admin is notified through WithdrawalRequestedEvent after commit.
func (s *withdrawalService) Submit(ctx context.Context, telegramID int64, payoutUsername string, amount int64) (*models.Withdrawal, error) {
	username, err := NormalizeUsername(payoutUsername)
	if err != nil {
		return nil, err
	}
	if amount < s.minimum {
		return nil, fmt.Errorf("amount %d, minimum %d: %w", amount, s.minimum, ErrBelowMinimum)
	}

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

	if _, err := applyDebit(ctx, uow, telegramID, amount, models.ChangeReasonWithdrawal); err != nil {
		return nil, err
	}

	withdrawal := &models.Withdrawal{
		TelegramID:     telegramID,
		PayoutUsername: username,
		Amount:         amount,
		Status:         models.WithdrawalStatusPending,
	}

	created := false
	for attempt := 0; attempt < maxTokenAttempts && !created; attempt++ {
		withdrawal.ID = s.newToken()
		created, err = uow.WithdrawalRepository().Create(ctx, withdrawal)
		if err != nil {
			return nil, storeError("failed to create withdrawal", err)
		}
	}
	if !created {
		return nil, fmt.Errorf("no free withdrawal id after %d attempts: %w", maxTokenAttempts, ErrStoreUnavailable)
	}

	uow.EventBus().Publish(events.WithdrawalRequestedEvent{
		Withdrawal: *withdrawal,
		FirstName:  user.FirstName,
	})

	if err := uow.Commit(); err != nil {
		return nil, storeError("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"withdrawalID": withdrawal.ID,
		"telegramID":   telegramID,
		"amount":       amount,
	}).Info("Withdrawal submitted")

	return withdrawal, nil
}

// Approve completes a pending withdrawal. The stars were already debited on submit.
func (s *withdrawalService) Approve(ctx context.Context, actorID int64, id string) (*models.Withdrawal, error) {
	return s.resolve(ctx, actorID, id, models.WithdrawalStatusCompleted)
}

// Reject refunds the owner and closes a pending withdrawal
func (s *withdrawalService) Reject(ctx context.Context, actorID int64, id string) (*models.Withdrawal, error) {
	return s.resolve(ctx, actorID, id, models.WithdrawalStatusRejected)
}

func (s *withdrawalService) resolve(ctx context.Context, actorID int64, id string, status models.WithdrawalStatus) (*models.Withdrawal, error) {
	if err := requireAdmin(s.auth, actorID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	withdrawalRepo := uow.WithdrawalRepository()

	withdrawal, err := withdrawalRepo.Resolve(ctx, id, status, s.now())
	if err != nil {
		return nil, storeError("failed to resolve withdrawal", err)
	}
	if withdrawal == nil {
		existing, err := withdrawalRepo.GetByID(ctx, id)
		if err != nil {
			return nil, storeError("failed to get withdrawal", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("withdrawal %s: %w", id, ErrNotFound)
		}
		return existing, fmt.Errorf("withdrawal %s is %s: %w", id, existing.Status, ErrAlreadyResolved)
	}

	if status == models.WithdrawalStatusRejected {
		if _, err := applyCredit(ctx, uow, withdrawal.TelegramID, withdrawal.Amount, models.ChangeReasonWithdrawalRefund); err != nil {
			return nil, err
		}
	}

	uow.EventBus().Publish(events.WithdrawalResolvedEvent{Withdrawal: *withdrawal})

	if err := uow.Commit(); err != nil {
		return nil, storeError("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"withdrawalID": id,
		"status":       status,
		"actorID":      actorID,
	}).Info("Withdrawal resolved")

	return withdrawal, nil
}

// Stats returns the number of withdrawals per status
func (s *withdrawalService) Stats(ctx context.Context, actorID int64) (*models.WithdrawalStats, error) {
	if err := requireAdmin(s.auth, actorID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	stats, err := uow.WithdrawalRepository().CountByStatus(ctx)
	if err != nil {
		return nil, storeError("failed to count withdrawals", err)
	}
	return stats, nil
}
