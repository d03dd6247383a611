package service

import (
	"context"
	"errors"
	"fmt"

	"starsbot/events"
	"starsbot/models"
)

// applyCredit adds amount inside uow and queues a BalanceChangeEvent.
// Every balance increase goes through here.
func applyCredit(ctx context.Context, uow UnitOfWork, telegramID, amount int64, reason models.ChangeReason) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive: %w", ErrInvalidInput)
	}

	newBalance, err := uow.UserRepository().AddBalance(ctx, telegramID, amount)
	if err != nil {
		return 0, classify("failed to credit balance", err)
	}

	publishBalanceChange(uow, telegramID, newBalance-amount, newBalance, reason)
	return newBalance, nil
}

// applyDebit removes amount inside uow and queues a BalanceChangeEvent.
// Every balance decrease goes through here.
func applyDebit(ctx context.Context, uow UnitOfWork, telegramID, amount int64, reason models.ChangeReason) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive: %w", ErrInvalidInput)
	}

	newBalance, err := uow.UserRepository().DeductBalance(ctx, telegramID, amount)
	if err != nil {
		return 0, classify("failed to debit balance", err)
	}

	publishBalanceChange(uow, telegramID, newBalance+amount, newBalance, reason)
	return newBalance, nil
}

func publishBalanceChange(uow UnitOfWork, telegramID, oldBalance, newBalance int64, reason models.ChangeReason) {
	uow.EventBus().Publish(events.BalanceChangeEvent{
		TelegramID:   telegramID,
		OldBalance:   oldBalance,
		NewBalance:   newBalance,
		Reason:       reason,
		ChangeAmount: newBalance - oldBalance,
	})
}

var domainErrors = []error{
	ErrNotFound,
	ErrInvalidInput,
	ErrInsufficientFunds,
	ErrBelowMinimum,
	ErrUnauthorized,
	ErrAlreadyResolved,
	ErrAlreadyExists,
	ErrBonusNotReady,
	ErrStoreUnavailable,
}

// classify keeps domain errors as they are and marks anything else as a store failure
func classify(op string, err error) error {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return storeError(op, err)
}
