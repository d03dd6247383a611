package service

import (
	"context"
	"fmt"

	"starsbot/models"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{uowFactory: uowFactory}
}

// Credit adds amount to a user's balance
func (s *ledgerService) Credit(ctx context.Context, telegramID int64, amount int64, reason models.ChangeReason) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	newBalance, err := applyCredit(ctx, uow, telegramID, amount, reason)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, storeError("failed to commit transaction", err)
	}
	return newBalance, nil
}

// Debit removes amount from a user's balance. The check and the decrement are
// one conditional update, so concurrent debits cannot overdraw.
func (s *ledgerService) Debit(ctx context.Context, telegramID int64, amount int64, reason models.ChangeReason) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	newBalance, err := applyDebit(ctx, uow, telegramID, amount, reason)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, storeError("failed to commit transaction", err)
	}
	return newBalance, nil
}

// Balance returns the current balance
func (s *ledgerService) Balance(ctx context.Context, telegramID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return 0, storeError("failed to get user", err)
	}
	if user == nil {
		return 0, fmt.Errorf("user %d: %w", telegramID, ErrNotFound)
	}
	return user.Balance, nil
}
