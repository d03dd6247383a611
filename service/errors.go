package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound means the user, withdrawal or channel does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means a malformed username, link or number
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientFunds means the balance cannot cover a debit
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBelowMinimum means a withdrawal is smaller than the configured minimum
	ErrBelowMinimum = errors.New("below minimum withdrawal")

	// ErrUnauthorized means a non-admin invoked an admin action
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDeliveryFailure means the messaging platform rejected a send or edit
	ErrDeliveryFailure = errors.New("delivery failure")

	// ErrStoreUnavailable means the persistent store failed
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrAlreadyResolved means a withdrawal is no longer pending
	ErrAlreadyResolved = errors.New("already resolved")

	// ErrAlreadyExists means a gate channel with the same id exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrBonusNotReady means the bonus cooldown has not elapsed
	ErrBonusNotReady = errors.New("bonus not ready")
)

// BonusNotReadyError carries the time left before the next claim
type BonusNotReadyError struct {
	Remaining time.Duration
}

func (e *BonusNotReadyError) Error() string {
	return fmt.Sprintf("bonus not ready, %s remaining", FormatCooldown(e.Remaining))
}

func (e *BonusNotReadyError) Unwrap() error {
	return ErrBonusNotReady
}

// storeError wraps a low-level failure so callers can match ErrStoreUnavailable
// while the original cause stays in the chain for logging
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
