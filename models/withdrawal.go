package models

import (
	"time"
)

// WithdrawalStatus represents the lifecycle state of a withdrawal
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed
func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalStatusCompleted || s == WithdrawalStatusRejected
}

// Withdrawal is a request to pay out stars to a Telegram username.
// While pending, Amount has already been debited from the owner.
type Withdrawal struct {
	ID             string           `db:"id"`
	TelegramID     int64            `db:"telegram_id"`
	PayoutUsername string           `db:"payout_username"`
	Amount         int64            `db:"amount"`
	Status         WithdrawalStatus `db:"status"`
	CreatedAt      time.Time        `db:"created_at"`
	ResolvedAt     *time.Time       `db:"resolved_at"`
}

// WithdrawalStats holds withdrawal counts by status
type WithdrawalStats struct {
	Pending   int64
	Completed int64
	Rejected  int64
}

// Total returns the number of withdrawals across all statuses
func (s WithdrawalStats) Total() int64 {
	return s.Pending + s.Completed + s.Rejected
}
