package models

import (
	"time"
)

// User represents a Telegram user holding a stars balance
type User struct {
	TelegramID     int64      `db:"telegram_id"`
	FirstName      string     `db:"first_name"`
	Username       string     `db:"username"`
	Balance        int64      `db:"balance"`
	TotalReferrals int        `db:"total_referrals"`
	LastBonusAt    *time.Time `db:"last_bonus_at"`
	ReferredBy     *int64     `db:"referred_by"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// CanAfford checks if the user has at least amount stars
func (u *User) CanAfford(amount int64) bool {
	return u.Balance >= amount
}
