package service

import (
	"fmt"
	"time"
)

// CanClaimBonus reports whether at least cooldown has passed since last.
// A user who never claimed can always claim.
func CanClaimBonus(last *time.Time, now time.Time, cooldown time.Duration) bool {
	if last == nil {
		return true
	}
	return now.Sub(*last) >= cooldown
}

// RemainingCooldown returns how long until the next claim, floored at zero
func RemainingCooldown(last *time.Time, now time.Time, cooldown time.Duration) time.Duration {
	if CanClaimBonus(last, now, cooldown) {
		return 0
	}
	remaining := cooldown - now.Sub(*last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatCooldown renders d as "HHh MMm SSs"
func FormatCooldown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02dh %02dm %02ds", total/3600, (total%3600)/60, total%60)
}
