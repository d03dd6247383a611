package models

import "time"

// BotStats is the admin statistics snapshot
type BotStats struct {
	TotalUsers    int64
	TotalChannels int
	Withdrawals   WithdrawalStats
}

// BroadcastResult tallies a broadcast fan-out
type BroadcastResult struct {
	Total  int
	Sent   int
	Failed int
}

// BonusStatus describes whether a daily bonus can be claimed now
type BonusStatus struct {
	Claimable bool
	Remaining time.Duration // zero when claimable
	Amount    int64
}

// BonusResult is returned after a successful bonus claim
type BonusResult struct {
	Amount     int64
	NewBalance int64
	ClaimedAt  time.Time
}
