package models

// ChangeReason records why a balance moved
type ChangeReason string

const (
	ChangeReasonReferral         ChangeReason = "referral"
	ChangeReasonDailyBonus       ChangeReason = "daily_bonus"
	ChangeReasonWithdrawal       ChangeReason = "withdrawal"
	ChangeReasonWithdrawalRefund ChangeReason = "withdrawal_refund"
	ChangeReasonAdjustment       ChangeReason = "adjustment"
)
