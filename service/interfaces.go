package service

import (
	"context"
	"time"

	"starsbot/events"
	"starsbot/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByTelegramID retrieves a user by their Telegram ID, nil when absent
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)

	// Create inserts a new user with a zero balance.
	// Returns nil without error when the user already exists.
	Create(ctx context.Context, telegramID int64, firstName, username string, referredBy *int64) (*models.User, error)

	// AddBalance adds to a user's balance atomically and returns the new balance
	AddBalance(ctx context.Context, telegramID int64, amount int64) (int64, error)

	// DeductBalance deducts from a user's balance atomically, failing if insufficient funds
	DeductBalance(ctx context.Context, telegramID int64, amount int64) (int64, error)

	// IncrementReferrals bumps the referral counter by one
	IncrementReferrals(ctx context.Context, telegramID int64) error

	// ClaimBonus credits amount and stamps last_bonus_at only when the last
	// claim is older than notAfter. Returns the new balance and whether it applied.
	ClaimBonus(ctx context.Context, telegramID int64, amount int64, now, notAfter time.Time) (int64, bool, error)

	// GetAllIDs returns the Telegram IDs of all users
	GetAllIDs(ctx context.Context) ([]int64, error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)
}

// ChannelRepository defines the interface for gate channel data access
type ChannelRepository interface {
	// GetAll returns every gate channel ordered by creation
	GetAll(ctx context.Context) ([]*models.GateChannel, error)

	// Create stores a gate channel, returns false when the channel already exists
	Create(ctx context.Context, channel *models.GateChannel) (bool, error)

	// Delete removes a gate channel, returns false when nothing was removed
	Delete(ctx context.Context, channelID string) (bool, error)
}

// WithdrawalRepository defines the interface for withdrawal data access
type WithdrawalRepository interface {
	// Create stores a pending withdrawal, returns false when the id is taken
	Create(ctx context.Context, withdrawal *models.Withdrawal) (bool, error)

	// GetByID retrieves a withdrawal, nil when absent
	GetByID(ctx context.Context, id string) (*models.Withdrawal, error)

	// Resolve moves a pending withdrawal to a terminal status.
	// Returns nil when the withdrawal is absent or no longer pending.
	Resolve(ctx context.Context, id string, status models.WithdrawalStatus, at time.Time) (*models.Withdrawal, error)

	// CountByStatus returns the number of withdrawals per status
	CountByStatus(ctx context.Context) (*models.WithdrawalStats, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	ChannelRepository() ChannelRepository
	WithdrawalRepository() WithdrawalRepository

	// Transactional event bus
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// MembershipChecker looks up a user's status in a channel on the messaging platform
type MembershipChecker interface {
	MemberStatus(ctx context.Context, channelID string, userID int64) (string, error)
}

// MessageSender delivers a plain text message to one chat
type MessageSender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Authorizer decides whether a caller may perform admin actions
type Authorizer interface {
	IsAdmin(telegramID int64) bool
}

// LedgerService defines atomic balance operations
type LedgerService interface {
	// Credit adds amount to a user's balance
	Credit(ctx context.Context, telegramID int64, amount int64, reason models.ChangeReason) (int64, error)

	// Debit removes amount from a user's balance, failing with ErrInsufficientFunds
	Debit(ctx context.Context, telegramID int64, amount int64, reason models.ChangeReason) (int64, error)

	// Balance returns the current balance
	Balance(ctx context.Context, telegramID int64) (int64, error)
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates a new one,
	// crediting the referrer when the user is new
	GetOrCreateUser(ctx context.Context, telegramID int64, firstName, username string, referrerID *int64) (*models.User, bool, error)

	// GetUser returns a user or ErrNotFound
	GetUser(ctx context.Context, telegramID int64) (*models.User, error)
}

// MembershipService checks gate channel membership
type MembershipService interface {
	// IsMember reports whether the user has joined every gate channel
	IsMember(ctx context.Context, telegramID int64) (bool, error)
}

// BonusService defines daily bonus operations
type BonusService interface {
	// Status reports whether the bonus can be claimed now and how long remains otherwise
	Status(ctx context.Context, telegramID int64) (*models.BonusStatus, error)

	// Claim credits the daily bonus, or returns a BonusNotReadyError
	Claim(ctx context.Context, telegramID int64) (*models.BonusResult, error)
}

// WithdrawalService defines the withdrawal lifecycle
type WithdrawalService interface {
	// Submit reserves amount from the user's balance and records a pending withdrawal
	Submit(ctx context.Context, telegramID int64, payoutUsername string, amount int64) (*models.Withdrawal, error)

	// Approve completes a pending withdrawal
	Approve(ctx context.Context, actorID int64, id string) (*models.Withdrawal, error)

	// Reject refunds and closes a pending withdrawal
	Reject(ctx context.Context, actorID int64, id string) (*models.Withdrawal, error)

	// Stats returns the number of withdrawals per status
	Stats(ctx context.Context, actorID int64) (*models.WithdrawalStats, error)

	// MinimumAmount returns the configured minimum withdrawal
	MinimumAmount() int64
}

// ChannelService manages the gate channel list
type ChannelService interface {
	// Add validates link and stores a new gate channel
	Add(ctx context.Context, actorID int64, name, link string) (*models.GateChannel, error)

	// Remove deletes a gate channel
	Remove(ctx context.Context, actorID int64, channelID string) error

	// List returns every gate channel
	List(ctx context.Context) ([]*models.GateChannel, error)
}

// BroadcastService fans a message out to every user
type BroadcastService interface {
	// Broadcast sends text once to each user and tallies the outcome
	Broadcast(ctx context.Context, actorID int64, text string) (*models.BroadcastResult, error)
}

// StatsService defines the interface for statistics operations
type StatsService interface {
	// Stats returns user, channel and withdrawal counts
	Stats(ctx context.Context, actorID int64) (*models.BotStats, error)
}
