package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"starsbot/database"
	"starsbot/models"
	"starsbot/service"
)

const userColumns = `telegram_id, first_name, username, balance, total_referrals, last_bonus_at, referred_by, created_at, updated_at`

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.TelegramID,
		&user.FirstName,
		&user.Username,
		&user.Balance,
		&user.TotalReferrals,
		&user.LastBonusAt,
		&user.ReferredBy,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTelegramID retrieves a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, telegramID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by telegram ID %d: %w", telegramID, err)
	}

	return user, nil
}

// Create inserts a new user with a zero balance.
// A concurrent insert of the same user leaves the first row in place and returns nil.
func (r *UserRepository) Create(ctx context.Context, telegramID int64, firstName, username string, referredBy *int64) (*models.User, error) {
	query := `
		INSERT INTO users (telegram_id, first_name, username, balance, referred_by)
		VALUES ($1, $2, $3, 0, $4)
		ON CONFLICT (telegram_id) DO NOTHING
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, telegramID, firstName, username, referredBy))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user with telegram ID %d: %w", telegramID, err)
	}

	return user, nil
}

// AddBalance adds to a user's balance atomically
func (r *UserRepository) AddBalance(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive: %w", service.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE telegram_id = $2
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, amount, telegramID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("user with telegram ID %d: %w", telegramID, service.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add balance for user %d: %w", telegramID, err)
	}

	return balance, nil
}

// DeductBalance deducts from a user's balance atomically, failing if insufficient funds.
// The sufficiency check and the decrement are one conditional statement.
func (r *UserRepository) DeductBalance(ctx context.Context, telegramID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive: %w", service.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE telegram_id = $2 AND balance >= $1
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, amount, telegramID).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to deduct balance for user %d: %w", telegramID, err)
	}

	// Check if user exists or has insufficient balance
	user, err := r.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return 0, fmt.Errorf("failed to check user: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("user with telegram ID %d: %w", telegramID, service.ErrNotFound)
	}
	return 0, fmt.Errorf("have %d, need %d: %w", user.Balance, amount, service.ErrInsufficientFunds)
}

// IncrementReferrals bumps the referral counter by one
func (r *UserRepository) IncrementReferrals(ctx context.Context, telegramID int64) error {
	query := `
		UPDATE users
		SET total_referrals = total_referrals + 1, updated_at = NOW()
		WHERE telegram_id = $1
	`

	result, err := r.q.Exec(ctx, query, telegramID)
	if err != nil {
		return fmt.Errorf("failed to increment referrals for user %d: %w", telegramID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with telegram ID %d: %w", telegramID, service.ErrNotFound)
	}

	return nil
}

// ClaimBonus credits the bonus and stamps last_bonus_at when the previous claim
// is unset or at or before notAfter
func (r *UserRepository) ClaimBonus(ctx context.Context, telegramID int64, amount int64, now, notAfter time.Time) (int64, bool, error) {
	if amount <= 0 {
		return 0, false, fmt.Errorf("amount must be positive: %w", service.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET balance = balance + $1, last_bonus_at = $2, updated_at = NOW()
		WHERE telegram_id = $3
		  AND (last_bonus_at IS NULL OR last_bonus_at <= $4)
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, amount, now, telegramID, notAfter).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to claim bonus for user %d: %w", telegramID, err)
	}

	return balance, true, nil
}

// GetAllIDs returns the Telegram IDs of all users
func (r *UserRepository) GetAllIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT telegram_id FROM users ORDER BY created_at, telegram_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get user IDs: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to collect user IDs: %w", err)
	}

	return ids, nil
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
