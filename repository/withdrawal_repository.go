package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"starsbot/database"
	"starsbot/models"
)

const withdrawalColumns = `id, telegram_id, payout_username, amount, status, created_at, resolved_at`

// WithdrawalRepository implements the WithdrawalRepository interface
type WithdrawalRepository struct {
	q queryable
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *database.DB) *WithdrawalRepository {
	return &WithdrawalRepository{q: db.Pool}
}

func newWithdrawalRepositoryWithTx(tx queryable) *WithdrawalRepository {
	return &WithdrawalRepository{q: tx}
}

func scanWithdrawal(row pgx.Row) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := row.Scan(
		&w.ID,
		&w.TelegramID,
		&w.PayoutUsername,
		&w.Amount,
		&w.Status,
		&w.CreatedAt,
		&w.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create stores a pending withdrawal and fills in CreatedAt and Status
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) (bool, error) {
	query := `
		INSERT INTO withdrawals (id, telegram_id, payout_username, amount, status)
		VALUES ($1, $2, $3, $4, 'pending')
		ON CONFLICT (id) DO NOTHING
		RETURNING status, created_at
	`

	err := r.q.QueryRow(ctx, query,
		withdrawal.ID,
		withdrawal.TelegramID,
		withdrawal.PayoutUsername,
		withdrawal.Amount,
	).Scan(&withdrawal.Status, &withdrawal.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create withdrawal %s: %w", withdrawal.ID, err)
	}

	return true, nil
}

// GetByID retrieves a withdrawal by its token
func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*models.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`

	w, err := scanWithdrawal(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal %s: %w", id, err)
	}

	return w, nil
}

// Resolve moves a pending withdrawal to a terminal status.
// The status guard makes a replayed approve or reject match zero rows.
func (r *WithdrawalRepository) Resolve(ctx context.Context, id string, status models.WithdrawalStatus, at time.Time) (*models.Withdrawal, error) {
	if !status.IsTerminal() {
		return nil, fmt.Errorf("cannot resolve withdrawal %s to %q", id, status)
	}

	query := `
		UPDATE withdrawals
		SET status = $1, resolved_at = $2
		WHERE id = $3 AND status = 'pending'
		RETURNING ` + withdrawalColumns

	w, err := scanWithdrawal(r.q.QueryRow(ctx, query, status, at, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve withdrawal %s: %w", id, err)
	}

	return w, nil
}

// CountByStatus returns the number of withdrawals per status
func (r *WithdrawalRepository) CountByStatus(ctx context.Context) (*models.WithdrawalStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM withdrawals
	`

	var stats models.WithdrawalStats
	err := r.q.QueryRow(ctx, query).Scan(&stats.Pending, &stats.Completed, &stats.Rejected)
	if err != nil {
		return nil, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	return &stats, nil
}
