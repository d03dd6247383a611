package repository

import (
	"context"
	"fmt"

	"starsbot/database"
	"starsbot/models"
)

// ChannelRepository implements the ChannelRepository interface
type ChannelRepository struct {
	q queryable
}

// NewChannelRepository creates a new gate channel repository
func NewChannelRepository(db *database.DB) *ChannelRepository {
	return &ChannelRepository{q: db.Pool}
}

func newChannelRepositoryWithTx(tx queryable) *ChannelRepository {
	return &ChannelRepository{q: tx}
}

// GetAll returns every gate channel ordered by creation
func (r *ChannelRepository) GetAll(ctx context.Context) ([]*models.GateChannel, error) {
	query := `
		SELECT channel_id, name, link, created_at
		FROM gate_channels
		ORDER BY created_at, channel_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get gate channels: %w", err)
	}
	defer rows.Close()

	var channels []*models.GateChannel
	for rows.Next() {
		var ch models.GateChannel
		if err := rows.Scan(&ch.ChannelID, &ch.Name, &ch.Link, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gate channel: %w", err)
		}
		channels = append(channels, &ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gate channels: %w", err)
	}

	return channels, nil
}

// Create stores a gate channel and fills in CreatedAt
func (r *ChannelRepository) Create(ctx context.Context, channel *models.GateChannel) (bool, error) {
	query := `
		INSERT INTO gate_channels (channel_id, name, link)
		VALUES ($1, $2, $3)
		ON CONFLICT (channel_id) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, channel.ChannelID, channel.Name, channel.Link)
	if err != nil {
		return false, fmt.Errorf("failed to create gate channel %s: %w", channel.ChannelID, err)
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	err = r.q.QueryRow(ctx, `SELECT created_at FROM gate_channels WHERE channel_id = $1`, channel.ChannelID).
		Scan(&channel.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to read back gate channel %s: %w", channel.ChannelID, err)
	}

	return true, nil
}

// Delete removes a gate channel
func (r *ChannelRepository) Delete(ctx context.Context, channelID string) (bool, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM gate_channels WHERE channel_id = $1`, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to delete gate channel %s: %w", channelID, err)
	}
	return result.RowsAffected() > 0, nil
}
