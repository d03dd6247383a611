package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"starsbot/database"
	"starsbot/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(telegramID int64, firstName string) *models.User {
	now := time.Now()
	return &models.User{
		TelegramID: telegramID,
		FirstName:  firstName,
		Username:   "user" + firstName,
		Balance:    0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateTestUserWithBalance creates a test user with a specific balance
func CreateTestUserWithBalance(telegramID int64, firstName string, balance int64) *models.User {
	user := CreateTestUser(telegramID, firstName)
	user.Balance = balance
	return user
}

// CreateTestWithdrawal creates a pending test withdrawal
func CreateTestWithdrawal(id string, telegramID int64, amount int64) *models.Withdrawal {
	return &models.Withdrawal{
		ID:             id,
		TelegramID:     telegramID,
		PayoutUsername: "realuser",
		Amount:         amount,
		Status:         models.WithdrawalStatusPending,
		CreatedAt:      time.Now(),
	}
}

// CreateTestGateChannel creates a gate channel for a public username
func CreateTestGateChannel(username string) *models.GateChannel {
	return &models.GateChannel{
		ChannelID: "@" + username,
		Name:      "Join " + username,
		Link:      "https://t.me/" + username,
		CreatedAt: time.Now(),
	}
}

// SeedUser inserts a user directly and sets its balance, bypassing the ledger
func SeedUser(t *testing.T, db *database.DB, telegramID int64, balance int64) {
	t.Helper()
	user := CreateTestUserWithBalance(telegramID, "seed", balance)
	err := db.WithTransaction(context.Background(), func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(),
			`INSERT INTO users (telegram_id, first_name, username, balance) VALUES ($1, $2, $3, $4)`,
			user.TelegramID, user.FirstName, user.Username, user.Balance)
		return err
	})
	require.NoError(t, err)
}
