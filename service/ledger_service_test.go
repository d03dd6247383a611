package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starsbot/events"
	"starsbot/models"
)

func TestLedgerService_Credit(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes balance change", func(t *testing.T) {
		f := newMockFixture()
		f.expectCommit()
		f.users.On("AddBalance", ctx, int64(1), int64(5)).Return(int64(15), nil)
		f.publisher.On("Publish", mock.MatchedBy(func(e events.BalanceChangeEvent) bool {
			return e.TelegramID == 1 && e.OldBalance == 10 && e.NewBalance == 15 && e.ChangeAmount == 5 &&
				e.Reason == models.ChangeReasonReferral
		})).Return()

		balance, err := NewLedgerService(f.factory).Credit(ctx, 1, 5, models.ChangeReasonReferral)
		require.NoError(t, err)
		assert.Equal(t, int64(15), balance)

		f.uow.AssertExpectations(t)
		f.users.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		f := newMockFixture()

		_, err := NewLedgerService(f.factory).Credit(ctx, 1, 0, models.ChangeReasonAdjustment)
		assert.ErrorIs(t, err, ErrInvalidInput)
		f.users.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("store failure is distinct from not found", func(t *testing.T) {
		f := newMockFixture()
		f.users.On("AddBalance", ctx, int64(1), int64(5)).Return(int64(0), errors.New("connection reset"))

		_, err := NewLedgerService(f.factory).Credit(ctx, 1, 5, models.ChangeReasonAdjustment)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.NotErrorIs(t, err, ErrNotFound)
		f.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("missing user", func(t *testing.T) {
		f := newMockFixture()
		f.users.On("AddBalance", ctx, int64(1), int64(5)).Return(int64(0), ErrNotFound)

		_, err := NewLedgerService(f.factory).Credit(ctx, 1, 5, models.ChangeReasonAdjustment)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestLedgerService_Debit(t *testing.T) {
	ctx := context.Background()

	t.Run("insufficient funds leaves balance unchanged", func(t *testing.T) {
		store := newFakeStore()
		store.seedUser(1, 10)
		ledger := NewLedgerService(store)

		_, err := ledger.Debit(ctx, 1, 11, models.ChangeReasonAdjustment)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		balance, err := ledger.Balance(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(10), balance)
		assert.Empty(t, store.events())
	})

	t.Run("exact balance", func(t *testing.T) {
		store := newFakeStore()
		store.seedUser(1, 10)

		balance, err := NewLedgerService(store).Debit(ctx, 1, 10, models.ChangeReasonAdjustment)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := NewLedgerService(newFakeStore()).Balance(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLedgerService_BalanceNeverNegative(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seedUser(1, 0)
	ledger := NewLedgerService(store)

	rng := rand.New(rand.NewPCG(1, 2))
	expected := int64(0)
	for i := 0; i < 500; i++ {
		amount := rng.Int64N(50) + 1
		if rng.IntN(2) == 0 {
			balance, err := ledger.Credit(ctx, 1, amount, models.ChangeReasonAdjustment)
			require.NoError(t, err)
			expected += amount
			assert.Equal(t, expected, balance)
			continue
		}

		balance, err := ledger.Debit(ctx, 1, amount, models.ChangeReasonAdjustment)
		if amount > expected {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
		} else {
			require.NoError(t, err)
			expected -= amount
			assert.Equal(t, expected, balance)
		}

		current, err := ledger.Balance(ctx, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, current, int64(0))
		assert.Equal(t, expected, current)
	}
}

func TestLedgerService_ConcurrentDebits(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seedUser(1, 100)
	ledger := NewLedgerService(store)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Debit(ctx, 1, 30, models.ChangeReasonAdjustment); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	balance, err := ledger.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}
