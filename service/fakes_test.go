package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"starsbot/events"
	"starsbot/models"
)

// fakeState is the committed content of fakeStore
type fakeState struct {
	users       map[int64]models.User
	channels    map[string]models.GateChannel
	withdrawals map[string]models.Withdrawal
}

func (s *fakeState) clone() *fakeState {
	c := &fakeState{
		users:       make(map[int64]models.User, len(s.users)),
		channels:    make(map[string]models.GateChannel, len(s.channels)),
		withdrawals: make(map[string]models.Withdrawal, len(s.withdrawals)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.channels {
		c.channels[k] = v
	}
	for k, v := range s.withdrawals {
		c.withdrawals[k] = v
	}
	return c
}

// fakeStore is an in-memory UnitOfWorkFactory. Transactions are serialized and
// work on a snapshot that replaces the committed state on Commit.
type fakeStore struct {
	mu        sync.Mutex
	state     *fakeState
	pubMu     sync.Mutex
	published []events.Event
	clock     time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		state: &fakeState{
			users:       map[int64]models.User{},
			channels:    map[string]models.GateChannel{},
			withdrawals: map[string]models.Withdrawal{},
		},
		clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) Create() UnitOfWork {
	return &fakeUoW{store: s}
}

func (s *fakeStore) seedUser(id, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users[id] = models.User{TelegramID: id, FirstName: fmt.Sprintf("user%d", id), Balance: balance, CreatedAt: s.clock}
}

func (s *fakeStore) user(id int64) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.users[id]
	return u, ok
}

func (s *fakeStore) withdrawal(id string) (models.Withdrawal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.state.withdrawals[id]
	return w, ok
}

func (s *fakeStore) withdrawalsByStatus(status models.WithdrawalStatus) []models.Withdrawal {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Withdrawal
	for _, w := range s.state.withdrawals {
		if w.Status == status {
			out = append(out, w)
		}
	}
	return out
}

func (s *fakeStore) events() []events.Event {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	return append([]events.Event(nil), s.published...)
}

type fakeUoW struct {
	store   *fakeStore
	tx      *fakeState
	pending []events.Event
}

func (u *fakeUoW) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.store.mu.Lock()
	u.tx = u.store.state.clone()
	return nil
}

func (u *fakeUoW) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.store.state = u.tx
	u.tx = nil
	u.store.mu.Unlock()

	u.store.pubMu.Lock()
	u.store.published = append(u.store.published, u.pending...)
	u.store.pubMu.Unlock()
	u.pending = nil
	return nil
}

func (u *fakeUoW) Rollback() error {
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.pending = nil
	u.store.mu.Unlock()
	return nil
}

func (u *fakeUoW) UserRepository() UserRepository             { return fakeUserRepo{u} }
func (u *fakeUoW) ChannelRepository() ChannelRepository       { return fakeChannelRepo{u} }
func (u *fakeUoW) WithdrawalRepository() WithdrawalRepository { return fakeWithdrawalRepo{u} }
func (u *fakeUoW) EventBus() EventPublisher                   { return u }

func (u *fakeUoW) Publish(e events.Event) {
	u.pending = append(u.pending, e)
}

type fakeUserRepo struct{ u *fakeUoW }

func (r fakeUserRepo) GetByTelegramID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := r.u.tx.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r fakeUserRepo) Create(ctx context.Context, id int64, firstName, username string, referredBy *int64) (*models.User, error) {
	if _, ok := r.u.tx.users[id]; ok {
		return nil, nil
	}
	user := models.User{TelegramID: id, FirstName: firstName, Username: username, ReferredBy: referredBy, CreatedAt: r.u.store.clock}
	r.u.tx.users[id] = user
	return &user, nil
}

func (r fakeUserRepo) AddBalance(ctx context.Context, id int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidInput
	}
	user, ok := r.u.tx.users[id]
	if !ok {
		return 0, ErrNotFound
	}
	user.Balance += amount
	r.u.tx.users[id] = user
	return user.Balance, nil
}

func (r fakeUserRepo) DeductBalance(ctx context.Context, id int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidInput
	}
	user, ok := r.u.tx.users[id]
	if !ok {
		return 0, ErrNotFound
	}
	if user.Balance < amount {
		return 0, ErrInsufficientFunds
	}
	user.Balance -= amount
	r.u.tx.users[id] = user
	return user.Balance, nil
}

func (r fakeUserRepo) IncrementReferrals(ctx context.Context, id int64) error {
	user, ok := r.u.tx.users[id]
	if !ok {
		return ErrNotFound
	}
	user.TotalReferrals++
	r.u.tx.users[id] = user
	return nil
}

func (r fakeUserRepo) ClaimBonus(ctx context.Context, id int64, amount int64, now, notAfter time.Time) (int64, bool, error) {
	user, ok := r.u.tx.users[id]
	if !ok {
		return 0, false, nil
	}
	if user.LastBonusAt != nil && user.LastBonusAt.After(notAfter) {
		return 0, false, nil
	}
	at := now
	user.LastBonusAt = &at
	user.Balance += amount
	r.u.tx.users[id] = user
	return user.Balance, true, nil
}

func (r fakeUserRepo) GetAllIDs(ctx context.Context) ([]int64, error) {
	return r.sortedIDs(), nil
}

func (r fakeUserRepo) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.u.tx.users))
	for id := range r.u.tx.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.u.tx.users)), nil
}

type fakeChannelRepo struct{ u *fakeUoW }

func (r fakeChannelRepo) GetAll(ctx context.Context) ([]*models.GateChannel, error) {
	ids := make([]string, 0, len(r.u.tx.channels))
	for id := range r.u.tx.channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*models.GateChannel
	for _, id := range ids {
		ch := r.u.tx.channels[id]
		out = append(out, &ch)
	}
	return out, nil
}

func (r fakeChannelRepo) Create(ctx context.Context, ch *models.GateChannel) (bool, error) {
	if _, ok := r.u.tx.channels[ch.ChannelID]; ok {
		return false, nil
	}
	ch.CreatedAt = r.u.store.clock
	r.u.tx.channels[ch.ChannelID] = *ch
	return true, nil
}

func (r fakeChannelRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.u.tx.channels[id]; !ok {
		return false, nil
	}
	delete(r.u.tx.channels, id)
	return true, nil
}

type fakeWithdrawalRepo struct{ u *fakeUoW }

func (r fakeWithdrawalRepo) Create(ctx context.Context, w *models.Withdrawal) (bool, error) {
	if _, ok := r.u.tx.withdrawals[w.ID]; ok {
		return false, nil
	}
	w.Status = models.WithdrawalStatusPending
	w.CreatedAt = r.u.store.clock
	r.u.tx.withdrawals[w.ID] = *w
	return true, nil
}

func (r fakeWithdrawalRepo) GetByID(ctx context.Context, id string) (*models.Withdrawal, error) {
	w, ok := r.u.tx.withdrawals[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r fakeWithdrawalRepo) Resolve(ctx context.Context, id string, status models.WithdrawalStatus, at time.Time) (*models.Withdrawal, error) {
	w, ok := r.u.tx.withdrawals[id]
	if !ok || w.Status != models.WithdrawalStatusPending {
		return nil, nil
	}
	w.Status = status
	w.ResolvedAt = &at
	r.u.tx.withdrawals[id] = w
	return &w, nil
}

func (r fakeWithdrawalRepo) CountByStatus(ctx context.Context) (*models.WithdrawalStats, error) {
	var stats models.WithdrawalStats
	for _, w := range r.u.tx.withdrawals {
		switch w.Status {
		case models.WithdrawalStatusPending:
			stats.Pending++
		case models.WithdrawalStatusCompleted:
			stats.Completed++
		case models.WithdrawalStatusRejected:
			stats.Rejected++
		}
	}
	return &stats, nil
}

// mockFixture wires testify mocks into a MockUnitOfWork
type mockFixture struct {
	factory     *MockUnitOfWorkFactory
	uow         *MockUnitOfWork
	users       *MockUserRepository
	channels    *MockChannelRepository
	withdrawals *MockWithdrawalRepository
	publisher   *MockEventPublisher
}

func newMockFixture() *mockFixture {
	f := &mockFixture{
		factory:     new(MockUnitOfWorkFactory),
		uow:         new(MockUnitOfWork),
		users:       new(MockUserRepository),
		channels:    new(MockChannelRepository),
		withdrawals: new(MockWithdrawalRepository),
		publisher:   new(MockEventPublisher),
	}
	f.uow.SetRepositories(f.users, f.channels, f.withdrawals, f.publisher)
	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback").Return(nil)
	return f
}

func (f *mockFixture) expectCommit() {
	f.uow.On("Commit").Return(nil)
}

type testAdmin int64

func (a testAdmin) IsAdmin(id int64) bool { return int64(a) == id }

const adminID = int64(999999)
