package bot

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"starsbot/bot/common"
	"starsbot/models"
)

type sentMessage struct {
	ChatID int64
	Reply  common.Reply
}

type editedMessage struct {
	ChatID    int64
	MessageID int
	Reply     common.Reply
}

type answer struct {
	CallbackID string
	Text       string
	Alert      bool
}

// fakeMessenger records everything the bot sends
type fakeMessenger struct {
	mu       sync.Mutex
	sent     []sentMessage
	edits    []editedMessage
	answers  []answer
	statuses map[string]string
	nextID   int
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{statuses: map[string]string{}, nextID: 100}
}

func (m *fakeMessenger) Send(ctx context.Context, chatID int64, reply common.Reply) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.sent = append(m.sent, sentMessage{ChatID: chatID, Reply: reply})
	return m.nextID, nil
}

func (m *fakeMessenger) Edit(ctx context.Context, chatID int64, messageID int, reply common.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, editedMessage{ChatID: chatID, MessageID: messageID, Reply: reply})
	return nil
}

func (m *fakeMessenger) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, answer{CallbackID: callbackID, Text: text, Alert: alert})
	return nil
}

func (m *fakeMessenger) MemberStatus(ctx context.Context, channelID string, userID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if status, ok := m.statuses[channelID]; ok {
		return status, nil
	}
	return "member", nil
}

func (m *fakeMessenger) lastSent() sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMessage{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *fakeMessenger) lastEdit() editedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.edits) == 0 {
		return editedMessage{}
	}
	return m.edits[len(m.edits)-1]
}

func (m *fakeMessenger) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent) + len(m.edits) + len(m.answers)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetOrCreateUser(ctx context.Context, telegramID int64, firstName, username string, referrerID *int64) (*models.User, bool, error) {
	args := m.Called(ctx, telegramID, firstName, username, referrerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserService) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Credit(ctx context.Context, telegramID int64, amount int64, reason models.ChangeReason) (int64, error) {
	args := m.Called(ctx, telegramID, amount, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Debit(ctx context.Context, telegramID int64, amount int64, reason models.ChangeReason) (int64, error) {
	args := m.Called(ctx, telegramID, amount, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Balance(ctx context.Context, telegramID int64) (int64, error) {
	args := m.Called(ctx, telegramID)
	return args.Get(0).(int64), args.Error(1)
}

type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) IsMember(ctx context.Context, telegramID int64) (bool, error) {
	args := m.Called(ctx, telegramID)
	return args.Bool(0), args.Error(1)
}

type MockBonusService struct {
	mock.Mock
}

func (m *MockBonusService) Status(ctx context.Context, telegramID int64) (*models.BonusStatus, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BonusStatus), args.Error(1)
}

func (m *MockBonusService) Claim(ctx context.Context, telegramID int64) (*models.BonusResult, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BonusResult), args.Error(1)
}

type MockWithdrawalService struct {
	mock.Mock
	minimum int64
}

func (m *MockWithdrawalService) Submit(ctx context.Context, telegramID int64, payoutUsername string, amount int64) (*models.Withdrawal, error) {
	args := m.Called(ctx, telegramID, payoutUsername, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalService) Approve(ctx context.Context, actorID int64, id string) (*models.Withdrawal, error) {
	args := m.Called(ctx, actorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalService) Reject(ctx context.Context, actorID int64, id string) (*models.Withdrawal, error) {
	args := m.Called(ctx, actorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalService) Stats(ctx context.Context, actorID int64) (*models.WithdrawalStats, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WithdrawalStats), args.Error(1)
}

func (m *MockWithdrawalService) MinimumAmount() int64 {
	return m.minimum
}

type MockChannelService struct {
	mock.Mock
}

func (m *MockChannelService) Add(ctx context.Context, actorID int64, name, link string) (*models.GateChannel, error) {
	args := m.Called(ctx, actorID, name, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GateChannel), args.Error(1)
}

func (m *MockChannelService) Remove(ctx context.Context, actorID int64, channelID string) error {
	args := m.Called(ctx, actorID, channelID)
	return args.Error(0)
}

func (m *MockChannelService) List(ctx context.Context) ([]*models.GateChannel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GateChannel), args.Error(1)
}

type MockBroadcastService struct {
	mock.Mock
}

func (m *MockBroadcastService) Broadcast(ctx context.Context, actorID int64, text string) (*models.BroadcastResult, error) {
	args := m.Called(ctx, actorID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BroadcastResult), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Stats(ctx context.Context, actorID int64) (*models.BotStats, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotStats), args.Error(1)
}
