package menu

import (
	"context"
	"time"

	"starsbot/bot/common"
	"starsbot/conversation"
	"starsbot/service"
)

// Config holds the settings the menu screens display
type Config struct {
	BotUsername   string
	SupportLink   string
	ReferralBonus int64
}

// Feature serves /start, the channel gate and the user menu screens
type Feature struct {
	config     Config
	messenger  common.Messenger
	users      service.UserService
	ledger     service.LedgerService
	membership service.MembershipService
	channels   service.ChannelService
	machine    *conversation.Machine
	now        func() time.Time
}

// New creates a new menu feature instance
func New(config Config, messenger common.Messenger, users service.UserService, ledger service.LedgerService, membership service.MembershipService, channels service.ChannelService, machine *conversation.Machine) *Feature {
	return &Feature{
		config:     config,
		messenger:  messenger,
		users:      users,
		ledger:     ledger,
		membership: membership,
		channels:   channels,
		machine:    machine,
		now:        time.Now,
	}
}

// HandleCallback handles the menu buttons
func (f *Feature) HandleCallback(ctx context.Context, ev common.Event, action common.Action) {
	switch action.Kind {
	case common.ActionVerifyJoin:
		f.handleVerifyJoin(ctx, ev)
	case common.ActionMainMenu:
		f.showMainMenu(ctx, ev)
	case common.ActionBalance:
		f.handleBalance(ctx, ev)
	case common.ActionRefer:
		f.handleRefer(ctx, ev)
	}
}
