package bot

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"starsbot/bot/common"
	"starsbot/bot/features/admin"
	"starsbot/bot/features/bonus"
	"starsbot/bot/features/menu"
	"starsbot/bot/features/withdraw"
	"starsbot/conversation"
	"starsbot/service"
)

// Config holds bot configuration
type Config struct {
	BotUsername   string
	SupportLink   string
	AdminID       int64
	ReferralBonus int64
	BonusCooldown time.Duration
}

// Services are the domain services the bot drives
type Services struct {
	Users       service.UserService
	Ledger      service.LedgerService
	Membership  service.MembershipService
	Bonus       service.BonusService
	Withdrawals service.WithdrawalService
	Channels    service.ChannelService
	Broadcasts  service.BroadcastService
	Stats       service.StatsService
	Auth        service.Authorizer
}

// Bot routes inbound events to feature modules
type Bot struct {
	config    Config
	messenger common.Messenger
	auth      service.Authorizer
	machine   *conversation.Machine

	// Feature modules
	menu     *menu.Feature
	bonus    *bonus.Feature
	withdraw *withdraw.Feature
	admin    *admin.Feature
}

// New creates a new bot instance with all features
func New(config Config, messenger common.Messenger, services Services, machine *conversation.Machine) *Bot {
	return &Bot{
		config:    config,
		messenger: messenger,
		auth:      services.Auth,
		machine:   machine,
		menu: menu.New(menu.Config{
			BotUsername:   config.BotUsername,
			SupportLink:   config.SupportLink,
			ReferralBonus: config.ReferralBonus,
		}, messenger, services.Users, services.Ledger, services.Membership, services.Channels, machine),
		bonus:    bonus.New(messenger, services.Bonus, config.BonusCooldown),
		withdraw: withdraw.New(messenger, services.Users, services.Ledger, services.Withdrawals, machine),
		admin:    admin.New(messenger, services.Stats, services.Withdrawals, services.Channels, services.Broadcasts, machine),
	}
}

// HandleEvent routes one inbound event. Events of one user must not be
// handled concurrently; the transport serializes them.
func (b *Bot) HandleEvent(ctx context.Context, ev common.Event) {
	start := time.Now()
	logger := log.WithFields(log.Fields{
		"requestID": uuid.NewString(),
		"userID":    ev.UserID,
		"kind":      ev.Kind.String(),
	})
	logger.Debug("Handling event")

	switch ev.Kind {
	case common.EventCommand:
		b.handleCommand(ctx, ev)
	case common.EventCallback:
		b.handleCallback(ctx, ev)
	case common.EventText:
		b.handleText(ctx, ev)
	}

	logger.WithField("duration", time.Since(start)).Debug("Event handled")
}

// handleCommand routes slash commands to appropriate handlers
func (b *Bot) handleCommand(ctx context.Context, ev common.Event) {
	switch ev.Command {
	case "start":
		b.menu.HandleStart(ctx, ev)
	case "cancel":
		b.menu.HandleCancel(ctx, ev)
	case "adminhelp":
		if b.auth.IsAdmin(ev.UserID) {
			b.admin.HandleHelp(ctx, ev)
		}
	case "stats":
		if b.auth.IsAdmin(ev.UserID) {
			b.admin.HandleStats(ctx, ev)
		}
	}
}

// handleCallback decodes button data once and routes the action
func (b *Bot) handleCallback(ctx context.Context, ev common.Event) {
	action, ok := common.ParseAction(ev.Data)
	if !ok {
		log.WithFields(log.Fields{
			"userID": ev.UserID,
			"data":   ev.Data,
		}).Debug("Unknown callback data")
		if err := b.messenger.AnswerCallback(ctx, ev.CallbackID, "", false); err != nil {
			log.Debugf("Failed to answer callback: %v", err)
		}
		return
	}

	if action.IsAdmin() && !b.auth.IsAdmin(ev.UserID) {
		common.Alert(ctx, b.messenger, ev, common.AccessDenied)
		return
	}

	switch action.Kind {
	case common.ActionVerifyJoin, common.ActionMainMenu, common.ActionBalance, common.ActionRefer:
		b.menu.HandleCallback(ctx, ev, action)
	case common.ActionBonus, common.ActionClaimBonus:
		b.bonus.HandleCallback(ctx, ev, action)
	case common.ActionWithdraw:
		b.withdraw.HandleCallback(ctx, ev, action)
	default:
		b.admin.HandleCallback(ctx, ev, action)
	}
}

// handleText feeds free text to the open dialog. Text outside a dialog is ignored.
func (b *Bot) handleText(ctx context.Context, ev common.Event) {
	if !ev.Private {
		return
	}

	session, err := b.machine.Current(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, b.messenger, ev, err)
		return
	}
	if session == nil {
		return
	}

	switch {
	case withdraw.Owns(session.Tag):
		b.withdraw.HandleText(ctx, ev, session)
	case admin.Owns(session.Tag) && b.auth.IsAdmin(ev.UserID):
		b.admin.HandleText(ctx, ev, session)
	}
}
