package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"starsbot/bot/common"
	"starsbot/events"
	"starsbot/models"
)

// RegisterBotSubscriptions registers all bot-level event subscriptions.
// Handlers run after the originating transaction committed.
func RegisterBotSubscriptions(bus *events.Bus, b *Bot) {
	bus.Subscribe(events.EventTypeWithdrawalRequested, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.WithdrawalRequestedEvent); ok {
			b.notifyAdminOfWithdrawal(ctx, e)
		}
	})

	bus.Subscribe(events.EventTypeWithdrawalResolved, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.WithdrawalResolvedEvent); ok {
			b.notifyOwnerOfResolution(ctx, e.Withdrawal)
		}
	})

	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			log.WithFields(log.Fields{
				"telegramID":   e.TelegramID,
				"oldBalance":   e.OldBalance,
				"newBalance":   e.NewBalance,
				"reason":       e.Reason,
				"changeAmount": e.ChangeAmount,
			}).Info("Balance changed")
		}
	})

	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.UserCreatedEvent); ok {
			log.WithFields(log.Fields{
				"telegramID": e.TelegramID,
				"referredBy": e.ReferredBy,
			}).Info("User joined")
		}
	})

	log.Info("Bot event subscriptions registered successfully")
}

func (b *Bot) notifyAdminOfWithdrawal(ctx context.Context, e events.WithdrawalRequestedEvent) {
	if b.config.AdminID == 0 {
		return
	}

	w := e.Withdrawal
	text := fmt.Sprintf(`<b>📥 New Withdrawal</b>

<b>👤 User:</b> %s
<b>🆔 ID:</b> <code>%d</code>
<b>📝 Username:</b> @%s
<b>⭐ Amount:</b> %s Stars
<b>🆔 Order:</b> <code>%s</code>`,
		common.Escape(e.FirstName),
		w.TelegramID,
		common.Escape(w.PayoutUsername),
		common.FormatStars(w.Amount),
		common.Escape(w.ID),
	)

	common.Notify(ctx, b.messenger, b.config.AdminID, common.Reply{
		Text:     text,
		Keyboard: common.WithdrawalActionKeyboard(w.ID),
	})
}

func (b *Bot) notifyOwnerOfResolution(ctx context.Context, w models.Withdrawal) {
	var text string
	switch w.Status {
	case models.WithdrawalStatusCompleted:
		text = fmt.Sprintf("<b>🎉 Withdrawal Success!</b>\n\n<b>Amount:</b> %s⭐ Stars", common.FormatStars(w.Amount))
	case models.WithdrawalStatusRejected:
		text = fmt.Sprintf("<b>❌ Withdrawal rejected. Stars refunded.</b>\n\n<b>Amount:</b> %s⭐ Stars", common.FormatStars(w.Amount))
	default:
		return
	}
	common.Notify(ctx, b.messenger, w.TelegramID, common.Reply{Text: text})
}
