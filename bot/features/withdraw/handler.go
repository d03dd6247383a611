package withdraw

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"starsbot/bot/common"
	"starsbot/conversation"
	"starsbot/models"
	"starsbot/service"
)

const (
	amountPrompt    = "<b>⭐ Enter Stars amount:</b>"
	invalidUsername = "<b>❌ Invalid username format</b>"
	invalidNumber   = "<b>❌ Enter valid number</b>"
)

func (f *Feature) handleWithdrawMenu(ctx context.Context, ev common.Event) {
	user, err := f.users.GetUser(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}

	minimum := f.withdrawals.MinimumAmount()
	if !user.CanAfford(minimum) {
		text := fmt.Sprintf(`<b>❌ Insufficient Balance</b>

<b>💰 Your balance:</b> %s⭐ stars

<b>📋 Need at least %s⭐ stars</b>

<b>💡 Earn more through daily bonus &amp; referrals!</b>`,
			common.FormatStars(user.Balance), common.FormatStars(minimum))
		common.Show(ctx, f.messenger, ev, common.Reply{Text: text, Keyboard: common.BackMenuKeyboard()})
		return
	}

	if _, err := f.machine.Begin(ctx, ev.UserID, conversation.TagWithdrawUsername); err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}

	text := fmt.Sprintf(`<b>💸 Withdrawal Request</b>

<b>⚡ Send Stars To Real Username</b>

<b>📋 Minimum: %s⭐ Stars</b>

<b>Please enter username 👇</b>
<i>/cancel to stop</i>`, common.FormatStars(minimum))
	common.Show(ctx, f.messenger, ev, common.Reply{Text: text})
}

func (f *Feature) handleUsername(ctx context.Context, ev common.Event) {
	username, err := service.NormalizeUsername(ev.Text)
	if err != nil {
		common.Show(ctx, f.messenger, ev, common.Reply{Text: invalidUsername})
		return
	}

	if _, err := f.machine.Advance(ctx, ev.UserID, conversation.KeyPayoutUsername, username); err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	common.Show(ctx, f.messenger, ev, common.Reply{Text: amountPrompt})
}

func (f *Feature) handleAmount(ctx context.Context, ev common.Event, session *conversation.Session) {
	amount, err := service.ParseAmount(ev.Text)
	if err != nil {
		common.Show(ctx, f.messenger, ev, common.Reply{Text: invalidNumber})
		return
	}

	withdrawal, err := f.withdrawals.Submit(ctx, ev.UserID, session.Data[conversation.KeyPayoutUsername], amount)
	switch {
	case errors.Is(err, service.ErrBelowMinimum):
		common.Show(ctx, f.messenger, ev, common.Reply{
			Text: fmt.Sprintf("<b>❌ Minimum %s⭐ stars</b>", common.FormatStars(f.withdrawals.MinimumAmount())),
		})
		return
	case errors.Is(err, service.ErrInsufficientFunds):
		f.replyInsufficient(ctx, ev)
		return
	case errors.Is(err, service.ErrInvalidInput):
		// The stored username no longer validates, start over
		f.finish(ctx, ev.UserID)
		common.RespondWithError(ctx, f.messenger, ev)
		return
	case err != nil:
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}

	f.finish(ctx, ev.UserID)
	common.Show(ctx, f.messenger, ev, orderPlacedReply(withdrawal))
}

func (f *Feature) replyInsufficient(ctx context.Context, ev common.Event) {
	balance, err := f.ledger.Balance(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	common.Show(ctx, f.messenger, ev, common.Reply{
		Text: fmt.Sprintf("<b>❌ Insufficient balance: %s⭐</b>", common.FormatStars(balance)),
	})
}

func (f *Feature) finish(ctx context.Context, userID int64) {
	if _, err := f.machine.Finish(ctx, userID); err != nil && !errors.Is(err, conversation.ErrNoDialog) {
		log.WithFields(log.Fields{
			"userID": userID,
			"error":  err,
		}).Warn("Failed to close withdrawal dialog")
	}
}

func orderPlacedReply(w *models.Withdrawal) common.Reply {
	return common.Reply{
		Text: fmt.Sprintf(`<b>✅ Order Placed!</b>

<b>🆔 Order ID:</b> <code>%s</code>
<b>⭐ Amount:</b> %s Stars
<b>🎉 Submitted to admin</b>

<b>📧 You'll be notified!</b>`, common.Escape(w.ID), common.FormatStars(w.Amount)),
		Keyboard: common.BackMenuKeyboard(),
	}
}
