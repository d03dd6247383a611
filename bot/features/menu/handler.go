package menu

import (
	"context"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"starsbot/bot/common"
	"starsbot/conversation"
)

// HandleStart registers the user, credits a referrer named in the start
// argument and shows either the channel gate or the main menu
func (f *Feature) HandleStart(ctx context.Context, ev common.Event) {
	if !ev.Private {
		common.Show(ctx, f.messenger, ev, common.Reply{
			Text:     groupOnlyText,
			Keyboard: common.StartPrivateKeyboard(f.config.BotUsername),
		})
		return
	}

	var referrerID *int64
	if arg := strings.TrimSpace(ev.Args); arg != "" {
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			referrerID = &id
		}
	}

	_, created, err := f.users.GetOrCreateUser(ctx, ev.UserID, ev.FirstName, ev.Username, referrerID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	if created {
		log.WithFields(log.Fields{
			"userID":     ev.UserID,
			"referrerID": referrerID,
		}).Debug("New user started the bot")
	}

	member, err := f.membership.IsMember(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	if member {
		common.Show(ctx, f.messenger, ev, welcomeReply(ev.FirstName, f.config.SupportLink))
		return
	}

	channels, err := f.channels.List(ctx)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	common.Show(ctx, f.messenger, ev, joinChannelsReply(ev.FirstName, channels))
}

// HandleCancel closes any open dialog
func (f *Feature) HandleCancel(ctx context.Context, ev common.Event) {
	cancelled, err := f.machine.CancelCurrent(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	if cancelled == conversation.TagNone {
		common.Show(ctx, f.messenger, ev, common.Reply{Text: nothingToClose})
		return
	}

	log.WithFields(log.Fields{
		"userID": ev.UserID,
		"tag":    cancelled,
	}).Debug("Dialog cancelled")
	common.Show(ctx, f.messenger, ev, cancelledReply())
}

func (f *Feature) handleVerifyJoin(ctx context.Context, ev common.Event) {
	member, err := f.membership.IsMember(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	if !member {
		common.Alert(ctx, f.messenger, ev, joinFirstAlert)
		return
	}
	common.Show(ctx, f.messenger, ev, welcomeReply(ev.FirstName, f.config.SupportLink))
}

func (f *Feature) showMainMenu(ctx context.Context, ev common.Event) {
	common.Show(ctx, f.messenger, ev, welcomeReply(ev.FirstName, f.config.SupportLink))
}

func (f *Feature) handleBalance(ctx context.Context, ev common.Event) {
	balance, err := f.ledger.Balance(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	common.Show(ctx, f.messenger, ev, balanceReply(ev.FirstName, ev.UserID, balance, f.now()))
}

func (f *Feature) handleRefer(ctx context.Context, ev common.Event) {
	user, err := f.users.GetUser(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	common.Show(ctx, f.messenger, ev, referReply(f.config.BotUsername, f.config.ReferralBonus, user))
}
