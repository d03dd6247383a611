package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"starsbot/bot/common"
	"starsbot/conversation"
	"starsbot/service"
)

// HandleHelp shows the admin panel
func (f *Feature) HandleHelp(ctx context.Context, ev common.Event) {
	common.Show(ctx, f.messenger, ev, panelReply())
}

// HandleStats shows user, channel and withdrawal counts
func (f *Feature) HandleStats(ctx context.Context, ev common.Event) {
	stats, err := f.stats.Stats(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	common.Show(ctx, f.messenger, ev, common.Reply{Text: statsText(stats)})
}

func (f *Feature) handleSection(ctx context.Context, ev common.Event, section string) {
	switch section {
	case common.AdminUsers:
		stats, err := f.stats.Stats(ctx, ev.UserID)
		if err != nil {
			common.RespondWithServiceError(ctx, f.messenger, ev, err)
			return
		}
		common.Show(ctx, f.messenger, ev, usersReply(stats))

	case common.AdminWithdrawals:
		stats, err := f.withdrawals.Stats(ctx, ev.UserID)
		if err != nil {
			common.RespondWithServiceError(ctx, f.messenger, ev, err)
			return
		}
		common.Show(ctx, f.messenger, ev, withdrawalStatsReply(stats))

	case common.AdminAdd:
		f.beginDialog(ctx, ev, conversation.TagChannelLink, linkPrompt)

	case common.AdminBroadcast:
		f.beginDialog(ctx, ev, conversation.TagBroadcastText, broadcastPrompt)

	case common.AdminRemove:
		channels, err := f.channels.List(ctx)
		if err != nil {
			common.RespondWithServiceError(ctx, f.messenger, ev, err)
			return
		}
		if len(channels) == 0 {
			common.Show(ctx, f.messenger, ev, common.Reply{Text: noChannels, Keyboard: common.AdminBackKeyboard()})
			return
		}
		common.Show(ctx, f.messenger, ev, common.Reply{Text: removeTitle, Keyboard: common.RemoveChannelsKeyboard(channels)})

	case common.AdminChannels:
		channels, err := f.channels.List(ctx)
		if err != nil {
			common.RespondWithServiceError(ctx, f.messenger, ev, err)
			return
		}
		common.Show(ctx, f.messenger, ev, channelListReply(channels))

	case common.AdminBack:
		common.Show(ctx, f.messenger, ev, panelReply())
	}
}

func (f *Feature) beginDialog(ctx context.Context, ev common.Event, tag conversation.Tag, prompt string) {
	cancelled, err := f.machine.Begin(ctx, ev.UserID, tag)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	if cancelled != conversation.TagNone {
		log.WithFields(log.Fields{
			"userID":    ev.UserID,
			"cancelled": cancelled,
			"started":   tag,
		}).Debug("Replaced open dialog")
	}
	common.Show(ctx, f.messenger, ev, common.Reply{Text: prompt})
}

func (f *Feature) handleResolve(ctx context.Context, ev common.Event, action common.Action) {
	resolve := f.withdrawals.Approve
	if action.Kind == common.ActionReject {
		resolve = f.withdrawals.Reject
	}

	withdrawal, err := resolve(ctx, ev.UserID, action.Arg)
	switch {
	case errors.Is(err, service.ErrNotFound):
		common.Alert(ctx, f.messenger, ev, notFoundAlert)
		return
	case errors.Is(err, service.ErrAlreadyResolved):
		// Replayed button press: show the outcome that already happened
		common.Alert(ctx, f.messenger, ev, fmt.Sprintf("ℹ️ Already %s!", withdrawal.Status))
		return
	case err != nil:
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}

	common.Show(ctx, f.messenger, ev, resolvedReply(withdrawal.Status, ev.MessageText))
}

func (f *Feature) handleRemoveChannel(ctx context.Context, ev common.Event, channelID string) {
	err := f.channels.Remove(ctx, ev.UserID, channelID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		common.Show(ctx, f.messenger, ev, common.Reply{Text: removeFailed, Keyboard: common.AdminBackKeyboard()})
		return
	case err != nil:
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	common.Show(ctx, f.messenger, ev, common.Reply{Text: channelRemoved, Keyboard: common.AdminBackKeyboard()})
}

func (f *Feature) handleChannelLink(ctx context.Context, ev common.Event) {
	link := strings.TrimSpace(ev.Text)
	if _, err := service.ParseChannelLink(link); err != nil {
		common.Show(ctx, f.messenger, ev, common.Reply{Text: invalidLink})
		return
	}

	if _, err := f.machine.Advance(ctx, ev.UserID, conversation.KeyChannelLink, link); err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	common.Show(ctx, f.messenger, ev, common.Reply{Text: namePrompt})
}

func (f *Feature) handleChannelName(ctx context.Context, ev common.Event, session *conversation.Session) {
	f.finish(ctx, ev.UserID)

	_, err := f.channels.Add(ctx, ev.UserID, ev.Text, session.Data[conversation.KeyChannelLink])
	switch {
	case errors.Is(err, service.ErrAlreadyExists):
		common.Show(ctx, f.messenger, ev, common.Reply{Text: channelExists, Keyboard: common.AdminBackKeyboard()})
		return
	case errors.Is(err, service.ErrInvalidInput):
		common.Show(ctx, f.messenger, ev, common.Reply{Text: addFailed, Keyboard: common.AdminBackKeyboard()})
		return
	case err != nil:
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	common.Show(ctx, f.messenger, ev, common.Reply{Text: channelAdded, Keyboard: common.AdminBackKeyboard()})
}

func (f *Feature) handleBroadcastText(ctx context.Context, ev common.Event) {
	f.finish(ctx, ev.UserID)

	statusID := common.Notify(ctx, f.messenger, ev.ChatID, common.Reply{Text: broadcastingText})

	result, err := f.broadcasts.Broadcast(ctx, ev.UserID, strings.TrimSpace(ev.Text))
	if result == nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}
	if err != nil {
		log.WithFields(log.Fields{
			"sent":   result.Sent,
			"failed": result.Failed,
			"error":  err,
		}).Warn("Broadcast stopped early")
	}

	done := common.Reply{Text: broadcastDoneText(result), Keyboard: common.AdminBackKeyboard()}
	if statusID == 0 {
		common.Notify(ctx, f.messenger, ev.ChatID, done)
		return
	}
	if err := f.messenger.Edit(ctx, ev.ChatID, statusID, done); err != nil {
		common.Notify(ctx, f.messenger, ev.ChatID, done)
	}
}

func (f *Feature) finish(ctx context.Context, userID int64) {
	if _, err := f.machine.Finish(ctx, userID); err != nil && !errors.Is(err, conversation.ErrNoDialog) {
		log.WithFields(log.Fields{
			"userID": userID,
			"error":  err,
		}).Warn("Failed to close admin dialog")
	}
}
