package admin

import (
	"context"

	"starsbot/bot/common"
	"starsbot/conversation"
	"starsbot/service"
)

// Feature is the administrator panel: statistics, withdrawal moderation,
// gate channel management and broadcasts
type Feature struct {
	messenger   common.Messenger
	stats       service.StatsService
	withdrawals service.WithdrawalService
	channels    service.ChannelService
	broadcasts  service.BroadcastService
	machine     *conversation.Machine
}

// New creates a new admin feature instance
func New(messenger common.Messenger, stats service.StatsService, withdrawals service.WithdrawalService, channels service.ChannelService, broadcasts service.BroadcastService, machine *conversation.Machine) *Feature {
	return &Feature{
		messenger:   messenger,
		stats:       stats,
		withdrawals: withdrawals,
		channels:    channels,
		broadcasts:  broadcasts,
		machine:     machine,
	}
}

// HandleCallback routes admin buttons. Callers check authorization first.
func (f *Feature) HandleCallback(ctx context.Context, ev common.Event, action common.Action) {
	switch action.Kind {
	case common.ActionAdmin:
		f.handleSection(ctx, ev, action.Arg)
	case common.ActionApprove, common.ActionReject:
		f.handleResolve(ctx, ev, action)
	case common.ActionRemoveChannel:
		f.handleRemoveChannel(ctx, ev, action.Arg)
	}
}

// HandleText consumes one turn of an admin dialog
func (f *Feature) HandleText(ctx context.Context, ev common.Event, session *conversation.Session) {
	switch session.Tag {
	case conversation.TagChannelLink:
		f.handleChannelLink(ctx, ev)
	case conversation.TagChannelName:
		f.handleChannelName(ctx, ev, session)
	case conversation.TagBroadcastText:
		f.handleBroadcastText(ctx, ev)
	}
}

// Owns reports whether the dialog step belongs to this feature
func Owns(tag conversation.Tag) bool {
	switch tag {
	case conversation.TagChannelLink, conversation.TagChannelName, conversation.TagBroadcastText:
		return true
	}
	return false
}
