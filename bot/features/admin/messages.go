package admin

import (
	"fmt"
	"strings"

	"starsbot/bot/common"
	"starsbot/models"
)

const (
	panelText        = "<b>🔐 Welcome Boss!</b>\n\n<b>👥 Manage Users • 💸 Withdrawals</b>\n<b>➕ Add Channels • 📢 Broadcast</b>"
	linkPrompt       = "<b>📝 Send channel link:</b>\n<i>/cancel to stop</i>"
	namePrompt       = "<b>📝 Button Name:</b>"
	broadcastPrompt  = "<b>📢 Send broadcast message:</b>\n<i>/cancel to stop</i>"
	broadcastingText = "<b>📢 Broadcasting...</b>"
	invalidLink      = "<b>❌ Invalid link</b>"
	channelAdded     = "<b>✅ Button Added!</b>"
	channelExists    = "<b>❌ Channel already added</b>"
	addFailed        = "<b>❌ Failed to add</b>"
	channelRemoved   = "<b>✅ Channel Removed!</b>"
	removeFailed     = "<b>❌ Failed to remove</b>"
	noChannels       = "<b>❌ No channels found</b>"
	removeTitle      = "<b>➖ Remove Channel</b>"
	notFoundAlert    = "❌ Not found!"
)

func panelReply() common.Reply {
	return common.Reply{Text: panelText, Keyboard: common.AdminMenuKeyboard()}
}

func statsText(stats *models.BotStats) string {
	return fmt.Sprintf(`<b>📊 Bot Statistics</b>

<b>👥 Total Users:</b> %s
<b>📢 Total Channels:</b> %d

<b>💸 Withdrawal Stats:</b>
<b>⏳ Pending:</b> %d
<b>✅ Completed:</b> %d
<b>❌ Rejected:</b> %d

<b>🚀 Bot is running smoothly!</b>`,
		common.FormatStars(stats.TotalUsers),
		stats.TotalChannels,
		stats.Withdrawals.Pending,
		stats.Withdrawals.Completed,
		stats.Withdrawals.Rejected,
	)
}

func usersReply(stats *models.BotStats) common.Reply {
	return common.Reply{
		Text:     fmt.Sprintf("<b>👥 User Statistics</b>\n\n<b>📊 Total Users:</b> %s", common.FormatStars(stats.TotalUsers)),
		Keyboard: common.AdminBackKeyboard(),
	}
}

func withdrawalStatsReply(stats *models.WithdrawalStats) common.Reply {
	return common.Reply{
		Text: fmt.Sprintf(`<b>💸 Withdrawal Stats</b>

<b>⏳ Pending:</b> %d
<b>✅ Completed:</b> %d
<b>❌ Rejected:</b> %d
<b>📦 Total:</b> %d`, stats.Pending, stats.Completed, stats.Rejected, stats.Total()),
		Keyboard: common.AdminBackKeyboard(),
	}
}

func channelListReply(channels []*models.GateChannel) common.Reply {
	var b strings.Builder
	b.WriteString("<b>📄 Channel List</b>\n\n")
	if len(channels) == 0 {
		b.WriteString("<b>❌ No channels added yet.</b>")
	}
	for i, ch := range channels {
		fmt.Fprintf(&b, "<b>%d.</b> %s\n<b>🔗</b> %s\n\n", i+1, common.Escape(ch.Name), common.Escape(ch.Link))
	}
	return common.Reply{Text: strings.TrimSpace(b.String()), Keyboard: common.AdminBackKeyboard()}
}

// resolvedReply prefixes the moderated request with its outcome and drops the buttons
func resolvedReply(status models.WithdrawalStatus, original string) common.Reply {
	prefix := "<b>✅ Approved</b>"
	if status == models.WithdrawalStatusRejected {
		prefix = "<b>❌ Rejected</b>"
	}
	return common.Reply{Text: prefix + "\n\n" + common.Escape(original)}
}

func broadcastDoneText(result *models.BroadcastResult) string {
	return fmt.Sprintf("<b>📢 Complete!</b>\n\n<b>✅ Sent:</b> %d\n<b>❌ Failed:</b> %d", result.Sent, result.Failed)
}
