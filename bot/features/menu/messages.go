package menu

import (
	"fmt"
	"time"

	"starsbot/bot/common"
	"starsbot/models"
	"starsbot/service"
)

const (
	groupOnlyText  = "<b>🤖 I work in private messages only!</b>"
	joinFirstAlert = "❌ Please join all channels first!"
	nothingToClose = "<b>ℹ️ Nothing to cancel.</b>"
)

func joinChannelsReply(firstName string, channels []*models.GateChannel) common.Reply {
	text := fmt.Sprintf(`<b>👋 Hello %s!</b>

<b>📢 Join all channels below to start earning ⭐ Stars</b>

<b>Then tap ✅ Verify Join</b>`, common.Escape(firstName))

	return common.Reply{Text: text, Keyboard: common.JoinChannelsKeyboard(channels)}
}

func welcomeReply(firstName, supportLink string) common.Reply {
	text := fmt.Sprintf(`<b>👋 Welcome %s!</b>

<b>🎁 Claim your daily bonus</b>
<b>👥 Invite friends to earn more</b>
<b>💸 Withdraw ⭐ Stars to any username</b>`, common.Escape(firstName))

	return common.Reply{Text: text, Keyboard: common.MainMenuKeyboard(supportLink)}
}

func balanceReply(firstName string, userID, balance int64, now time.Time) common.Reply {
	text := fmt.Sprintf(`<b>👤 Name:</b> %s
<b>🆔 User ID:</b> %d

<b>💵 Balance:</b> %s⭐ Stars

<b>⌚️ Update:</b> %s
<b>📆 Date:</b> %s`,
		common.Escape(firstName),
		userID,
		common.FormatStars(balance),
		service.FormatClock(now),
		service.FormatDate(now),
	)

	return common.Reply{Text: text, Keyboard: common.BackMenuKeyboard()}
}

func referReply(botUsername string, referralBonus int64, user *models.User) common.Reply {
	text := fmt.Sprintf(`<b>🔥 Refer and Earn 🔥</b>

<b>✅ Per Refer:</b> %s⭐ Star
<b>👥 Total Referrals:</b> %d

<b>🔗 Your Link:</b>
<code>%s</code>`,
		common.FormatStars(referralBonus),
		user.TotalReferrals,
		common.Escape(common.ReferralLink(botUsername, user.TelegramID)),
	)

	return common.Reply{Text: text, Keyboard: common.BackMenuKeyboard()}
}

func cancelledReply() common.Reply {
	return common.Reply{
		Text:     "<b>❌ Cancelled.</b>",
		Keyboard: common.BackMenuKeyboard(),
	}
}
