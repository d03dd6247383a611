package common

import (
	"starsbot/models"
)

// DataButton creates a button that fires the action
func DataButton(text string, a Action) Button {
	return Button{Text: text, Data: a.Data()}
}

// URLButton creates a button that opens a link
func URLButton(text, url string) Button {
	return Button{Text: text, URL: url}
}

// MainMenuKeyboard is the user home screen. The contact row is left out
// when no support link is configured.
func MainMenuKeyboard(supportLink string) Keyboard {
	kb := Keyboard{
		{DataButton("🎁 Bonus", Plain(ActionBonus)), DataButton("💰 Balance", Plain(ActionBalance))},
		{DataButton("👥 Refer", Plain(ActionRefer)), DataButton("💸 Withdraw", Plain(ActionWithdraw))},
	}
	if supportLink != "" {
		kb = append(kb, []Button{URLButton("📞 Contact", supportLink)})
	}
	return kb
}

func BackMenuKeyboard() Keyboard {
	return Keyboard{{DataButton("🔙 Menu", Plain(ActionMainMenu))}}
}

func BonusMenuKeyboard() Keyboard {
	return Keyboard{
		{DataButton("🎁 Claim", Plain(ActionClaimBonus))},
		{DataButton("🔙 Menu", Plain(ActionMainMenu))},
	}
}

func BonusBackKeyboard() Keyboard {
	return Keyboard{{DataButton("🔙 Back", Plain(ActionBonus))}}
}

// JoinChannelsKeyboard lays channel links out two per row followed by the verify button
func JoinChannelsKeyboard(channels []*models.GateChannel) Keyboard {
	var kb Keyboard
	for i := 0; i < len(channels); i += 2 {
		row := []Button{URLButton("📢 "+channels[i].Name, channels[i].Link)}
		if i+1 < len(channels) {
			row = append(row, URLButton("📢 "+channels[i+1].Name, channels[i+1].Link))
		}
		kb = append(kb, row)
	}
	return append(kb, []Button{DataButton("✅ Verify Join", Plain(ActionVerifyJoin))})
}

func AdminMenuKeyboard() Keyboard {
	return Keyboard{
		{DataButton("👥 Users", Admin(AdminUsers)), DataButton("💸 Withdrawals", Admin(AdminWithdrawals))},
		{DataButton("➕ Add Channel", Admin(AdminAdd)), DataButton("➖ Remove Channel", Admin(AdminRemove))},
		{DataButton("📢 Broadcast", Admin(AdminBroadcast)), DataButton("📋 Channel List", Admin(AdminChannels))},
	}
}

func AdminBackKeyboard() Keyboard {
	return Keyboard{{DataButton("🔙 Back", Admin(AdminBack))}}
}

// WithdrawalActionKeyboard lets the admin resolve a pending withdrawal
func WithdrawalActionKeyboard(id string) Keyboard {
	return Keyboard{{
		DataButton("✅ Approve", Approve(id)),
		DataButton("❌ Reject", Reject(id)),
	}}
}

// RemoveChannelsKeyboard lists one removal button per gate channel
func RemoveChannelsKeyboard(channels []*models.GateChannel) Keyboard {
	kb := make(Keyboard, 0, len(channels)+1)
	for _, ch := range channels {
		kb = append(kb, []Button{DataButton("❌ "+ch.Name, RemoveChannel(ch.ChannelID))})
	}
	return append(kb, []Button{DataButton("🔙 Back", Admin(AdminBack))})
}

// StartPrivateKeyboard points group users to the private chat with the bot
func StartPrivateKeyboard(botUsername string) Keyboard {
	return Keyboard{{URLButton("🤖 Start Bot", "https://t.me/"+botUsername)}}
}
