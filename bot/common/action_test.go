package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsbot/models"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		data string
		want Action
	}{
		{"verify_join", Action{Kind: ActionVerifyJoin}},
		{"main_menu", Action{Kind: ActionMainMenu}},
		{"bonus", Action{Kind: ActionBonus}},
		{"claim_bonus", Action{Kind: ActionClaimBonus}},
		{"balance", Action{Kind: ActionBalance}},
		{"refer", Action{Kind: ActionRefer}},
		{"withdraw", Action{Kind: ActionWithdraw}},
		{"admin_users", Action{Kind: ActionAdmin, Arg: AdminUsers}},
		{"admin_back", Action{Kind: ActionAdmin, Arg: AdminBack}},
		{"approve_12345678", Action{Kind: ActionApprove, Arg: "12345678"}},
		{"reject_12345678", Action{Kind: ActionReject, Arg: "12345678"}},
		{"remove_stars_news", Action{Kind: ActionRemoveChannel, Arg: "@stars_news"}},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, ok := ParseAction(tt.data)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.data, got.Data())
		})
	}
}

func TestParseAction_Rejects(t *testing.T) {
	for _, data := range []string{"", "admin_", "admin_nuke", "approve_", "remove_", "bonusx", "transfer_1"} {
		t.Run(data, func(t *testing.T) {
			_, ok := ParseAction(data)
			assert.False(t, ok)
		})
	}
}

func TestAction_IsAdmin(t *testing.T) {
	assert.True(t, Admin(AdminAdd).IsAdmin())
	assert.True(t, Approve("1").IsAdmin())
	assert.True(t, Reject("1").IsAdmin())
	assert.True(t, RemoveChannel("@news").IsAdmin())
	assert.False(t, Plain(ActionWithdraw).IsAdmin())
	assert.False(t, Plain(ActionVerifyJoin).IsAdmin())
}

func TestKeyboardsEncodeParsableData(t *testing.T) {
	channels := []*models.GateChannel{
		{ChannelID: "@one", Name: "One", Link: "https://t.me/one"},
		{ChannelID: "@two", Name: "Two", Link: "https://t.me/two"},
	}
	keyboards := []Keyboard{
		MainMenuKeyboard("https://t.me/support"),
		BackMenuKeyboard(),
		BonusMenuKeyboard(),
		BonusBackKeyboard(),
		JoinChannelsKeyboard(channels),
		AdminMenuKeyboard(),
		AdminBackKeyboard(),
		WithdrawalActionKeyboard("12345678"),
		RemoveChannelsKeyboard(channels),
	}

	for _, kb := range keyboards {
		for _, row := range kb {
			for _, b := range row {
				if b.URL != "" {
					assert.Empty(t, b.Data)
					continue
				}
				_, ok := ParseAction(b.Data)
				assert.True(t, ok, "button %q carries %q", b.Text, b.Data)
				assert.LessOrEqual(t, len(b.Data), 64)
			}
		}
	}
}

func TestJoinChannelsKeyboard_TwoPerRow(t *testing.T) {
	var channels []*models.GateChannel
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		channels = append(channels, &models.GateChannel{ChannelID: "@" + name, Name: name, Link: "https://t.me/" + name})
	}

	kb := JoinChannelsKeyboard(channels)

	require.Len(t, kb, 4)
	assert.Len(t, kb[0], 2)
	assert.Len(t, kb[1], 2)
	assert.Len(t, kb[2], 1)
	assert.Equal(t, "📢 e", kb[2][0].Text)
	assert.Equal(t, "verify_join", kb[3][0].Data)
}

func TestMainMenuKeyboard_NoSupportLink(t *testing.T) {
	assert.Len(t, MainMenuKeyboard(""), 2)
	assert.Len(t, MainMenuKeyboard("https://t.me/support"), 3)
}
