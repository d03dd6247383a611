package bonus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"starsbot/bot/common"
	"starsbot/service"
)

// Feature serves the daily bonus screen and claim button
type Feature struct {
	messenger common.Messenger
	bonus     service.BonusService
	cooldown  time.Duration
}

// New creates a new bonus feature instance
func New(messenger common.Messenger, bonus service.BonusService, cooldown time.Duration) *Feature {
	return &Feature{
		messenger: messenger,
		bonus:     bonus,
		cooldown:  cooldown,
	}
}

// HandleCallback handles the bonus buttons
func (f *Feature) HandleCallback(ctx context.Context, ev common.Event, action common.Action) {
	switch action.Kind {
	case common.ActionBonus:
		f.handleBonusMenu(ctx, ev)
	case common.ActionClaimBonus:
		f.handleClaim(ctx, ev)
	}
}

func (f *Feature) handleBonusMenu(ctx context.Context, ev common.Event) {
	status, err := f.bonus.Status(ctx, ev.UserID)
	if err != nil {
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}

	footer := "<b>🎁 Ready to claim!</b>"
	if !status.Claimable {
		footer = fmt.Sprintf("<b>⏰ Next: %s</b>", service.FormatCooldown(status.Remaining))
	}

	text := fmt.Sprintf(`<b>🔥 Claim Your Bonus</b>

<b>🕑 Claim Again In %s</b>

%s`, cooldownLabel(f.cooldown), footer)

	common.Show(ctx, f.messenger, ev, common.Reply{Text: text, Keyboard: common.BonusMenuKeyboard()})
}

func (f *Feature) handleClaim(ctx context.Context, ev common.Event) {
	result, err := f.bonus.Claim(ctx, ev.UserID)

	var notReady *service.BonusNotReadyError
	switch {
	case errors.As(err, &notReady):
		common.Alert(ctx, f.messenger, ev,
			fmt.Sprintf("⏳ Already claimed!\n⏱️ Wait: %s", service.FormatCooldown(notReady.Remaining)))
		return
	case err != nil:
		common.RespondWithServiceError(ctx, f.messenger, ev, err)
		return
	}

	text := fmt.Sprintf(`<b>🎉 Congratulations!</b>

<b>⭐ You received %s⭐ as Daily Bonus!</b>
<b>💵 Balance:</b> %s⭐

<b>⏳ Come back after %s!</b>`,
		common.FormatStars(result.Amount),
		common.FormatStars(result.NewBalance),
		cooldownLabel(f.cooldown),
	)

	common.Show(ctx, f.messenger, ev, common.Reply{Text: text, Keyboard: common.BonusBackKeyboard()})
}

// cooldownLabel renders whole hours as "24 Hours" and anything else as a duration
func cooldownLabel(d time.Duration) string {
	if d > 0 && d%time.Hour == 0 {
		return fmt.Sprintf("%d Hours", int64(d/time.Hour))
	}
	return d.String()
}
