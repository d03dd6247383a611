package withdraw

import (
	"context"

	"starsbot/bot/common"
	"starsbot/conversation"
	"starsbot/service"
)

// Feature runs the user side of a withdrawal: the entry screen and the
// username then amount dialog
type Feature struct {
	messenger   common.Messenger
	users       service.UserService
	ledger      service.LedgerService
	withdrawals service.WithdrawalService
	machine     *conversation.Machine
}

// New creates a new withdraw feature instance
func New(messenger common.Messenger, users service.UserService, ledger service.LedgerService, withdrawals service.WithdrawalService, machine *conversation.Machine) *Feature {
	return &Feature{
		messenger:   messenger,
		users:       users,
		ledger:      ledger,
		withdrawals: withdrawals,
		machine:     machine,
	}
}

// HandleCallback opens the withdrawal dialog when the balance allows it
func (f *Feature) HandleCallback(ctx context.Context, ev common.Event, action common.Action) {
	if action.Kind == common.ActionWithdraw {
		f.handleWithdrawMenu(ctx, ev)
	}
}

// HandleText consumes one dialog turn
func (f *Feature) HandleText(ctx context.Context, ev common.Event, session *conversation.Session) {
	switch session.Tag {
	case conversation.TagWithdrawUsername:
		f.handleUsername(ctx, ev)
	case conversation.TagWithdrawAmount:
		f.handleAmount(ctx, ev, session)
	}
}

// Owns reports whether the dialog step belongs to this feature
func Owns(tag conversation.Tag) bool {
	return tag == conversation.TagWithdrawUsername || tag == conversation.TagWithdrawAmount
}
