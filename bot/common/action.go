package common

import "strings"

// ActionKind names a button action
type ActionKind string

const (
	ActionVerifyJoin    ActionKind = "verify_join"
	ActionMainMenu      ActionKind = "main_menu"
	ActionBonus         ActionKind = "bonus"
	ActionClaimBonus    ActionKind = "claim_bonus"
	ActionBalance       ActionKind = "balance"
	ActionRefer         ActionKind = "refer"
	ActionWithdraw      ActionKind = "withdraw"
	ActionAdmin         ActionKind = "admin"
	ActionApprove       ActionKind = "approve"
	ActionReject        ActionKind = "reject"
	ActionRemoveChannel ActionKind = "remove"
)

// Admin panel sections carried in the Arg of an ActionAdmin
const (
	AdminUsers       = "users"
	AdminWithdrawals = "withdrawals"
	AdminAdd         = "add"
	AdminRemove      = "remove"
	AdminBroadcast   = "broadcast"
	AdminChannels    = "channels"
	AdminBack        = "back"
)

var (
	plainActions = map[ActionKind]bool{
		ActionVerifyJoin: true,
		ActionMainMenu:   true,
		ActionBonus:      true,
		ActionClaimBonus: true,
		ActionBalance:    true,
		ActionRefer:      true,
		ActionWithdraw:   true,
	}
	adminSections = map[string]bool{
		AdminUsers:       true,
		AdminWithdrawals: true,
		AdminAdd:         true,
		AdminRemove:      true,
		AdminBroadcast:   true,
		AdminChannels:    true,
		AdminBack:        true,
	}
)

// Action is decoded callback data. Arg holds the admin section, the
// withdrawal id or the "@name" channel id depending on Kind.
type Action struct {
	Kind ActionKind
	Arg  string
}

// ParseAction decodes callback data. Unknown data returns false.
func ParseAction(data string) (Action, bool) {
	if plainActions[ActionKind(data)] {
		return Action{Kind: ActionKind(data)}, true
	}

	kind, arg, found := strings.Cut(data, "_")
	if !found || arg == "" {
		return Action{}, false
	}

	switch ActionKind(kind) {
	case ActionAdmin:
		if !adminSections[arg] {
			return Action{}, false
		}
		return Action{Kind: ActionAdmin, Arg: arg}, true
	case ActionApprove, ActionReject:
		return Action{Kind: ActionKind(kind), Arg: arg}, true
	case ActionRemoveChannel:
		return Action{Kind: ActionRemoveChannel, Arg: "@" + arg}, true
	}
	return Action{}, false
}

// Data encodes the action as callback data
func (a Action) Data() string {
	switch a.Kind {
	case ActionAdmin, ActionApprove, ActionReject:
		return string(a.Kind) + "_" + a.Arg
	case ActionRemoveChannel:
		return string(a.Kind) + "_" + strings.TrimPrefix(a.Arg, "@")
	default:
		return string(a.Kind)
	}
}

// IsAdmin reports whether only the administrator may trigger the action
func (a Action) IsAdmin() bool {
	switch a.Kind {
	case ActionAdmin, ActionApprove, ActionReject, ActionRemoveChannel:
		return true
	}
	return false
}

// Admin builds an admin panel action
func Admin(section string) Action {
	return Action{Kind: ActionAdmin, Arg: section}
}

func Approve(id string) Action {
	return Action{Kind: ActionApprove, Arg: id}
}

func Reject(id string) Action {
	return Action{Kind: ActionReject, Arg: id}
}

// RemoveChannel builds a removal action for an "@name" channel id
func RemoveChannel(channelID string) Action {
	return Action{Kind: ActionRemoveChannel, Arg: channelID}
}

func Plain(kind ActionKind) Action {
	return Action{Kind: kind}
}
