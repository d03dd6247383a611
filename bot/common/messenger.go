package common

import "context"

// Button is one inline keyboard button. Exactly one of Data or URL is set.
type Button struct {
	Text string
	Data string
	URL  string
}

// Keyboard is a grid of inline buttons, one slice per row
type Keyboard [][]Button

// Reply is an outgoing HTML message with an optional inline keyboard
type Reply struct {
	Text     string
	Keyboard Keyboard
}

// Messenger is the part of the messaging platform the bot talks to
type Messenger interface {
	// Send posts a new message and returns its id
	Send(ctx context.Context, chatID int64, reply Reply) (int, error)

	// Edit replaces the text and keyboard of an existing message
	Edit(ctx context.Context, chatID int64, messageID int, reply Reply) error

	// AnswerCallback acknowledges a button press, optionally as a popup alert
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error

	// MemberStatus returns the user's status in a channel ("member", "left", ...)
	MemberStatus(ctx context.Context, channelID string, userID int64) (string, error)
}
