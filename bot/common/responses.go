package common

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"starsbot/service"
)

const (
	// GenericError is shown when a request fails for reasons the user cannot fix
	GenericError = "❌ Something went wrong. Please try again."
	AccessDenied = "❌ Access denied!"
	StartFirst   = "⚠️ Please send /start first!"
)

// Show renders reply in place of the pressed button's message, or as a new
// message for commands and text. Callbacks are acknowledged exactly once.
func Show(ctx context.Context, m Messenger, ev Event, reply Reply) {
	if ev.Kind == EventCallback {
		if err := m.Edit(ctx, ev.ChatID, ev.MessageID, reply); err != nil {
			log.WithFields(log.Fields{
				"chatID":    ev.ChatID,
				"messageID": ev.MessageID,
				"error":     err,
			}).Warn("Failed to edit message")
		}
		answer(ctx, m, ev, "", false)
		return
	}

	if _, err := m.Send(ctx, ev.ChatID, reply); err != nil {
		log.WithFields(log.Fields{
			"chatID": ev.ChatID,
			"error":  err,
		}).Warn("Failed to send message")
	}
}

// Alert shows a short notice as a popup for callbacks, or as a plain message otherwise
func Alert(ctx context.Context, m Messenger, ev Event, text string) {
	if ev.Kind == EventCallback {
		answer(ctx, m, ev, text, true)
		return
	}

	if _, err := m.Send(ctx, ev.ChatID, Reply{Text: Escape(text)}); err != nil {
		log.WithFields(log.Fields{
			"chatID": ev.ChatID,
			"error":  err,
		}).Warn("Failed to send message")
	}
}

// RespondWithError reports an unexpected failure to the user
func RespondWithError(ctx context.Context, m Messenger, ev Event) {
	Alert(ctx, m, ev, GenericError)
}

// RespondWithServiceError maps a service failure to a notice. ErrNotFound is
// read as an unknown user; callers handle other missing records themselves.
func RespondWithServiceError(ctx context.Context, m Messenger, ev Event, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		Alert(ctx, m, ev, AccessDenied)
	case errors.Is(err, service.ErrNotFound):
		Alert(ctx, m, ev, StartFirst)
	default:
		log.WithFields(log.Fields{
			"userID": ev.UserID,
			"kind":   ev.Kind.String(),
			"error":  err,
		}).Error("Request failed")
		RespondWithError(ctx, m, ev)
	}
}

// Notify sends a message to a chat outside of any request, returning the message id or 0
func Notify(ctx context.Context, m Messenger, chatID int64, reply Reply) int {
	id, err := m.Send(ctx, chatID, reply)
	if err != nil {
		log.WithFields(log.Fields{
			"chatID": chatID,
			"error":  err,
		}).Warn("Failed to deliver notification")
		return 0
	}
	return id
}

func answer(ctx context.Context, m Messenger, ev Event, text string, alert bool) {
	if err := m.AnswerCallback(ctx, ev.CallbackID, text, alert); err != nil {
		log.WithFields(log.Fields{
			"callbackID": ev.CallbackID,
			"error":      err,
		}).Debug("Failed to answer callback")
	}
}
