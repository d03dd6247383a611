package telegram

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"starsbot/bot/common"
)

// Handler consumes decoded events
type Handler interface {
	HandleEvent(ctx context.Context, ev common.Event)
}

// Dispatcher runs each update in its own goroutine. Updates of one user are
// handled one at a time in arrival order. Handlers run under a context owned
// by the dispatcher, which stays live until Shutdown gives up on them.
type Dispatcher struct {
	handler Handler
	queue   *keyedQueue
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewDispatcher creates a dispatcher feeding handler
func NewDispatcher(handler Handler) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		handler: handler,
		queue:   newKeyedQueue(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Dispatch decodes update and hands it to the handler in the background
func (d *Dispatcher) Dispatch(update tgbotapi.Update) {
	ev, ok := ToEvent(update)
	if !ok {
		return
	}

	wait, done := d.queue.enqueue(ev.UserID)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer done()
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"userID": ev.UserID,
					"kind":   ev.Kind.String(),
					"panic":  r,
					"stack":  string(debug.Stack()),
				}).Error("Event handler panicked")
			}
		}()

		if wait != nil {
			select {
			case <-wait:
			case <-d.ctx.Done():
				return
			}
		}
		d.handler.HandleEvent(d.ctx, ev)
	}()
}

// Shutdown waits for dispatched updates to be handled. When ctx expires
// first, the handlers' context is cancelled and ctx's error is returned.
// Stop receiving updates before calling it.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	defer d.cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poll receives updates by long polling until ctx is cancelled
func (c *Client) Poll(ctx context.Context, d *Dispatcher) {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Warnf("Failed to clear webhook before polling: %v", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := c.api.GetUpdatesChan(u)
	log.Info("Listening for Telegram updates...")

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			log.Info("Context cancelled. Stopping Telegram listener.")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			d.Dispatch(update)
		}
	}
}

// SetWebhook tells Telegram to push updates to url
func (c *Client) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := c.api.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	return nil
}

// WebhookHandler decodes pushed updates and dispatches them. Handling
// outlives the HTTP request.
func (c *Client) WebhookHandler(d *Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		update, err := c.api.HandleUpdate(r)
		if err != nil {
			log.Warnf("Rejected webhook update: %v", err)
			http.Error(w, "bad update", http.StatusBadRequest)
			return
		}
		d.Dispatch(*update)
		w.WriteHeader(http.StatusOK)
	}
}

// ToEvent strips an update down to the fields the bot routes on.
// Updates without a sender, or that carry nothing routable, are dropped.
func ToEvent(update tgbotapi.Update) (common.Event, bool) {
	if cq := update.CallbackQuery; cq != nil {
		if cq.From == nil {
			return common.Event{}, false
		}
		ev := common.Event{
			Kind:       common.EventCallback,
			UserID:     cq.From.ID,
			ChatID:     cq.From.ID,
			FirstName:  cq.From.FirstName,
			Username:   cq.From.UserName,
			CallbackID: cq.ID,
			Data:       cq.Data,
			Private:    true,
		}
		if cq.Message != nil {
			ev.MessageID = cq.Message.MessageID
			ev.MessageText = cq.Message.Text
			if cq.Message.Chat != nil {
				ev.ChatID = cq.Message.Chat.ID
				ev.Private = cq.Message.Chat.IsPrivate()
			}
		}
		return ev, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return common.Event{}, false
	}

	ev := common.Event{
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		FirstName: msg.From.FirstName,
		Username:  msg.From.UserName,
		MessageID: msg.MessageID,
		Private:   msg.Chat.IsPrivate(),
	}

	switch {
	case msg.IsCommand():
		ev.Kind = common.EventCommand
		ev.Command = msg.Command()
		ev.Args = msg.CommandArguments()
	case msg.Text != "":
		ev.Kind = common.EventText
		ev.Text = msg.Text
	default:
		return common.Event{}, false
	}
	return ev, true
}
