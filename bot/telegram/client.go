package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"starsbot/bot/common"
	"starsbot/service"
)

// Client talks to the Telegram Bot API. It is the bot's Messenger as well as
// the membership checker and broadcast sender of the services.
type Client struct {
	api *tgbotapi.BotAPI
}

// NewClient authenticates with the Bot API
func NewClient(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram client: %w", err)
	}
	return &Client{api: api}, nil
}

// Username returns the bot's own username as reported by Telegram
func (c *Client) Username() string {
	return c.api.Self.UserName
}

func (c *Client) Send(ctx context.Context, chatID int64, reply common.Reply) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if len(reply.Keyboard) > 0 {
		msg.ReplyMarkup = inlineMarkup(reply.Keyboard)
	}

	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, deliveryError("send message", chatID, err)
	}
	return sent.MessageID, nil
}

func (c *Client) Edit(ctx context.Context, chatID int64, messageID int, reply common.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	if len(reply.Keyboard) > 0 {
		markup := inlineMarkup(reply.Keyboard)
		edit.ReplyMarkup = &markup
	}

	if _, err := c.api.Send(edit); err != nil {
		// Pressing the same button twice renders identical content
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return deliveryError("edit message", chatID, err)
	}
	return nil
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	if _, err := c.api.Request(cb); err != nil {
		return fmt.Errorf("failed to answer callback %s: %w: %w", callbackID, service.ErrDeliveryFailure, err)
	}
	return nil
}

// MemberStatus looks up the user in a public "@name" channel
func (c *Client) MemberStatus(ctx context.Context, channelID string, userID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: channelID,
			UserID:             userID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get member %d of %s: %w: %w", userID, channelID, service.ErrDeliveryFailure, err)
	}
	return member.Status, nil
}

// SendText delivers a plain text message with no formatting
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := c.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return deliveryError("send text", chatID, err)
	}
	return nil
}

func deliveryError(op string, chatID int64, err error) error {
	return fmt.Errorf("failed to %s to %d: %w: %w", op, chatID, service.ErrDeliveryFailure, err)
}

func inlineMarkup(kb common.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
			}
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
