package models

import (
	"time"
)

// GateChannel is a channel a user must join before using the bot
type GateChannel struct {
	ChannelID string    `db:"channel_id"` // "@" + last path segment of the link
	Name      string    `db:"name"`       // button label
	Link      string    `db:"link"`
	CreatedAt time.Time `db:"created_at"`
}
