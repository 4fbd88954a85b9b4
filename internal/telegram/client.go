package telegram

import (
	"context"

	"github.com/go-telegram/bot/models"
)

// Client defines the Telegram operations Quotie uses
// This wraps the go-telegram/bot library
type Client interface {
	// GetMe returns information about the bot
	GetMe(ctx context.Context) (*models.User, error)

	// SendText sends a simple text message to a chat
	SendText(ctx context.Context, chatID int64, text string) (*models.Message, error)

	// Start runs the polling loop until ctx is done
	Start(ctx context.Context) error

	// RegisterHandler adds a handler for every update that reaches the bot
	RegisterHandler(handler func(ctx context.Context, update *models.Update))
}

// TextSender is the part of Client needed to deliver text
type TextSender interface {
	SendText(ctx context.Context, chatID int64, text string) (*models.Message, error)
}
