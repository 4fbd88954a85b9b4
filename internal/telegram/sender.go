package telegram

import (
	"context"
	"fmt"
	"strings"
)

// Sender delivers notifications as messages to a single chat
type Sender struct {
	client TextSender
	chatID int64
}

// NewSender creates a sender for the owner chat
func NewSender(client TextSender, chatID int64) *Sender {
	return &Sender{client: client, chatID: chatID}
}

// Send implements notify.Sender
func (s *Sender) Send(ctx context.Context, title, body string) error {
	if s.chatID == 0 {
		return fmt.Errorf("no chat configured for notifications")
	}

	text := strings.TrimSpace(body)
	if title = strings.TrimSpace(title); title != "" {
		text = title + "\n" + text
	}

	if _, err := s.client.SendText(ctx, s.chatID, text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
