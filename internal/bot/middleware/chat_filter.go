// Package middleware provides bot middleware for filtering and processing updates.
package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// FilterConfig lists the chats allowed to talk to the bot
type FilterConfig struct {
	AllowedChatIDs []int64
	// OwnerChatID receives notifications and is always allowed.
	OwnerChatID int64
	// AutoLeave makes the bot leave chats that are not allowed.
	AutoLeave bool
}

// ChatFilter creates a middleware that drops updates from chats that are
// not allowed. With no allowed chats and no owner every chat is allowed.
func ChatFilter(cfg FilterConfig, logger *slog.Logger) bot.Middleware {
	allowed := make(map[int64]bool, len(cfg.AllowedChatIDs)+1)
	for _, id := range cfg.AllowedChatIDs {
		allowed[id] = true
	}
	if cfg.OwnerChatID != 0 {
		allowed[cfg.OwnerChatID] = true
	}
	allowAll := len(allowed) == 0

	logger.Info("chat filter", "allow_all", allowAll, "auto_leave", cfg.AutoLeave, "chat_ids", cfg.AllowedChatIDs, "owner_chat_id", cfg.OwnerChatID)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			chatID := extractChatID(update)
			if chatID == 0 {
				return
			}

			if !allowAll && !allowed[chatID] {
				logger.Info("ignoring update from unauthorized chat", "chat_id", chatID)

				if cfg.AutoLeave && b != nil {
					logger.Info("leaving unauthorized chat", "chat_id", chatID)
					if _, err := b.LeaveChat(ctx, &bot.LeaveChatParams{ChatID: chatID}); err != nil {
						logger.Error("failed to leave chat", "chat_id", chatID, "error", err)
					}
				}
				return
			}

			next(ctx, b, update)
		}
	}
}

// extractChatID extracts the chat ID from an update.
// Returns 0 if no chat ID can be determined.
func extractChatID(update *models.Update) int64 {
	if update == nil {
		return 0
	}

	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.EditedMessage != nil:
		return update.EditedMessage.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID
	case update.MyChatMember != nil:
		return update.MyChatMember.Chat.ID
	case update.ChatMember != nil:
		return update.ChatMember.Chat.ID
	default:
		return 0
	}
}
