package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot/models"
)

const (
	replyUnknown = "I don't know that one. Try /help."
	replyFailed  = "Sorry, something went wrong. Please try again."
)

// Replier sends replies back to a chat
type Replier interface {
	SendText(ctx context.Context, chatID int64, text string) (*models.Message, error)
}

// Dispatcher routes incoming messages to the registered commands
type Dispatcher struct {
	registry *Registry
	replier  Replier
	logger   *slog.Logger
}

// NewDispatcher creates a new update dispatcher. /help and /start are
// answered from the registry.
func NewDispatcher(registry *Registry, replier Replier, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		replier:  replier,
		logger:   logger,
	}
	help := CommandFunc(func(context.Context, string) (string, error) {
		return registry.Help(), nil
	})
	if !registry.Has("help") {
		registry.Register("help", "- show this list", help)
	}
	if !registry.Has("start") {
		registry.Register("start", "- say hello", help)
	}
	return d
}

// HandleUpdate processes a single update
func (d *Dispatcher) HandleUpdate(ctx context.Context, update *models.Update) {
	// Handle both regular and edited messages
	var msg *models.Message
	if update.Message != nil {
		msg = update.Message
	} else if update.EditedMessage != nil {
		msg = update.EditedMessage
	}
	if msg == nil {
		return
	}

	name, args := extractCommand(msg.Text)
	if name == "" {
		d.logger.Debug("ignoring message without command", "chat_id", msg.Chat.ID)
		return
	}

	cmd, ok := d.registry.Get(name)
	if !ok {
		d.logger.Debug("unknown command", "command", name)
		d.reply(ctx, msg.Chat.ID, replyUnknown)
		return
	}

	d.logger.Info("executing command", "command", name, "chat_id", msg.Chat.ID)
	reply, err := cmd.Execute(ctx, args)
	if err != nil {
		d.logger.Error("command execution failed", "command", name, "error", err)
		reply = replyFailed
	}
	if reply != "" {
		d.reply(ctx, msg.Chat.ID, reply)
	}
}

func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) {
	if _, err := d.replier.SendText(ctx, chatID, text); err != nil {
		d.logger.Error("failed to send reply", "chat_id", chatID, "error", err)
	}
}

// extractCommand splits message text into the command name and its
// arguments. Returns an empty name if no command is found.
func extractCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if len(text) == 0 || text[0] != '/' {
		return "", ""
	}

	// Find the end of the command (whitespace or end of string)
	cmd, args := text[1:], ""
	if i := strings.IndexAny(cmd, " \t\n"); i >= 0 {
		cmd, args = cmd[:i], strings.TrimSpace(cmd[i+1:])
	}

	// Handle commands with bot username (e.g., /start@mybot)
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}

	return strings.ToLower(cmd), args
}
