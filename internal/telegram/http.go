package telegram

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HTTPClient is a wrapper around go-telegram/bot.Bot
// It implements the Client interface
type HTTPClient struct {
	bot      *bot.Bot
	mu       sync.RWMutex
	handlers []func(ctx context.Context, update *models.Update)
}

// NewHTTPClient creates a new HTTP-based Telegram client using go-telegram/bot
func NewHTTPClient(token string, opts ...Option) (*HTTPClient, error) {
	options := &clientOptions{
		debug: os.Getenv("DEBUG") == "true",
	}
	for _, opt := range opts {
		opt(options)
	}

	botOpts := []bot.Option{
		bot.WithSkipGetMe(),
	}
	if options.debug {
		botOpts = append(botOpts, bot.WithDebug())
	}
	if len(options.middlewares) > 0 {
		botOpts = append(botOpts, bot.WithMiddlewares(options.middlewares...))
	}

	client := &HTTPClient{
		handlers: make([]func(ctx context.Context, update *models.Update), 0),
	}

	// Every update goes through the registered handlers
	botOpts = append(botOpts, bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		client.handleUpdate(ctx, update)
	}))

	b, err := bot.New(token, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	client.bot = b
	return client, nil
}

// handleUpdate fans a single update out to the registered handlers
func (c *HTTPClient) handleUpdate(ctx context.Context, update *models.Update) {
	c.mu.RLock()
	handlers := make([]func(ctx context.Context, update *models.Update), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, update)
	}
}

// clientOptions holds configuration options
type clientOptions struct {
	debug       bool
	middlewares []bot.Middleware
}

// Option configures the HTTPClient
type Option func(*clientOptions)

// WithDebug enables debug mode
func WithDebug() Option {
	return func(c *clientOptions) {
		c.debug = true
	}
}

// WithMiddlewares runs middlewares before every handler
func WithMiddlewares(middlewares ...bot.Middleware) Option {
	return func(c *clientOptions) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// GetMe implements the Client interface
func (c *HTTPClient) GetMe(ctx context.Context) (*models.User, error) {
	return c.bot.GetMe(ctx)
}

// SendText implements the Client interface
func (c *HTTPClient) SendText(ctx context.Context, chatID int64, text string) (*models.Message, error) {
	return c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

// Start begins the bot's polling loop
// This should be called in a goroutine
func (c *HTTPClient) Start(ctx context.Context) error {
	c.bot.Start(ctx)
	return ctx.Err()
}

// RegisterHandler adds a handler for updates
func (c *HTTPClient) RegisterHandler(handler func(ctx context.Context, update *models.Update)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

var _ Client = (*HTTPClient)(nil)
