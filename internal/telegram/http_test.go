package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_NewHTTPClient(t *testing.T) {
	// go-telegram/bot accepts any string as a token and getMe is skipped,
	// so nothing here talks to Telegram.
	client, err := NewHTTPClient("test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NotNil(t, client.bot)
}

func TestHTTPClient_NewHTTPClient_WithOptions(t *testing.T) {
	passthrough := func(next bot.HandlerFunc) bot.HandlerFunc { return next }

	client, err := NewHTTPClient("test-token", WithDebug(), WithMiddlewares(passthrough))
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestHTTPClient_handleUpdate(t *testing.T) {
	client, err := NewHTTPClient("test-token")
	require.NoError(t, err)

	var received []string
	client.RegisterHandler(func(ctx context.Context, update *models.Update) {
		received = append(received, "first:"+update.Message.Text)
	})
	client.RegisterHandler(func(ctx context.Context, update *models.Update) {
		received = append(received, "second:"+update.Message.Text)
	})
	assert.Len(t, client.handlers, 2)

	update := &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   1,
			Chat: models.Chat{ID: 123, Type: "private"},
			Text: "Hello",
		},
	}
	client.handleUpdate(context.Background(), update)

	assert.Equal(t, []string{"first:Hello", "second:Hello"}, received)
}

type mockTextSender struct {
	mock.Mock
}

func (m *mockTextSender) SendText(ctx context.Context, chatID int64, text string) (*models.Message, error) {
	args := m.Called(ctx, chatID, text)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func TestSender_Send(t *testing.T) {
	client := &mockTextSender{}
	client.On("SendText", mock.Anything, int64(42), "Memmi\nI'm hungry!").Return(&models.Message{ID: 1}, nil)

	sender := NewSender(client, 42)
	require.NoError(t, sender.Send(context.Background(), "Memmi", "I'm hungry!"))
	client.AssertExpectations(t)
}

func TestSender_SendWithoutTitle(t *testing.T) {
	client := &mockTextSender{}
	client.On("SendText", mock.Anything, int64(42), "body only").Return(&models.Message{ID: 1}, nil)

	require.NoError(t, NewSender(client, 42).Send(context.Background(), " ", "body only"))
	client.AssertExpectations(t)
}

func TestSender_Failures(t *testing.T) {
	client := &mockTextSender{}
	client.On("SendText", mock.Anything, int64(42), mock.Anything).Return(nil, errors.New("network down"))

	err := NewSender(client, 42).Send(context.Background(), "t", "b")
	assert.ErrorContains(t, err, "network down")

	err = NewSender(client, 0).Send(context.Background(), "t", "b")
	assert.Error(t, err)
	client.AssertNumberOfCalls(t, "SendText", 1)
}
