package telegramimpl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/alert"
	"github.com/alcaldia-cabimas/cabimas-web/internal/ratelimit"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func (f *fakeSender) messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), f.sent...)
}

func TestNotify_SendsAndThrottlesPerCode(t *testing.T) {
	sender := &fakeSender{}
	tg := NewWithSender(sender, 42, ratelimit.NewInMemoryLimiter(1, time.Hour, 1), logger.NewNop())

	tg.Notify(context.Background(), alert.Alert{Code: "instagram_listing", Message: "Invalid OAuth token"})
	tg.Notify(context.Background(), alert.Alert{Code: "instagram_listing", Message: "Invalid OAuth token"})
	tg.Notify(context.Background(), alert.Alert{Code: "instagram_transport", Message: "Error de conexión con Instagram"})
	tg.Close()

	msgs := sender.messages()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, int64(42), m.ChatID)
		assert.Equal(t, tgbotapi.ModeMarkdownV2, m.ParseMode)
	}
}

func TestNotify_SendErrorIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("telegram down")}
	tg := NewWithSender(sender, 42, ratelimit.NewInMemoryLimiter(1, time.Hour, 1), logger.NewNop())

	tg.Notify(context.Background(), alert.Alert{Code: "instagram_auth", Message: "x"})
	tg.Close()

	assert.Len(t, sender.messages(), 1)
}

func TestFormatAlert_EscapesMarkdown(t *testing.T) {
	text := formatAlert(alert.Alert{Code: "instagram_listing", Message: "Invalid OAuth token."})

	assert.Equal(t, "*Feed de Instagram con fallas*\n`instagram\\_listing`\nInvalid OAuth token\\.", text)
}
