package telegramimpl

import (
	"context"
	"sync"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/alert"
	"github.com/alcaldia-cabimas/cabimas-web/internal/ratelimit"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/config"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
)

// One alert per code every 10 minutes.
const (
	alertsPerWindow = 1
	alertWindow     = 10 * time.Minute
	alertBurst      = 1
)

// Sender is the subset of *tgbotapi.BotAPI used to deliver alerts.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	sender  Sender
	chatID  int64
	limiter ratelimit.Limiter
	logger  logger.Logger
	wg      sync.WaitGroup
}

var _ alert.Notifier = (*TelegramImpl)(nil)

// New returns the Telegram notifier when a bot token and user are configured,
// and alert.Noop otherwise. A bot that cannot be reached at startup also
// degrades to alert.Noop.
func New(opts Opts) alert.Notifier {
	if !opts.Config.AlertsEnabled() {
		opts.Logger.Info("Telegram alerts disabled")
		return alert.Noop{}
	}

	bot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot, alerts disabled", "Error", err)
		return alert.Noop{}
	}

	tg := NewWithSender(bot, opts.Config.Telegram.User, ratelimit.NewInMemoryLimiter(alertsPerWindow, alertWindow, alertBurst), opts.Logger)
	opts.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			tg.Close()
			return nil
		},
	})
	return tg
}

func NewWithSender(sender Sender, chatID int64, limiter ratelimit.Limiter, log logger.Logger) *TelegramImpl {
	return &TelegramImpl{
		sender:  sender,
		chatID:  chatID,
		limiter: limiter,
		logger:  log.WithComponent("TelegramAlerts"),
	}
}

// Notify sends the alert in the background unless an alert with the same code
// was sent recently.
func (tg *TelegramImpl) Notify(_ context.Context, a alert.Alert) {
	if !tg.limiter.Allow(a.Code) {
		tg.logger.Debug("Alert throttled", "code", a.Code)
		return
	}

	tg.wg.Add(1)
	go func() {
		defer tg.wg.Done()
		tg.send(a)
	}()
}

// Close waits for in-flight alerts.
func (tg *TelegramImpl) Close() {
	tg.wg.Wait()
}
