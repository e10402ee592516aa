package providerimpl

import (
	"strings"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/alert"
	"github.com/alcaldia-cabimas/cabimas-web/internal/instagram"
	"github.com/alcaldia-cabimas/cabimas-web/internal/provider"
	"github.com/alcaldia-cabimas/cabimas-web/internal/repositories/fetchlog"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/config"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

const (
	defaultPostsLimit    = 6
	codeNotConfigured    = "not_configured"
	codeRequestCancelled = "request_cancelled"
	recordTimeout        = 2 * time.Second
)

// Settings is the read-only configuration of the provider, fixed at startup.
type Settings struct {
	AccessToken string
	UserID      string
	PostsLimit  int
	DemoMode    bool
}

func SettingsFromConfig(cfg *config.Config) Settings {
	limit := cfg.Instagram.PostsLimit
	if limit <= 0 {
		limit = defaultPostsLimit
	}
	return Settings{
		AccessToken: strings.TrimSpace(cfg.Instagram.AccessToken),
		UserID:      strings.TrimSpace(cfg.Instagram.UserID),
		PostsLimit:  limit,
		DemoMode:    cfg.Instagram.DemoMode,
	}
}

// Configured reports whether a usable access token is present.
func (s Settings) Configured() bool {
	return s.AccessToken != "" && s.AccessToken != provider.PlaceholderToken
}

type Opts struct {
	fx.In

	Config    *config.Config
	Logger    logger.Logger
	Instagram instagram.Client
	FetchLog  fetchlog.Repository
	Alerts    alert.Notifier
	Clock     clockwork.Clock
}

type ProviderImpl struct {
	settings  Settings
	instagram instagram.Client
	fetchLog  fetchlog.Repository
	alerts    alert.Notifier
	clock     clockwork.Clock
	logger    logger.Logger
}

var _ provider.Provider = (*ProviderImpl)(nil)

func New(opts Opts) *ProviderImpl {
	settings := SettingsFromConfig(opts.Config)
	log := opts.Logger.WithComponent("PostProvider")
	log.Info("Post provider configured",
		"token_configured", settings.Configured(),
		"user_id_configured", settings.UserID != "",
		"posts_limit", settings.PostsLimit,
		"demo_mode", settings.DemoMode,
	)

	return &ProviderImpl{
		settings:  settings,
		instagram: opts.Instagram,
		fetchLog:  opts.FetchLog,
		alerts:    opts.Alerts,
		clock:     opts.Clock,
		logger:    log,
	}
}
