package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/alert/telegramimpl"
	"github.com/alcaldia-cabimas/cabimas-web/internal/feed"
	"github.com/alcaldia-cabimas/cabimas-web/internal/feedclient"
	"github.com/alcaldia-cabimas/cabimas-web/internal/handlers"
	"github.com/alcaldia-cabimas/cabimas-web/internal/instagram"
	"github.com/alcaldia-cabimas/cabimas-web/internal/instagram/graphapi"
	"github.com/alcaldia-cabimas/cabimas-web/internal/maintenance"
	"github.com/alcaldia-cabimas/cabimas-web/internal/middleware"
	"github.com/alcaldia-cabimas/cabimas-web/internal/provider"
	"github.com/alcaldia-cabimas/cabimas-web/internal/provider/providerimpl"
	"github.com/alcaldia-cabimas/cabimas-web/internal/repositories/fetchlog"
	"github.com/alcaldia-cabimas/cabimas-web/internal/site"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/config"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		clockwork.NewRealClock,
	),
	Core,
	fx.Invoke(maintenance.Register),
	fx.Invoke(runServer),
)

// Core holds everything below configuration, logging and the clock.
var Core = fx.Options(
	fetchlog.Module,
	fx.Provide(
		fx.Annotate(
			graphapi.New,
			fx.As(new(instagram.Client)),
		),
		telegramimpl.New,
		fx.Annotate(
			providerimpl.New,
			fx.As(new(provider.Provider)),
		),
		newFeedSource,
		feed.New,
		site.New,
		newRouter,
	),
)

// newFeedSource calls the posts API over HTTP when FEED_API_URL is set and
// the in-process provider otherwise.
func newFeedSource(cfg *config.Config, p provider.Provider, log logger.Logger) feed.Source {
	if cfg.App.FeedAPIURL != "" {
		log.Info("Feed renderer uses remote posts API", "url", cfg.App.FeedAPIURL)
		return feedclient.New(cfg.App.FeedAPIURL, nil, log)
	}
	return provider.Source{Provider: p}
}

type RouterOpts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Provider provider.Provider
	Renderer *feed.Renderer
	Site     *site.Site
}

func newRouter(opts RouterOpts) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handlers.Health(opts.Logger))
	mux.HandleFunc("GET /api/instagram/posts", handlers.NewPostsHandler(opts.Provider, opts.Logger).List())
	mux.HandleFunc("GET /api/instagram/feed", handlers.NewFeedHandler(opts.Renderer, opts.Logger).Fragment())
	opts.Site.Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.Config.App.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	})

	httpLog := opts.Logger.WithComponent("HTTP")
	var h http.Handler = mux
	h = c.Handler(h)
	h = middleware.Recover(httpLog)(h)
	h = middleware.Logging(httpLog)(h)
	h = middleware.RequestID(h)
	return h
}

func runServer(lc fx.Lifecycle, cfg *config.Config, log logger.Logger, handler http.Handler) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))
			log.Info(fmt.Sprintf("Instagram API available on http://localhost:%d/api/instagram/posts", cfg.App.Port))

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server")
			return srv.Shutdown(ctx)
		},
	})
}
