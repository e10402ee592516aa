package fetchlog

import (
	"context"
	"fmt"

	"github.com/alcaldia-cabimas/cabimas-web/internal/migrations"
	"github.com/alcaldia-cabimas/cabimas-web/internal/pgx"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/config"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("fetchlog_repository",
	fx.Provide(newRepository),
)

type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// newRepository picks the Postgres repository when a database is configured and
// the no-op one otherwise. Migrations run before the pool is pinged.
func newRepository(opts Opts) (Repository, error) {
	if !opts.Config.FetchLogEnabled() {
		opts.Logger.Info("POSTGRES_HOST not set, fetch events will not be stored")
		return Noop{}, nil
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := migrations.Up(ctx, opts.Config.GetDSN()); err != nil {
				return fmt.Errorf("fetch log migrations: %w", err)
			}
			return nil
		},
	})

	pool, err := pgx.New(pgx.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
	if err != nil {
		return nil, err
	}
	return NewPgx(pool, opts.Logger), nil
}
