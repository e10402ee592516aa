package fetchlog

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/alcaldia-cabimas/cabimas-web/internal/repositories"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

const table = "fetch_events"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("FetchLogRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, event domain.FetchEvent) error {
	query, args, err := insertQuery(event)
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err = p.pg.Exec(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func (p *Pgx) CleanupOldRecords(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := cleanupQuery(cutoff)
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	p.logger.Debug("Deleted old fetch events", "cutoff", cutoff, "rows", result.RowsAffected())
	return result.RowsAffected(), nil
}

func insertQuery(event domain.FetchEvent) (string, []any, error) {
	return repositories.SqBuilder.
		Insert(table).
		Columns("id", "outcome", "code", "message", "post_count", "created_at").
		Values(event.ID, string(event.Outcome), event.Code, event.Message, event.PostCount, event.CreatedAt).
		ToSql()
}

func cleanupQuery(cutoff time.Time) (string, []any, error) {
	return repositories.SqBuilder.
		Delete(table).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
}
