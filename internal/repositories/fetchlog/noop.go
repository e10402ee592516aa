package fetchlog

import (
	"context"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
)

// Noop discards events. Used when no database is configured.
type Noop struct{}

var _ Repository = Noop{}

func (Noop) Create(context.Context, domain.FetchEvent) error { return nil }

func (Noop) CleanupOldRecords(context.Context, time.Time) (int64, error) { return 0, nil }
