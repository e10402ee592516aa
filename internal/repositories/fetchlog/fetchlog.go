package fetchlog

import (
	"context"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=fetchlog.go -destination=mocks/mock.go
type Repository interface {
	// Create stores one fetch event
	Create(ctx context.Context, event domain.FetchEvent) error

	// CleanupOldRecords deletes events created before cutoff and returns how many were removed
	CleanupOldRecords(ctx context.Context, cutoff time.Time) (int64, error)
}
