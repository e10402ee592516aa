package instagram

import (
	"context"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
)

// Error codes attached (via pkg/errors) to failures returned by a Client.
const (
	CodeAuth      = "instagram_auth"
	CodeListing   = "instagram_listing"
	CodeTransport = "instagram_transport"
	CodeMalformed = "instagram_malformed"
)

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go
type Client interface {
	// GetMe resolves the account that owns the access token.
	GetMe(ctx context.Context) (domain.Account, error)

	// GetUserMedia lists at most limit recent posts of the user, newest first.
	GetUserMedia(ctx context.Context, userID string, limit int) ([]domain.Post, error)
}
