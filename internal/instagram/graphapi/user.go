package graphapi

import (
	"context"
	"net/url"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/alcaldia-cabimas/cabimas-web/internal/instagram"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/errors"
)

// GetMe resolves the account that owns the access token.
func (c *GraphClient) GetMe(ctx context.Context) (domain.Account, error) {
	var resp meResponse
	if err := c.get(ctx, "/me", url.Values{"fields": {"id,username"}}, &resp); err != nil {
		return domain.Account{}, err
	}

	if resp.Error != nil {
		c.logger.Warn("Graph API identity error", "type", resp.Error.Type, "code", resp.Error.Code)
		return domain.Account{}, errors.NewWithCode(instagram.CodeAuth, "Error de autenticación: "+resp.Error.Message)
	}
	if resp.ID == "" {
		return domain.Account{}, errors.NewWithCode(instagram.CodeMalformed, "Respuesta inválida de Instagram: falta el id de usuario")
	}

	c.logger.Info("Resolved Instagram account", "user_id", resp.ID, "username", resp.Username)
	return domain.Account{ID: resp.ID, Username: resp.Username}, nil
}
