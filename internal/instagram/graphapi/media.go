package graphapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/alcaldia-cabimas/cabimas-web/internal/instagram"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/errors"
)

// GetUserMedia lists the most recent posts of userID. A response without a
// data field is an empty list. Items that cannot be displayed are skipped.
func (c *GraphClient) GetUserMedia(ctx context.Context, userID string, limit int) ([]domain.Post, error) {
	query := url.Values{
		"fields": {mediaFields},
		"limit":  {strconv.Itoa(limit)},
	}

	var resp mediaResponse
	if err := c.get(ctx, "/"+url.PathEscape(userID)+"/media", query, &resp); err != nil {
		return nil, err
	}

	if resp.Error != nil {
		c.logger.Warn("Graph API media error", "user_id", userID, "type", resp.Error.Type, "code", resp.Error.Code)
		return nil, errors.NewWithCode(instagram.CodeListing, resp.Error.Message)
	}

	posts := make([]domain.Post, 0, len(resp.Data))
	for _, item := range resp.Data {
		post, reason := item.toPost()
		if reason != "" {
			c.logger.Warn("Skipping media item", "media_id", item.ID, "reason", reason)
			continue
		}
		posts = append(posts, post)
	}

	c.logger.Info("Fetched Instagram media", "user_id", userID, "count", len(posts))
	return posts, nil
}
