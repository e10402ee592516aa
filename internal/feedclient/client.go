// Package feedclient reads the posts API over HTTP for the feed renderer.
package feedclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/alcaldia-cabimas/cabimas-web/internal/feed"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
)

const (
	PostsPath   = "/api/instagram/posts"
	maxBodySize = 1 << 20
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

var _ feed.Source = (*Client)(nil)

func New(baseURL string, httpClient *http.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  log.WithComponent("FeedClient"),
	}
}

// FetchPosts returns the decoded body whatever the status code, so a 500 with
// a well-formed body is a normal result. Only transport failures and bodies
// that are not a FetchResult are errors.
func (c *Client) FetchPosts(ctx context.Context) (domain.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PostsPath, nil)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("build posts request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("request posts: %w", err)
	}
	defer resp.Body.Close()

	var result domain.FetchResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&result); err != nil {
		return domain.FetchResult{}, fmt.Errorf("decode posts response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Posts API returned an error status", "status", resp.StatusCode, "message", result.Message)
	}
	return result, nil
}
