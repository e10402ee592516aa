package graphapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/instagram"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/config"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/errors"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"go.uber.org/fx"
)

const maxBodySize = 4 << 20

// Settings is the immutable part of the configuration the client needs.
type Settings struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		BaseURL:     cfg.Instagram.GraphURL,
		AccessToken: cfg.Instagram.AccessToken,
		Timeout:     cfg.Instagram.Timeout,
	}
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// GraphClient talks to the Instagram Graph API with a long-lived access token.
type GraphClient struct {
	settings Settings
	http     *http.Client
	logger   logger.Logger
}

var _ instagram.Client = (*GraphClient)(nil)

func New(opts Opts) *GraphClient {
	settings := SettingsFromConfig(opts.Config)
	return NewWithSettings(settings, &http.Client{Timeout: settings.Timeout}, opts.Logger)
}

func NewWithSettings(settings Settings, httpClient *http.Client, log logger.Logger) *GraphClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	settings.BaseURL = strings.TrimRight(settings.BaseURL, "/")
	return &GraphClient{
		settings: settings,
		http:     httpClient,
		logger:   log.WithComponent("InstagramGraph"),
	}
}

// get performs a GET on the Graph API and decodes the JSON body into out.
// Non-JSON bodies are reported as CodeMalformed, network failures as CodeTransport.
func (c *GraphClient) get(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("access_token", c.settings.AccessToken)
	endpoint := c.settings.BaseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.WrapWithCode(err, instagram.CodeTransport, "Error de conexión con Instagram")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(redact(err), instagram.CodeTransport, "Error de conexión con Instagram")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return errors.WrapWithCode(err, instagram.CodeTransport, "Error de conexión con Instagram")
	}

	c.logger.Debug("Graph API response",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := json.Unmarshal(body, out); err != nil {
		return errors.WrapWithCode(
			fmt.Errorf("status %d: %w", resp.StatusCode, err),
			instagram.CodeMalformed,
			"Respuesta inválida de Instagram",
		)
	}

	// Graph API error payloads come with 4xx statuses; the caller inspects them.
	// A non-2xx status without such a payload is still a failure.
	if resp.StatusCode >= http.StatusBadRequest {
		if e, ok := out.(interface{ graphErr() *graphError }); ok && e.graphErr() != nil {
			return nil
		}
		return errors.NewWithCode(instagram.CodeTransport, fmt.Sprintf("Instagram respondió con estado %d", resp.StatusCode))
	}
	return nil
}

// redact replaces the access_token query value in URL errors produced by net/http.
func redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, perr := url.Parse(urlErr.URL)
	if perr != nil {
		return &url.Error{Op: urlErr.Op, URL: "<unparseable url>", Err: urlErr.Err}
	}
	query := u.Query()
	if !query.Has("access_token") {
		return err
	}
	query.Set("access_token", "REDACTED")
	u.RawQuery = query.Encode()
	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}
