package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/demo"
	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/alcaldia-cabimas/cabimas-web/internal/feed"
	"github.com/alcaldia-cabimas/cabimas-web/internal/provider"
	mock_provider "github.com/alcaldia-cabimas/cabimas-web/internal/provider/mocks"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testClock = clockwork.NewFakeClockAt(time.Date(2025, time.March, 4, 16, 0, 0, 0, time.UTC))

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPostsHandler_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock_provider.NewMockProvider(ctrl)
	p.EXPECT().Fetch(gomock.Any()).Return(provider.Fallback(provider.MsgNotConfigured, demo.Posts(testClock), nil))

	rec := httptest.NewRecorder()
	NewPostsHandler(p, logger.NewNop()).List()(rec, httptest.NewRequest(http.MethodGet, "/api/instagram/posts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	body := decodeResult(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, provider.MsgNotConfigured, body["message"])
	assert.Len(t, body["data"], 3)
}

func TestPostsHandler_Live(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock_provider.NewMockProvider(ctrl)
	p.EXPECT().Fetch(gomock.Any()).Return(provider.Live([]domain.Post{
		{ID: "1", MediaType: domain.MediaTypeImage, MediaURL: "https://cdn/1.jpg", Permalink: "https://instagram.com/p/1"},
	}))

	rec := httptest.NewRecorder()
	NewPostsHandler(p, logger.NewNop()).List()(rec, httptest.NewRequest(http.MethodGet, "/api/instagram/posts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResult(t, rec)
	assert.Equal(t, true, body["success"])
	_, hasMessage := body["message"]
	assert.False(t, hasMessage)
	assert.Len(t, body["data"], 1)
}

func TestPostsHandler_UpstreamErrorWithDemo(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock_provider.NewMockProvider(ctrl)
	p.EXPECT().Fetch(gomock.Any()).Return(provider.Fallback(provider.MsgDemoFallback, demo.Posts(testClock), errors.New("Invalid OAuth token")))

	rec := httptest.NewRecorder()
	NewPostsHandler(p, logger.NewNop()).List()(rec, httptest.NewRequest(http.MethodGet, "/api/instagram/posts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResult(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, provider.MsgDemoFallback, body["message"])
	assert.Len(t, body["data"], 3)
}

func TestPostsHandler_Fatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock_provider.NewMockProvider(ctrl)
	p.EXPECT().Fetch(gomock.Any()).Return(provider.Fatal("Invalid OAuth token", errors.New("listing failed")))

	rec := httptest.NewRecorder()
	NewPostsHandler(p, logger.NewNop()).List()(rec, httptest.NewRequest(http.MethodGet, "/api/instagram/posts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeResult(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid OAuth token", body["message"])
	assert.Equal(t, []any{}, body["data"])
	assert.NotContains(t, rec.Body.String(), "listing failed")
}

func newFeedHandler(p provider.Provider) *FeedHandler {
	renderer := feed.NewRenderer(provider.Source{Provider: p}, feed.NewMarkup(nil), time.FixedZone("VET", -4*60*60), testClock, logger.NewNop())
	return NewFeedHandler(renderer, logger.NewNop())
}

func TestFeedHandler_DemoFragment(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock_provider.NewMockProvider(ctrl)
	p.EXPECT().Fetch(gomock.Any()).Return(provider.Fallback(provider.MsgNotConfigured, demo.Posts(testClock), nil))

	rec := httptest.NewRecorder()
	newFeedHandler(p).Fragment()(rec, httptest.NewRequest(http.MethodGet, "/api/instagram/feed", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "populated", rec.Header().Get(FeedStateHeader))
	html := rec.Body.String()
	assert.Contains(t, html, `data-banner="demo"`)
	assert.Contains(t, html, provider.MsgNotConfigured)
	assert.Equal(t, 3, strings.Count(html, "Ver en Instagram"))
}

func TestFeedHandler_FatalRendersEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock_provider.NewMockProvider(ctrl)
	p.EXPECT().Fetch(gomock.Any()).Return(provider.Fatal("Invalid OAuth token", nil))

	rec := httptest.NewRecorder()
	newFeedHandler(p).Fragment()(rec, httptest.NewRequest(http.MethodGet, "/api/instagram/feed", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "empty", rec.Header().Get(FeedStateHeader))
	assert.NotContains(t, rec.Body.String(), "Ver en Instagram")
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(logger.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
