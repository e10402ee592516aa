package graphapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/alcaldia-cabimas/cabimas-web/internal/instagram"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/errors"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GraphClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithSettings(Settings{BaseURL: srv.URL + "/", AccessToken: "secret-token"}, srv.Client(), logger.NewNop())
}

func TestGetMe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		assert.Equal(t, "id,username", r.URL.Query().Get("fields"))
		assert.Equal(t, "secret-token", r.URL.Query().Get("access_token"))
		_, _ = w.Write([]byte(`{"id":"17841400000000000","username":"alcaldiacabimas"}`))
	})

	account, err := client.GetMe(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.Account{ID: "17841400000000000", Username: "alcaldiacabimas"}, account)
}

func TestGetMe_ErrorPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190}}`))
	})

	_, err := client.GetMe(context.Background())

	require.Error(t, err)
	assert.Equal(t, instagram.CodeAuth, errors.GetCode(err))
	assert.Equal(t, "Error de autenticación: Invalid OAuth access token", errors.GetMessage(err))
}

func TestGetMe_MissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"x"}`))
	})

	_, err := client.GetMe(context.Background())

	assert.Equal(t, instagram.CodeMalformed, errors.GetCode(err))
}

func TestGetUserMedia(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/42/media", r.URL.Path)
		assert.Equal(t, "6", r.URL.Query().Get("limit"))
		assert.Equal(t, mediaFields, r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`{"data":[
			{"id":"1","caption":"Feria","media_type":"IMAGE","media_url":"https://cdn/1.jpg","permalink":"https://instagram.com/p/1","timestamp":"2025-03-04T18:10:00+0000"},
			{"id":"2","media_type":"VIDEO","media_url":"https://cdn/2.mp4","thumbnail_url":"https://cdn/2.jpg","permalink":"https://instagram.com/p/2","timestamp":"2025-03-03T10:00:00Z"},
			{"id":"3","media_type":"CAROUSEL_ALBUM","media_url":"https://cdn/3.jpg","permalink":"https://instagram.com/p/3","timestamp":"2025-03-02T10:00:00+0000"}
		],"paging":{"cursors":{"before":"a","after":"b"}}}`))
	})

	posts, err := client.GetUserMedia(context.Background(), "42", 6)

	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, domain.Post{
		ID:        "1",
		Caption:   "Feria",
		MediaType: domain.MediaTypeImage,
		MediaURL:  "https://cdn/1.jpg",
		Permalink: "https://instagram.com/p/1",
		Timestamp: time.Date(2025, time.March, 4, 18, 10, 0, 0, time.UTC),
	}, normalizeZone(posts[0]))
	assert.Equal(t, domain.MediaTypeVideo, posts[1].MediaType)
	assert.Equal(t, "https://cdn/2.jpg", posts[1].DisplayImage())
	assert.Equal(t, domain.MediaTypeImage, posts[2].MediaType)
}

func TestGetUserMedia_NoDataField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	posts, err := client.GetUserMedia(context.Background(), "42", 6)

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetUserMedia_SkipsUndisplayableItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"id":"1","media_type":"VIDEO","permalink":"p","timestamp":"2025-03-04T18:10:00+0000"},
			{"id":"2","media_type":"IMAGE","media_url":"m","permalink":"p","timestamp":"yesterday"},
			{"media_type":"IMAGE","media_url":"m","permalink":"p","timestamp":"2025-03-04T18:10:00+0000"},
			{"id":"4","media_type":"IMAGE","media_url":"m","permalink":"p","timestamp":"2025-03-04T18:10:00+0000"}
		]}`))
	})

	posts, err := client.GetUserMedia(context.Background(), "42", 6)

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "4", posts[0].ID)
}

func TestGetUserMedia_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{"error payload", http.StatusBadRequest, `{"error":{"message":"Invalid OAuth token","code":190}}`, instagram.CodeListing, "Invalid OAuth token"},
		{"error payload with 200", http.StatusOK, `{"error":{"message":"Rate limited"}}`, instagram.CodeListing, "Rate limited"},
		{"html body", http.StatusOK, `<html>maintenance</html>`, instagram.CodeMalformed, "Respuesta inválida de Instagram"},
		{"server error without payload", http.StatusBadGateway, `{}`, instagram.CodeTransport, "Instagram respondió con estado 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetUserMedia(context.Background(), "42", 6)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
			assert.Equal(t, tt.wantMsg, errors.GetMessage(err))
		})
	}
}

func TestGetUserMedia_TransportErrorRedactsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewWithSettings(Settings{BaseURL: srv.URL, AccessToken: "secret-token"}, nil, logger.NewNop())

	_, err := client.GetUserMedia(context.Background(), "42", 6)

	require.Error(t, err)
	assert.Equal(t, instagram.CodeTransport, errors.GetCode(err))
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestGetUserMedia_RedactsOnlyTokenValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewWithSettings(Settings{BaseURL: srv.URL, AccessToken: "tok"}, nil, logger.NewNop())

	_, err := client.GetUserMedia(context.Background(), "42", 6)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token=REDACTED")
	assert.NotContains(t, err.Error(), "access_token=tok")
	assert.NotContains(t, err.Error(), "access_REDACTED")
}

func TestRedact_LeavesForeignErrors(t *testing.T) {
	plain := errors.New("boom")

	assert.Same(t, plain, redact(plain))
}

func normalizeZone(p domain.Post) domain.Post {
	p.Timestamp = p.Timestamp.UTC()
	return p
}
