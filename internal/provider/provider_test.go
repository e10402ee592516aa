package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_Result(t *testing.T) {
	posts := []domain.Post{{ID: "demo_1"}}
	cause := errors.New("boom")

	tests := []struct {
		name       string
		outcome    Outcome
		want       domain.FetchResult
		wantStatus int
	}{
		{"live", Live(posts), domain.FetchResult{Success: true, Data: posts}, http.StatusOK},
		{"live empty", Live(nil), domain.FetchResult{Success: true}, http.StatusOK},
		{"fallback", Fallback(MsgDemoFallback, posts, cause), domain.FetchResult{Message: MsgDemoFallback, Data: posts}, http.StatusOK},
		{"fatal", Fatal("Invalid OAuth token", cause), domain.FetchResult{Message: "Invalid OAuth token", Data: []domain.Post{}}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Result())
			assert.Equal(t, tt.wantStatus, tt.outcome.StatusCode())
		})
	}
}

type stubProvider Outcome

func (s stubProvider) Fetch(context.Context) Outcome { return Outcome(s) }

func TestSource_NeverReturnsError(t *testing.T) {
	src := Source{Provider: stubProvider(Fatal("Invalid OAuth token", errors.New("x")))}

	res, err := src.FetchPosts(context.Background())

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.Data)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "live", KindLive.String())
	assert.Equal(t, "fallback", KindFallback.String())
	assert.Equal(t, "fatal", KindFatal.String())
}
