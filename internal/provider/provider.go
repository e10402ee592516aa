package provider

import (
	"context"
	"net/http"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
)

const (
	// PlaceholderToken is the sample value shipped in .env.example; it counts as unset.
	PlaceholderToken = "tu_token_aqui"

	MsgNotConfigured = "Token de Instagram no configurado"
	MsgDemoFallback  = "Error en API, usando datos de demostración"
)

type Kind int

const (
	KindLive Kind = iota
	KindFallback
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindFallback:
		return "fallback"
	case KindFatal:
		return "fatal"
	}
	return "unknown"
}

// Outcome is the result of one fetch cycle: live posts, demo posts with a
// reason, or a fatal failure. Err is the underlying cause, if any.
type Outcome struct {
	Kind    Kind
	Message string
	Posts   []domain.Post
	Err     error
}

func Live(posts []domain.Post) Outcome {
	return Outcome{Kind: KindLive, Posts: posts}
}

func Fallback(message string, posts []domain.Post, cause error) Outcome {
	return Outcome{Kind: KindFallback, Message: message, Posts: posts, Err: cause}
}

func Fatal(message string, cause error) Outcome {
	return Outcome{Kind: KindFatal, Message: message, Err: cause}
}

// Result converts the outcome into the posts API body.
func (o Outcome) Result() domain.FetchResult {
	switch o.Kind {
	case KindLive:
		return domain.FetchResult{Success: true, Data: o.Posts}
	case KindFallback:
		return domain.FetchResult{Success: false, Message: o.Message, Data: o.Posts}
	default:
		return domain.FetchResult{Success: false, Message: o.Message, Data: []domain.Post{}}
	}
}

// StatusCode is 500 for fatal outcomes and 200 otherwise.
func (o Outcome) StatusCode() int {
	if o.Kind == KindFatal {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=mocks/mock.go
type Provider interface {
	Fetch(ctx context.Context) Outcome
}

// Source exposes a Provider in-process with the same contract as the posts
// API: the body is returned whatever the outcome, and no transport error exists.
type Source struct {
	Provider Provider
}

func (s Source) FetchPosts(ctx context.Context) (domain.FetchResult, error) {
	return s.Provider.Fetch(ctx).Result(), nil
}
