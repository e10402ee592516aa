package providerimpl

import (
	"context"
	"fmt"

	"github.com/alcaldia-cabimas/cabimas-web/internal/alert"
	"github.com/alcaldia-cabimas/cabimas-web/internal/demo"
	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/alcaldia-cabimas/cabimas-web/internal/provider"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/errors"
	"github.com/google/uuid"
)

// Fetch runs one fetch cycle. A missing token short-circuits to the demo set
// without touching the network. Upstream failures become demo data in demo
// mode and a fatal outcome otherwise. Failures caused by the caller going away
// are recorded under their own code and raise no alert.
func (p *ProviderImpl) Fetch(ctx context.Context) provider.Outcome {
	var outcome provider.Outcome

	if !p.settings.Configured() {
		outcome = provider.Fallback(provider.MsgNotConfigured, demo.Posts(p.clock), nil)
		p.record(ctx, outcome, codeNotConfigured)
		return outcome
	}

	posts, err := p.fetchLive(ctx)
	switch {
	case err == nil:
		outcome = provider.Live(posts)
	case p.settings.DemoMode:
		outcome = provider.Fallback(provider.MsgDemoFallback, demo.Posts(p.clock), err)
	default:
		outcome = provider.Fatal(errors.GetMessage(err), err)
	}

	if err != nil && ctx.Err() != nil {
		p.logger.Warn("Instagram fetch aborted by caller", "error", err)
		p.record(ctx, outcome, codeRequestCancelled)
		return outcome
	}

	if err != nil {
		p.logger.Error("Instagram API error",
			"code", errors.GetCode(err),
			"outcome", outcome.Kind.String(),
			"error", err,
		)
		p.alerts.Notify(ctx, alert.Alert{Code: errors.GetCode(err), Message: err.Error()})
	}

	p.record(ctx, outcome, errors.GetCode(err))
	return outcome
}

func (p *ProviderImpl) fetchLive(ctx context.Context) ([]domain.Post, error) {
	userID := p.settings.UserID
	if userID == "" {
		account, err := p.instagram.GetMe(ctx)
		if err != nil {
			return nil, err
		}
		userID = account.ID
	}

	posts, err := p.instagram.GetUserMedia(ctx, userID, p.settings.PostsLimit)
	if err != nil {
		return nil, err
	}
	if len(posts) > p.settings.PostsLimit {
		posts = posts[:p.settings.PostsLimit]
	}
	return posts, nil
}

// record stores the fetch event. It survives cancellation of the request
// context and never affects the outcome.
func (p *ProviderImpl) record(ctx context.Context, o provider.Outcome, code string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	event := domain.FetchEvent{
		ID:        uuid.New(),
		Outcome:   domain.FetchOutcome(o.Kind.String()),
		Code:      code,
		Message:   o.Message,
		PostCount: len(o.Posts),
		CreatedAt: p.clock.Now().UTC(),
	}

	if err := p.fetchLog.Create(ctx, event); err != nil {
		p.logger.Warn("Failed to record fetch event", "event_id", event.ID, "error", fmt.Errorf("fetch log: %w", err))
	}
}
