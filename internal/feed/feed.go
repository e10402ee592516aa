// Package feed turns the posts API result into display fragments and commits
// them to a surface.
package feed

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/demo"
	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/config"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/formatter"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

// Source yields the posts API result. An error means the result could not be
// obtained at all (network failure, undecodable body), not success=false.
type Source interface {
	FetchPosts(ctx context.Context) (domain.FetchResult, error)
}

// Surface is where rendered fragments end up.
type Surface interface {
	Commit(containerID string, state State, markup template.HTML) error
}

type Opts struct {
	fx.In

	Source Source
	Config *config.Config
	Logger logger.Logger
	Clock  clockwork.Clock
}

type Renderer struct {
	source Source
	markup *Markup
	loc    *time.Location
	clock  clockwork.Clock
	logger logger.Logger
}

func New(opts Opts) *Renderer {
	log := opts.Logger.WithComponent("FeedRenderer")
	loc, err := formatter.LoadLocation(opts.Config.App.Timezone)
	if err != nil {
		log.Warn("Failed to load timezone, using UTC-4", "timezone", opts.Config.App.Timezone, "error", err)
	}
	return NewRenderer(opts.Source, NewMarkup(nil), loc, opts.Clock, log)
}

func NewRenderer(source Source, markup *Markup, loc *time.Location, clock clockwork.Clock, log logger.Logger) *Renderer {
	return &Renderer{
		source: source,
		markup: markup,
		loc:    loc,
		clock:  clock,
		logger: log,
	}
}

// Render commits the loading fragment, fetches posts and commits exactly one
// terminal fragment. It never leaves the container loading.
func (r *Renderer) Render(ctx context.Context, containerID string, surface Surface) {
	loading, err := r.markup.Loading()
	if err != nil {
		r.logger.Error("Failed to render loading fragment", "error", err)
	}
	if err := surface.Commit(containerID, StateLoading, loading); err != nil {
		r.logger.Error("Container not found", "container", containerID, "error", err)
		return
	}

	state, markup := r.renderTerminal(ctx)
	if err := surface.Commit(containerID, state, markup); err != nil {
		r.logger.Error("Failed to commit fragment", "container", containerID, "state", state.String(), "error", err)
	}
}

func (r *Renderer) renderTerminal(ctx context.Context) (state State, markup template.HTML) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Panic while rendering posts", "panic", rec)
			state, markup = StateError, r.markup.Error(fmt.Sprint(rec))
		}
	}()

	view := r.View(ctx)
	out, err := r.markup.View(view)
	if err != nil {
		r.logger.Error("Error al renderizar publicaciones", "error", err)
		return StateError, r.markup.Error(err.Error())
	}
	return view.State, out
}

// View fetches posts and builds the view model, substituting the local demo
// set when the source fails.
func (r *Renderer) View(ctx context.Context) View {
	result, local := r.fetch(ctx)
	return BuildView(result, local, r.loc)
}

func (r *Renderer) fetch(ctx context.Context) (domain.FetchResult, bool) {
	result, err := r.source.FetchPosts(ctx)
	if err != nil {
		r.logger.Error("Error al obtener publicaciones, usando datos locales", "error", err)
		return domain.FetchResult{Success: false, Data: demo.Posts(r.clock)}, true
	}
	if !result.Success {
		r.logger.Warn("API Response", "message", result.Message)
	}
	return result, false
}
