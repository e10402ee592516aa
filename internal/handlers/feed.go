package handlers

import (
	"context"
	"net/http"

	"github.com/alcaldia-cabimas/cabimas-web/internal/feed"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
)

// FeedContainerID is the element id the site pages reserve for the feed.
const FeedContainerID = "instagram-posts"

// FeedStateHeader carries the terminal render state of the fragment.
const FeedStateHeader = "X-Feed-State"

type FeedRenderer interface {
	Render(ctx context.Context, containerID string, surface feed.Surface)
}

type FeedHandler struct {
	renderer FeedRenderer
	logger   logger.Logger
}

func NewFeedHandler(renderer FeedRenderer, log logger.Logger) *FeedHandler {
	return &FeedHandler{
		renderer: renderer,
		logger:   log.WithComponent("FeedHandler"),
	}
}

// Fragment serves GET /api/instagram/feed: the terminal markup of the posts
// container, ready to be swapped into the page.
func (h *FeedHandler) Fragment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		container := feed.NewContainer(FeedContainerID)
		h.renderer.Render(r.Context(), FeedContainerID, container)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set(FeedStateHeader, container.State().String())
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(container.Markup())); err != nil {
			h.logger.Warn("Failed to write feed fragment", "error", err)
		}
	}
}
