package handlers

import (
	"net/http"

	"github.com/alcaldia-cabimas/cabimas-web/internal/provider"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
)

type PostsHandler struct {
	provider provider.Provider
	logger   logger.Logger
}

func NewPostsHandler(p provider.Provider, log logger.Logger) *PostsHandler {
	return &PostsHandler{
		provider: p,
		logger:   log.WithComponent("PostsHandler"),
	}
}

// List serves GET /api/instagram/posts. Fatal outcomes answer 500 with the
// upstream message, everything else answers 200.
func (h *PostsHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome := h.provider.Fetch(r.Context())
		if outcome.Kind == provider.KindFatal {
			h.logger.Error("Error al obtener publicaciones de Instagram", "message", outcome.Message)
		}
		writeJSON(w, outcome.StatusCode(), outcome.Result())
	}
}
