package handlers

import (
	"net/http"

	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
)

func Health(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Health check request received", "method", r.Method)
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}
