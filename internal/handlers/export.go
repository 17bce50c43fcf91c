package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/usersdb/usersdb/internal/services"
)

type Exporter interface {
	ExportActiveUsers(ctx context.Context) (services.ExportResult, error)
}

// ExportRouter registers export routes. It is mounted only when an object
// store is configured.
func ExportRouter(r chi.Router, exporter Exporter) {
	r.Post("/active-users", func(w http.ResponseWriter, r *http.Request) {
		result, err := exporter.ExportActiveUsers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to export users")
			return
		}
		writeJSON(w, http.StatusCreated, result)
	})
}
