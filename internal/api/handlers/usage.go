package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hoanghai1803/newsdesk/internal/models"
	"github.com/hoanghai1803/newsdesk/internal/storage"
)

const (
	defaultUsageLimit = 50
	maxUsageLimit     = 500
)

// usageResponse is the body of GET /api/usage.
type usageResponse struct {
	Endpoints []models.EndpointUsage `json:"endpoints"`
	Recent    []models.Generation    `json:"recent"`
}

// ListUsage handles GET /api/usage. It returns per-endpoint totals and the
// most recent usage-log rows, optionally filtered by the "endpoint" query
// parameter and capped by "limit".
func ListUsage(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()

		limit := defaultUsageLimit
		if raw := q.Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = min(n, maxUsageLimit)
		}

		recent, err := store.RecentGenerations(ctx, q.Get("endpoint"), limit)
		if err != nil {
			slog.ErrorContext(ctx, "failed to list usage", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list usage")
			return
		}

		endpoints, err := store.UsageByEndpoint(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to aggregate usage", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to aggregate usage")
			return
		}

		writeJSON(w, http.StatusOK, usageResponse{Endpoints: endpoints, Recent: recent})
	}
}

// GetUsage handles GET /api/usage/{id}. It returns a single usage-log row.
func GetUsage(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		g, err := store.GetGeneration(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Usage record not found")
				return
			}
			slog.ErrorContext(ctx, "failed to get usage record", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get usage record")
			return
		}

		writeJSON(w, http.StatusOK, g)
	}
}
