package handlers

import (
	"net/http"

	"github.com/hoanghai1803/newsdesk/internal/transform"
)

type healthResponse struct {
	Status    string   `json:"status"`
	Providers []string `json:"providers"`
	Images    bool     `json:"images"`
	Ratings   string   `json:"ratings,omitempty"`
	Usage     bool     `json:"usage"`
}

// Health handles GET /api/health. It reports which collaborators were
// configured at startup; it never calls them.
func Health(gen *transform.Generator, usageEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Providers: gen.Providers(),
			Images:    gen.ImagesEnabled(),
			Ratings:   gen.RatingsSource(),
			Usage:     usageEnabled,
		})
	}
}
