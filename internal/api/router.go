package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoanghai1803/newsdesk/internal/api/handlers"
	"github.com/hoanghai1803/newsdesk/internal/storage"
	"github.com/hoanghai1803/newsdesk/internal/transform"
)

// NewRouter creates the HTTP router with every transform route under /api.
// A nil store disables the usage log and its read routes.
func NewRouter(gen *transform.Generator, store *storage.Store) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	var usage handlers.UsageRecorder
	if store != nil {
		usage = store
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handlers.Health(gen, store != nil))

		for _, ep := range transform.Catalog() {
			api.Post("/"+ep.Name, handlers.Transform(gen, ep, usage))
		}
		api.Post("/"+transform.AnalystRatingsName, handlers.AnalystRatings(gen, usage))
		api.Post("/"+transform.ImageName, handlers.Image(gen, usage))

		if store != nil {
			api.Get("/usage", handlers.ListUsage(store))
			api.Get("/usage/{id}", handlers.GetUsage(store))
		}
	})

	return r
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
