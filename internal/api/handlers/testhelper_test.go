package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hoanghai1803/newsdesk/internal/ai"
	"github.com/hoanghai1803/newsdesk/internal/logger"
	"github.com/hoanghai1803/newsdesk/internal/storage"
	"github.com/hoanghai1803/newsdesk/internal/transform"
)

// newTestStore creates an in-memory SQLite store with migrations applied. It
// registers a cleanup function to close the database when the test completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return storage.NewStore(db)
}

// stubProvider returns a fixed completion or error.
type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *stubProvider) Complete(_ context.Context, _ ai.CompletionRequest) (*ai.Completion, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &ai.Completion{Text: p.text, Model: p.name + "-model", InputTokens: 12, OutputTokens: 4}, nil
}

func (p *stubProvider) Name() string  { return p.name }
func (p *stubProvider) Model() string { return p.name + "-model" }

func newTestGenerator(p *stubProvider) *transform.Generator {
	return transform.NewGenerator(transform.Options{
		Providers:       []ai.Provider{p},
		DefaultProvider: ai.ProviderOpenAI,
		MaxWords:        2000,
	})
}

// post sends body to handler with a request ID already in the context, as the
// router's middleware would.
func post(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r = r.WithContext(logger.WithLogFields(r.Context(), logger.LogFields{RequestID: "req-test"}))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return body
}
