package transform

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hoanghai1803/newsdesk/internal/ai"
	"github.com/hoanghai1803/newsdesk/internal/market"
)

var fixedNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func newRatingsGenerator(provider *fakeProvider, source market.Source) *Generator {
	var providers []ai.Provider
	if provider != nil {
		providers = append(providers, provider)
	}
	g := NewGenerator(Options{
		Providers:       providers,
		DefaultProvider: ai.ProviderOpenAI,
		Ratings:         source,
		LookbackDays:    90,
	})
	g.now = func() time.Time { return fixedNow }
	return g
}

func TestAnalystRatings_MissingTicker(t *testing.T) {
	source := &fakeRatings{}
	g := newRatingsGenerator(&fakeProvider{name: ai.ProviderOpenAI}, source)

	res, err := g.AnalystRatings(context.Background(), Request{Ticker: "  "})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("AnalystRatings() error = %v, want *ValidationError", err)
	}
	if got := AnalystRatingsEndpoint().StatusFor(err); got != http.StatusBadRequest {
		t.Errorf("StatusFor() = %d, want %d", got, http.StatusBadRequest)
	}
	want := map[string]any{"summary": "", "ratings": []string{}}
	if !reflect.DeepEqual(res.Body, want) {
		t.Errorf("body = %#v, want %#v", res.Body, want)
	}
	if source.gotTicker != "" {
		t.Error("ratings source should not be called without a ticker")
	}
}

func TestAnalystRatings_NoRatings(t *testing.T) {
	provider := &fakeProvider{name: ai.ProviderOpenAI, text: "unused"}
	source := &fakeRatings{}
	g := newRatingsGenerator(provider, source)

	res, err := g.AnalystRatings(context.Background(), Request{Ticker: " aapl "})
	if err != nil {
		t.Fatalf("AnalystRatings() unexpected error: %v", err)
	}

	if source.gotTicker != "AAPL" {
		t.Errorf("ticker = %q, want %q", source.gotTicker, "AAPL")
	}
	if !source.gotTo.Equal(fixedNow) || !source.gotFrom.Equal(fixedNow.AddDate(0, 0, -90)) {
		t.Errorf("window = %v..%v, want 90 days ending %v", source.gotFrom, source.gotTo, fixedNow)
	}
	if res.Body["summary"] != "No analyst ratings found for AAPL in the last 90 days." {
		t.Errorf("summary = %q", res.Body["summary"])
	}
	if got := res.Body["ratings"]; !reflect.DeepEqual(got, []string{}) {
		t.Errorf("ratings = %#v, want empty list", got)
	}
	if provider.callCount() != 0 {
		t.Error("model should not be called when there are no ratings")
	}
}

func TestAnalystRatings_Summarizes(t *testing.T) {
	provider := &fakeProvider{name: ai.ProviderOpenAI, text: "  Analysts turned more bullish on Apple.  "}
	source := &fakeRatings{ratings: []market.Rating{
		{
			Ticker: "AAPL", Analyst: "Morgan Stanley", Action: "Upgrades",
			RatingCurrent: "Overweight", RatingPrior: "Equal-Weight",
			PriceTargetCurrent: 250, PriceTargetPrior: 230,
			Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			Ticker: "AAPL", Analyst: "Barclays", Action: "Maintains",
			RatingCurrent: "Buy", RatingPrior: "Buy",
			Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}}
	g := newRatingsGenerator(provider, source)

	res, err := g.AnalystRatings(context.Background(), Request{Ticker: "AAPL"})
	if err != nil {
		t.Fatalf("AnalystRatings() unexpected error: %v", err)
	}

	wantLines := []string{
		"2026-03-10: Barclays rated AAPL Maintains Buy",
		"2026-03-04: Morgan Stanley rated AAPL Upgrades Overweight (prior Equal-Weight) and set a $250.00 target (prior $230.00)",
	}
	if got := res.Body["ratings"]; !reflect.DeepEqual(got, wantLines) {
		t.Errorf("ratings = %#v, want %#v", got, wantLines)
	}
	if res.Body["summary"] != "Analysts turned more bullish on Apple." {
		t.Errorf("summary = %q", res.Body["summary"])
	}

	call := provider.lastCall()
	if !strings.Contains(call.Prompt.User, wantLines[1]) {
		t.Errorf("prompt missing formatted rating line: %q", call.Prompt.User)
	}
	if call.MaxTokens != 500 || call.Temperature != 0.7 {
		t.Errorf("sampling = (%d, %v), want (500, 0.7)", call.MaxTokens, call.Temperature)
	}
}

func TestAnalystRatings_SourceFailure(t *testing.T) {
	source := &fakeRatings{err: errors.New("ratings fetch: unexpected status code: 503")}
	g := newRatingsGenerator(&fakeProvider{name: ai.ProviderOpenAI}, source)
	ep := AnalystRatingsEndpoint()

	res, err := g.AnalystRatings(context.Background(), Request{Ticker: "TSLA"})

	var uerr *UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("AnalystRatings() error = %v, want *UpstreamError", err)
	}
	if got := ep.StatusFor(err); got != http.StatusInternalServerError {
		t.Errorf("StatusFor() = %d, want %d", got, http.StatusInternalServerError)
	}
	if strings.Contains(ep.MessageFor(err), "503") {
		t.Error("client message must not leak upstream detail")
	}
	if got := res.Body["ratings"]; !reflect.DeepEqual(got, []string{}) {
		t.Errorf("ratings = %#v, want empty list", got)
	}
}

func TestAnalystRatings_CompletionFailure(t *testing.T) {
	provider := &fakeProvider{name: ai.ProviderOpenAI, err: errors.New("timeout")}
	source := &fakeRatings{ratings: []market.Rating{{Ticker: "TSLA", Analyst: "UBS"}}}
	g := newRatingsGenerator(provider, source)

	res, err := g.AnalystRatings(context.Background(), Request{Ticker: "TSLA"})
	if got := AnalystRatingsEndpoint().StatusFor(err); got != http.StatusInternalServerError {
		t.Errorf("StatusFor() = %d, want %d", got, http.StatusInternalServerError)
	}
	if res.Body["summary"] != "" {
		t.Errorf("summary = %q, want empty", res.Body["summary"])
	}
}

func TestAnalystRatings_NotConfigured(t *testing.T) {
	g := newRatingsGenerator(&fakeProvider{name: ai.ProviderOpenAI}, nil)

	_, err := g.AnalystRatings(context.Background(), Request{Ticker: "AAPL"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("AnalystRatings() error = %v, want ErrNotConfigured", err)
	}
	ep := AnalystRatingsEndpoint()
	if got := ep.StatusFor(err); got != http.StatusInternalServerError {
		t.Errorf("StatusFor() = %d, want %d", got, http.StatusInternalServerError)
	}
	if got := ep.MessageFor(err); got != "Failed to fetch analyst ratings." {
		t.Errorf("MessageFor() = %q", got)
	}
}
