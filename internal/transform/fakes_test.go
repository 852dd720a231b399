package transform

import (
	"context"
	"sync"
	"time"

	"github.com/hoanghai1803/newsdesk/internal/ai"
	"github.com/hoanghai1803/newsdesk/internal/market"
)

type fakeProvider struct {
	name string
	text string
	err  error

	mu    sync.Mutex
	calls []ai.CompletionRequest
}

func (f *fakeProvider) Complete(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &ai.Completion{Text: f.text, Model: f.name + "-model", InputTokens: 10, OutputTokens: 5}, nil
}

func (f *fakeProvider) Name() string  { return f.name }
func (f *fakeProvider) Model() string { return f.name + "-default" }

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeProvider) lastCall() ai.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ai.CompletionRequest{}
	}
	return f.calls[len(f.calls)-1]
}

type fakeImages struct {
	img *ai.GeneratedImage
	err error
	got ai.ImageRequest
}

func (f *fakeImages) GenerateImage(_ context.Context, req ai.ImageRequest) (*ai.GeneratedImage, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.img, nil
}

type fakeRatings struct {
	ratings []market.Rating
	err     error

	gotTicker string
	gotFrom   time.Time
	gotTo     time.Time
}

func (f *fakeRatings) Ratings(_ context.Context, ticker string, from, to time.Time) ([]market.Rating, error) {
	f.gotTicker, f.gotFrom, f.gotTo = ticker, from, to
	return f.ratings, f.err
}

func (f *fakeRatings) Name() string { return "fake" }

type fakeArticles struct {
	text   string
	err    error
	gotURL string
}

func (f *fakeArticles) Extract(_ context.Context, rawURL string) (string, error) {
	f.gotURL = rawURL
	return f.text, f.err
}
