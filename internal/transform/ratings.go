package transform

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hoanghai1803/newsdesk/internal/ai"
	"github.com/hoanghai1803/newsdesk/internal/logger"
	"github.com/hoanghai1803/newsdesk/internal/market"
)

// maxRatingLines is how many of the newest ratings are shown to the model.
const maxRatingLines = 5

// AnalystRatings fetches recent ratings for req.Ticker and asks the model for
// a short summary. An empty lookup returns a canned sentence without calling
// the model. A failed lookup is an UpstreamError, like a failed completion.
func (g *Generator) AnalystRatings(ctx context.Context, req Request) (*Result, error) {
	ep := AnalystRatingsEndpoint()
	res := &Result{Body: ep.EmptyBody()}

	if err := g.checkRequired(ep, req); err != nil {
		return res, err
	}
	if g.ratings == nil {
		return res, &UpstreamError{Op: "ratings", Err: ErrNotConfigured}
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	to := g.now().UTC()
	from := to.AddDate(0, 0, -g.lookbackDays)

	ratings, err := g.ratings.Ratings(ctx, ticker, from, to)
	if err != nil {
		slog.ErrorContext(ctx, "ratings lookup failed",
			"ticker", ticker,
			"source", g.ratings.Name(),
			"error", err,
		)
		return res, &UpstreamError{Op: "ratings", Err: err}
	}

	if len(ratings) == 0 {
		res.Body = ep.Body(Fields{"summary": market.NoRatingsMessage(ticker, g.lookbackDays)})
		return res, nil
	}

	lines := market.FormatRatings(ratings, maxRatingLines)

	provider, err := g.provider(req.Provider)
	if err != nil {
		return res, err
	}
	res.Provider = provider.Name()
	res.Model = provider.Model()
	ctx = logger.WithLogFields(ctx, logger.LogFields{Provider: provider.Name()})

	completion, err := provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      ai.AnalystRatingsPrompt(ticker, strings.Join(lines, "\n")),
		MaxTokens:   ep.MaxTokens,
		Temperature: ep.Temperature,
	})
	if err != nil {
		slog.ErrorContext(ctx, "completion failed", "ticker", ticker, "error", err)
		return res, &UpstreamError{Op: "completion", Err: err}
	}
	res.record(completion)

	res.Body = ep.Body(Fields{
		"summary": strings.TrimSpace(completion.Text),
		"ratings": lines,
	})
	return res, nil
}
